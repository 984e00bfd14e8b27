package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gatherhub/gatherhub-backend/internal/models"
	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/types"
)

// ============================================
// Event Service
// ============================================

type EventService interface {
	Create(ctx context.Context, organizerID string, req *models.CreateEventRequest) (*repository.Event, error)
	GetByID(ctx context.Context, eventID string) (*repository.Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*repository.Event, error)
	UpdateStatus(ctx context.Context, eventID, actorUserID, status string) (*repository.Event, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	bridge    EventLifecycleBridge
}

func NewEventService(eventRepo repository.EventRepository, bridge EventLifecycleBridge) EventService {
	return &eventService{eventRepo: eventRepo, bridge: bridge}
}

func (s *eventService) Create(ctx context.Context, organizerID string, req *models.CreateEventRequest) (*repository.Event, error) {
	if req.Title == "" {
		return nil, ErrInvalidInput
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidInput
	}

	event := &repository.Event{
		OrganizerID: organizerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      types.EventDraft,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	log.Printf("[Event] Created event %s (%s)", event.ID, event.Title)

	s.bridge.OnEventCreated(ctx, event.ID, organizerID)
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, eventID string) (*repository.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	return event, nil
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string) ([]*repository.Event, error) {
	return s.eventRepo.FindByOrganizer(ctx, organizerID)
}

// UpdateStatus is organizer-only. The event write commits first; workspace
// side effects run through the bridge afterwards and never roll it back.
func (s *eventService) UpdateStatus(ctx context.Context, eventID, actorUserID, status string) (*repository.Event, error) {
	if !types.IsValidEventStatus(status) {
		return nil, ErrInvalidInput
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if event.OrganizerID != actorUserID {
		return nil, ErrForbidden
	}

	oldStatus := event.Status
	if oldStatus == status {
		return event, nil
	}

	if err := s.eventRepo.UpdateStatus(ctx, eventID, status); err != nil {
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}
	event.Status = status
	event.UpdatedAt = time.Now()
	log.Printf("[Event] Event %s status %s -> %s", eventID, oldStatus, status)

	s.bridge.OnEventStatusChanged(ctx, eventID, oldStatus, status)
	return event, nil
}
