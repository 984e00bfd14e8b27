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
// Lifecycle Service
// ============================================

// validTransitions is the workspace state machine. DISSOLVED is absorbing:
// the cancellation-reversal path goes through Reactivate, which is its own
// event hook guarded by the recorded dissolution reason, not a transition
// this table admits.
var validTransitions = map[string][]string{
	types.WorkspaceProvisioning: {types.WorkspaceActive},
	types.WorkspaceActive:       {types.WorkspaceWindingDown, types.WorkspaceDissolved},
	types.WorkspaceWindingDown:  {types.WorkspaceDissolved, types.WorkspaceActive},
	types.WorkspaceDissolved:    {},
}

// LifecycleService is the orchestrator: it validates state transitions,
// reacts to event lifecycle changes, and runs the retention sweep.
type LifecycleService interface {
	ValidateTransition(ctx context.Context, workspace *repository.Workspace, target string) error
	OnEventCreated(ctx context.Context, eventID, organizerID string)
	OnEventStatusChanged(ctx context.Context, eventID, oldStatus, newStatus string)
	GetLifecycleStatus(ctx context.Context, eventID string) (*models.LifecycleStatus, error)
	SweepScheduledDissolutions(ctx context.Context) (int, error)
}

type lifecycleService struct {
	workspaceRepo repository.WorkspaceRepository
	eventRepo     repository.EventReader
	workspaceSvc  WorkspaceService
}

func NewLifecycleService(
	workspaceRepo repository.WorkspaceRepository,
	eventRepo repository.EventReader,
	workspaceSvc WorkspaceService,
) LifecycleService {
	return &lifecycleService{
		workspaceRepo: workspaceRepo,
		eventRepo:     eventRepo,
		workspaceSvc:  workspaceSvc,
	}
}

// ValidateTransition answers whether the workspace may move to target now.
// Entering DISSOLVED additionally requires the owning event to be over:
// ended by date, COMPLETED, or CANCELLED.
func (s *lifecycleService) ValidateTransition(ctx context.Context, workspace *repository.Workspace, target string) error {
	allowed := false
	for _, t := range validTransitions[workspace.Status] {
		if t == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: Invalid transition from %s to %s", ErrInvalidState, workspace.Status, target)
	}

	if target == types.WorkspaceDissolved {
		event, err := s.eventRepo.FindByID(ctx, workspace.EventID)
		if err != nil {
			return fmt.Errorf("failed to load event: %w", err)
		}
		if event == nil {
			return ErrNotFound
		}
		eventOver := event.Status == types.EventCompleted ||
			event.Status == types.EventCancelled ||
			event.EndDate.Before(time.Now())
		if !eventOver {
			return fmt.Errorf("%w: Cannot dissolve workspace before event completion or cancellation", ErrInvalidState)
		}
	}
	return nil
}

// bestEffort runs an event-hook side effect and logs instead of propagating
// failures; event writes never roll back on workspace errors.
func bestEffort(op string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("[Lifecycle] %s failed: %v", op, err)
	}
}

// OnEventCreated provisions a workspace for a new event. Idempotent: an
// event that already has a workspace is left alone.
func (s *lifecycleService) OnEventCreated(ctx context.Context, eventID, organizerID string) {
	bestEffort("provision on event creation", func() error {
		existing, err := s.workspaceRepo.FindByEventID(ctx, eventID)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		_, err = s.workspaceSvc.Provision(ctx, eventID, organizerID)
		if err == ErrConflict {
			return nil
		}
		return err
	})
}

// OnEventStatusChanged maps event transitions onto workspace transitions:
// completion starts the wind-down, cancellation dissolves immediately, and
// reverting a cancellation reactivates a workspace dissolved by it.
func (s *lifecycleService) OnEventStatusChanged(ctx context.Context, eventID, oldStatus, newStatus string) {
	workspace, err := s.workspaceRepo.FindByEventID(ctx, eventID)
	if err != nil {
		log.Printf("[Lifecycle] Failed to load workspace for event %s: %v", eventID, err)
		return
	}
	if workspace == nil {
		return
	}

	switch {
	case newStatus == types.EventCompleted && oldStatus != types.EventCompleted:
		if workspace.Status == types.WorkspaceActive {
			bestEffort("wind-down on event completion", func() error {
				return s.workspaceSvc.ForceWindDown(ctx, workspace.ID)
			})
		}

	case newStatus == types.EventCancelled:
		if workspace.Status != types.WorkspaceDissolved {
			bestEffort("dissolution on event cancellation", func() error {
				return s.workspaceSvc.ForceDissolve(ctx, workspace.ID, types.DissolutionCancelled)
			})
		}

	case oldStatus == types.EventCancelled && newStatus != types.EventCancelled:
		if workspace.Status == types.WorkspaceDissolved &&
			workspace.DissolutionReason != nil &&
			*workspace.DissolutionReason == types.DissolutionCancelled {
			bestEffort("reactivation on cancellation reversal", func() error {
				return s.workspaceSvc.Reactivate(ctx, workspace.ID)
			})
		}
	}
}

// GetLifecycleStatus reports where the event's workspace sits in the state
// machine and which transitions are open right now.
func (s *lifecycleService) GetLifecycleStatus(ctx context.Context, eventID string) (*models.LifecycleStatus, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	workspace, err := s.workspaceRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	status := &models.LifecycleStatus{}
	if workspace == nil {
		status.CanProvision = true
		return status, nil
	}

	status.HasWorkspace = true
	status.WorkspaceStatus = &workspace.Status
	status.CanWindDown = workspace.Status == types.WorkspaceActive
	status.CanDissolve = s.ValidateTransition(ctx, workspace, types.WorkspaceDissolved) == nil

	if workspace.Status == types.WorkspaceWindingDown {
		scheduled := event.EndDate.AddDate(0, 0, workspace.Settings.RetentionPeriodDays)
		status.ScheduledDissolution = &scheduled
	}
	return status, nil
}

// SweepScheduledDissolutions dissolves every WINDING_DOWN workspace whose
// retention window has elapsed. One workspace failing never stops the sweep;
// the count of dissolved workspaces is returned.
func (s *lifecycleService) SweepScheduledDissolutions(ctx context.Context) (int, error) {
	workspaces, err := s.workspaceRepo.FindByStatus(ctx, types.WorkspaceWindingDown)
	if err != nil {
		return 0, fmt.Errorf("failed to list winding-down workspaces: %w", err)
	}

	dissolved := 0
	now := time.Now()
	for _, workspace := range workspaces {
		event, err := s.eventRepo.FindByID(ctx, workspace.EventID)
		if err != nil {
			log.Printf("[Lifecycle] Sweep: failed to load event %s: %v", workspace.EventID, err)
			continue
		}
		if event == nil {
			log.Printf("[Lifecycle] Sweep: workspace %s references missing event %s", workspace.ID, workspace.EventID)
			continue
		}
		if event.Status != types.EventCompleted && !event.EndDate.Before(now) {
			continue
		}

		deadline := event.EndDate.AddDate(0, 0, workspace.Settings.RetentionPeriodDays)
		if now.Before(deadline) {
			continue
		}

		if err := s.workspaceSvc.ForceDissolve(ctx, workspace.ID, types.DissolutionRetentionExpired); err != nil {
			log.Printf("[Lifecycle] Sweep: failed to dissolve workspace %s: %v", workspace.ID, err)
			continue
		}
		dissolved++
	}

	if dissolved > 0 {
		log.Printf("[Lifecycle] Sweep dissolved %d workspace(s)", dissolved)
	}
	return dissolved, nil
}
