package handlers

import (
	"net/http"

	"github.com/gatherhub/gatherhub-backend/internal/api/middleware"
	"github.com/gatherhub/gatherhub-backend/internal/models"
	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService     service.EventService
	lifecycleService service.LifecycleService
}

func NewEventHandler(eventService service.EventService, lifecycleService service.LifecycleService) *EventHandler {
	return &EventHandler{
		eventService:     eventService,
		lifecycleService: lifecycleService,
	}
}

func toEventResponse(event *repository.Event) models.EventResponse {
	resp := models.EventResponse{
		ID:          event.ID,
		OrganizerID: event.OrganizerID,
		Title:       event.Title,
		Status:      event.Status,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
	if event.Description != nil {
		resp.Description = *event.Description
	}
	return resp
}

func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEventResponse(event))
}

func (h *EventHandler) GetByID(c *gin.Context) {
	event, err := h.eventService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h *EventHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	events, err := h.eventService.ListByOrganizer(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, toEventResponse(event))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *EventHandler) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.UpdateStatus(c.Request.Context(), c.Param("id"), userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(event))
}

// GetLifecycleStatus reports the event's workspace state and available
// transitions.
func (h *EventHandler) GetLifecycleStatus(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	status, err := h.lifecycleService.GetLifecycleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
