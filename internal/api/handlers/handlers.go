package handlers

import (
	"errors"
	"net/http"

	"github.com/gatherhub/gatherhub-backend/internal/cron"
	"github.com/gatherhub/gatherhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Handlers Container
// ============================================

type Handlers struct {
	Auth      *AuthHandler
	Event     *EventHandler
	Workspace *WorkspaceHandler
	Scheduler *SchedulerHandler
}

func NewHandlers(services *service.Services, scheduler *cron.Scheduler) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(services.Auth),
		Event:     NewEventHandler(services.Event, services.Lifecycle),
		Workspace: NewWorkspaceHandler(services.Workspace),
		Scheduler: NewSchedulerHandler(scheduler),
	}
}

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
