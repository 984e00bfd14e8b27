package handlers

import (
	"net/http"

	"github.com/gatherhub/gatherhub-backend/internal/api/middleware"
	"github.com/gatherhub/gatherhub-backend/internal/cron"
	"github.com/gatherhub/gatherhub-backend/internal/models"
	"github.com/gin-gonic/gin"
)

type SchedulerHandler struct {
	scheduler *cron.Scheduler
}

func NewSchedulerHandler(scheduler *cron.Scheduler) *SchedulerHandler {
	return &SchedulerHandler{scheduler: scheduler}
}

func (h *SchedulerHandler) Status(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	running, next := h.scheduler.Status()
	c.JSON(http.StatusOK, models.SchedulerStatusResponse{
		Running:         running,
		NextRunEstimate: next,
	})
}

// Trigger runs one dissolution sweep synchronously and reports how many
// workspaces it dissolved.
func (h *SchedulerHandler) Trigger(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	dissolved, err := h.scheduler.TriggerManualProcessing(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dissolved": dissolved})
}
