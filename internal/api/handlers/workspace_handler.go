package handlers

import (
	"net/http"

	"github.com/gatherhub/gatherhub-backend/internal/api/middleware"
	"github.com/gatherhub/gatherhub-backend/internal/models"
	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// ============================================
// Response mapping
// ============================================

func toWorkspaceResponse(w *repository.Workspace) models.WorkspaceResponse {
	resp := models.WorkspaceResponse{
		ID:      w.ID,
		EventID: w.EventID,
		Name:    w.Name,
		Status:  w.Status,
		Settings: models.WorkspaceSettingsResponse{
			AutoInviteOrganizer:  w.Settings.AutoInviteOrganizer,
			DefaultChannels:      w.Settings.DefaultChannels,
			TaskCategories:       w.Settings.TaskCategories,
			RetentionPeriodDays:  w.Settings.RetentionPeriodDays,
			AllowExternalMembers: w.Settings.AllowExternalMembers,
		},
		TemplateID:        w.TemplateID,
		DissolvedAt:       w.DissolvedAt,
		DissolutionReason: w.DissolutionReason,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
	if w.Description != nil {
		resp.Description = *w.Description
	}
	return resp
}

func toMemberResponse(m *repository.TeamMember) models.TeamMemberResponse {
	resp := models.TeamMemberResponse{
		ID:          m.ID,
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		Role:        m.Role,
		Status:      m.Status,
		Permissions: m.Permissions,
		JoinedAt:    m.JoinedAt,
		LeftAt:      m.LeftAt,
	}
	if m.User != nil {
		resp.User = toUserInfo(m.User)
	}
	return resp
}

func toChannelResponse(ch *repository.WorkspaceChannel) models.ChannelResponse {
	return models.ChannelResponse{
		ID:          ch.ID,
		WorkspaceID: ch.WorkspaceID,
		Name:        ch.Name,
		IsDefault:   ch.IsDefault,
		CreatedAt:   ch.CreatedAt,
	}
}

func toTaskResponse(t *repository.WorkspaceTask) models.TaskResponse {
	resp := models.TaskResponse{
		ID:          t.ID,
		WorkspaceID: t.WorkspaceID,
		AssigneeID:  t.AssigneeID,
		Title:       t.Title,
		Category:    t.Category,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Description != nil {
		resp.Description = *t.Description
	}
	if t.EstimatedHours != nil {
		hours := t.EstimatedHours.String()
		resp.EstimatedHours = &hours
	}
	return resp
}

// ============================================
// Lifecycle endpoints
// ============================================

func (h *WorkspaceHandler) Provision(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.Provision(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toWorkspaceResponse(workspace))
}

func (h *WorkspaceHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

func (h *WorkspaceHandler) GetByEventID(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetByEventID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

func (h *WorkspaceHandler) UpdateSettings(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workspace, err := h.workspaceService.UpdateSettings(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

func (h *WorkspaceHandler) InitiateWindDown(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.InitiateWindDown(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workspace winding down"})
}

func (h *WorkspaceHandler) Dissolve(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.Dissolve(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workspace dissolved"})
}

func (h *WorkspaceHandler) EmergencyRevoke(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.EmergencyRevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.workspaceService.EmergencyRevoke(c.Request.Context(), c.Param("id"), userID, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Access revoked"})
}

func (h *WorkspaceHandler) HandleEarlyDeparture(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.EarlyDepartureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.workspaceService.HandleEarlyDeparture(c.Request.Context(), c.Param("id"), req.UserID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Departure processed"})
}

func (h *WorkspaceHandler) ApplyTemplate(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workspace, err := h.workspaceService.ApplyTemplate(c.Request.Context(), c.Param("id"), userID, req.TemplateID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

func (h *WorkspaceHandler) ListTemplates(c *gin.Context) {
	templates := service.ListTemplates()
	out := make([]gin.H, 0, len(templates))
	for _, t := range templates {
		out = append(out, gin.H{
			"id":             t.ID,
			"name":           t.Name,
			"channels":       t.Channels,
			"taskCategories": t.TaskCategories,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ============================================
// Member / channel / task endpoints
// ============================================

func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.TeamMemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, toMemberResponse(m))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *WorkspaceHandler) ListChannels(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	channels, err := h.workspaceService.ListChannels(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ChannelResponse, 0, len(channels))
	for _, ch := range channels {
		responses = append(responses, toChannelResponse(ch))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *WorkspaceHandler) ListTasks(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	tasks, err := h.workspaceService.ListTasks(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toTaskResponse(t))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *WorkspaceHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.workspaceService.CreateTask(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (h *WorkspaceHandler) UpdateTaskStatus(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.workspaceService.UpdateTaskStatus(c.Request.Context(), c.Param("id"), userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}
