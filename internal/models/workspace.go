package models

import "time"

// Request models
type UpdateWorkspaceRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Settings    *WorkspaceSettingsPatch `json:"settings"`
}

// WorkspaceSettingsPatch carries partial-field patch semantics: only provided
// fields change.
type WorkspaceSettingsPatch struct {
	AutoInviteOrganizer  *bool     `json:"autoInviteOrganizer"`
	DefaultChannels      *[]string `json:"defaultChannels"`
	TaskCategories       *[]string `json:"taskCategories"`
	RetentionPeriodDays  *int      `json:"retentionPeriodDays"`
	AllowExternalMembers *bool     `json:"allowExternalMembers"`
}

type EmergencyRevokeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type EarlyDepartureRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type ApplyTemplateRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
}

type CreateTaskRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    *string    `json:"description"`
	Category       *string    `json:"category"`
	Priority       *string    `json:"priority"`
	AssigneeUserID *string    `json:"assigneeUserId"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours *string    `json:"estimatedHours"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Response models
type WorkspaceSettingsResponse struct {
	AutoInviteOrganizer  bool     `json:"autoInviteOrganizer"`
	DefaultChannels      []string `json:"defaultChannels"`
	TaskCategories       []string `json:"taskCategories"`
	RetentionPeriodDays  int      `json:"retentionPeriodDays"`
	AllowExternalMembers bool     `json:"allowExternalMembers"`
}

type WorkspaceResponse struct {
	ID                string                    `json:"id"`
	EventID           string                    `json:"eventId"`
	Name              string                    `json:"name"`
	Description       string                    `json:"description,omitempty"`
	Status            string                    `json:"status"`
	Settings          WorkspaceSettingsResponse `json:"settings"`
	TemplateID        *string                   `json:"templateId,omitempty"`
	DissolvedAt       *time.Time                `json:"dissolvedAt,omitempty"`
	DissolutionReason *string                   `json:"dissolutionReason,omitempty"`
	CreatedAt         time.Time                 `json:"createdAt"`
	UpdatedAt         time.Time                 `json:"updatedAt"`
}

type TeamMemberResponse struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspaceId"`
	UserID      string     `json:"userId"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	Permissions []string   `json:"permissions"`
	JoinedAt    time.Time  `json:"joinedAt"`
	LeftAt      *time.Time `json:"leftAt,omitempty"`
	User        *UserInfo  `json:"user,omitempty"`
}

type UserInfo struct {
	ID     string  `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}

type ChannelResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspaceId"`
	Name        string    `json:"name"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TaskResponse struct {
	ID             string     `json:"id"`
	WorkspaceID    string     `json:"workspaceId"`
	AssigneeID     *string    `json:"assigneeId,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Category       *string    `json:"category,omitempty"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	EstimatedHours *string    `json:"estimatedHours,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// LifecycleStatus projects current workspace state onto the actions available
// to a caller.
type LifecycleStatus struct {
	HasWorkspace         bool       `json:"hasWorkspace"`
	WorkspaceStatus      *string    `json:"workspaceStatus,omitempty"`
	CanProvision         bool       `json:"canProvision"`
	CanWindDown          bool       `json:"canWindDown"`
	CanDissolve          bool       `json:"canDissolve"`
	ScheduledDissolution *time.Time `json:"scheduledDissolution,omitempty"`
}

type SchedulerStatusResponse struct {
	Running         bool       `json:"running"`
	NextRunEstimate *time.Time `json:"nextRunEstimate,omitempty"`
}
