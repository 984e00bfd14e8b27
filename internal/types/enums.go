package types

// Workspace lifecycle states
const (
	WorkspaceProvisioning = "PROVISIONING"
	WorkspaceActive       = "ACTIVE"
	WorkspaceWindingDown  = "WINDING_DOWN"
	WorkspaceDissolved    = "DISSOLVED"
)

// Dissolution reasons
const (
	DissolutionCancelled        = "CANCELLED"
	DissolutionRetentionExpired = "RETENTION_EXPIRED"
	DissolutionManual           = "MANUAL"
	DissolutionEmergency        = "EMERGENCY"
)

// Event statuses
const (
	EventDraft     = "DRAFT"
	EventPublished = "PUBLISHED"
	EventActive    = "ACTIVE"
	EventCompleted = "COMPLETED"
	EventCancelled = "CANCELLED"
)

// Team member roles
const (
	RoleWorkspaceOwner = "WORKSPACE_OWNER"
	RoleCoordinator    = "COORDINATOR"
	RoleMember         = "MEMBER"
	RoleViewer         = "VIEWER"
)

// Team member statuses
const (
	MemberActive   = "ACTIVE"
	MemberInactive = "INACTIVE"
)

// Capabilities carried on a membership
const (
	CapManageWorkspace = "MANAGE_WORKSPACE"
	CapManageTeam      = "MANAGE_TEAM"
	CapManageTasks     = "MANAGE_TASKS"
	CapViewWorkspace   = "VIEW_WORKSPACE"
	CapPostMessages    = "POST_MESSAGES"
)

// Task statuses
const (
	TaskTodo       = "TODO"
	TaskInProgress = "IN_PROGRESS"
	TaskInReview   = "IN_REVIEW"
	TaskCompleted  = "COMPLETED"
)

// Task priorities
const (
	PriorityUrgent = "URGENT"
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Default channels created at provision time
var DefaultChannels = []string{"general", "announcements", "tasks"}

var ValidWorkspaceStatuses = []string{
	WorkspaceProvisioning, WorkspaceActive,
	WorkspaceWindingDown, WorkspaceDissolved,
}

var ValidEventStatuses = []string{
	EventDraft, EventPublished, EventActive,
	EventCompleted, EventCancelled,
}

var ValidRoles = []string{
	RoleWorkspaceOwner, RoleCoordinator, RoleMember, RoleViewer,
}

var ValidTaskStatuses = []string{
	TaskTodo, TaskInProgress, TaskInReview, TaskCompleted,
}

var ValidTaskPriorities = []string{
	PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow,
}

// DefaultPermissions maps a role to the capabilities a membership gets when
// none are set explicitly.
var DefaultPermissions = map[string][]string{
	RoleWorkspaceOwner: {CapManageWorkspace, CapManageTeam, CapManageTasks, CapViewWorkspace, CapPostMessages},
	RoleCoordinator:    {CapManageTeam, CapManageTasks, CapViewWorkspace, CapPostMessages},
	RoleMember:         {CapManageTasks, CapViewWorkspace, CapPostMessages},
	RoleViewer:         {CapViewWorkspace},
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func IsValidWorkspaceStatus(status string) bool {
	return contains(ValidWorkspaceStatuses, status)
}

func IsValidEventStatus(status string) bool {
	return contains(ValidEventStatuses, status)
}

func IsValidRole(role string) bool {
	return contains(ValidRoles, role)
}

func IsValidTaskStatus(status string) bool {
	return contains(ValidTaskStatuses, status)
}

func IsValidTaskPriority(priority string) bool {
	return contains(ValidTaskPriorities, priority)
}
