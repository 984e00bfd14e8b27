package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gatherhub/gatherhub-backend/internal/config"
	"github.com/gatherhub/gatherhub-backend/internal/db"
	"github.com/gatherhub/gatherhub-backend/internal/models"
	"github.com/gatherhub/gatherhub-backend/internal/notification"
	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/socket"
	"github.com/gatherhub/gatherhub-backend/internal/types"
	"github.com/shopspring/decimal"
)

// ============================================
// Workspace Service
// ============================================

// WorkspaceService owns every direct mutation of a workspace and its members,
// tasks and channels. Request-triggered operations carry the acting user and
// enforce capabilities; the Force*/Reactivate entry points are reserved for
// the lifecycle orchestrator and skip permission checks.
type WorkspaceService interface {
	Provision(ctx context.Context, eventID, actorUserID string) (*repository.Workspace, error)
	GetByID(ctx context.Context, workspaceID, actorUserID string) (*repository.Workspace, error)
	GetByEventID(ctx context.Context, eventID, actorUserID string) (*repository.Workspace, error)
	UpdateSettings(ctx context.Context, workspaceID, actorUserID string, patch *models.UpdateWorkspaceRequest) (*repository.Workspace, error)
	InitiateWindDown(ctx context.Context, workspaceID, actorUserID string) error
	Dissolve(ctx context.Context, workspaceID, actorUserID string) error
	EmergencyRevoke(ctx context.Context, workspaceID, actorUserID, reason string) error
	HandleEarlyDeparture(ctx context.Context, workspaceID, departingUserID, managerUserID string) error
	ApplyTemplate(ctx context.Context, workspaceID, actorUserID, templateID string) (*repository.Workspace, error)

	ListMembers(ctx context.Context, workspaceID, actorUserID string) ([]*repository.TeamMember, error)
	ListChannels(ctx context.Context, workspaceID, actorUserID string) ([]*repository.WorkspaceChannel, error)
	ListTasks(ctx context.Context, workspaceID, actorUserID string) ([]*repository.WorkspaceTask, error)
	CreateTask(ctx context.Context, workspaceID, actorUserID string, req *models.CreateTaskRequest) (*repository.WorkspaceTask, error)
	UpdateTaskStatus(ctx context.Context, taskID, actorUserID, status string) (*repository.WorkspaceTask, error)

	// Orchestrator entry points.
	ForceWindDown(ctx context.Context, workspaceID string) error
	ForceDissolve(ctx context.Context, workspaceID, reason string) error
	Reactivate(ctx context.Context, workspaceID string) error
}

type workspaceService struct {
	cfg           *config.Config
	workspaceRepo repository.WorkspaceRepository
	eventRepo     repository.EventReader
	memberRepo    repository.MemberRepository
	taskRepo      repository.TaskRepository
	channelRepo   repository.ChannelRepository
	userRepo      repository.UserRepository
	permissions   PermissionService
	cache         *db.RedisDB
	notifSvc      *notification.Service
	broadcaster   *socket.Broadcaster
	locks         *keyedLocks
}

func NewWorkspaceService(
	cfg *config.Config,
	workspaceRepo repository.WorkspaceRepository,
	eventRepo repository.EventReader,
	memberRepo repository.MemberRepository,
	taskRepo repository.TaskRepository,
	channelRepo repository.ChannelRepository,
	userRepo repository.UserRepository,
	permissions PermissionService,
	cache *db.RedisDB,
	notifSvc *notification.Service,
	broadcaster *socket.Broadcaster,
) WorkspaceService {
	return &workspaceService{
		cfg:           cfg,
		workspaceRepo: workspaceRepo,
		eventRepo:     eventRepo,
		memberRepo:    memberRepo,
		taskRepo:      taskRepo,
		channelRepo:   channelRepo,
		userRepo:      userRepo,
		permissions:   permissions,
		cache:         cache,
		notifSvc:      notifSvc,
		broadcaster:   broadcaster,
		locks:         newKeyedLocks(),
	}
}

func (s *workspaceService) defaultSettings() repository.WorkspaceSettings {
	retention := 30
	if s.cfg != nil && s.cfg.DefaultRetentionDays >= 0 {
		retention = s.cfg.DefaultRetentionDays
	}
	return repository.WorkspaceSettings{
		AutoInviteOrganizer:  true,
		DefaultChannels:      append([]string{}, types.DefaultChannels...),
		TaskCategories:       []string{"logistics", "program", "marketing"},
		RetentionPeriodDays:  retention,
		AllowExternalMembers: false,
	}
}

// Provision creates the workspace for an event. The workspace only becomes
// ACTIVE after the owner membership and default channels exist, so a reader
// never sees an ACTIVE workspace without them.
func (s *workspaceService) Provision(ctx context.Context, eventID, actorUserID string) (*repository.Workspace, error) {
	// No workspace row exists yet, so serialization keys on the event id.
	s.locks.Lock("event:" + eventID)
	defer s.locks.Unlock("event:" + eventID)

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if event.OrganizerID != actorUserID {
		return nil, ErrForbidden
	}

	existing, err := s.workspaceRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing workspace: %w", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	workspace := &repository.Workspace{
		EventID:  eventID,
		Name:     event.Title + " workspace",
		Status:   types.WorkspaceProvisioning,
		Settings: s.defaultSettings(),
	}
	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	owner := &repository.TeamMember{
		WorkspaceID: workspace.ID,
		UserID:      actorUserID,
		Role:        types.RoleWorkspaceOwner,
		Status:      types.MemberActive,
		Permissions: types.DefaultPermissions[types.RoleWorkspaceOwner],
	}
	if err := s.memberRepo.Create(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to create owner membership: %w", err)
	}

	for _, name := range workspace.Settings.DefaultChannels {
		channel := &repository.WorkspaceChannel{
			WorkspaceID: workspace.ID,
			Name:        name,
			IsDefault:   true,
		}
		if err := s.channelRepo.Create(ctx, channel); err != nil {
			return nil, fmt.Errorf("failed to create channel %q: %w", name, err)
		}
	}

	workspace.Status = types.WorkspaceActive
	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to activate workspace: %w", err)
	}

	log.Printf("[Workspace] Provisioned workspace %s for event %s", workspace.ID, eventID)
	s.broadcaster.WorkspaceLifecycleChanged([]string{actorUserID}, socket.MessageWorkspaceProvisioned, workspace.ID, workspace.Status)
	return workspace, nil
}

func (s *workspaceService) GetByID(ctx context.Context, workspaceID, actorUserID string) (*repository.Workspace, error) {
	if s.cache != nil {
		cached := &repository.Workspace{}
		if err := s.cache.GetCache(ctx, "workspace:"+workspaceID, cached); err == nil {
			if err := s.requireMembership(ctx, cached.ID, actorUserID); err != nil {
				return nil, err
			}
			return cached, nil
		}
	}

	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrNotFound
	}
	if err := s.requireMembership(ctx, workspace.ID, actorUserID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetCache(ctx, "workspace:"+workspace.ID, workspace, time.Minute)
	}
	return workspace, nil
}

func (s *workspaceService) GetByEventID(ctx context.Context, eventID, actorUserID string) (*repository.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrNotFound
	}
	if err := s.requireMembership(ctx, workspace.ID, actorUserID); err != nil {
		return nil, err
	}
	return workspace, nil
}

// requireMembership allows any member with a membership row, active or not;
// a dissolved workspace stays readable to its former members.
func (s *workspaceService) requireMembership(ctx context.Context, workspaceID, userID string) error {
	member, err := s.memberRepo.FindByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrForbidden
	}
	return nil
}

func (s *workspaceService) invalidateCache(ctx context.Context, workspaceID string) {
	if s.cache != nil {
		s.cache.InvalidateCache(ctx, "workspace:"+workspaceID)
	}
}

func (s *workspaceService) UpdateSettings(ctx context.Context, workspaceID, actorUserID string, patch *models.UpdateWorkspaceRequest) (*repository.Workspace, error) {
	s.locks.Lock(workspaceID)
	defer s.locks.Unlock(workspaceID)

	if _, err := s.permissions.RequireCapability(ctx, workspaceID, actorUserID, types.CapManageWorkspace); err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		workspace.Name = *patch.Name
	}
	if patch.Description != nil {
		workspace.Description = patch.Description
	}
	if sp := patch.Settings; sp != nil {
		if sp.AutoInviteOrganizer != nil {
			workspace.Settings.AutoInviteOrganizer = *sp.AutoInviteOrganizer
		}
		if sp.DefaultChannels != nil {
			workspace.Settings.DefaultChannels = *sp.DefaultChannels
		}
		if sp.TaskCategories != nil {
			workspace.Settings.TaskCategories = *sp.TaskCategories
		}
		if sp.RetentionPeriodDays != nil {
			if *sp.RetentionPeriodDays < 0 {
				return nil, ErrInvalidInput
			}
			workspace.Settings.RetentionPeriodDays = *sp.RetentionPeriodDays
		}
		if sp.AllowExternalMembers != nil {
			workspace.Settings.AllowExternalMembers = *sp.AllowExternalMembers
		}
	}

	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}
	s.invalidateCache(ctx, workspaceID)
	return workspace, nil
}

func (s *workspaceService) InitiateWindDown(ctx context.Context, workspaceID, actorUserID string) error {
	if _, err := s.permissions.RequireCapability(ctx, workspaceID, actorUserID, types.CapManageWorkspace); err != nil {
		return err
	}
	return s.ForceWindDown(ctx, workspaceID)
}

// ForceWindDown moves an ACTIVE workspace to WINDING_DOWN and emits the
// wind-down notice to all active members. Best-effort on the notices.
func (s *workspaceService) ForceWindDown(ctx context.Context, workspaceID string) error {
	s.locks.Lock(workspaceID)
	defer s.locks.Unlock(workspaceID)

	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return ErrNotFound
	}
	if workspace.Status != types.WorkspaceActive {
		return ErrInvalidState
	}

	workspace.Status = types.WorkspaceWindingDown
	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return fmt.Errorf("failed to update workspace status: %w", err)
	}
	s.invalidateCache(ctx, workspaceID)
	log.Printf("[Workspace] Workspace %s winding down", workspaceID)

	members, err := s.memberRepo.FindActiveByWorkspace(ctx, workspaceID)
	if err != nil {
		log.Printf("[Workspace] Failed to load members for wind-down notice: %v", err)
		return nil
	}
	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
		if s.notifSvc != nil {
			if err := s.notifSvc.SendWindDownNotice(ctx, m.UserID, workspace.Name, workspace.ID, workspace.Settings.RetentionPeriodDays); err != nil {
				log.Printf("[Workspace] Wind-down notice to %s failed: %v", m.UserID, err)
			}
		}
	}
	s.broadcaster.WorkspaceLifecycleChanged(userIDs, socket.MessageWorkspaceWindingDown, workspace.ID, workspace.Status)
	return nil
}

// Dissolve is the user-triggered dissolution: it requires the owning event to
// have ended or completed, and bypasses retention bookkeeping.
func (s *workspaceService) Dissolve(ctx context.Context, workspaceID, actorUserID string) error {
	if _, err := s.permissions.RequireCapability(ctx, workspaceID, actorUserID, types.CapManageWorkspace); err != nil {
		return err
	}

	s.locks.Lock(workspaceID)
	defer s.locks.Unlock(workspaceID)

	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return ErrNotFound
	}
	if workspace.Status == types.WorkspaceDissolved {
		return nil
	}

	event, err := s.eventRepo.FindByID(ctx, workspace.EventID)
	if err != nil {
		return fmt.Errorf("failed to load event: %w", err)
	}
	if event == nil {
		return ErrNotFound
	}
	if event.Status != types.EventCompleted && !event.EndDate.Before(time.Now()) {
		return ErrInvalidState
	}

	return s.applyDissolution(ctx, workspace, types.DissolutionManual)
}

// EmergencyRevoke revokes every member's access and dissolves the workspace
// immediately, with no state-machine check. The reason lands in the audit log
// and on each member's revocation notice.
func (s *workspaceService) EmergencyRevoke(ctx context.Context, workspaceID, actorUserID, reason string) error {
	if _, err := s.permissions.RequireCapability(ctx, workspaceID, actorUserID, types.CapManageWorkspace); err != nil {
		return err
	}

	s.locks.Lock(workspaceID)
	defer s.locks.Unlock(workspaceID)

	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return ErrNotFound
	}

	log.Printf("[Workspace] EMERGENCY REVOKE on workspace %s by user %s: %s", workspaceID, actorUserID, reason)

	members, err := s.memberRepo.FindActiveByWorkspace(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	now := time.Now()
	if err := s.memberRepo.DeactivateAll(ctx, workspaceID, now); err != nil {
		return fmt.Errorf("failed to deactivate members: %w", err)
	}

	if workspace.Status != types.WorkspaceDissolved {
		reasonVal := types.DissolutionEmergency
		workspace.Status = types.WorkspaceDissolved
		workspace.DissolvedAt = &now
		workspace.DissolutionReason = &reasonVal
		if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
			return fmt.Errorf("failed to dissolve workspace: %w", err)
		}
	}
	s.invalidateCache(ctx, workspaceID)

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
		if s.notifSvc != nil {
			if err := s.notifSvc.SendRevocationNotice(ctx, m.UserID, workspace.Name, workspace.ID, reason); err != nil {
				log.Printf("[Workspace] Revocation notice to %s failed: %v", m.UserID, err)
			}
		}
	}
	s.broadcaster.WorkspaceLifecycleChanged(userIDs, socket.MessageAccessRevoked, workspace.ID, workspace.Status)
	return nil
}

// HandleEarlyDeparture deactivates the departing member and moves their open
// tasks to the acting manager's membership. COMPLETED tasks stay put.
func (s *workspaceService) HandleEarlyDeparture(ctx context.Context, workspaceID, departingUserID, managerUserID string) error {
	// A manager who is not an active member is absent, not merely short on
	// capability.
	manager, err := s.permissions.ActiveMember(ctx, workspaceID, managerUserID)
	if err != nil {
		return err
	}
	if manager == nil {
		return ErrNotFound
	}
	if _, err := s.permissions.RequireCapability(ctx, workspaceID, managerUserID, types.CapManageTeam); err != nil {
		return err
	}

	s.locks.Lock(workspaceID)
	defer s.locks.Unlock(workspaceID)

	departing, err := s.memberRepo.FindByWorkspaceAndUser(ctx, workspaceID, departingUserID)
	if err != nil {
		return err
	}
	if departing == nil || departing.Status != types.MemberActive {
		return ErrNotFound
	}

	now := time.Now()
	departing.Status = types.MemberInactive
	departing.LeftAt = &now
	if err := s.memberRepo.Update(ctx, departing); err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}

	tasks, err := s.taskRepo.FindOpenByAssignee(ctx, workspaceID, departing.ID)
	if err != nil {
		return fmt.Errorf("failed to load open tasks: %w", err)
	}

	departedName := departingUserID
	if user, _ := s.userRepo.FindByID(ctx, departingUserID); user != nil {
		departedName = user.Name
	}

	taskIDs := make([]string, 0, len(tasks))
	for _, task := range tasks {
		task.AssigneeID = &manager.ID
		note := fmt.Sprintf("[Reassigned from %s on %s: early departure]", departedName, now.Format("2006-01-02"))
		if task.Description != nil && *task.Description != "" {
			annotated := *task.Description + "\n\n" + note
			task.Description = &annotated
		} else {
			task.Description = &note
		}
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return fmt.Errorf("failed to reassign task %s: %w", task.ID, err)
		}
		taskIDs = append(taskIDs, task.ID)
	}

	log.Printf("[Workspace] Early departure of user %s from workspace %s: %d task(s) reassigned to member %s",
		departingUserID, workspaceID, len(taskIDs), manager.ID)

	if len(taskIDs) > 0 {
		workspace, _ := s.workspaceRepo.FindByID(ctx, workspaceID)
		workspaceName := workspaceID
		if workspace != nil {
			workspaceName = workspace.Name
		}
		if s.notifSvc != nil {
			if err := s.notifSvc.SendReassignmentNotice(ctx, managerUserID, workspaceName, workspaceID, len(taskIDs)); err != nil {
				log.Printf("[Workspace] Reassignment notice failed: %v", err)
			}
		}
		s.broadcaster.TaskReassigned(managerUserID, workspaceID, taskIDs)
	}
	return nil
}

// ForceDissolve applies the dissolution side effects without permission or
// event checks; the lifecycle orchestrator has already validated the
// transition. Idempotent on an already-DISSOLVED workspace.
func (s *workspaceService) ForceDissolve(ctx context.Context, workspaceID, reason string) error {
	s.locks.Lock(workspaceID)
	defer s.locks.Unlock(workspaceID)

	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return ErrNotFound
	}
	if workspace.Status == types.WorkspaceDissolved {
		return nil
	}
	return s.applyDissolution(ctx, workspace, reason)
}

/// applyDissolution is the shared dissolution path: deactivate every member,
// stamp the workspace DISSOLVED, notify. Callers hold the workspace lock.
func (s *workspaceService) applyDissolution(ctx context.Context, workspace *repository.Workspace, reason string) error {
	members, err := s.memberRepo.FindActiveByWorkspace(ctx, workspace.ID)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	now := time.Now()
	if err := s.memberRepo.DeactivateAll(ctx, workspace.ID, now); err != nil {
		return fmt.Errorf("failed to deactivate members: %w", err)
	}

	workspace.Status = types.WorkspaceDissolved
	workspace.DissolvedAt = &now
	workspace.DissolutionReason = &reason
	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return fmt.Errorf("failed to dissolve workspace: %w", err)
	}
	s.invalidateCache(ctx, workspace.ID)
	log.Printf("[Workspace] Workspace %s dissolved (%s)", workspace.ID, reason)

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
		if s.notifSvc != nil {
			if err := s.notifSvc.SendDissolutionNotice(ctx, m.UserID, workspace.Name, workspace.ID, reason); err != nil {
				log.Printf("[Workspace] Dissolution notice to %s failed: %v", m.UserID, err)
			}
		}
	}
	s.broadcaster.WorkspaceLifecycleChanged(userIDs, socket.MessageWorkspaceDissolved, workspace.ID, workspace.Status)
	return nil
}

// Reactivate reverses a cancellation-dissolution after the owning event is
// un-cancelled. Only members deactivated by that dissolution pass (their
// leftAt matches the workspace's dissolvedAt) come back.
func (s *workspaceService) Reactivate(ctx context.Context, workspaceID string) error {
	s.locks.Lock(workspaceID)
	defer s.locks.Unlock(workspaceID)

	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return ErrNotFound
	}
	if workspace.Status != types.WorkspaceDissolved {
		return ErrInvalidState
	}

	if workspace.DissolvedAt != nil {
		if err := s.memberRepo.ReactivateLeftAt(ctx, workspaceID, *workspace.DissolvedAt); err != nil {
			return fmt.Errorf("failed to reactivate members: %w", err)
		}
	}

	workspace.Status = types.WorkspaceActive
	workspace.DissolvedAt = nil
	workspace.DissolutionReason = nil
	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return fmt.Errorf("failed to reactivate workspace: %w", err)
	}
	s.invalidateCache(ctx, workspaceID)
	log.Printf("[Workspace] Workspace %s reactivated", workspaceID)

	members, err := s.memberRepo.FindActiveByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil
	}
	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
		if s.notifSvc != nil {
			if err := s.notifSvc.SendReactivationNotice(ctx, m.UserID, workspace.Name, workspace.ID); err != nil {
				log.Printf("[Workspace] Reactivation notice to %s failed: %v", m.UserID, err)
			}
		}
	}
	s.broadcaster.WorkspaceLifecycleChanged(userIDs, socket.MessageWorkspaceReactivated, workspace.ID, workspace.Status)
	return nil
}

func (s *workspaceService) ListMembers(ctx context.Context, workspaceID, actorUserID string) ([]*repository.TeamMember, error) {
	if err := s.requireMembership(ctx, workspaceID, actorUserID); err != nil {
		return nil, err
	}
	return s.memberRepo.FindByWorkspace(ctx, workspaceID)
}

func (s *workspaceService) ListChannels(ctx context.Context, workspaceID, actorUserID string) ([]*repository.WorkspaceChannel, error) {
	if err := s.requireMembership(ctx, workspaceID, actorUserID); err != nil {
		return nil, err
	}
	return s.channelRepo.FindByWorkspace(ctx, workspaceID)
}

func (s *workspaceService) ListTasks(ctx context.Context, workspaceID, actorUserID string) ([]*repository.WorkspaceTask, error) {
	if err := s.requireMembership(ctx, workspaceID, actorUserID); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByWorkspace(ctx, workspaceID)
}

func (s *workspaceService) CreateTask(ctx context.Context, workspaceID, actorUserID string, req *models.CreateTaskRequest) (*repository.WorkspaceTask, error) {
	if _, err := s.permissions.RequireCapability(ctx, workspaceID, actorUserID, types.CapManageTasks); err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrNotFound
	}
	if workspace.Status != types.WorkspaceActive {
		return nil, ErrInvalidState
	}

	task := &repository.WorkspaceTask{
		WorkspaceID: workspaceID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      types.TaskTodo,
		Priority:    types.PriorityMedium,
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		if !types.IsValidTaskPriority(*req.Priority) {
			return nil, ErrInvalidInput
		}
		task.Priority = *req.Priority
	}
	if req.EstimatedHours != nil {
		hours, err := decimal.NewFromString(*req.EstimatedHours)
		if err != nil || hours.IsNegative() {
			return nil, ErrInvalidInput
		}
		task.EstimatedHours = &hours
	}
	if req.AssigneeUserID != nil {
		assignee, err := s.permissions.ActiveMember(ctx, workspaceID, *req.AssigneeUserID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, ErrNotFound
		}
		task.AssigneeID = &assignee.ID
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (s *workspaceService) UpdateTaskStatus(ctx context.Context, taskID, actorUserID, status string) (*repository.WorkspaceTask, error) {
	if !types.IsValidTaskStatus(status) {
		return nil, ErrInvalidInput
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	if _, err := s.permissions.RequireCapability(ctx, task.WorkspaceID, actorUserID, types.CapManageTasks); err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}
