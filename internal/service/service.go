package service

import (
	"errors"

	"github.com/gatherhub/gatherhub-backend/internal/config"
	"github.com/gatherhub/gatherhub-backend/internal/db"
	"github.com/gatherhub/gatherhub-backend/internal/notification"
	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/socket"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidState       = errors.New("operation not permitted in current lifecycle state")
	ErrInvalidInput       = errors.New("invalid input")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth        AuthService
	Event       EventService
	Workspace   WorkspaceService
	Lifecycle   LifecycleService
	Permission  PermissionService
	Bridge      EventLifecycleBridge
	Broadcaster *socket.Broadcaster
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	Cache       *db.RedisDB
	NotifSvc    *notification.Service
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	permissionService := NewPermissionService(deps.Repos.MemberRepo)

	workspaceService := NewWorkspaceService(
		deps.Config,
		deps.Repos.WorkspaceRepo,
		deps.Repos.EventRepo,
		deps.Repos.MemberRepo,
		deps.Repos.TaskRepo,
		deps.Repos.ChannelRepo,
		deps.Repos.UserRepo,
		permissionService,
		deps.Cache,
		deps.NotifSvc,
		deps.Broadcaster,
	)

	lifecycleService := NewLifecycleService(
		deps.Repos.WorkspaceRepo,
		deps.Repos.EventRepo,
		workspaceService,
	)

	bridge := NewEventLifecycleBridge(lifecycleService)

	return &Services{
		Auth:        NewAuthService(deps.Config, deps.Repos.UserRepo),
		Event:       NewEventService(deps.Repos.EventRepo, bridge),
		Workspace:   workspaceService,
		Lifecycle:   lifecycleService,
		Permission:  permissionService,
		Bridge:      bridge,
		Broadcaster: deps.Broadcaster,
	}
}
