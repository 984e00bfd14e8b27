package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	UserRepo         UserRepository
	EventRepo        EventRepository
	WorkspaceRepo    WorkspaceRepository
	MemberRepo       MemberRepository
	TaskRepo         TaskRepository
	ChannelRepo      ChannelRepository
	NotificationRepo NotificationRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepo:         NewUserRepository(pool),
		EventRepo:        NewEventRepository(pool),
		WorkspaceRepo:    NewWorkspaceRepository(pool),
		MemberRepo:       NewMemberRepository(pool),
		TaskRepo:         NewTaskRepository(pool),
		ChannelRepo:      NewChannelRepository(pool),
		NotificationRepo: NewNotificationRepository(pool),
	}
}
