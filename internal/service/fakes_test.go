package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/types"
)

// In-memory repository fakes. They store copies the way a database would,
// so mutations on returned structs only stick after Update.

type fakeWorkspaceRepo struct {
	mu         sync.Mutex
	seq        int
	workspaces map[string]repository.Workspace
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{workspaces: make(map[string]repository.Workspace)}
}

func (f *fakeWorkspaceRepo) Create(_ context.Context, w *repository.Workspace) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	w.ID = fmt.Sprintf("ws-%d", f.seq)
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	f.workspaces[w.ID] = *w
	return nil
}

func (f *fakeWorkspaceRepo) FindByID(_ context.Context, id string) (*repository.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.workspaces[id]
	if !ok {
		return nil, nil
	}
	copied := w
	return &copied, nil
}

func (f *fakeWorkspaceRepo) FindByEventID(_ context.Context, eventID string) (*repository.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.workspaces {
		if w.EventID == eventID {
			copied := w
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkspaceRepo) FindByStatus(_ context.Context, status string) ([]*repository.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.Workspace
	for _, w := range f.workspaces {
		if w.Status == status {
			copied := w
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeWorkspaceRepo) Update(_ context.Context, w *repository.Workspace) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.workspaces[w.ID]; !ok {
		return fmt.Errorf("workspace %s not found", w.ID)
	}
	w.UpdatedAt = time.Now()
	f.workspaces[w.ID] = *w
	return nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	seq     int
	members map[string]repository.TeamMember
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]repository.TeamMember)}
}

func (f *fakeMemberRepo) Create(_ context.Context, m *repository.TeamMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	m.ID = fmt.Sprintf("member-%d", f.seq)
	m.JoinedAt = time.Now()
	f.members[m.ID] = *m
	return nil
}

func (f *fakeMemberRepo) FindByID(_ context.Context, id string) (*repository.TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok {
		return nil, nil
	}
	copied := m
	return &copied, nil
}

func (f *fakeMemberRepo) FindByWorkspaceAndUser(_ context.Context, workspaceID, userID string) (*repository.TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.WorkspaceID == workspaceID && m.UserID == userID {
			copied := m
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMemberRepo) FindByWorkspace(_ context.Context, workspaceID string) ([]*repository.TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.TeamMember
	for _, m := range f.members {
		if m.WorkspaceID == workspaceID {
			copied := m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) FindActiveByWorkspace(_ context.Context, workspaceID string) ([]*repository.TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.TeamMember
	for _, m := range f.members {
		if m.WorkspaceID == workspaceID && m.Status == types.MemberActive {
			copied := m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) Update(_ context.Context, m *repository.TeamMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[m.ID]; !ok {
		return fmt.Errorf("member %s not found", m.ID)
	}
	f.members[m.ID] = *m
	return nil
}

func (f *fakeMemberRepo) DeactivateAll(_ context.Context, workspaceID string, leftAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, m := range f.members {
		if m.WorkspaceID == workspaceID && m.Status == types.MemberActive {
			m.Status = types.MemberInactive
			t := leftAt
			m.LeftAt = &t
			f.members[id] = m
		}
	}
	return nil
}

func (f *fakeMemberRepo) ReactivateLeftAt(_ context.Context, workspaceID string, leftAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, m := range f.members {
		if m.WorkspaceID == workspaceID && m.LeftAt != nil && m.LeftAt.Equal(leftAt) {
			m.Status = types.MemberActive
			m.LeftAt = nil
			f.members[id] = m
		}
	}
	return nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]repository.WorkspaceTask
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]repository.WorkspaceTask)}
}

func (f *fakeTaskRepo) Create(_ context.Context, t *repository.WorkspaceTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t.ID = fmt.Sprintf("task-%d", f.seq)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tasks[t.ID] = *t
	return nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id string) (*repository.WorkspaceTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := t
	return &copied, nil
}

func (f *fakeTaskRepo) FindByWorkspace(_ context.Context, workspaceID string) ([]*repository.WorkspaceTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.WorkspaceTask
	for _, t := range f.tasks {
		if t.WorkspaceID == workspaceID {
			copied := t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) FindOpenByAssignee(_ context.Context, workspaceID, assigneeID string) ([]*repository.WorkspaceTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.WorkspaceTask
	for _, t := range f.tasks {
		if t.WorkspaceID == workspaceID && t.AssigneeID != nil && *t.AssigneeID == assigneeID && t.Status != types.TaskCompleted {
			copied := t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t *repository.WorkspaceTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[t.ID]; !ok {
		return fmt.Errorf("task %s not found", t.ID)
	}
	t.UpdatedAt = time.Now()
	f.tasks[t.ID] = *t
	return nil
}

type fakeChannelRepo struct {
	mu       sync.Mutex
	seq      int
	channels []repository.WorkspaceChannel
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{}
}

func (f *fakeChannelRepo) Create(_ context.Context, ch *repository.WorkspaceChannel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.channels {
		if existing.WorkspaceID == ch.WorkspaceID && existing.Name == ch.Name {
			return nil
		}
	}
	f.seq++
	ch.ID = fmt.Sprintf("channel-%d", f.seq)
	ch.CreatedAt = time.Now()
	f.channels = append(f.channels, *ch)
	return nil
}

func (f *fakeChannelRepo) FindByWorkspace(_ context.Context, workspaceID string) ([]*repository.WorkspaceChannel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.WorkspaceChannel
	for _, ch := range f.channels {
		if ch.WorkspaceID == workspaceID {
			copied := ch
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	seq    int
	events map[string]repository.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]repository.Event)}
}

func (f *fakeEventRepo) Create(_ context.Context, e *repository.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	e.ID = fmt.Sprintf("event-%d", f.seq)
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.events[e.ID] = *e
	return nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id string) (*repository.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	copied := e
	return &copied, nil
}

func (f *fakeEventRepo) FindByOrganizer(_ context.Context, organizerID string) ([]*repository.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.Event
	for _, e := range f.events {
		if e.OrganizerID == organizerID {
			copied := e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return fmt.Errorf("event %s not found", id)
	}
	e.Status = status
	e.UpdatedAt = time.Now()
	f.events[id] = e
	return nil
}

// put stores an event with explicit fields, for test setup.
func (f *fakeEventRepo) put(e repository.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[e.ID] = e
}

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]repository.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]repository.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *repository.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", f.seq)
	}
	u.CreatedAt = time.Now()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) SaveRefreshToken(_ context.Context, _ *repository.RefreshToken) error {
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(_ context.Context, _ string) (*repository.RefreshToken, error) {
	return nil, nil
}

func (f *fakeUserRepo) DeleteRefreshToken(_ context.Context, _ string) error {
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []repository.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *repository.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = fmt.Sprintf("notif-%d", len(f.notifications)+1)
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationRepo) FindByUser(_ context.Context, userID string, _ int) ([]*repository.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			copied := n
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeNotificationRepo) byType(notifType string) []repository.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.Notification
	for _, n := range f.notifications {
		if n.Type == notifType {
			out = append(out, n)
		}
	}
	return out
}
