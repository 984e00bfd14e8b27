package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeamMember struct {
	ID          string
	WorkspaceID string
	UserID      string
	Role        string
	Status      string
	Permissions []string
	JoinedAt    time.Time
	LeftAt      *time.Time
	User        *User
}

type MemberRepository interface {
	Create(ctx context.Context, member *TeamMember) error
	FindByID(ctx context.Context, id string) (*TeamMember, error)
	FindByWorkspaceAndUser(ctx context.Context, workspaceID, userID string) (*TeamMember, error)
	FindByWorkspace(ctx context.Context, workspaceID string) ([]*TeamMember, error)
	FindActiveByWorkspace(ctx context.Context, workspaceID string) ([]*TeamMember, error)
	Update(ctx context.Context, member *TeamMember) error
	DeactivateAll(ctx context.Context, workspaceID string, leftAt time.Time) error
	ReactivateLeftAt(ctx context.Context, workspaceID string, leftAt time.Time) error
}

type pgMemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &pgMemberRepository{pool: pool}
}

const memberColumns = `id, workspace_id, user_id, role, status, permissions, joined_at, left_at`

func (r *pgMemberRepository) Create(ctx context.Context, member *TeamMember) error {
	query := `
		INSERT INTO team_members (workspace_id, user_id, role, status, permissions)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, joined_at
	`
	return r.pool.QueryRow(ctx, query,
		member.WorkspaceID, member.UserID, member.Role, member.Status, member.Permissions,
	).Scan(&member.ID, &member.JoinedAt)
}

func scanMember(row pgx.Row) (*TeamMember, error) {
	m := &TeamMember{}
	err := row.Scan(
		&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.Status,
		&m.Permissions, &m.JoinedAt, &m.LeftAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMemberRepository) FindByID(ctx context.Context, id string) (*TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members WHERE id = $1`
	return scanMember(r.pool.QueryRow(ctx, query, id))
}

func (r *pgMemberRepository) FindByWorkspaceAndUser(ctx context.Context, workspaceID, userID string) (*TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members WHERE workspace_id = $1 AND user_id = $2`
	return scanMember(r.pool.QueryRow(ctx, query, workspaceID, userID))
}

func (r *pgMemberRepository) FindByWorkspace(ctx context.Context, workspaceID string) ([]*TeamMember, error) {
	query := `
		SELECT tm.id, tm.workspace_id, tm.user_id, tm.role, tm.status, tm.permissions, tm.joined_at, tm.left_at,
		       u.id, u.email, u.name, u.avatar
		FROM team_members tm
		JOIN users u ON tm.user_id = u.id
		WHERE tm.workspace_id = $1
		ORDER BY tm.joined_at
	`
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*TeamMember
	for rows.Next() {
		m := &TeamMember{User: &User{}}
		if err := rows.Scan(
			&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.Status,
			&m.Permissions, &m.JoinedAt, &m.LeftAt,
			&m.User.ID, &m.User.Email, &m.User.Name, &m.User.Avatar,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *pgMemberRepository) FindActiveByWorkspace(ctx context.Context, workspaceID string) ([]*TeamMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM team_members
		WHERE workspace_id = $1 AND status = 'ACTIVE'
		ORDER BY joined_at
	`
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*TeamMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *pgMemberRepository) Update(ctx context.Context, member *TeamMember) error {
	query := `
		UPDATE team_members
		SET role = $2, status = $3, permissions = $4, left_at = $5
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		member.ID, member.Role, member.Status, member.Permissions, member.LeftAt,
	)
	return err
}

// DeactivateAll marks every still-active membership as INACTIVE with the given
// leftAt. The shared timestamp lets a later reactivation target exactly the
// members this pass deactivated.
func (r *pgMemberRepository) DeactivateAll(ctx context.Context, workspaceID string, leftAt time.Time) error {
	query := `
		UPDATE team_members
		SET status = 'INACTIVE', left_at = $2
		WHERE workspace_id = $1 AND status = 'ACTIVE'
	`
	_, err := r.pool.Exec(ctx, query, workspaceID, leftAt)
	return err
}

// ReactivateLeftAt restores members whose departure was stamped with the given
// leftAt, leaving earlier departures untouched.
func (r *pgMemberRepository) ReactivateLeftAt(ctx context.Context, workspaceID string, leftAt time.Time) error {
	query := `
		UPDATE team_members
		SET status = 'ACTIVE', left_at = NULL
		WHERE workspace_id = $1 AND status = 'INACTIVE' AND left_at = $2
	`
	_, err := r.pool.Exec(ctx, query, workspaceID, leftAt)
	return err
}
