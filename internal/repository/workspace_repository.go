package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkspaceSettings is stored as a jsonb blob on the workspace row.
type WorkspaceSettings struct {
	AutoInviteOrganizer  bool     `json:"autoInviteOrganizer"`
	DefaultChannels      []string `json:"defaultChannels"`
	TaskCategories       []string `json:"taskCategories"`
	RetentionPeriodDays  int      `json:"retentionPeriodDays"`
	AllowExternalMembers bool     `json:"allowExternalMembers"`
}

type Workspace struct {
	ID                string
	EventID           string
	Name              string
	Description       *string
	Status            string
	Settings          WorkspaceSettings
	TemplateID        *string
	DissolvedAt       *time.Time
	DissolutionReason *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *Workspace) error
	FindByID(ctx context.Context, id string) (*Workspace, error)
	FindByEventID(ctx context.Context, eventID string) (*Workspace, error)
	FindByStatus(ctx context.Context, status string) ([]*Workspace, error)
	Update(ctx context.Context, workspace *Workspace) error
}

type pgWorkspaceRepository struct {
	pool *pgxpool.Pool
}

func NewWorkspaceRepository(pool *pgxpool.Pool) WorkspaceRepository {
	return &pgWorkspaceRepository{pool: pool}
}

const workspaceColumns = `id, event_id, name, description, status, settings, template_id, dissolved_at, dissolution_reason, created_at, updated_at`

func (r *pgWorkspaceRepository) Create(ctx context.Context, workspace *Workspace) error {
	settings, err := json.Marshal(workspace.Settings)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO workspaces (event_id, name, description, status, settings, template_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		workspace.EventID, workspace.Name, workspace.Description,
		workspace.Status, settings, workspace.TemplateID,
	).Scan(&workspace.ID, &workspace.CreatedAt, &workspace.UpdatedAt)
}

func scanWorkspace(row pgx.Row) (*Workspace, error) {
	ws := &Workspace{}
	var settings []byte
	err := row.Scan(
		&ws.ID, &ws.EventID, &ws.Name, &ws.Description, &ws.Status,
		&settings, &ws.TemplateID, &ws.DissolvedAt, &ws.DissolutionReason,
		&ws.CreatedAt, &ws.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &ws.Settings); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

func (r *pgWorkspaceRepository) FindByID(ctx context.Context, id string) (*Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE id = $1`
	return scanWorkspace(r.pool.QueryRow(ctx, query, id))
}

func (r *pgWorkspaceRepository) FindByEventID(ctx context.Context, eventID string) (*Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE event_id = $1`
	return scanWorkspace(r.pool.QueryRow(ctx, query, eventID))
}

func (r *pgWorkspaceRepository) FindByStatus(ctx context.Context, status string) ([]*Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE status = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*Workspace
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, ws)
	}
	return workspaces, rows.Err()
}

func (r *pgWorkspaceRepository) Update(ctx context.Context, workspace *Workspace) error {
	settings, err := json.Marshal(workspace.Settings)
	if err != nil {
		return err
	}
	query := `
		UPDATE workspaces
		SET name = $2, description = $3, status = $4, settings = $5, template_id = $6,
		    dissolved_at = $7, dissolution_reason = $8, updated_at = NOW()
		WHERE id = $1
	`
	_, err = r.pool.Exec(ctx, query,
		workspace.ID, workspace.Name, workspace.Description, workspace.Status,
		settings, workspace.TemplateID, workspace.DissolvedAt, workspace.DissolutionReason,
	)
	return err
}
