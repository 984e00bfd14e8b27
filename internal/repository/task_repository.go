package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type WorkspaceTask struct {
	ID             string
	WorkspaceID    string
	AssigneeID     *string
	Title          string
	Description    *string
	Category       *string
	Status         string
	Priority       string
	DueDate        *time.Time
	EstimatedHours *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type TaskRepository interface {
	Create(ctx context.Context, task *WorkspaceTask) error
	FindByID(ctx context.Context, id string) (*WorkspaceTask, error)
	FindByWorkspace(ctx context.Context, workspaceID string) ([]*WorkspaceTask, error)
	FindOpenByAssignee(ctx context.Context, workspaceID, assigneeID string) ([]*WorkspaceTask, error)
	Update(ctx context.Context, task *WorkspaceTask) error
}

type pgTaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &pgTaskRepository{pool: pool}
}

const taskColumns = `id, workspace_id, assignee_id, title, description, category, status, priority, due_date, estimated_hours, created_at, updated_at`

func (r *pgTaskRepository) Create(ctx context.Context, task *WorkspaceTask) error {
	query := `
		INSERT INTO workspace_tasks (workspace_id, assignee_id, title, description, category, status, priority, due_date, estimated_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		task.WorkspaceID, task.AssigneeID, task.Title, task.Description, task.Category,
		task.Status, task.Priority, task.DueDate, task.EstimatedHours,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func scanTask(row pgx.Row) (*WorkspaceTask, error) {
	t := &WorkspaceTask{}
	err := row.Scan(
		&t.ID, &t.WorkspaceID, &t.AssigneeID, &t.Title, &t.Description, &t.Category,
		&t.Status, &t.Priority, &t.DueDate, &t.EstimatedHours, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTaskRepository) FindByID(ctx context.Context, id string) (*WorkspaceTask, error) {
	query := `SELECT ` + taskColumns + ` FROM workspace_tasks WHERE id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *pgTaskRepository) FindByWorkspace(ctx context.Context, workspaceID string) ([]*WorkspaceTask, error) {
	query := `SELECT ` + taskColumns + ` FROM workspace_tasks WHERE workspace_id = $1 ORDER BY created_at`
	return r.queryTasks(ctx, query, workspaceID)
}

// FindOpenByAssignee returns the assignee's tasks that are not yet COMPLETED.
func (r *pgTaskRepository) FindOpenByAssignee(ctx context.Context, workspaceID, assigneeID string) ([]*WorkspaceTask, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM workspace_tasks
		WHERE workspace_id = $1 AND assignee_id = $2 AND status <> 'COMPLETED'
		ORDER BY created_at
	`
	return r.queryTasks(ctx, query, workspaceID, assigneeID)
}

func (r *pgTaskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]*WorkspaceTask, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*WorkspaceTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *pgTaskRepository) Update(ctx context.Context, task *WorkspaceTask) error {
	query := `
		UPDATE workspace_tasks
		SET assignee_id = $2, title = $3, description = $4, category = $5,
		    status = $6, priority = $7, due_date = $8, estimated_hours = $9, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		task.ID, task.AssigneeID, task.Title, task.Description, task.Category,
		task.Status, task.Priority, task.DueDate, task.EstimatedHours,
	)
	return err
}
