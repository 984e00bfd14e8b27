package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkspaceChannel struct {
	ID          string
	WorkspaceID string
	Name        string
	IsDefault   bool
	CreatedAt   time.Time
}

type ChannelRepository interface {
	Create(ctx context.Context, channel *WorkspaceChannel) error
	FindByWorkspace(ctx context.Context, workspaceID string) ([]*WorkspaceChannel, error)
}

type pgChannelRepository struct {
	pool *pgxpool.Pool
}

func NewChannelRepository(pool *pgxpool.Pool) ChannelRepository {
	return &pgChannelRepository{pool: pool}
}

func (r *pgChannelRepository) Create(ctx context.Context, channel *WorkspaceChannel) error {
	query := `
		INSERT INTO workspace_channels (workspace_id, name, is_default)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id, name) DO NOTHING
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, channel.WorkspaceID, channel.Name, channel.IsDefault).
		Scan(&channel.ID, &channel.CreatedAt)
	if err == pgx.ErrNoRows {
		// Channel already existed; not an error.
		return nil
	}
	return err
}

func (r *pgChannelRepository) FindByWorkspace(ctx context.Context, workspaceID string) ([]*WorkspaceChannel, error) {
	query := `
		SELECT id, workspace_id, name, is_default, created_at
		FROM workspace_channels
		WHERE workspace_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []*WorkspaceChannel
	for rows.Next() {
		ch := &WorkspaceChannel{}
		if err := rows.Scan(&ch.ID, &ch.WorkspaceID, &ch.Name, &ch.IsDefault, &ch.CreatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}
