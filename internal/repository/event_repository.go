package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Event struct {
	ID          string
	OrganizerID string
	Title       string
	Description *string
	Status      string
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventReader is the read surface lifecycle code depends on; the full
// repository extends it with the mutations the event domain itself needs.
type EventReader interface {
	FindByID(ctx context.Context, id string) (*Event, error)
}

type EventRepository interface {
	EventReader
	Create(ctx context.Context, event *Event) error
	FindByOrganizer(ctx context.Context, organizerID string) ([]*Event, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type pgEventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &pgEventRepository{pool: pool}
}

const eventColumns = `id, organizer_id, title, description, status, start_date, end_date, created_at, updated_at`

func (r *pgEventRepository) Create(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO events (organizer_id, title, description, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		event.OrganizerID, event.Title, event.Description,
		event.Status, event.StartDate, event.EndDate,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func scanEvent(row pgx.Row) (*Event, error) {
	e := &Event{}
	err := row.Scan(
		&e.ID, &e.OrganizerID, &e.Title, &e.Description, &e.Status,
		&e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *pgEventRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *pgEventRepository) FindByOrganizer(ctx context.Context, organizerID string) ([]*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY start_date DESC`
	rows, err := r.pool.Query(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *pgEventRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE events SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, status)
	return err
}
