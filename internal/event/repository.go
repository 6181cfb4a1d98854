package event

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository persists events.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs an event repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new event.
func (r *Repository) Create(ctx context.Context, ev Event) (Event, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
INSERT INTO events (id, name, date, time, description, image_key, gallery_keys)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, name, date, time, description, image_key, gallery_keys, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query,
		ev.ID,
		ev.Name,
		ev.Date,
		ev.Time,
		ev.Description,
		ev.ImageKey,
		ev.GalleryKeys,
	)

	var stored Event
	if err := row.Scan(&stored.ID, &stored.Name, &stored.Date, &stored.Time, &stored.Description, &stored.ImageKey, &stored.GalleryKeys, &stored.CreatedAt, &stored.UpdatedAt); err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}
	return stored, nil
}

// List returns every event, newest first.
func (r *Repository) List(ctx context.Context) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT id, name, date, time, description, image_key, gallery_keys, created_at, updated_at
FROM events
ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.Date, &ev.Time, &ev.Description, &ev.ImageKey, &ev.GalleryKeys, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// DeleteByIDs removes the given events in one batched statement, returning
// the deleted rows for remote cleanup.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []string) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
DELETE FROM events
WHERE id::text = ANY($1)
RETURNING id, name, date, time, description, image_key, gallery_keys, created_at, updated_at;`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("delete events: %w", err)
	}
	defer rows.Close()

	var deleted []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.Date, &ev.Time, &ev.Description, &ev.ImageKey, &ev.GalleryKeys, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deleted event: %w", err)
		}
		deleted = append(deleted, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted events: %w", err)
	}
	return deleted, nil
}
