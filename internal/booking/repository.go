package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository reads and deletes reservations. Table names come from the kind,
// never from request input.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a booking repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns every reservation of the kind, newest first.
func (r *Repository) List(ctx context.Context, kind Kind) ([]Booking, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
SELECT id, guest_name, phone, email, date, notes, created_at
FROM %s
ORDER BY created_at DESC;`, kind.table())

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s bookings: %w", kind, err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.GuestName, &b.Phone, &b.Email, &b.Date, &b.Notes, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

// DeleteByIDs removes the given reservations in one batched statement,
// returning the identifiers that matched.
func (r *Repository) DeleteByIDs(ctx context.Context, kind Kind, ids []string) ([]string, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id::text = ANY($1) RETURNING id::text;`, kind.table())

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("delete %s bookings: %w", kind, err)
	}
	defer rows.Close()

	var matched []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deleted booking: %w", err)
		}
		matched = append(matched, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted bookings: %w", err)
	}
	return matched, nil
}
