package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository persists room listings.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a room repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new room listing.
func (r *Repository) Create(ctx context.Context, room Room) (Room, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
INSERT INTO hotel_rooms (id, room_number, room_type, price, occupancy, description, image_key, gallery_keys)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, room_number, room_type, price, occupancy, description, image_key, gallery_keys, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query,
		room.ID,
		room.RoomNumber,
		room.RoomType,
		room.Price,
		room.Occupancy,
		room.Description,
		room.ImageKey,
		room.GalleryKeys,
	)

	var stored Room
	if err := row.Scan(&stored.ID, &stored.RoomNumber, &stored.RoomType, &stored.Price, &stored.Occupancy, &stored.Description, &stored.ImageKey, &stored.GalleryKeys, &stored.CreatedAt, &stored.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return Room{}, ErrRoomNumberExists
		}
		return Room{}, fmt.Errorf("create room: %w", err)
	}
	return stored, nil
}

// List returns every room listing, newest first.
func (r *Repository) List(ctx context.Context) ([]Room, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT id, room_number, room_type, price, occupancy, description, image_key, gallery_keys, created_at, updated_at
FROM hotel_rooms
ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.RoomNumber, &room.RoomType, &room.Price, &room.Occupancy, &room.Description, &room.ImageKey, &room.GalleryKeys, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}
	return rooms, nil
}

// DeleteByNumbers removes every room whose number is in the set, in one
// batched statement, returning the deleted rows so callers can clean up the
// objects they referenced. Numbers that match nothing are simply absent from
// the result.
func (r *Repository) DeleteByNumbers(ctx context.Context, numbers []string) ([]Room, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
DELETE FROM hotel_rooms
WHERE room_number = ANY($1)
RETURNING id, room_number, room_type, price, occupancy, description, image_key, gallery_keys, created_at, updated_at;`

	rows, err := r.pool.Query(ctx, query, numbers)
	if err != nil {
		return nil, fmt.Errorf("delete rooms: %w", err)
	}
	defer rows.Close()

	var deleted []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.RoomNumber, &room.RoomType, &room.Price, &room.Occupancy, &room.Description, &room.ImageKey, &room.GalleryKeys, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deleted room: %w", err)
		}
		deleted = append(deleted, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted rooms: %w", err)
	}
	return deleted, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
