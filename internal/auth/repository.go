package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultQueryTimeout = 5 * time.Second

// Repository provides database access for authentication concerns.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a new Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateStaff persists a new staff account.
func (r *Repository) CreateStaff(ctx context.Context, email, passwordHash string, displayName *string, isAdmin bool) (Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
INSERT INTO staff (email, password_hash, display_name, is_admin)
VALUES ($1, $2, $3, $4)
RETURNING id, email, password_hash, display_name, is_admin, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query, email, passwordHash, displayName, isAdmin)

	var staff Staff
	if err := row.Scan(&staff.ID, &staff.Email, &staff.PasswordHash, &staff.DisplayName, &staff.IsAdmin, &staff.CreatedAt, &staff.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return Staff{}, ErrEmailAlreadyExists
		}
		return Staff{}, fmt.Errorf("scan staff: %w", err)
	}

	return staff, nil
}

// FindStaffByEmail fetches a staff account by email.
func (r *Repository) FindStaffByEmail(ctx context.Context, email string) (Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
SELECT id, email, password_hash, display_name, is_admin, created_at, updated_at
FROM staff
WHERE email = $1;`

	var staff Staff
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&staff.ID,
		&staff.Email,
		&staff.PasswordHash,
		&staff.DisplayName,
		&staff.IsAdmin,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Staff{}, ErrStaffNotFound
		}
		return Staff{}, fmt.Errorf("find staff: %w", err)
	}
	return staff, nil
}

// FindStaffByID fetches a staff account by identifier.
func (r *Repository) FindStaffByID(ctx context.Context, id uuid.UUID) (Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
SELECT id, email, password_hash, display_name, is_admin, created_at, updated_at
FROM staff
WHERE id = $1;`

	var staff Staff
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&staff.ID,
		&staff.Email,
		&staff.PasswordHash,
		&staff.DisplayName,
		&staff.IsAdmin,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Staff{}, ErrStaffNotFound
		}
		return Staff{}, fmt.Errorf("find staff by id: %w", err)
	}
	return staff, nil
}

// StoreRefreshToken persists a hashed refresh token.
func (r *Repository) StoreRefreshToken(ctx context.Context, staffID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
INSERT INTO staff_refresh_tokens (staff_id, token_hash, expires_at)
VALUES ($1, $2, $3);`

	if _, err := r.pool.Exec(ctx, query, staffID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// ConsumeRefreshToken deletes a stored refresh token, returning its owner.
// Expired or unknown tokens yield ErrUnauthorized.
func (r *Repository) ConsumeRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
DELETE FROM staff_refresh_tokens
WHERE token_hash = $1 AND expires_at > NOW()
RETURNING staff_id;`

	var staffID uuid.UUID
	if err := r.pool.QueryRow(ctx, query, tokenHash).Scan(&staffID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrUnauthorized
		}
		return uuid.Nil, fmt.Errorf("consume refresh token: %w", err)
	}
	return staffID, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
