package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/honeilabs/hap-intel/api/internal/entity"
)

// Lookup and uniqueness errors for the analysts table.
var (
	ErrAnalystNotFound = errors.New("analyst not found")
	ErrEmailDuplicate  = errors.New("email already exists")
)

// AnalystsRepository declares persistence operations for analyst accounts.
type AnalystsRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Analyst, error)
	Create(ctx context.Context, email, passwordHash string) (*entity.Analyst, error)
}

// PGXAnalystsRepository implements AnalystsRepository with pgx.
type PGXAnalystsRepository struct {
	pool *pgxpool.Pool
}

// NewPGXAnalystsRepository instantiates an analysts repository.
func NewPGXAnalystsRepository(pool *pgxpool.Pool) *PGXAnalystsRepository {
	return &PGXAnalystsRepository{pool: pool}
}

// FindByEmail fetches an analyst by email if present.
func (r *PGXAnalystsRepository) FindByEmail(ctx context.Context, email string) (*entity.Analyst, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM analysts WHERE LOWER(email) = LOWER($1)`,
		strings.TrimSpace(email))

	var analyst entity.Analyst
	if err := row.Scan(&analyst.ID, &analyst.Email, &analyst.PasswordHash, &analyst.CreatedAt, &analyst.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnalystNotFound
		}
		return nil, fmt.Errorf("query analyst by email: %w", err)
	}

	return &analyst, nil
}

// Create inserts a new analyst account. A duplicate email surfaces as
// ErrEmailDuplicate via the unique-violation SQLSTATE.
func (r *PGXAnalystsRepository) Create(ctx context.Context, email, passwordHash string) (*entity.Analyst, error) {
	id := uuid.New()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO analysts (id, email, password_hash, created_at, updated_at)
         VALUES ($1, LOWER($2), $3, NOW(), NOW())
         RETURNING id, email, password_hash, created_at, updated_at`,
		id, strings.TrimSpace(email), passwordHash)

	var analyst entity.Analyst
	if err := row.Scan(&analyst.ID, &analyst.Email, &analyst.PasswordHash, &analyst.CreatedAt, &analyst.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailDuplicate
		}
		return nil, fmt.Errorf("create analyst: %w", err)
	}

	return &analyst, nil
}

// isUniqueViolation reports whether err carries the unique-violation
// SQLSTATE from the driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
