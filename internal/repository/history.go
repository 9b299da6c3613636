package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/honeilabs/hap-intel/api/internal/entity"
)

// historyLimit bounds the retained history to the most recent searches;
// older entries are evicted on every save.
const historyLimit = 20

// ErrHistoryEntryNotFound indicates no history row matched the identifier.
var ErrHistoryEntryNotFound = errors.New("history entry not found")

// HistoryRepository declares persistence operations for search history.
type HistoryRepository interface {
	Save(ctx context.Context, businessName, city string, profile json.RawMessage) error
	List(ctx context.Context) ([]entity.HistoryEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context) error
}

// PGXHistoryRepository implements HistoryRepository with pgx.
type PGXHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewPGXHistoryRepository instantiates a history repository.
func NewPGXHistoryRepository(pool *pgxpool.Pool) *PGXHistoryRepository {
	return &PGXHistoryRepository{pool: pool}
}

// Save upserts a search result keyed by the case-folded (businessName,
// city) pair, then prunes the table down to the retention bound. Repeating
// a search refreshes the stored profile instead of duplicating the row.
func (r *PGXHistoryRepository) Save(ctx context.Context, businessName, city string, profile json.RawMessage) error {
	if businessName == "" {
		return fmt.Errorf("businessName must not be empty")
	}
	if len(profile) == 0 {
		profile = json.RawMessage("{}")
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO search_history (id, business_name, city, profile, created_at, updated_at)
        VALUES ($1, $2, $3, $4::jsonb, NOW(), NOW())
        ON CONFLICT (LOWER(business_name), LOWER(city)) DO UPDATE SET
            profile = EXCLUDED.profile,
            updated_at = NOW();
    `, uuid.New(), businessName, city, profile)
	if err != nil {
		return fmt.Errorf("save history entry: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
        DELETE FROM search_history
        WHERE id NOT IN (
            SELECT id FROM search_history ORDER BY updated_at DESC LIMIT $1
        );
    `, historyLimit)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}

	return nil
}

// List returns history entries, most recently updated first.
func (r *PGXHistoryRepository) List(ctx context.Context) ([]entity.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, business_name, city, profile, created_at, updated_at
        FROM search_history
        ORDER BY updated_at DESC
        LIMIT $1;
    `, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	return scanHistoryEntries(rows)
}

// Delete removes a single entry by id.
func (r *PGXHistoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM search_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrHistoryEntryNotFound
	}
	return nil
}

// Clear wipes the whole history.
func (r *PGXHistoryRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM search_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func scanHistoryEntries(rows pgx.Rows) ([]entity.HistoryEntry, error) {
	var entries []entity.HistoryEntry
	for rows.Next() {
		var (
			entry   entity.HistoryEntry
			profile []byte
			created time.Time
			updated time.Time
		)
		if err := rows.Scan(&entry.ID, &entry.BusinessName, &entry.City, &profile, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.Profile = json.RawMessage(profile)
		entry.CreatedAt = created
		entry.UpdatedAt = updated
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history entries: %w", err)
	}
	return entries, nil
}
