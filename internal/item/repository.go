// Package item implements the demo catalog resource and its storage.
package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when an item record is not found.
var ErrNotFound = errors.New("item not found")

// DB is the subset of pool operations the repository needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository provides CRUD operations on the items table.
type Repository interface {
	Create(ctx context.Context, n NewItem) (*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context, filter ListFilter) ([]Item, error)
	Update(ctx context.Context, id int64, fields UpdateFields) (*Item, error)
	Delete(ctx context.Context, id int64) error
}

// PostgresRepository implements Repository against PostgreSQL.
type PostgresRepository struct {
	db DB
}

// NewRepository creates a Repository backed by the given pool.
func NewRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const itemColumns = "id, name, description, price, is_active, created_at, updated_at"

// ensureSchema creates the items table and its index if they do not exist.
// It runs before every operation; both statements are idempotent. This is a
// least-surprise pattern for a demo resource, not a migration strategy.
func (r *PostgresRepository) ensureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS items (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price DECIMAL(10, 2) NOT NULL,
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("ensuring items table: %w", err)
	}

	_, err = r.db.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_items_is_active ON items(is_active)")
	if err != nil {
		return fmt.Errorf("ensuring items index: %w", err)
	}
	return nil
}

// Create inserts a new item with both timestamps set to the request time.
func (r *PostgresRepository) Create(ctx context.Context, n NewItem) (*Item, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	query := `
		INSERT INTO items (name, description, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + itemColumns

	var it Item
	err := r.db.QueryRow(ctx, query, n.Name, n.Description, n.Price, n.IsActive, now).Scan(
		&it.ID, &it.Name, &it.Description, &it.Price,
		&it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}

	return &it, nil
}

// GetByID retrieves a single item by its identifier.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	query := "SELECT " + itemColumns + " FROM items WHERE id = $1"

	var it Item
	err := r.db.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Name, &it.Description, &it.Price,
		&it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning item row: %w", err)
	}
	return &it, nil
}

// List retrieves a paginated, ordered list of items.
//
// A row that fails to scan is dropped from the result and logged rather
// than failing the whole listing; single-row lookups stay strict.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Item, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	query := "SELECT " + itemColumns + " FROM items ORDER BY id OFFSET $1 LIMIT $2"
	if filter.ActiveOnly {
		query = "SELECT " + itemColumns + " FROM items WHERE is_active = TRUE ORDER BY id OFFSET $1 LIMIT $2"
	}

	rows, err := r.db.Query(ctx, query, filter.Skip, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Price,
			&it.IsActive, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			slog.Warn("dropping undecodable item row from listing", "error", err)
			continue
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}

// Update applies a partial update: only non-nil fields change, and
// updated_at is always refreshed. Returns ErrNotFound if the item does
// not exist prior to the update.
func (r *PostgresRepository) Update(ctx context.Context, id int64, fields UpdateFields) (*Item, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		current.Name = *fields.Name
	}
	if fields.Description != nil {
		current.Description = fields.Description
	}
	if fields.Price != nil {
		current.Price = *fields.Price
	}
	if fields.IsActive != nil {
		current.IsActive = *fields.IsActive
	}
	current.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE items
		SET name = $1, description = $2, price = $3, is_active = $4, updated_at = $5
		WHERE id = $6`

	_, err = r.db.Exec(ctx, query,
		current.Name, current.Description, current.Price,
		current.IsActive, current.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	return current, nil
}

// Delete removes an item permanently. Returns ErrNotFound when no row
// was affected, so deleting twice reports absence the second time.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureSchema(ctx); err != nil {
		return err
	}

	result, err := r.db.Exec(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
