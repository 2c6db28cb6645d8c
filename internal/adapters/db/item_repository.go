package db

import (
	"context"
	"database/sql"
	"fmt"

	"hydauction-listing-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ItemRepository implements the item repository interface. Image ids are
// stored on the item row as a text array, preserving upload order.
type ItemRepository struct {
	conn *Connection
}

// NewItemRepository creates a new item repository
func NewItemRepository(conn *Connection) *ItemRepository {
	return &ItemRepository{conn: conn}
}

// Create creates a new item
func (r *ItemRepository) Create(ctx context.Context, item *shared.Item) error {
	query := `
		INSERT INTO items (id, name, price, added_by, image_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Price,
		item.AddedBy,
		pq.Array(uuidStrings(item.ImageIDs)),
		item.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*shared.Item, error) {
	query := `
		SELECT id, name, price, added_by, image_ids, created_at
		FROM items
		WHERE id = $1
	`

	var item shared.Item
	var imageIDs []string
	err := r.conn.GetDB().QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Price,
		&item.AddedBy,
		pq.Array(&imageIDs),
		&item.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	item.ImageIDs, err = parseUUIDs(imageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to parse item image ids: %w", err)
	}

	return &item, nil
}

// List retrieves all items, newest first
func (r *ItemRepository) List(ctx context.Context) ([]*shared.Item, error) {
	query := `
		SELECT id, name, price, added_by, image_ids, created_at
		FROM items
		ORDER BY created_at DESC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*shared.Item
	for rows.Next() {
		var item shared.Item
		var imageIDs []string
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Price,
			&item.AddedBy,
			pq.Array(&imageIDs),
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		item.ImageIDs, err = parseUUIDs(imageIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to parse item image ids: %w", err)
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// Delete deletes an item
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM items WHERE id = $1`

	result, err := r.conn.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrItemNotFound
	}

	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
