package db

import (
	"context"
	"fmt"

	"hydauction-listing-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ImageRepository implements the image repository interface
type ImageRepository struct {
	conn *Connection
}

// NewImageRepository creates a new image repository
func NewImageRepository(conn *Connection) *ImageRepository {
	return &ImageRepository{conn: conn}
}

// Create creates a new image record
func (r *ImageRepository) Create(ctx context.Context, image *shared.Image) error {
	query := `
		INSERT INTO images (id, image_path)
		VALUES ($1, $2)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		image.ID,
		image.ImagePath,
	)

	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	return nil
}

// List retrieves all image records
func (r *ImageRepository) List(ctx context.Context) ([]*shared.Image, error) {
	query := `SELECT id, image_path FROM images`

	rows, err := r.conn.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []*shared.Image
	for rows.Next() {
		var image shared.Image
		if err := rows.Scan(&image.ID, &image.ImagePath); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, &image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate images: %w", err)
	}

	return images, nil
}

// DeleteByIDs deletes every image in the given id set. Deleting an already
// absent id is not an error.
func (r *ImageRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM images WHERE id = ANY($1)`

	_, err := r.conn.GetDB().ExecContext(ctx, query, pq.Array(uuidStrings(ids)))
	if err != nil {
		return fmt.Errorf("failed to delete images: %w", err)
	}

	return nil
}
