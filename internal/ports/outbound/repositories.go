package outbound

import (
	"context"

	"hydauction-listing-service/internal/domain/shared"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *shared.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*shared.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*shared.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*shared.User, error)

	// ExistsByUsernameOrEmail reports whether any user holds the given
	// username or email (single combined check)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	// Create creates a new item
	Create(ctx context.Context, item *shared.Item) error

	// GetByID retrieves an item by ID
	GetByID(ctx context.Context, id uuid.UUID) (*shared.Item, error)

	// List retrieves all items
	List(ctx context.Context) ([]*shared.Item, error)

	// Delete deletes an item
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageRepository defines the interface for image data operations
type ImageRepository interface {
	// Create creates a new image record
	Create(ctx context.Context, image *shared.Image) error

	// List retrieves all image records
	List(ctx context.Context) ([]*shared.Image, error)

	// DeleteByIDs deletes every image in the given id set
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}
