package inbound

import (
	"context"

	"hydauction-listing-service/internal/domain/shared"

	"github.com/google/uuid"
)

// AuthService defines the interface for signup, login and logout
type AuthService interface {
	// Signup registers a new user and returns its id
	Signup(ctx context.Context, req SignupRequest) (uuid.UUID, error)

	// Login authenticates a user and returns a session token. Repeated
	// logins without a logout in between return the same token.
	Login(ctx context.Context, req LoginRequest) (string, error)

	// Logout removes the session for the token, idempotently
	Logout(ctx context.Context, token string) error
}

// ListingService defines the interface for item listing operations
type ListingService interface {
	// ListItems returns all items joined with their images. The identity
	// is optional and only marks ownership in the views.
	ListItems(ctx context.Context, identity *shared.Identity) ([]shared.ItemView, error)

	// AddItem stores the uploads, records one image per file and creates
	// the item owned by the identity
	AddItem(ctx context.Context, identity shared.Identity, req AddItemRequest) (uuid.UUID, error)

	// DeleteItem removes an item and every image it references. Only the
	// item's owner may delete it.
	DeleteItem(ctx context.Context, identity shared.Identity, itemID uuid.UUID) error
}

// request to sign up. PasswordB64 is the raw credential in its transport
// encoding; base64 carries no confidentiality.
type SignupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PasswordB64 string `json:"password"`
}

// request to log in
type LoginRequest struct {
	Username    string `json:"username"`
	PasswordB64 string `json:"password"`
}

// request to add an item
type AddItemRequest struct {
	Name    string
	Price   float64
	Uploads []shared.Upload
}
