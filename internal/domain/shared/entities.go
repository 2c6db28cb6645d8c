package shared

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the server-side proof of a successful login. It carries only
// non-sensitive display fields, never the password hash.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the requester resolved by the authorization gate
type Identity struct {
	UserID   uuid.UUID
	Username string
	Email    string
}

// Item represents a listed item
type Item struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Price     float64     `json:"price"`
	AddedBy   uuid.UUID   `json:"added_by"`
	ImageIDs  []uuid.UUID `json:"image_ids"`
	CreatedAt time.Time   `json:"created_at"`
}

// Image represents a stored listing photo. An image belongs to exactly one
// item through the item's ImageIDs.
type Image struct {
	ID        uuid.UUID `json:"id"`
	ImagePath string    `json:"image_path"`
}

// ItemView is the listing representation returned to clients. A dangling
// image reference degrades to an empty path entry instead of failing the
// whole listing.
type ItemView struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Price  float64   `json:"price"`
	Images []string  `json:"images"`
	Mine   bool      `json:"isAuthoredByCurrentUser"`
}

// Upload is one binary payload received with a request. Open must return an
// independent reader each time it is called.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}
