package shared

import "errors"

// Domain-specific errors
var (
	// Auth errors
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid session")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Item errors
	ErrItemNotFound = errors.New("item not found")
	ErrNotItemOwner = errors.New("you do not have permission to modify this item")

	// Validation errors
	ErrInvalidRequest = errors.New("invalid request")

	// Database errors
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrDatabaseQuery      = errors.New("database query failed")
)
