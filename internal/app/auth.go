package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"hydauction-listing-service/internal/domain/shared"
	"hydauction-listing-service/internal/ports/inbound"
	"hydauction-listing-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements the signup/login/logout use cases
type AuthService struct {
	userRepo outbound.UserRepository
	sessions outbound.SessionStore
	logger   zerolog.Logger
}
type AuthServiceParams struct {
	UserRepo outbound.UserRepository
	Sessions outbound.SessionStore
	Logger   zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(params AuthServiceParams) *AuthService {
	return &AuthService{
		userRepo: params.UserRepo,
		sessions: params.Sessions,
		logger:   params.Logger.With().Str("component", "auth_service").Logger(),
	}
}

// Signup registers a new user. Username and email must both be unused; the
// check is a single combined existence query.
func (service *AuthService) Signup(ctx context.Context, req inbound.SignupRequest) (uuid.UUID, error) {
	service.logger.Info().
		Str("username", req.Username).
		Str("email", req.Email).
		Msg("Attempting to sign up user")

	password, err := decodePassword(req.PasswordB64)
	if err != nil {
		service.logger.Warn().Err(err).Str("username", req.Username).Msg("Malformed password encoding")
		return uuid.Nil, shared.ErrInvalidRequest
	}

	exists, err := service.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		service.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to check for existing user")
		return uuid.Nil, err
	}

	if exists {
		service.logger.Warn().
			Str("username", req.Username).
			Str("email", req.Email).
			Msg("Username or email already taken")
		return uuid.Nil, shared.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to hash password")
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &shared.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := service.userRepo.Create(ctx, user); err != nil {
		service.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to save user to database")
		return uuid.Nil, err
	}

	service.logger.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("User created successfully")

	return user.ID, nil
}

// Login verifies the credentials and returns a session token. A user with a
// live session gets the same token back instead of a second session.
func (service *AuthService) Login(ctx context.Context, req inbound.LoginRequest) (string, error) {
	service.logger.Info().Str("username", req.Username).Msg("Attempting login")

	password, err := decodePassword(req.PasswordB64)
	if err != nil {
		service.logger.Warn().Err(err).Str("username", req.Username).Msg("Malformed password encoding")
		return "", shared.ErrInvalidRequest
	}

	// Lookup is by username only, never by email
	user, err := service.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			service.logger.Warn().Str("username", req.Username).Msg("Login attempt for unknown user")
			return "", shared.ErrInvalidCredentials
		}
		service.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to look up user")
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		service.logger.Warn().Str("username", req.Username).Msg("Password verification failed")
		return "", shared.ErrInvalidCredentials
	}

	// Idempotent login: reuse the live session if one exists
	existing, err := service.sessions.FindByUserID(ctx, user.ID)
	if err != nil {
		service.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to check for existing session")
		return "", err
	}

	if existing != nil {
		service.logger.Debug().
			Str("user_id", user.ID.String()).
			Msg("Reusing existing session")
		return existing.Token, nil
	}

	token, err := newSessionToken()
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to generate session token")
		return "", err
	}

	session := shared.Session{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: time.Now(),
	}

	if err := service.sessions.Put(ctx, session); err != nil {
		service.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to store session")
		return "", err
	}

	service.logger.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("Login successful")

	return token, nil
}

// Logout removes the session for the token. Absent tokens are not an error.
func (service *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := service.sessions.Remove(ctx, token); err != nil {
		service.logger.Error().Err(err).Msg("Failed to remove session")
		return err
	}

	service.logger.Info().Msg("Session removed")
	return nil
}

// decodePassword recovers the raw credential from its transport encoding.
// Base64 here only survives form transport, it carries no confidentiality.
func decodePassword(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode password: %w", err)
	}
	return string(raw), nil
}

// newSessionToken returns a 256-bit cryptographically random token
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
