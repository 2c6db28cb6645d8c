package httpserver

import (
	"context"
	"net/http"

	"hydauction-listing-service/internal/domain/shared"
	"hydauction-listing-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// sessionCookieName is the cookie carrying the opaque session token
const sessionCookieName = "sessionId"

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityContextKey = identityContextKeyType{}

// IdentityFromContext extracts the resolved identity from the context
func IdentityFromContext(ctx context.Context) (*shared.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*shared.Identity)
	return identity, ok
}

// withIdentity attaches the resolved identity to the context
func withIdentity(ctx context.Context, identity *shared.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// Gate is the authorization gate run before every route handler. It resolves
// the session cookie to an identity or rejects the request. Expired tokens
// are indistinguishable from unknown ones: expiry is enforced by removal.
type Gate struct {
	sessions outbound.SessionStore
	public   RouteSet
	optional RouteSet
	logger   zerolog.Logger
}
type GateParams struct {
	Sessions outbound.SessionStore
	Logger   zerolog.Logger
}

// NewGate creates a new authorization gate
func NewGate(params GateParams) *Gate {
	return &Gate{
		sessions: params.Sessions,
		public:   publicRoutes,
		optional: optionalRoutes,
		logger:   params.Logger.With().Str("component", "auth_gate").Logger(),
	}
}

// Middleware wraps a handler with the gate
func (gate *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gate.public.Contains(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		identity := gate.resolve(r)
		if identity == nil {
			if r.Method == http.MethodGet && gate.optional.Contains(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			gate.logger.Warn().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Rejected request with invalid session")
			writeError(w, gate.logger, shared.ErrInvalidSession)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	})
}

// resolve turns the session cookie into an identity, returning nil when the
// cookie is absent or the token is not in the store
func (gate *Gate) resolve(r *http.Request) *shared.Identity {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	session, err := gate.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		gate.logger.Error().Err(err).Msg("Session store lookup failed")
		return nil
	}
	if session == nil {
		return nil
	}

	return &shared.Identity{
		UserID:   session.UserID,
		Username: session.Username,
		Email:    session.Email,
	}
}
