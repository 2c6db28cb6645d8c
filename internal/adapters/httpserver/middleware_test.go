package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hydauction-listing-service/internal/adapters/session"
	"hydauction-listing-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateFixture(t *testing.T) (*Gate, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	gate := NewGate(GateParams{
		Sessions: store,
		Logger:   zerolog.Nop(),
	})
	return gate, store
}

// identitySpy records the identity the gate attached, if any
type identitySpy struct {
	called   bool
	identity *shared.Identity
}

func (spy *identitySpy) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spy.called = true
		spy.identity, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestGateAllowsPublicRoutesWithoutSession(t *testing.T) {
	gate, _ := newGateFixture(t)

	for _, path := range []string{"/", "/signup", "/login", "/logout", "/health", "/public/style.css"} {
		spy := &identitySpy{}
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()

		gate.Middleware(spy.handler()).ServeHTTP(rec, req)

		assert.True(t, spy.called, "expected %s to bypass the gate", path)
		assert.Nil(t, spy.identity)
	}
}

func TestGateRejectsMissingSession(t *testing.T) {
	gate, _ := newGateFixture(t)
	spy := &identitySpy{}

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	rec := httptest.NewRecorder()

	gate.Middleware(spy.handler()).ServeHTTP(rec, req)

	assert.False(t, spy.called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGateRejectsUnknownToken(t *testing.T) {
	gate, _ := newGateFixture(t)
	spy := &identitySpy{}

	req := httptest.NewRequest(http.MethodDelete, "/items/123", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "never-issued"})
	rec := httptest.NewRecorder()

	gate.Middleware(spy.handler()).ServeHTTP(rec, req)

	assert.False(t, spy.called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGateAttachesIdentity(t *testing.T) {
	gate, store := newGateFixture(t)
	spy := &identitySpy{}

	userID := uuid.New()
	require.NoError(t, store.Put(context.Background(), shared.Session{
		Token:     "tok-1",
		UserID:    userID,
		Username:  "alice",
		Email:     "alice@x.com",
		CreatedAt: time.Now(),
	}))

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-1"})
	rec := httptest.NewRecorder()

	gate.Middleware(spy.handler()).ServeHTTP(rec, req)

	require.True(t, spy.called)
	require.NotNil(t, spy.identity)
	assert.Equal(t, userID, spy.identity.UserID)
	assert.Equal(t, "alice", spy.identity.Username)
}

func TestGatePassesOptionalRouteWithoutIdentity(t *testing.T) {
	gate, _ := newGateFixture(t)

	// No cookie at all
	spy := &identitySpy{}
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()
	gate.Middleware(spy.handler()).ServeHTTP(rec, req)
	assert.True(t, spy.called)
	assert.Nil(t, spy.identity)

	// A stale cookie degrades to anonymous instead of rejecting the read
	spy = &identitySpy{}
	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale"})
	rec = httptest.NewRecorder()
	gate.Middleware(spy.handler()).ServeHTTP(rec, req)
	assert.True(t, spy.called)
	assert.Nil(t, spy.identity)
}

func TestGateRemovalIsExpiry(t *testing.T) {
	gate, store := newGateFixture(t)
	ctx := context.Background()

	createdAt := time.Now().Add(-2 * time.Hour)
	require.NoError(t, store.Put(ctx, shared.Session{
		Token:     "tok-old",
		UserID:    uuid.New(),
		Username:  "alice",
		CreatedAt: createdAt,
	}))

	// Until a sweep runs the token still resolves
	spy := &identitySpy{}
	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-old"})
	rec := httptest.NewRecorder()
	gate.Middleware(spy.handler()).ServeHTTP(rec, req)
	assert.True(t, spy.called)

	// After the sweep the token is indistinguishable from never-existed
	store.Sweep(time.Now(), time.Hour)

	spy = &identitySpy{}
	req = httptest.NewRequest(http.MethodPost, "/items", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-old"})
	rec = httptest.NewRecorder()
	gate.Middleware(spy.handler()).ServeHTTP(rec, req)
	assert.False(t, spy.called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteSetMatching(t *testing.T) {
	set := NewRouteSet([]string{"/", "/login"}, []string{"/public/"})

	assert.True(t, set.Contains("/"))
	assert.True(t, set.Contains("/login"))
	assert.True(t, set.Contains("/public/img/a.png"))
	assert.False(t, set.Contains("/items"))
	assert.False(t, set.Contains("/login/extra"))
}
