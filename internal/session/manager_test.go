package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/teamup-site/pkg/cache"
	apperrors "github.com/akeren/teamup-site/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func newTestManager(t *testing.T, store Store) *Manager {
	t.Helper()

	m, err := NewManager(store, Config{Secret: []byte("test-secret"), TTL: time.Hour})
	require.NoError(t, err)
	return m
}

func newContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, cookie := range cookies {
		c.Request.AddCookie(cookie)
	}
	return c, w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	t.Fatalf("no %s cookie in response", CookieName)
	return nil
}

func TestLoad_NoCookieIsUnauthenticated(t *testing.T) {
	m := newTestManager(t, cache.NewMemoryCache())
	c, _ := newContext()

	state, err := m.Load(c)
	require.NoError(t, err)
	assert.False(t, state.Authenticated)
}

func TestAuthenticate_ThenLoad(t *testing.T) {
	m := newTestManager(t, cache.NewMemoryCache())

	c, w := newContext()
	state, err := m.Authenticate(c, nil)
	require.NoError(t, err)
	assert.True(t, state.Authenticated)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	next, _ := newContext(cookie)
	loaded, err := m.Load(next)
	require.NoError(t, err)
	assert.True(t, loaded.Authenticated)
	assert.Equal(t, state.ID, loaded.ID)
}

func TestAuthenticate_RotatesPreviousSession(t *testing.T) {
	m := newTestManager(t, cache.NewMemoryCache())

	c, w := newContext()
	first, err := m.Authenticate(c, nil)
	require.NoError(t, err)
	firstCookie := sessionCookie(t, w)

	c2, _ := newContext(firstCookie)
	second, err := m.Authenticate(c2, first)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	stale, _ := newContext(firstCookie)
	loaded, err := m.Load(stale)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated)
}

func TestClear_RevokesSession(t *testing.T) {
	m := newTestManager(t, cache.NewMemoryCache())

	c, w := newContext()
	state, err := m.Authenticate(c, nil)
	require.NoError(t, err)
	cookie := sessionCookie(t, w)

	logout, lw := newContext(cookie)
	require.NoError(t, m.Clear(logout, state))
	assert.Equal(t, -1, sessionCookie(t, lw).MaxAge)

	// Replaying the old cookie after logout no longer authenticates.
	replay, _ := newContext(cookie)
	loaded, err := m.Load(replay)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated)
}

func TestClear_WithoutSession(t *testing.T) {
	m := newTestManager(t, cache.NewMemoryCache())
	c, _ := newContext()

	assert.NoError(t, m.Clear(c, &State{}))
	assert.NoError(t, m.Clear(c, nil))
}

func TestLoad_RejectsForgedAndExpiredTokens(t *testing.T) {
	store := cache.NewMemoryCache()
	m := newTestManager(t, store)

	c, w := newContext()
	_, err := m.Authenticate(c, nil)
	require.NoError(t, err)
	cookie := sessionCookie(t, w)

	t.Run("tampered", func(t *testing.T) {
		forged := *cookie
		forged.Value = cookie.Value + "x"
		req, _ := newContext(&forged)
		state, err := m.Load(req)
		require.NoError(t, err)
		assert.False(t, state.Authenticated)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewManager(store, Config{Secret: []byte("another-secret"), TTL: time.Hour})
		require.NoError(t, err)
		req, _ := newContext(cookie)
		state, err := other.Load(req)
		require.NoError(t, err)
		assert.False(t, state.Authenticated)
	})

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { m.now = time.Now }()

		req, _ := newContext(cookie)
		state, err := m.Load(req)
		require.NoError(t, err)
		assert.False(t, state.Authenticated)
	})
}

func TestLoad_StoreFailureIsAnError(t *testing.T) {
	good := newTestManager(t, cache.NewMemoryCache())
	c, w := newContext()
	_, err := good.Authenticate(c, nil)
	require.NoError(t, err)

	bad := newTestManager(t, failingStore{})
	req, _ := newContext(sessionCookie(t, w))
	_, err = bad.Load(req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeInternalServerError, apperrors.GetErrorType(err))
}

func TestRequireAdmin(t *testing.T) {
	err := RequireAdmin(&State{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.GetErrorType(err))

	assert.Error(t, RequireAdmin(nil))
	assert.NoError(t, RequireAdmin(&State{ID: "x", Authenticated: true}))
}

func TestNewManager_Validates(t *testing.T) {
	_, err := NewManager(nil, Config{Secret: []byte("s")})
	assert.Error(t, err)

	_, err = NewManager(cache.NewMemoryCache(), Config{})
	assert.Error(t, err)
}
