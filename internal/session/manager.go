package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/akeren/teamup-site/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CookieName = "teamup_admin"

	adminSubject    = "admin"
	msgUnauthorized = "Unauthorized"
	keyPrefix       = "session:"
)

// Store keeps server-side session records so that a session can be revoked
// before its token expires.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Config struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
}

// State is the per-request view of the admin session.
type State struct {
	ID            string
	Authenticated bool
}

type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewManager(store Store, cfg Config) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session: store is nil")
	}
	if len(cfg.Secret) == 0 {
		return nil, errors.New("session: secret is empty")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}

	return &Manager{
		store:  store,
		secret: cfg.Secret,
		ttl:    cfg.TTL,
		secure: cfg.Secure,
		now:    time.Now,
	}, nil
}

// Load resolves the caller's session. A missing, tampered, expired or
// revoked cookie yields an unauthenticated state, not an error. Errors are
// reserved for a failing session store.
func (m *Manager) Load(c *gin.Context) (*State, error) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return &State{}, nil
	}

	claims, ok := m.parse(raw)
	if !ok {
		return &State{}, nil
	}

	value, err := m.store.Get(c.Request.Context(), keyPrefix+claims.ID)
	if err != nil {
		return nil, apperrors.NewInternalServerError("unable to load session", err)
	}
	if value != adminSubject {
		return &State{}, nil
	}

	return &State{ID: claims.ID, Authenticated: true}, nil
}

// Authenticate starts a fresh admin session and sets its cookie. Any session
// the caller already held is revoked.
func (m *Manager) Authenticate(c *gin.Context, previous *State) (*State, error) {
	ctx := c.Request.Context()
	if previous != nil && previous.ID != "" {
		if err := m.store.Delete(ctx, keyPrefix+previous.ID); err != nil {
			return nil, apperrors.NewInternalServerError("unable to rotate session", err)
		}
	}

	id := uuid.NewString()
	now := m.now()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        id,
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}).SignedString(m.secret)
	if err != nil {
		return nil, apperrors.NewInternalServerError("unable to sign session", err)
	}

	if err := m.store.Set(ctx, keyPrefix+id, adminSubject, m.ttl); err != nil {
		return nil, apperrors.NewInternalServerError("unable to store session", err)
	}

	m.setCookie(c, token, int(m.ttl.Seconds()))
	return &State{ID: id, Authenticated: true}, nil
}

// Clear revokes the session record and expires the cookie. It is safe to
// call without a session.
func (m *Manager) Clear(c *gin.Context, state *State) error {
	m.setCookie(c, "", -1)

	if state == nil || state.ID == "" {
		return nil
	}
	if err := m.store.Delete(c.Request.Context(), keyPrefix+state.ID); err != nil {
		return apperrors.NewInternalServerError("unable to clear session", err)
	}
	return nil
}

func (m *Manager) parse(raw string) (*jwt.RegisteredClaims, bool) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, false
	}
	if claims.Subject != adminSubject || claims.ID == "" {
		return nil, false
	}
	return claims, true
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", m.secure, true)
}

// RequireAdmin is the guard every protected operation calls first.
func RequireAdmin(state *State) error {
	if state == nil || !state.Authenticated {
		return apperrors.NewUnauthorizedError(msgUnauthorized, nil)
	}
	return nil
}
