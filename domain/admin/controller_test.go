package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/akeren/teamup-site/config/router"
	"github.com/akeren/teamup-site/domain/ambassador"
	"github.com/akeren/teamup-site/domain/waitlist"
	"github.com/akeren/teamup-site/internal/auth"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/internal/session"
	"github.com/akeren/teamup-site/pkg/cache"
	"github.com/akeren/teamup-site/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse"

type fakeDashboard struct {
	err              error
	waitlistFilter   models.SentFilter
	ambassadorFilter models.SentFilter
}

func (f *fakeDashboard) Build(_ context.Context, waitlistFilter, ambassadorFilter models.SentFilter) (*Dashboard, error) {
	f.waitlistFilter = waitlistFilter
	f.ambassadorFilter = ambassadorFilter
	if f.err != nil {
		return nil, f.err
	}
	return &Dashboard{
		Waitlist: []waitlist.WaitlistEntryResponse{
			{ID: 7, Email: "user@example.com", CreatedAt: "2024-05-01T10:30:00Z"},
		},
		Applications: []ambassador.ApplicationResponse{
			{ID: 3, Name: "Ada Lovelace", Email: "ada@example.com", Sent: true, CreatedAt: "2024-05-02T08:00:00Z"},
		},
		WaitlistFilter:   waitlistFilter,
		AmbassadorFilter: ambassadorFilter,
		Filters:          []models.SentFilter{models.SentFilterAll, models.SentFilterSent, models.SentFilterNotSent},
	}, nil
}

func newTestRouter(t *testing.T, dashboard DashboardService) *router.RouterService {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rs := router.CreateRouterService(log.NewLoggerWithJSONOutput(), nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})

	tmpl, err := web.Templates()
	require.NoError(t, err)
	rs.SetHTMLTemplate(tmpl)

	sessions, err := session.NewManager(cache.NewMemoryCache(), session.Config{
		Secret: []byte("test-secret"),
		TTL:    time.Hour,
	})
	require.NoError(t, err)

	passwords, err := auth.NewPasswordVerifierFromPlain(testPassword)
	require.NoError(t, err)

	rs.MountController(NewAdminController(dashboard, sessions, passwords, nil))
	return rs
}

func serve(rs *router.RouterService, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func login(rs *router.RouterService, password string) *httptest.ResponseRecorder {
	form := url.Values{"password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(rs, req)
}

func adminCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName && cookie.MaxAge >= 0 && cookie.Value != "" {
			return cookie
		}
	}
	return nil
}

func getWithCookie(rs *router.RouterService, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return serve(rs, req)
}

func TestShowAdmin_RendersLoginWithoutSession(t *testing.T) {
	dashboard := &fakeDashboard{}
	rs := newTestRouter(t, dashboard)

	w := getWithCookie(rs, "/admin", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="password"`)
	assert.NotContains(t, w.Body.String(), "user@example.com")
}

func TestLogin(t *testing.T) {
	rs := newTestRouter(t, &fakeDashboard{})

	t.Run("wrong password re-renders the form", func(t *testing.T) {
		w := login(rs, "nope")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), msgIncorrectPassword)
		assert.Nil(t, adminCookie(w))
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		w := login(rs, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), msgIncorrectPassword)
	})

	t.Run("correct password starts a session", func(t *testing.T) {
		w := login(rs, testPassword)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))
		require.NotNil(t, adminCookie(w))
		assert.True(t, adminCookie(w).HttpOnly)
	})
}

func TestShowAdmin_RendersDashboardForAdmin(t *testing.T) {
	dashboard := &fakeDashboard{}
	rs := newTestRouter(t, dashboard)
	cookie := adminCookie(login(rs, testPassword))
	require.NotNil(t, cookie)

	w := getWithCookie(rs, "/admin?waitlist_filter=not_sent&ambassador_filter=bogus", cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "user@example.com")
	assert.Contains(t, body, "2024-05-01 10:30")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, `data-row="/api/admin/waitlist/7"`)
	assert.Equal(t, models.SentFilterNotSent, dashboard.waitlistFilter)
	assert.Equal(t, models.SentFilterAll, dashboard.ambassadorFilter)
}

func TestShowAdmin_DashboardFailure(t *testing.T) {
	rs := newTestRouter(t, &fakeDashboard{err: errors.New("disk I/O error")})
	cookie := adminCookie(login(rs, testPassword))
	require.NotNil(t, cookie)

	w := getWithCookie(rs, "/admin", cookie)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk I/O")
}

func TestLogout_RevokesSession(t *testing.T) {
	rs := newTestRouter(t, &fakeDashboard{})
	cookie := adminCookie(login(rs, testPassword))
	require.NotNil(t, cookie)

	w := getWithCookie(rs, "/admin/logout", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	// Replaying the old cookie lands on the login form again.
	w = getWithCookie(rs, "/admin", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="password"`)
}

func TestLogout_WithoutSession(t *testing.T) {
	rs := newTestRouter(t, &fakeDashboard{})

	w := getWithCookie(rs, "/admin/logout", nil)

	assert.Equal(t, http.StatusFound, w.Code)
}
