package site

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/teamup-site/config/router"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *router.RouterService {
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

	static, err := web.Static()
	require.NoError(t, err)
	rs.MountController(NewSiteController(static))
	return rs
}

func get(rs *router.RouterService, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPages(t *testing.T) {
	rs := newTestRouter(t)

	w := get(rs, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="waitlist-form"`)

	w = get(rs, "/ambassador")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="why_interested"`)
}

func TestStatic(t *testing.T) {
	rs := newTestRouter(t)

	w := get(rs, "/static/forms.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fetch(")
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

	assert.Equal(t, http.StatusNotFound, get(rs, "/static/").Code)
	assert.Equal(t, http.StatusNotFound, get(rs, "/static/missing.js").Code)
}
