package admin

import (
	"errors"
	"net/http"

	"github.com/akeren/teamup-site/config/router"
	"github.com/akeren/teamup-site/internal/auth"
	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/internal/session"
	apperrors "github.com/akeren/teamup-site/pkg/errors"
	"github.com/akeren/teamup-site/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

const (
	loginTemplate     = "admin_login.html"
	dashboardTemplate = "admin.html"

	msgIncorrectPassword = "Incorrect password"
)

// Sessions is the part of the session manager the admin pages drive.
type Sessions interface {
	session.Loader
	Authenticate(c *gin.Context, previous *session.State) (*session.State, error)
	Clear(c *gin.Context, state *session.State) error
}

type PasswordChecker interface {
	Verify(password string) error
}

type loginPage struct {
	Error string
}

func NewAdminController(
	dashboard DashboardService,
	sessions Sessions,
	passwords PasswordChecker,
	loginLimiter ratelimit.RateLimiter,
) *router.RESTController {
	return router.NewRESTController(
		"AdminController",
		"/admin",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddRawGetHandler(c, nil, "", showAdminHandler(dashboard, sessions))
			rs.AddRawPostHandler(c, loginLimiter, "", loginHandler(sessions, passwords))
			rs.AddRawGetHandler(c, nil, "logout", logoutHandler(sessions))
		},
	)
}

// showAdminHandler renders the dashboard for an admin and the login form
// for everyone else.
func showAdminHandler(dashboard DashboardService, sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := router.GetLogger(c)

		state, err := sessions.Load(c)
		if err != nil {
			logger.Error("Failed to load admin session", "error", err)
			c.String(http.StatusInternalServerError, apperrors.GenericErrorMessage)
			return
		}

		if session.RequireAdmin(state) != nil {
			c.HTML(http.StatusOK, loginTemplate, loginPage{})
			return
		}

		data, err := dashboard.Build(
			c.Request.Context(),
			models.ParseSentFilter(c.Query("waitlist_filter")),
			models.ParseSentFilter(c.Query("ambassador_filter")),
		)
		if err != nil {
			c.String(http.StatusInternalServerError, apperrors.GenericErrorMessage)
			return
		}

		c.Header("Cache-Control", "no-store")
		c.HTML(http.StatusOK, dashboardTemplate, data)
	}
}

func loginHandler(sessions Sessions, passwords PasswordChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := router.GetLogger(c)

		state, err := sessions.Load(c)
		if err != nil {
			logger.Error("Failed to load admin session", "error", err)
			c.String(http.StatusInternalServerError, apperrors.GenericErrorMessage)
			return
		}

		if err := passwords.Verify(c.PostForm("password")); err != nil {
			if !errors.Is(err, auth.ErrIncorrectPassword) {
				logger.Error("Password verification failed", "error", err)
			}
			logger.Warn("Admin login rejected", "client_ip", c.ClientIP())
			c.HTML(http.StatusOK, loginTemplate, loginPage{Error: msgIncorrectPassword})
			return
		}

		if _, err := sessions.Authenticate(c, state); err != nil {
			logger.Error("Failed to start admin session", "error", err)
			c.String(http.StatusInternalServerError, apperrors.GenericErrorMessage)
			return
		}

		logger.Info("Admin logged in", "client_ip", c.ClientIP())
		c.Redirect(http.StatusSeeOther, "/admin")
	}
}

func logoutHandler(sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := router.GetLogger(c)

		state, err := sessions.Load(c)
		if err != nil {
			logger.Error("Failed to load admin session", "error", err)
		}

		if err := sessions.Clear(c, state); err != nil {
			logger.Error("Failed to clear admin session", "error", err)
		} else if state != nil && state.Authenticated {
			logger.Info("Admin logged out")
		}

		c.Redirect(http.StatusFound, "/admin")
	}
}
