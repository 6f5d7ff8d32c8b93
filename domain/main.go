package domain

import (
	"fmt"
	"time"

	"github.com/akeren/teamup-site/config"
	"github.com/akeren/teamup-site/domain/admin"
	"github.com/akeren/teamup-site/domain/ambassador"
	"github.com/akeren/teamup-site/domain/monitoring"
	"github.com/akeren/teamup-site/domain/site"
	"github.com/akeren/teamup-site/domain/waitlist"
	"github.com/akeren/teamup-site/web"
)

const healthRequestsPerMinute = 60

func SetupCoreDomain(appConfig *config.ApplicationConfig) error {
	rs := appConfig.RouterService

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	rs.SetHTMLTemplate(tmpl)

	static, err := web.Static()
	if err != nil {
		return fmt.Errorf("load static assets: %w", err)
	}

	limiters := appConfig.RateLimiters
	submissionLimiter := limiters.CreateRateLimiter(appConfig.Config.SubmissionRateLimit, time.Minute)
	loginLimiter := limiters.CreateRateLimiter(appConfig.Config.LoginRateLimit, time.Minute)
	healthLimiter := limiters.CreateRateLimiter(healthRequestsPerMinute, time.Minute)

	waitlistFactory := waitlist.NewWaitlistServiceFactory(appConfig.DB, appConfig.Logger, appConfig.Sessions, submissionLimiter)
	ambassadorFactory := ambassador.NewApplicationServiceFactory(appConfig.DB, appConfig.Logger, appConfig.Sessions, submissionLimiter)

	rs.MountController(site.NewSiteController(static))
	rs.MountController(monitoring.NewMonitoringControllerFactory(appConfig.DB, appConfig.Logger, appConfig.Cache, healthLimiter).CreateController())

	for _, controller := range waitlistFactory.CreateControllers() {
		rs.MountController(controller)
	}
	for _, controller := range ambassadorFactory.CreateControllers() {
		rs.MountController(controller)
	}

	dashboard := admin.NewDashboardService(appConfig.Logger, waitlistFactory.CreateService(), ambassadorFactory.CreateService())
	rs.MountController(admin.NewAdminController(dashboard, appConfig.Sessions, appConfig.AdminAuth, loginLimiter))

	return nil
}
