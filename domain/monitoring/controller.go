package monitoring

import (
	"context"
	"time"

	"github.com/akeren/teamup-site/config/router"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/pkg/ratelimit"
	"gorm.io/gorm"
)

const healthCheckMessage = "teamup-site health check completed"

type Cache interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Database int `json:"database"` // 1 = healthy, 0 = unhealthy
	Cache    int `json:"cache"`    // 1 = healthy, 0 = unhealthy/not configured
	Uptime   int `json:"uptime"`   // uptime in seconds
}

type MonitoringController struct {
	db        *gorm.DB
	logger    *log.Logger
	cache     Cache
	startTime time.Time
}

func NewMonitoringController(db *gorm.DB, logger *log.Logger, cache Cache, limiter ratelimit.RateLimiter) *router.RESTController {
	ctrl := &MonitoringController{
		db:        db,
		logger:    logger,
		cache:     cache,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/health",
		func(routerService *router.RouterService, controller *router.RESTController) {
			controller.RateLimitWith(routerService, limiter)
			routerService.AddGetHandler(controller, nil, "", ctrl.healthCheck)
		},
	)
}

func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)
	logger.Debug("Health check endpoint called")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	status := ctrl.performHealthChecks(ctx, logger)

	return router.OKResult(healthCheckMessage, router.Fields{
		"database": status.Database,
		"cache":    status.Cache,
		"uptime":   status.Uptime,
	})
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	checkDatabaseConnectivity(ctx, ctrl, &status, logger)
	checkCacheConnectivity(ctx, ctrl, &status, logger)

	return status
}

func checkCacheConnectivity(ctx context.Context, ctrl *MonitoringController, status *HealthStatus, logger *log.Logger) {
	if ctrl.cache == nil {
		status.Cache = 0 // Cache not configured
		logger.Debug("Cache not configured, cache health check skipped")
		return
	}

	if ctrl.cache.Ping(ctx) == nil {
		status.Cache = 1
		return
	}
	status.Cache = 0
	logger.Error("Cache health check failed")
}

func checkDatabaseConnectivity(ctx context.Context, ctrl *MonitoringController, status *HealthStatus, logger *log.Logger) {
	if ctrl.checkDatabase(ctx) {
		status.Database = 1
		return
	}
	status.Database = 0
	logger.Error("Database health check failed")
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	if ctrl.db == nil {
		return false
	}
	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}

	return sqlDB.PingContext(ctx) == nil
}
