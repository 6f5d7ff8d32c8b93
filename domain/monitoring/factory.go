package monitoring

import (
	"context"

	"github.com/akeren/teamup-site/config/router"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/pkg/ratelimit"
	"gorm.io/gorm"
)

// MonitoringCache defines the cache interface for the monitoring controller factory.
type MonitoringCache interface {
	Ping(ctx context.Context) error
}

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	db      *gorm.DB
	logger  *log.Logger
	cache   MonitoringCache
	limiter ratelimit.RateLimiter
}

func NewMonitoringControllerFactory(db *gorm.DB, logger *log.Logger, cache MonitoringCache, limiter ratelimit.RateLimiter) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		db:      db,
		logger:  logger,
		cache:   cache,
		limiter: limiter,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.db, f.logger, f.cache, f.limiter)
}
