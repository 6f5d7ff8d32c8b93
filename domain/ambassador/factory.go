package ambassador

import (
	"github.com/akeren/teamup-site/config/router"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/internal/session"
	"github.com/akeren/teamup-site/pkg/ratelimit"
	"gorm.io/gorm"
)

type ApplicationServiceFactory interface {
	CreateService() ApplicationService
	CreateControllers() []*router.RESTController
}

type DefaultApplicationServiceFactory struct {
	db                *gorm.DB
	logger            *log.Logger
	sessions          session.Loader
	submissionLimiter ratelimit.RateLimiter
}

func NewApplicationServiceFactory(
	db *gorm.DB,
	logger *log.Logger,
	sessions session.Loader,
	submissionLimiter ratelimit.RateLimiter,
) ApplicationServiceFactory {
	return &DefaultApplicationServiceFactory{
		db:                db,
		logger:            logger,
		sessions:          sessions,
		submissionLimiter: submissionLimiter,
	}
}

func (f *DefaultApplicationServiceFactory) CreateService() ApplicationService {
	return NewApplicationService(f.logger, NewApplicationRepository(f.db))
}

func (f *DefaultApplicationServiceFactory) CreateControllers() []*router.RESTController {
	service := f.CreateService()
	return []*router.RESTController{
		NewApplicationController(service, f.submissionLimiter),
		NewApplicationAdminController(service, f.sessions),
	}
}
