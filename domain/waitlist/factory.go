package waitlist

import (
	"github.com/akeren/teamup-site/config/router"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/internal/session"
	"github.com/akeren/teamup-site/pkg/ratelimit"
	"gorm.io/gorm"
)

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateControllers() []*router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	db                *gorm.DB
	logger            *log.Logger
	sessions          session.Loader
	submissionLimiter ratelimit.RateLimiter
}

func NewWaitlistServiceFactory(
	db *gorm.DB,
	logger *log.Logger,
	sessions session.Loader,
	submissionLimiter ratelimit.RateLimiter,
) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		db:                db,
		logger:            logger,
		sessions:          sessions,
		submissionLimiter: submissionLimiter,
	}
}

func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	repository := NewWaitlistRepository(f.db)
	return NewWaitlistService(f.logger, repository)
}

// CreateControllers returns the public submission controller and the admin
// management controller. Both share one service.
func (f *DefaultWaitlistServiceFactory) CreateControllers() []*router.RESTController {
	service := f.CreateService()
	return []*router.RESTController{
		NewWaitlistController(service, f.submissionLimiter),
		NewWaitlistAdminController(service, f.sessions),
	}
}
