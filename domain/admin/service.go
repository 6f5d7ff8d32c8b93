package admin

import (
	"context"

	"github.com/akeren/teamup-site/domain/ambassador"
	"github.com/akeren/teamup-site/domain/waitlist"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/internal/models"
)

type WaitlistLister interface {
	ListEntries(ctx context.Context, filter models.SentFilter) ([]waitlist.WaitlistEntryResponse, error)
}

type ApplicationLister interface {
	ListApplications(ctx context.Context, filter models.SentFilter) ([]ambassador.ApplicationResponse, error)
}

// Dashboard is the data behind the admin page. The two filters are applied
// independently.
type Dashboard struct {
	Waitlist         []waitlist.WaitlistEntryResponse
	Applications     []ambassador.ApplicationResponse
	WaitlistFilter   models.SentFilter
	AmbassadorFilter models.SentFilter
	Filters          []models.SentFilter
}

type DashboardService interface {
	Build(ctx context.Context, waitlistFilter, ambassadorFilter models.SentFilter) (*Dashboard, error)
}

type dashboardService struct {
	logger       *log.Logger
	waitlist     WaitlistLister
	applications ApplicationLister
}

func NewDashboardService(logger *log.Logger, waitlist WaitlistLister, applications ApplicationLister) DashboardService {
	return &dashboardService{logger: logger, waitlist: waitlist, applications: applications}
}

func (s *dashboardService) Build(ctx context.Context, waitlistFilter, ambassadorFilter models.SentFilter) (*Dashboard, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.waitlist.ListEntries(ctx, waitlistFilter)
	if err != nil {
		logger.Error("Failed to load waitlist for dashboard", "error", err)
		return nil, err
	}

	apps, err := s.applications.ListApplications(ctx, ambassadorFilter)
	if err != nil {
		logger.Error("Failed to load applications for dashboard", "error", err)
		return nil, err
	}

	return &Dashboard{
		Waitlist:         entries,
		Applications:     apps,
		WaitlistFilter:   waitlistFilter,
		AmbassadorFilter: ambassadorFilter,
		Filters:          []models.SentFilter{models.SentFilterAll, models.SentFilterSent, models.SentFilterNotSent},
	}, nil
}
