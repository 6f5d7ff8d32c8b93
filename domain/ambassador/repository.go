package ambassador

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=ambassador

import (
	"context"

	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/internal/store"
	apperrors "github.com/akeren/teamup-site/pkg/errors"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	CreateApplication(ctx context.Context, app *models.AmbassadorApplication) (*models.AmbassadorApplication, error)
	ListApplications(ctx context.Context, filter models.SentFilter) ([]*models.AmbassadorApplication, error)
	// ToggleSent flips the sent flag and returns its new value. found is
	// false when no application has that id.
	ToggleSent(ctx context.Context, id uint) (sent bool, found bool, err error)
	DeleteApplication(ctx context.Context, id uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) CreateApplication(ctx context.Context, app *models.AmbassadorApplication) (*models.AmbassadorApplication, error) {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to create ambassador application", err)
	}

	return app, nil
}

func (r *applicationRepository) ListApplications(ctx context.Context, filter models.SentFilter) ([]*models.AmbassadorApplication, error) {
	var apps []*models.AmbassadorApplication

	query := store.ApplySentFilter(r.db.WithContext(ctx).Model(&models.AmbassadorApplication{}), filter)
	if err := query.Find(&apps).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to fetch ambassador applications", err)
	}

	return apps, nil
}

func (r *applicationRepository) ToggleSent(ctx context.Context, id uint) (bool, bool, error) {
	sent, found, err := store.ToggleSent(ctx, r.db, &models.AmbassadorApplication{}, id)
	if err != nil {
		return false, false, apperrors.NewDatabaseError("unable to toggle ambassador application", err)
	}

	return sent, found, nil
}

func (r *applicationRepository) DeleteApplication(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.AmbassadorApplication{}, id).Error; err != nil {
		return apperrors.NewDatabaseError("unable to delete ambassador application", err)
	}

	return nil
}
