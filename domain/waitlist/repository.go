package waitlist

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=waitlist

import (
	"context"
	"errors"

	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/internal/store"
	apperrors "github.com/akeren/teamup-site/pkg/errors"
	"gorm.io/gorm"
)

type WaitlistRepository interface {
	// CreateEntry persists a new waitlist entry. A second entry with the same
	// email is rejected with a DUPLICATE_ENTRY error.
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error)
	// ListEntries returns the entries selected by filter, newest first.
	ListEntries(ctx context.Context, filter models.SentFilter) ([]*models.WaitlistEntry, error)
	// ToggleSent flips the sent flag of an entry and returns its new value.
	// found is false when no entry has that id.
	ToggleSent(ctx context.Context, id uint) (sent bool, found bool, err error)
	// DeleteEntry removes an entry by its ID. Deleting a missing entry is not an error.
	DeleteEntry(ctx context.Context, id uint) error
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	if err := wr.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.NewDuplicateEntryError(msgAlreadyJoined, err)
		}
		return nil, apperrors.NewDatabaseError("unable to create waitlist entry", err)
	}

	return entry, nil
}

func (wr *waitlistRepository) ListEntries(ctx context.Context, filter models.SentFilter) ([]*models.WaitlistEntry, error) {
	var entries []*models.WaitlistEntry

	query := store.ApplySentFilter(wr.db.WithContext(ctx).Model(&models.WaitlistEntry{}), filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to fetch waitlist entries", err)
	}

	return entries, nil
}

func (wr *waitlistRepository) ToggleSent(ctx context.Context, id uint) (bool, bool, error) {
	sent, found, err := store.ToggleSent(ctx, wr.db, &models.WaitlistEntry{}, id)
	if err != nil {
		return false, false, apperrors.NewDatabaseError("unable to toggle waitlist entry", err)
	}

	return sent, found, nil
}

func (wr *waitlistRepository) DeleteEntry(ctx context.Context, id uint) error {
	result := wr.db.WithContext(ctx).Delete(&models.WaitlistEntry{}, id)

	if result.Error != nil {
		return apperrors.NewDatabaseError("unable to delete waitlist entry", result.Error)
	}

	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
