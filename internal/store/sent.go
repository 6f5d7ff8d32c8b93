// Package store holds the statements shared by every table that carries a
// manually reviewed "sent" flag.
package store

import (
	"context"
	"errors"

	"github.com/akeren/teamup-site/internal/models"
	"gorm.io/gorm"
)

// ToggleSent negates the sent flag of the row with the given id and reads it
// back in the same transaction. found is false when no row has that id; the
// update is then a no-op.
func ToggleSent(ctx context.Context, db *gorm.DB, model any, id uint) (sent bool, found bool, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(model).
			Where("id = ?", id).
			Update("sent", gorm.Expr("NOT sent"))
		if result.Error != nil {
			return result.Error
		}

		var row struct {
			Sent bool
		}
		err := tx.Model(model).Select("sent").Where("id = ?", id).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		sent, found = row.Sent, true
		return nil
	})

	return sent, found, err
}

// ApplySentFilter narrows query to the rows selected by filter and orders them
// newest first. The id tiebreak keeps rows created within one clock tick stable.
func ApplySentFilter(query *gorm.DB, filter models.SentFilter) *gorm.DB {
	switch filter {
	case models.SentFilterSent:
		query = query.Where("sent = ?", true)
	case models.SentFilterNotSent:
		query = query.Where("sent = ?", false)
	}

	return query.Order("created_at DESC").Order("id DESC")
}
