package models

import "time"

// WaitlistEntry is a prospective user's email awaiting outreach.
type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"not null;uniqueIndex"`
	Sent      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist"
}
