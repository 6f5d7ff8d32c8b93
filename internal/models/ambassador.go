package models

import "time"

// AmbassadorApplication is one submission of the ambassador program form.
// Several applications may share an email.
type AmbassadorApplication struct {
	ID              uint      `gorm:"primaryKey"`
	Name            string    `gorm:"not null"`
	Email           string    `gorm:"not null"`
	School          string    `gorm:"not null"`
	Grade           string    `gorm:"not null"`
	CommunityAccess string    `gorm:"not null"`
	WhyInterested   string    `gorm:"not null"`
	Experience      string    `gorm:"not null;default:''"`
	TimeCommitment  string    `gorm:"not null"`
	Sent            bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null;index"`
}

func (AmbassadorApplication) TableName() string {
	return "ambassador_applications"
}
