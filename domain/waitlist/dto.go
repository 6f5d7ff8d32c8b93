package waitlist

import (
	"strings"

	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/pkg/constants"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidEmail  = "Please enter a valid email address"
	msgJoined        = "Successfully added to waitlist!"
	msgAlreadyJoined = "This email is already on the waitlist"
)

var validate = validator.New()

type JoinWaitlistRequest struct {
	Email string `json:"email" validate:"required,contains=@"`
}

// Normalize trims and lowercases the email so that uniqueness is
// case-insensitive.
func (r *JoinWaitlistRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type WaitlistEntryResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Sent      bool   `json:"sent"`
	CreatedAt string `json:"created_at"`
}

// ========================================
// Mappers
// ========================================

func ToWaitlistEntryModel(req *JoinWaitlistRequest) *models.WaitlistEntry {
	if req == nil {
		return nil
	}
	return &models.WaitlistEntry{
		Email: req.Email,
	}
}

func ToWaitlistEntryResponse(entry *models.WaitlistEntry) WaitlistEntryResponse {
	if entry == nil {
		return WaitlistEntryResponse{}
	}
	return WaitlistEntryResponse{
		ID:        entry.ID,
		Email:     entry.Email,
		Sent:      entry.Sent,
		CreatedAt: entry.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}
