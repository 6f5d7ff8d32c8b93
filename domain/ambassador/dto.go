package ambassador

import (
	"strings"

	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/pkg/constants"
	"github.com/go-playground/validator/v10"
)

const (
	msgSubmitted   = "Application submitted successfully!"
	msgInvalidBody = "Invalid request body"
)

var validate = validator.New()

// SubmitApplicationRequest lists required fields in the order they are
// reported when missing.
type SubmitApplicationRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	School          string `json:"school" validate:"required"`
	Grade           string `json:"grade" validate:"required"`
	CommunityAccess string `json:"community_access" validate:"required"`
	WhyInterested   string `json:"why_interested" validate:"required"`
	Experience      string `json:"experience"`
	TimeCommitment  string `json:"time_commitment" validate:"required"`
}

func (r *SubmitApplicationRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.School = strings.TrimSpace(r.School)
	r.Grade = strings.TrimSpace(r.Grade)
	r.CommunityAccess = strings.TrimSpace(r.CommunityAccess)
	r.WhyInterested = strings.TrimSpace(r.WhyInterested)
	r.Experience = strings.TrimSpace(r.Experience)
	r.TimeCommitment = strings.TrimSpace(r.TimeCommitment)
}

type ApplicationResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	School          string `json:"school"`
	Grade           string `json:"grade"`
	CommunityAccess string `json:"community_access"`
	WhyInterested   string `json:"why_interested"`
	Experience      string `json:"experience"`
	TimeCommitment  string `json:"time_commitment"`
	Sent            bool   `json:"sent"`
	CreatedAt       string `json:"created_at"`
}

// ========================================
// Mappers
// ========================================

func ToApplicationModel(req *SubmitApplicationRequest) *models.AmbassadorApplication {
	if req == nil {
		return nil
	}
	return &models.AmbassadorApplication{
		Name:            req.Name,
		Email:           req.Email,
		School:          req.School,
		Grade:           req.Grade,
		CommunityAccess: req.CommunityAccess,
		WhyInterested:   req.WhyInterested,
		Experience:      req.Experience,
		TimeCommitment:  req.TimeCommitment,
	}
}

func ToApplicationResponse(app *models.AmbassadorApplication) ApplicationResponse {
	if app == nil {
		return ApplicationResponse{}
	}
	return ApplicationResponse{
		ID:              app.ID,
		Name:            app.Name,
		Email:           app.Email,
		School:          app.School,
		Grade:           app.Grade,
		CommunityAccess: app.CommunityAccess,
		WhyInterested:   app.WhyInterested,
		Experience:      app.Experience,
		TimeCommitment:  app.TimeCommitment,
		Sent:            app.Sent,
		CreatedAt:       app.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}
