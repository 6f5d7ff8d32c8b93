package ambassador

import (
	"context"
	"errors"

	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/internal/models"
	apperrors "github.com/akeren/teamup-site/pkg/errors"
	"github.com/go-playground/validator/v10"
)

type ApplicationService interface {
	// Submit validates and stores an application. A missing required field
	// is reported by its humanized name.
	Submit(ctx context.Context, req *SubmitApplicationRequest) (*ApplicationResponse, error)
	ListApplications(ctx context.Context, filter models.SentFilter) ([]ApplicationResponse, error)
	ToggleSent(ctx context.Context, id uint) (bool, error)
	DeleteApplication(ctx context.Context, id uint) error
}

// ValidationError carries every rejected field; Error reports the first.
type ValidationError struct {
	*apperrors.AppError
	Fields []apperrors.ValidationErrorResponse
}

func (e *ValidationError) Unwrap() error {
	return e.AppError
}

type applicationService struct {
	logger     *log.Logger
	repository ApplicationRepository
}

func NewApplicationService(logger *log.Logger, repository ApplicationRepository) ApplicationService {
	return &applicationService{logger: logger, repository: repository}
}

func (s *applicationService) Submit(ctx context.Context, req *SubmitApplicationRequest) (*ApplicationResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Submit received empty request")
		return nil, apperrors.NewInvalidRequestError(msgInvalidBody, nil)
	}

	req.Normalize()
	if err := validateRequest(req); err != nil {
		logger.Warn("Rejected ambassador application", "error", err)
		return nil, err
	}

	app, err := s.repository.CreateApplication(ctx, ToApplicationModel(req))
	if err != nil {
		logger.Error("Failed to create ambassador application", "error", err)
		return nil, err
	}

	logger.Info("Ambassador application created", "id", app.ID)
	response := ToApplicationResponse(app)
	return &response, nil
}

func validateRequest(req *SubmitApplicationRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInvalidRequestError(msgInvalidBody, err)
	}

	fields := apperrors.FormatValidationErrors(fieldErrs, req)
	return &ValidationError{
		AppError: apperrors.NewInvalidRequestError(fields[0].Message, err),
		Fields:   fields,
	}
}

func (s *applicationService) ListApplications(ctx context.Context, filter models.SentFilter) ([]ApplicationResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	apps, err := s.repository.ListApplications(ctx, filter)
	if err != nil {
		logger.Error("Failed to list ambassador applications", "filter", filter, "error", err)
		return nil, err
	}

	responses := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, ToApplicationResponse(app))
	}

	return responses, nil
}

func (s *applicationService) ToggleSent(ctx context.Context, id uint) (bool, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	sent, found, err := s.repository.ToggleSent(ctx, id)
	if err != nil {
		logger.Error("Failed to toggle ambassador application", "id", id, "error", err)
		return false, err
	}

	if !found {
		logger.Warn("Toggle-sent on missing ambassador application", "id", id)
		return false, nil
	}

	logger.Info("Ambassador application toggled", "id", id, "sent", sent)
	return sent, nil
}

func (s *applicationService) DeleteApplication(ctx context.Context, id uint) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if err := s.repository.DeleteApplication(ctx, id); err != nil {
		logger.Error("Failed to delete ambassador application", "id", id, "error", err)
		return err
	}

	logger.Info("Ambassador application deleted", "id", id)
	return nil
}
