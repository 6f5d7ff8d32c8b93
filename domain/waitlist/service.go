package waitlist

import (
	"context"

	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/internal/models"
	apperrors "github.com/akeren/teamup-site/pkg/errors"
)

type WaitlistService interface {
	// Join validates and stores a new waitlist email.
	Join(ctx context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error)

	// ListEntries returns the entries selected by filter, newest first.
	ListEntries(ctx context.Context, filter models.SentFilter) ([]WaitlistEntryResponse, error)

	// ToggleSent flips the sent flag of an entry and returns the new value.
	ToggleSent(ctx context.Context, id uint) (bool, error)

	// DeleteEntry removes an entry; a missing entry is not an error.
	DeleteEntry(ctx context.Context, id uint) error
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository) WaitlistService {
	return &waitlistService{logger: logger, repository: repository}
}

func (s *waitlistService) Join(ctx context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Join received empty request")
		return nil, apperrors.NewInvalidRequestError(msgInvalidEmail, nil)
	}

	req.Normalize()
	if err := validate.Struct(req); err != nil {
		logger.Warn("Rejected waitlist email", "error", err)
		return nil, apperrors.NewInvalidRequestError(msgInvalidEmail, err)
	}

	entry, err := s.repository.CreateEntry(ctx, ToWaitlistEntryModel(req))
	if err != nil {
		if apperrors.GetErrorType(err) == apperrors.ErrorTypeDuplicateEntry {
			logger.Info("Waitlist email already registered")
		} else {
			logger.Error("Failed to create waitlist entry", "error", err)
		}
		return nil, err
	}

	logger.Info("Waitlist entry created", "id", entry.ID)
	response := ToWaitlistEntryResponse(entry)
	return &response, nil
}

func (s *waitlistService) ListEntries(ctx context.Context, filter models.SentFilter) ([]WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.repository.ListEntries(ctx, filter)
	if err != nil {
		logger.Error("Failed to list waitlist entries", "filter", filter, "error", err)
		return nil, err
	}

	responses := make([]WaitlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToWaitlistEntryResponse(entry))
	}

	return responses, nil
}

func (s *waitlistService) ToggleSent(ctx context.Context, id uint) (bool, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	sent, found, err := s.repository.ToggleSent(ctx, id)
	if err != nil {
		logger.Error("Failed to toggle waitlist entry", "id", id, "error", err)
		return false, err
	}

	if !found {
		logger.Warn("Toggle-sent on missing waitlist entry", "id", id)
		return false, nil
	}

	logger.Info("Waitlist entry toggled", "id", id, "sent", sent)
	return sent, nil
}

func (s *waitlistService) DeleteEntry(ctx context.Context, id uint) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if err := s.repository.DeleteEntry(ctx, id); err != nil {
		logger.Error("Failed to delete waitlist entry", "id", id, "error", err)
		return err
	}

	logger.Info("Waitlist entry deleted", "id", id)
	return nil
}
