package errors

import (
	"errors"
)

// GenericErrorMessage is what clients see for any failure they cannot act on.
const GenericErrorMessage = "An error occurred. Please try again."

func HTTPStatusCode(err error) int {
	if err == nil {
		return StatusInternalServerError
	}

	errorType := GetErrorType(err)

	switch errorType {
	case ErrorTypeNotFound:
		return StatusNotFound
	case ErrorTypeInvalidRequest, ErrorTypeDuplicateEntry:
		return StatusBadRequest
	case ErrorTypeConflict:
		return StatusConflict
	case ErrorTypeUnauthorized:
		return StatusUnauthorized
	case ErrorTypeForbidden:
		return StatusForbidden
	case ErrorTypeTooManyRequests, ErrorTypeRateLimitExceeded:
		return StatusTooManyRequests
	case ErrorTypeRequestTimeout:
		return StatusRequestTimeout
	case ErrorTypeMethodNotAllowed:
		return StatusMethodNotAllowed
	case ErrorTypeNoContent:
		return StatusNoContent
	case ErrorTypeDatabaseError:
		return StatusInternalServerError
	case ErrorTypeInternalServerError:
		return StatusInternalServerError
	default:
		return StatusInternalServerError
	}
}

func GetHumanReadableMessage(err error) string {
	if err == nil {
		return GenericErrorMessage
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		// SECURITY: store and runtime failures never reach the client verbatim.
		case ErrorTypeDatabaseError, ErrorTypeInternalServerError, ErrorTypeUnknown:
			return GenericErrorMessage
		}
		return appErr.Message
	}

	// SECURITY: avoid leaking internal error strings (DB errors, stack messages, etc.)
	return GenericErrorMessage
}
