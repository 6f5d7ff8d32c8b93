package router

import (
	"net/http"
	"strconv"

	"github.com/akeren/teamup-site/internal/log"
	apperrors "github.com/akeren/teamup-site/pkg/errors"
)

func GetLogger(ctx *RequestContext) *log.Logger {
	if logger := ctx.Request.Context().Value(log.LoggerKeyForContext); logger != nil {
		if l, ok := logger.(*log.Logger); ok {
			return l
		}
	}

	baseLogger := log.NewLoggerWithJSONOutput()
	return baseLogger.WithCorrelationID(ctx.Request.Context())
}

func OKResult(message string, fields Fields) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Message:    message,
		Fields:     fields,
	}
}

func TooManyRequestsResult(data RateLimitResponse) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusTooManyRequests,
		Message:    "Too Many Requests",
		Fields: Fields{
			"limit":       data.Limit,
			"window":      data.Window,
			"retry_after": data.RetryAfter,
		},
	}
}

func BadRequestResult(message string, fields Fields) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Fields:     fields,
	}
}

func UnauthorizedResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

func NotFoundResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func InternalServerErrorResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
	}
}

func ErrorResult(statusCode int, message string, fields Fields) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Message:    message,
		Fields:     fields,
	}
}

// AppErrorResult converts a service error into a response using the
// AppError taxonomy. Store failures come out as a generic 500.
func AppErrorResult(err error) *ServiceResult {
	return ErrorResult(
		apperrors.HTTPStatusCode(err),
		apperrors.GetHumanReadableMessage(err),
		nil,
	)
}

func ParseIDParam(ctx *RequestContext, paramName string) (uint, *ServiceResult) {
	logger := GetLogger(ctx)

	idParam := ctx.Param(paramName)
	id, err := strconv.ParseUint(idParam, 10, 32)

	if err != nil {
		logger.Error("Invalid ID parameter", "param", paramName, "value", idParam, "error", err)
		return 0, BadRequestResult("Invalid ID parameter", nil)
	}

	return uint(id), nil
}
