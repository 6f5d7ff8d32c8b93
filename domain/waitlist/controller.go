package waitlist

import (
	"github.com/akeren/teamup-site/config/router"
	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/internal/session"
	apperrors "github.com/akeren/teamup-site/pkg/errors"
	"github.com/akeren/teamup-site/pkg/ratelimit"
)

// FormName labels waitlist submissions in metrics.
const FormName = "waitlist"

func NewWaitlistController(service WaitlistService, submissionLimiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewRESTController(
		"WaitlistController",
		"/api/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, submissionLimiter, "", joinWaitlistHandler(rs, service))
		},
	)
}

func NewWaitlistAdminController(service WaitlistService, sessions session.Loader) *router.RESTController {
	return router.NewRESTController(
		"WaitlistAdminController",
		"/api/admin/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddGetHandler(c, nil, "", session.Protect(sessions, listEntriesHandler(service)))
			rs.AddPostHandler(c, nil, "/:id/toggle-sent", session.Protect(sessions, toggleSentHandler(service)))
			rs.AddPostHandler(c, nil, "/:id/delete", session.Protect(sessions, deleteEntryHandler(service)))
		},
	)
}

func joinWaitlistHandler(rs *router.RouterService, service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req JoinWaitlistRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind request", "error", err)
			rs.RecordSubmission(FormName, "invalid")
			return router.BadRequestResult(msgInvalidEmail, nil)
		}

		if _, err := service.Join(ctx.Request.Context(), &req); err != nil {
			rs.RecordSubmission(FormName, outcomeFor(err))
			return router.AppErrorResult(err)
		}

		rs.RecordSubmission(FormName, "created")
		return router.OKResult(msgJoined, nil)
	}
}

func listEntriesHandler(service WaitlistService) session.ProtectedHandler {
	return func(ctx *router.RequestContext, _ *session.State) *router.ServiceResult {
		filter := models.ParseSentFilter(ctx.Query("filter"))

		entries, err := service.ListEntries(ctx.Request.Context(), filter)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.OKResult("", router.Fields{
			"filter":  filter,
			"entries": entries,
		})
	}
}

func toggleSentHandler(service WaitlistService) session.ProtectedHandler {
	return func(ctx *router.RequestContext, _ *session.State) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		sent, err := service.ToggleSent(ctx.Request.Context(), id)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.OKResult("", router.Fields{"sent": sent})
	}
}

func deleteEntryHandler(service WaitlistService) session.ProtectedHandler {
	return func(ctx *router.RequestContext, _ *session.State) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		if err := service.DeleteEntry(ctx.Request.Context(), id); err != nil {
			return router.AppErrorResult(err)
		}

		return router.OKResult("", nil)
	}
}

func outcomeFor(err error) string {
	switch apperrors.GetErrorType(err) {
	case apperrors.ErrorTypeInvalidRequest:
		return "invalid"
	case apperrors.ErrorTypeDuplicateEntry:
		return "duplicate"
	default:
		return "error"
	}
}
