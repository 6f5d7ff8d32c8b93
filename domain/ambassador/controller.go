package ambassador

import (
	"errors"

	"github.com/akeren/teamup-site/config/router"
	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/internal/session"
	apperrors "github.com/akeren/teamup-site/pkg/errors"
	"github.com/akeren/teamup-site/pkg/ratelimit"
)

// FormName labels ambassador submissions in metrics.
const FormName = "ambassador"

func NewApplicationController(service ApplicationService, submissionLimiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewRESTController(
		"AmbassadorController",
		"/api/ambassador",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, submissionLimiter, "", submitApplicationHandler(rs, service))
		},
	)
}

func NewApplicationAdminController(service ApplicationService, sessions session.Loader) *router.RESTController {
	return router.NewRESTController(
		"AmbassadorAdminController",
		"/api/admin/ambassador",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddGetHandler(c, nil, "", session.Protect(sessions, listApplicationsHandler(service)))
			rs.AddPostHandler(c, nil, "/:id/toggle-sent", session.Protect(sessions, toggleSentHandler(service)))
			rs.AddPostHandler(c, nil, "/:id/delete", session.Protect(sessions, deleteApplicationHandler(service)))
		},
	)
}

func submitApplicationHandler(rs *router.RouterService, service ApplicationService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SubmitApplicationRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind request", "error", err)
			rs.RecordSubmission(FormName, "invalid")

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult(msgInvalidBody, router.Fields{"errors": validationErrors})
			}
			return router.BadRequestResult(msgInvalidBody, nil)
		}

		if _, err := service.Submit(ctx.Request.Context(), &req); err != nil {
			var validationErr *ValidationError
			if errors.As(err, &validationErr) {
				rs.RecordSubmission(FormName, "invalid")
				return router.BadRequestResult(validationErr.Message, router.Fields{"errors": validationErr.Fields})
			}

			rs.RecordSubmission(FormName, "error")
			return router.AppErrorResult(err)
		}

		rs.RecordSubmission(FormName, "created")
		return router.OKResult(msgSubmitted, nil)
	}
}

func listApplicationsHandler(service ApplicationService) session.ProtectedHandler {
	return func(ctx *router.RequestContext, _ *session.State) *router.ServiceResult {
		filter := models.ParseSentFilter(ctx.Query("filter"))

		apps, err := service.ListApplications(ctx.Request.Context(), filter)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.OKResult("", router.Fields{
			"filter":       filter,
			"applications": apps,
		})
	}
}

func toggleSentHandler(service ApplicationService) session.ProtectedHandler {
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

func deleteApplicationHandler(service ApplicationService) session.ProtectedHandler {
	return func(ctx *router.RequestContext, _ *session.State) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		if err := service.DeleteApplication(ctx.Request.Context(), id); err != nil {
			return router.AppErrorResult(err)
		}

		return router.OKResult("", nil)
	}
}
