package session

import (
	"github.com/akeren/teamup-site/config/router"
	"github.com/gin-gonic/gin"
)

type Loader interface {
	Load(c *gin.Context) (*State, error)
}

type ProtectedHandler func(ctx *router.RequestContext, state *State) *router.ServiceResult

// Protect resolves the caller's session and runs handler only when it is an
// authenticated admin. Anything else is answered with 401 before the handler
// can touch the store.
func Protect(sessions Loader, handler ProtectedHandler) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		state, err := sessions.Load(ctx)
		if err != nil {
			router.GetLogger(ctx).Error("Failed to load admin session", "error", err)
			return router.AppErrorResult(err)
		}

		if RequireAdmin(state) != nil {
			router.GetLogger(ctx).Warn("Rejected unauthenticated admin request", "path", ctx.FullPath())
			return router.UnauthorizedResult(msgUnauthorized)
		}

		return handler(ctx, state)
	}
}
