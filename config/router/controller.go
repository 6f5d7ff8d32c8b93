package router

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/akeren/teamup-site/pkg/ratelimit"
)

func normalizePath(controller *RESTController, relativePath string) string {
	var path string = controller.mountPoint

	if relativePath != "" {
		path = path + "/" + relativePath
	}

	if path[0] != '/' {
		path = "/" + path
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	return strings.ReplaceAll(path, "//", "/")
}

func (routerService *RouterService) keyForPathAndMethod(path, method string) string {
	return fmt.Sprintf("%s-%s", method, path)
}

func (controller *RESTController) bindHandlerToController(routerService *RouterService, path, method string) {
	key := routerService.keyForPathAndMethod(path, method)
	otherController, foundPrevious := routerService.handlerToControllerMap[key]

	if foundPrevious {
		panic(fmt.Sprintf("A handler is already registered for path '%s' by a different controller '%s'", path, otherController.name))
	}

	routerService.handlerToControllerMap[key] = controller
}

func (routerService *RouterService) bindOverrideRateLimiter(path string, limiter ratelimit.RateLimiter) {
	if limiter == nil {
		return
	}

	_, foundPrevious := routerService.rateLimitOverrides[path]
	if foundPrevious {
		panic(fmt.Sprintf("A rate limiter is already registered for path '%s'", path))
	}

	routerService.rateLimitOverrides[path] = limiter
}

func (routerService *RouterService) bindHandlerRateLimiter(path, method string, limiter ratelimit.RateLimiter) {
	key := routerService.keyForPathAndMethod(path, method)
	routerService.bindOverrideRateLimiter(key, limiter)
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("A handler returned an undefined result. This typically indicates a bug in a handler's implementation.").ToJSON())
			return
		}

		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	mountPoint = strings.ReplaceAll("/"+mountPoint, "//", "/")

	return &RESTController{
		name:       name,
		mountPoint: mountPoint,
		prepare:    prepare,
	}
}

// RateLimitWith applies limiter to every handler of the controller that has
// no handler-level limiter of its own.
func (controller *RESTController) RateLimitWith(routerService *RouterService, limiter ratelimit.RateLimiter) *RESTController {
	routerService.bindOverrideRateLimiter(controller.mountPoint, limiter)
	return controller
}

func (routerService *RouterService) addRoute(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	method string,
	path string,
	handlers []MiddlewareFunc,
) {
	controller.handlerCount++
	mountPoint := normalizePath(controller, path)
	controller.bindHandlerToController(routerService, mountPoint, method)
	routerService.bindHandlerRateLimiter(mountPoint, method, limiter)
	routerService.engine.Handle(method, mountPoint, handlers...)
	routerService.logger.Debug("Handler registered", "method", method, "path", mountPoint)
}

func (routerService *RouterService) AddPostHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addRoute(controller, limiter, http.MethodPost, path, append(middlewares, createHandler(handler)))
}

func (routerService *RouterService) AddGetHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addRoute(controller, limiter, http.MethodGet, path, append(middlewares, createHandler(handler)))
}

// AddRawGetHandler registers a handler that writes its own response, such as
// a rendered page or a static file. It still goes through the controller
// mapping so rate limiting applies.
func (routerService *RouterService) AddRawGetHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler MiddlewareFunc,
) {
	routerService.addRoute(controller, limiter, http.MethodGet, path, []MiddlewareFunc{handler})
}

func (routerService *RouterService) AddRawPostHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler MiddlewareFunc,
) {
	routerService.addRoute(controller, limiter, http.MethodPost, path, []MiddlewareFunc{handler})
}

func (routerService *RouterService) SetHTMLTemplate(tmpl *template.Template) {
	routerService.engine.SetHTMLTemplate(tmpl)
}
