package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// Fields are merged into the top level of a JSON response body.
type Fields = gin.H

type ServiceResult struct {
	StatusCode int
	Message    string
	Fields     Fields
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

// ToJSON renders {"success": ..., "message": ..., <fields>}. A message is
// omitted when empty; fields never override success.
func (result *ServiceResult) ToJSON() gin.H {
	body := gin.H{}
	for k, v := range result.Fields {
		body[k] = v
	}

	body["success"] = result.IsSuccess()
	if result.Message != "" {
		body["message"] = result.Message
	}

	return body
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}
