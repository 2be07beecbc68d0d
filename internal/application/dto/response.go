// Package dto defines the HTTP response envelope and export encodings.
package dto

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbom/bomsight/pkg/constants"
	"github.com/openbom/bomsight/pkg/errors"
)

// APIResponse is the uniform envelope for every JSON endpoint.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	TraceID   string      `json:"traceId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorInfo is the serialized error payload.
type ErrorInfo struct {
	Code        constants.ErrorCode `json:"code"`
	Message     string              `json:"message"`
	Description string              `json:"description,omitempty"`
	Details     map[string]string   `json:"details,omitempty"`
}

// SendSuccess writes a 200 envelope with the given payload.
func SendSuccess(c *gin.Context, data interface{}) {
	SendSuccessWithStatus(c, http.StatusOK, data)
}

// SendSuccessWithStatus writes a success envelope with an explicit status.
func SendSuccessWithStatus(c *gin.Context, status int, data interface{}) {
	c.JSON(status, APIResponse{
		Success:   true,
		Data:      data,
		TraceID:   traceIDFrom(c),
		Timestamp: time.Now().UTC(),
	})
}

// SendError writes an error envelope. Application errors carry their own
// HTTP status; anything else is a 500 with a generic message so internal
// detail does not leak to clients.
func SendError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.ErrInternalServer.WithError(err)
	}

	c.JSON(appErr.HTTPStatus(), APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:        appErr.Code,
			Message:     appErr.Message,
			Description: appErr.Description,
			Details:     appErr.Details,
		},
		TraceID:   traceIDFrom(c),
		Timestamp: time.Now().UTC(),
	})
}

func traceIDFrom(c *gin.Context) string {
	if v, ok := c.Get(string(constants.ContextKeyRequestID)); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
