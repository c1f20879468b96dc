package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenkart/greenkart-api/pkg/apperr"
)

type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Errors    any       `json:"errors,omitempty"`
}

func Success[T any](c *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	})
}

func Error[T any](c *gin.Context, status int, message string, errs any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   false,
		Message:   message,
		Errors:    errs,
	})
}

// AbortError renders an error envelope and aborts the handler chain.
func AbortError(c *gin.Context, status int, message string, errs any) {
	Error[any](c, status, message, errs)
	c.Abort()
}

// FromError maps a service error onto the envelope. Unknown errors become a
// generic 500 so internals never leak.
func FromError(c *gin.Context, err error) {
	ae := apperr.From(err)
	Error[any](c, ae.Status, ae.Message, ae.Details)
}
