package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the wire format of every response the service emits.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Fail writes an error envelope.
func Fail(c *gin.Context, status int, code, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, Envelope{Success: false, Error: &ErrorBody{Code: code, Message: message, Details: details}})
}

// ValidationFailed reports field-level validation failures. Emitted before
// the controller is ever invoked.
func ValidationFailed(c *gin.Context, details any) {
	Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", details)
}
