package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fiap-postech/auth-service/pkg/apperror"
	"github.com/fiap-postech/auth-service/pkg/response"
)

// ErrorHandler is the single point translating errors pushed into the Gin
// error chain to HTTP responses. Typed errors keep their status, code and
// message; anything untyped becomes a uniform 500 whose real message leaks
// only in development.
func ErrorHandler(logger *logrus.Logger, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			if !appErr.Operational {
				logger.WithError(err).WithField("path", c.Request.URL.Path).Error("non-operational error")
			}
			response.Fail(c, appErr.Status(), appErr.Code(), appErr.Message, nil)
			return
		}

		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled error")
		msg := "internal server error"
		if env == "development" {
			msg = err.Error()
		}
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", msg, nil)
	}
}

// NotFound answers unmatched routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "NOT_FOUND",
			"Route "+c.Request.Method+" "+c.Request.URL.Path+" not found", nil)
	}
}
