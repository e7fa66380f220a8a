package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movierama/internal/domain/apperror"
	"github.com/oksasatya/movierama/pkg/response"
)

const (
	msgUnauthorized = "unauthorized"
	msgInternal     = "internal server error"
)

// ErrorHandler turns the last error attached with c.Error into the JSON error
// body. Validation errors keep their message, authentication errors are
// opaque, and anything else is logged and hidden behind a 500.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		fields := logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}

		var ae *apperror.Error
		if errors.As(err, &ae) {
			switch ae.Kind {
			case apperror.KindValidation:
				response.Error(c, http.StatusBadRequest, ae.Message)
				return
			case apperror.KindAuthentication:
				if logger != nil {
					logger.WithFields(fields).WithError(err).Debug("authentication failed")
				}
				response.Error(c, http.StatusUnauthorized, msgUnauthorized)
				return
			}
		}

		if logger != nil {
			logger.WithFields(fields).WithError(err).Error("unhandled error")
		}
		response.Error(c, http.StatusInternalServerError, msgInternal)
	}
}
