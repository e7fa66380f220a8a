package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movierama/internal/application"
	"github.com/oksasatya/movierama/internal/domain/entity"
)

const (
	CtxPrincipalKey = "principal"
	CtxUserIDKey    = "userID"
)

// Authenticate runs every request through the gate. Rejected requests are
// aborted with the gate error attached for ErrorHandler. On success the
// principal and userID are set in the Gin context.
func Authenticate(gate *application.Gate, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := gate.Resolve(c.Request.Context(), c.Request.Method, c.FullPath(), c.GetHeader("Authorization"))
		if !d.Allowed() {
			if logger != nil {
				logger.WithFields(logrus.Fields{
					"request_id": c.GetString("request_id"),
					"method":     c.Request.Method,
					"path":       c.FullPath(),
					"reached":    d.Reached.String(),
				}).WithError(d.Err).Debug("request rejected")
			}
			_ = c.Error(d.Err)
			c.Abort()
			return
		}
		if d.Principal != nil {
			c.Set(CtxPrincipalKey, *d.Principal)
			c.Set(CtxUserIDKey, strconv.FormatInt(d.Principal.ID, 10))
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal set by Authenticate.
func PrincipalFrom(c *gin.Context) (entity.Principal, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return entity.Principal{}, false
	}
	p, ok := v.(entity.Principal)
	return p, ok
}
