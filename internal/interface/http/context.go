package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/movierama/internal/domain/apperror"
	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/internal/interface/middleware"
)

var errMissingPrincipal = apperror.Authentication("principal is missing")

// principal returns the authenticated identity, or attaches an error and
// aborts when the route was not behind the gate.
func principal(c *gin.Context) (entity.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		_ = c.Error(errMissingPrincipal)
		c.Abort()
	}
	return p, ok
}
