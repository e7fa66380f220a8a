package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/movierama/internal/container"
	handlers "github.com/oksasatya/movierama/internal/interface/http"
	"github.com/oksasatya/movierama/internal/interface/middleware"
)

// UserModule exposes user lookups. Every route is behind the gate.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		users.GET("/:id", m.Handler.FindByID)
	}
}
