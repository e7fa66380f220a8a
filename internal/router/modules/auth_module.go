package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/movierama/internal/container"
	handlers "github.com/oksasatya/movierama/internal/interface/http"
	"github.com/oksasatya/movierama/internal/interface/middleware"
)

// AuthModule serves the public credential endpoints.
// POST /api/auth/register, POST /api/auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil) // 10 req/min per IP

	auth := rg.Group("/auth")
	{
		auth.POST("/register", registerLimiter, m.Handler.Register)
		auth.POST("/login", loginLimiter, m.Handler.Login)
	}
}
