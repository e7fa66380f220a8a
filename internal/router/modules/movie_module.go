package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/movierama/internal/container"
	handlers "github.com/oksasatya/movierama/internal/interface/http"
	"github.com/oksasatya/movierama/internal/interface/middleware"
)

// MovieModule wires movie and opinion routes under /api/movies.
// Reads on the list, per-user list and search are public, the rest need a
// bearer token (enforced by the gate, not here).
type MovieModule struct {
	Movies   *handlers.MovieHandler
	Opinions *handlers.OpinionHandler
}

func NewMovieModule(movies *handlers.MovieHandler, opinions *handlers.OpinionHandler) *MovieModule {
	return &MovieModule{Movies: movies, Opinions: opinions}
}

func (m *MovieModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	readLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil)
	writeLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil)

	movies := rg.Group("/movies")
	movies.Use(readLimiter)
	{
		movies.GET("", m.Movies.FindAll)
		movies.GET("/search", m.Movies.Search)
		movies.GET("/opinions/all", m.Opinions.List)
		movies.GET("/:name", m.Movies.FindByTitle)
		movies.GET("/:name/all", m.Movies.FindAllByUser)

		movies.POST("", writeLimiter, m.Movies.Register)
		movies.POST("/opinion", writeLimiter, m.Opinions.Post)
		movies.POST("/opinion/retract", writeLimiter, m.Opinions.Retract)
		movies.POST("/:name/poster", writeLimiter, m.Movies.UploadPoster)
	}
}
