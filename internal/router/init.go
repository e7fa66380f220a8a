package router

import (
	"net/http"

	"github.com/oksasatya/movierama/internal/application"
	"github.com/oksasatya/movierama/internal/container"
	handlers "github.com/oksasatya/movierama/internal/interface/http"
	"github.com/oksasatya/movierama/internal/interface/middleware"
	"github.com/oksasatya/movierama/internal/router/modules"
	"github.com/oksasatya/movierama/pkg/helpers"
)

const debugVarsPath = "/api/debug/vars"

type AppDeps struct {
	Gate     *application.Gate
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Movies   *handlers.MovieHandler
	Opinions *handlers.OpinionHandler
}

func buildDeps() AppDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	store := container.GetStore()
	tokens := container.GetTokens()

	public := make([]application.Route, 0, len(application.PublicRoutes)+1)
	public = append(public, application.PublicRoutes...)
	if cfg.DebugMetricsEnabled {
		public = append(public, application.Route{Method: http.MethodGet, Path: debugVarsPath})
	}

	var posters application.PosterStorage
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		posters = helpers.NewGCSUploader(gcs, cfg.GCSBucket)
	}

	authSvc := application.NewAuthService(store.Repos().Users, tokens, container.GetHasher(), logger)
	userSvc := application.NewUserService(store.Repos().Users)
	movieSvc := application.NewMovieService(store, logger, container.GetES(), cfg.ESMoviesIndex, posters)
	opinionSvc := application.NewOpinionService(store, logger)

	return AppDeps{
		Gate:     application.NewGate(tokens, store.Repos().Users, public),
		Auth:     handlers.NewAuthHandler(authSvc, logger),
		Users:    handlers.NewUserHandler(userSvc),
		Movies:   handlers.NewMovieHandler(movieSvc, logger),
		Opinions: handlers.NewOpinionHandler(opinionSvc),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	logger := container.GetLogger()

	r.Use(middleware.ErrorHandler(logger), middleware.Authenticate(deps.Gate, logger))
	r.Add(modules.NewAuthModule(deps.Auth))
	r.Add(modules.NewUserModule(deps.Users))
	r.Add(modules.NewMovieModule(deps.Movies, deps.Opinions))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
