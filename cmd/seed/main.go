package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/movierama/config"
	"github.com/oksasatya/movierama/internal/application"
	"github.com/oksasatya/movierama/internal/domain/entity"
	pginfra "github.com/oksasatya/movierama/internal/infrastructure/postgres"
	"github.com/oksasatya/movierama/pkg/helpers"
)

type seedMovie struct {
	poster      string
	title       string
	description string
}

type seedOpinion struct {
	user    string
	title   string
	opinion entity.Opinion
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	store := pginfra.NewStore(pool)
	tokens := helpers.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := helpers.NewPasswordHasher(cfg.PasswordSalt, cfg.BcryptCost)
	auth := application.NewAuthService(store.Repos().Users, tokens, hasher, logger)
	movies := application.NewMovieService(store, logger, nil, "", nil)
	opinions := application.NewOpinionService(store, logger)

	password := "password123"
	principals := map[string]entity.Principal{}
	for _, name := range []string{"alice", "bob", "carol"} {
		u, err := auth.Register(ctx, name, password)
		switch {
		case errors.Is(err, application.ErrNameTaken):
			u, err = store.Repos().Users.GetByName(ctx, name)
			if err != nil || u == nil {
				log.Fatalf("failed to load user %s: %v", name, err)
			}
		case err != nil:
			log.Fatalf("failed to seed user %s: %v", name, err)
		}
		principals[name] = entity.Principal{Name: u.Name, ID: u.ID}
		fmt.Printf("seeded user: id=%d name=%s password=%s\n", u.ID, u.Name, password)
	}

	for _, m := range []seedMovie{
		{"alice", "The Matrix", "A hacker learns the world is a simulation."},
		{"alice", "Heat", "A detective hunts a crew of professional thieves."},
		{"bob", "Alien", "A salvage crew meets something in the dark."},
	} {
		p := principals[m.poster]
		_, err := movies.Register(ctx, p, m.title, m.description, 0)
		if err != nil && !errors.Is(err, application.ErrTitleTaken) {
			log.Fatalf("failed to seed movie %q: %v", m.title, err)
		}
		fmt.Printf("seeded movie: %q by %s\n", m.title, m.poster)
	}

	for _, o := range []seedOpinion{
		{"bob", "The Matrix", entity.Like},
		{"carol", "The Matrix", entity.Like},
		{"carol", "Heat", entity.Hate},
		{"alice", "Alien", entity.Like},
	} {
		err := opinions.PostOpinion(ctx, principals[o.user], o.title, o.opinion)
		if err != nil && !errors.Is(err, application.ErrAlreadyVoted) {
			log.Fatalf("failed to seed opinion %s on %q: %v", o.user, o.title, err)
		}
	}
	fmt.Println("seeded opinions")
}
