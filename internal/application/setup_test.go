package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/internal/infrastructure/memory"
	"github.com/oksasatya/movierama/pkg/helpers"
)

type testEnv struct {
	store    *memory.Store
	tokens   *helpers.TokenManager
	auth     *AuthService
	users    *UserService
	movies   *MovieService
	opinions *OpinionService
	gate     *Gate
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := helpers.NewDiscardLogger()
	store := memory.NewStore()
	tokens := helpers.NewTokenManager("test-secret", "movierama", time.Hour)
	hasher := helpers.NewPasswordHasher("pepper", bcrypt.MinCost)
	users := store.Repos().Users
	return &testEnv{
		store:    store,
		tokens:   tokens,
		auth:     NewAuthService(users, tokens, hasher, logger),
		users:    NewUserService(users),
		movies:   NewMovieService(store, logger, nil, "", nil),
		opinions: NewOpinionService(store, logger),
		gate:     NewGate(tokens, users, PublicRoutes),
	}
}

func (e *testEnv) register(t *testing.T, name string) entity.Principal {
	t.Helper()
	u, err := e.auth.Register(context.Background(), name, "password")
	require.NoError(t, err)
	return entity.Principal{Name: u.Name, ID: u.ID}
}

func (e *testEnv) postMovie(t *testing.T, p entity.Principal, title string) *entity.Movie {
	t.Helper()
	m, err := e.movies.Register(context.Background(), p, title, title+" description", 0)
	require.NoError(t, err)
	return m
}

func (e *testEnv) movie(t *testing.T, title string) *entity.Movie {
	t.Helper()
	m, err := e.movies.FindByTitle(context.Background(), title)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

// requireConsistent checks the counters against the opinion rows.
func (e *testEnv) requireConsistent(t *testing.T, movieID int64) {
	t.Helper()
	ctx := context.Background()
	r := e.store.Repos()
	m, err := r.Movies.GetByID(ctx, movieID)
	require.NoError(t, err)
	likes, hates, err := r.Opinions.CountByMovie(ctx, movieID)
	require.NoError(t, err)
	require.Equal(t, likes, m.Likes, "likes counter")
	require.Equal(t, hates, m.Hates, "hates counter")
}
