//go:build integration

package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/internal/domain/repository"
	"github.com/oksasatya/movierama/pkg/helpers"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("movierama"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dir, err := filepath.Abs("../../../db/migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(dsn, dir, helpers.NewDiscardLogger()))

	pool, err := NewPool(ctx, dsn, 10, 1, time.Hour)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewStore(pool)
}

func createUser(t *testing.T, s *Store, name string) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, PasswordHash: "hash"}
	require.NoError(t, s.Repos().Users.Create(context.Background(), u))
	return u
}

func TestStore_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	r := s.Repos()

	alice := createUser(t, s, "alice")
	assert.Positive(t, alice.ID)

	err := r.Users.Create(ctx, &entity.User{Name: "alice", PasswordHash: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	m := &entity.Movie{Title: "Heat", Description: "crime", UserID: alice.ID, Date: time.Now()}
	require.NoError(t, r.Movies.Create(ctx, m))
	err = r.Movies.Create(ctx, &entity.Movie{Title: "Heat", UserID: alice.ID, Date: time.Now()})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	bob := createUser(t, s, "bob")
	require.NoError(t, r.Opinions.Insert(ctx, &entity.MovieOpinion{Opinion: entity.Like, UserID: bob.ID, MovieID: m.ID}))
	err = r.Opinions.Insert(ctx, &entity.MovieOpinion{Opinion: entity.Hate, UserID: bob.ID, MovieID: m.ID})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestStore_LookupsReturnNilWhenAbsent(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	r := s.Repos()

	u, err := r.Users.GetByName(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)

	m, err := r.Movies.GetByTitle(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, m)

	o, err := r.Opinions.GetForUpdate(ctx, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestStore_CountersAndListing(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	r := s.Repos()

	alice := createUser(t, s, "alice")
	m := &entity.Movie{Title: "Heat", Description: "crime", UserID: alice.ID, Date: time.Now()}
	require.NoError(t, r.Movies.Create(ctx, m))

	n, err := r.Movies.ApplyDelta(ctx, m.ID, entity.InsertDelta(entity.Like))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = r.Movies.ApplyDelta(ctx, m.ID, entity.RetractDelta(entity.Hate))
	assert.Error(t, err, "check constraint must reject negative counters")

	require.NoError(t, r.Movies.SetPosterURL(ctx, m.ID, "https://example.test/p.png"))

	all, err := r.Movies.ListWithUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entity.PublicUser{Name: "alice", ID: alice.ID}, all[0].PostedBy)
	assert.Equal(t, 1, all[0].Likes)
	assert.Equal(t, "https://example.test/p.png", all[0].PosterURL)
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	m := &entity.Movie{Title: "Heat", UserID: alice.ID, Date: time.Now()}
	require.NoError(t, s.Repos().Movies.Create(ctx, m))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		if err := tx.Opinions.Insert(ctx, &entity.MovieOpinion{Opinion: entity.Like, UserID: bob.ID, MovieID: m.ID}); err != nil {
			return err
		}
		if _, err := tx.Movies.ApplyDelta(ctx, m.ID, entity.InsertDelta(entity.Like)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Repos().Movies.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)
	likes, hates, err := s.Repos().Opinions.CountByMovie(ctx, m.ID)
	require.NoError(t, err)
	assert.Zero(t, likes+hates)
}

func TestStore_ConcurrentDeltasDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	alice := createUser(t, s, "alice")
	m := &entity.Movie{Title: "Heat", UserID: alice.ID, Date: time.Now()}
	require.NoError(t, s.Repos().Movies.Create(ctx, m))

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Repos().Movies.ApplyDelta(ctx, m.ID, entity.InsertDelta(entity.Like))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Repos().Movies.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.Likes)
}

func TestStore_DeleteUserRevertsCounters(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	r := s.Repos()

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	carol := createUser(t, s, "carol")
	heat := &entity.Movie{Title: "Heat", UserID: alice.ID, Date: time.Now()}
	require.NoError(t, r.Movies.Create(ctx, heat))
	alien := &entity.Movie{Title: "Alien", UserID: bob.ID, Date: time.Now()}
	require.NoError(t, r.Movies.Create(ctx, alien))

	vote := func(u *entity.User, m *entity.Movie, tag entity.Opinion) {
		require.NoError(t, r.Opinions.Insert(ctx, &entity.MovieOpinion{Opinion: tag, UserID: u.ID, MovieID: m.ID}))
		_, err := r.Movies.ApplyDelta(ctx, m.ID, entity.InsertDelta(tag))
		require.NoError(t, err)
	}
	vote(bob, heat, entity.Like)
	vote(carol, heat, entity.Hate)
	vote(alice, alien, entity.Like)

	_, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, bob.ID)
	require.NoError(t, err)

	got, err := r.Movies.GetByID(ctx, heat.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)
	assert.Equal(t, 1, got.Hates)
	likes, hates, err := r.Opinions.CountByMovie(ctx, heat.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Likes, likes)
	assert.Equal(t, got.Hates, hates)

	gone, err := r.Movies.GetByID(ctx, alien.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "movies cascade with their poster")
}
