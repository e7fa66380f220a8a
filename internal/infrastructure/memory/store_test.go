package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/internal/domain/repository"
)

func seed(t *testing.T, s *Store) (*entity.User, *entity.Movie) {
	t.Helper()
	ctx := context.Background()
	r := s.Repos()
	u := &entity.User{Name: "alice", PasswordHash: "x"}
	require.NoError(t, r.Users.Create(ctx, u))
	m := &entity.Movie{Title: "Heat", Description: "LA crime", UserID: u.ID, Date: time.Now()}
	require.NoError(t, r.Movies.Create(ctx, m))
	return u, m
}

func TestUsers_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	r := s.Repos()

	u := &entity.User{Name: "alice", PasswordHash: "x"}
	require.NoError(t, r.Users.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	err := r.Users.Create(ctx, &entity.User{Name: "alice"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := r.Users.GetByName(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	missing, err := r.Users.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMovies_UniqueTitleAndListing(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u, m := seed(t, s)
	r := s.Repos()

	err := r.Movies.Create(ctx, &entity.Movie{Title: "Heat", UserID: u.ID})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	all, err := r.Movies.ListWithUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entity.PublicUser{Name: "alice", ID: u.ID}, all[0].PostedBy)

	byUser, err := r.Movies.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, m.ID, byUser[0].ID)

	none, err := r.Movies.ListByUser(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMovies_ApplyDeltaRejectsNegative(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, m := seed(t, s)
	r := s.Repos()

	n, err := r.Movies.ApplyDelta(ctx, m.ID, entity.InsertDelta(entity.Like))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = r.Movies.ApplyDelta(ctx, m.ID, entity.RetractDelta(entity.Hate))
	assert.Error(t, err)

	got, _ := r.Movies.GetByID(ctx, m.ID)
	assert.Equal(t, 1, got.Likes)
	assert.Equal(t, 0, got.Hates)

	n, err = r.Movies.ApplyDelta(ctx, 999, entity.InsertDelta(entity.Like))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpinions_UniquePerUserAndMovie(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u, m := seed(t, s)
	r := s.Repos()

	o := &entity.MovieOpinion{Opinion: entity.Like, UserID: u.ID, MovieID: m.ID}
	require.NoError(t, r.Opinions.Insert(ctx, o))

	err := r.Opinions.Insert(ctx, &entity.MovieOpinion{Opinion: entity.Hate, UserID: u.ID, MovieID: m.ID})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	n, err := r.Opinions.UpdateTag(ctx, o.ID, entity.Like)
	require.NoError(t, err)
	assert.Zero(t, n, "same tag must not count as an update")

	n, err = r.Opinions.UpdateTag(ctx, o.ID, entity.Hate)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := r.Opinions.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []entity.UserMovieOpinion{{Opinion: entity.Hate, MovieID: m.ID}}, list)

	n, err = r.Opinions.Delete(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = r.Opinions.Delete(ctx, o.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u, m := seed(t, s)
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		require.NoError(t, tx.Opinions.Insert(ctx, &entity.MovieOpinion{Opinion: entity.Like, UserID: u.ID, MovieID: m.ID}))
		_, err := tx.Movies.ApplyDelta(ctx, m.ID, entity.InsertDelta(entity.Like))
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	r := s.Repos()
	got, _ := r.Movies.GetByID(ctx, m.ID)
	assert.Equal(t, 0, got.Likes)
	likes, hates, err := r.Opinions.CountByMovie(ctx, m.ID)
	require.NoError(t, err)
	assert.Zero(t, likes+hates)
}

func TestWithinTx_Commits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u, m := seed(t, s)

	err := s.WithinTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		if err := tx.Opinions.Insert(ctx, &entity.MovieOpinion{Opinion: entity.Hate, UserID: u.ID, MovieID: m.ID}); err != nil {
			return err
		}
		_, err := tx.Movies.ApplyDelta(ctx, m.ID, entity.InsertDelta(entity.Hate))
		return err
	})
	require.NoError(t, err)

	got, _ := s.Repos().Movies.GetByID(ctx, m.ID)
	assert.Equal(t, 1, got.Hates)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u, _ := seed(t, s)

	s.DeleteUser(u.ID)

	got, err := s.Repos().Users.GetByName(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got)
	movies, _ := s.Repos().Movies.ListWithUsers(ctx)
	assert.Empty(t, movies)
}

func TestDeleteUser_RevertsVoterCounters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, m := seed(t, s)
	r := s.Repos()

	bob := &entity.User{Name: "bob", PasswordHash: "x"}
	require.NoError(t, r.Users.Create(ctx, bob))
	require.NoError(t, r.Opinions.Insert(ctx, &entity.MovieOpinion{Opinion: entity.Like, UserID: bob.ID, MovieID: m.ID}))
	_, err := r.Movies.ApplyDelta(ctx, m.ID, entity.InsertDelta(entity.Like))
	require.NoError(t, err)

	s.DeleteUser(bob.ID)

	got, err := r.Movies.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)
	likes, hates, err := r.Opinions.CountByMovie(ctx, m.ID)
	require.NoError(t, err)
	assert.Zero(t, likes+hates)
}
