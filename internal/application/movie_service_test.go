package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/movierama/internal/domain/apperror"
	"github.com/oksasatya/movierama/pkg/helpers"
)

func TestMovieService_Register(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.register(t, "A")
	b := env.register(t, "B")
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC)
	env.movies.Now = func() time.Time { return fixed }

	m, err := env.movies.Register(ctx, a, " Heat ", "LA crime", 0)
	require.NoError(t, err)
	assert.Equal(t, "Heat", m.Title)
	assert.Equal(t, a.ID, m.UserID)
	assert.Equal(t, fixed.Truncate(time.Microsecond), m.Date)
	assert.Zero(t, m.Likes)
	assert.Zero(t, m.Hates)

	m, err = env.movies.Register(ctx, a, "Ronin", "", a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, m.UserID)

	_, err = env.movies.Register(ctx, a, "Heat", "again", 0)
	assert.ErrorIs(t, err, ErrTitleTaken)

	_, err = env.movies.Register(ctx, a, "Collateral", "", b.ID)
	assert.ErrorIs(t, err, ErrPosterMismatch)

	_, err = env.movies.Register(ctx, a, "   ", "", 0)
	assert.ErrorIs(t, err, ErrBlankTitle)
	assert.True(t, apperror.IsValidation(err))
}

func TestMovieService_Reads(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.register(t, "A")
	b := env.register(t, "B")
	env.postMovie(t, a, "Heat")
	env.postMovie(t, b, "Ronin")
	env.postMovie(t, a, "Thief")

	all, err := env.movies.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Heat", all[0].Title)
	assert.Equal(t, "A", all[0].PostedBy.Name)
	assert.Equal(t, b.ID, all[1].PostedBy.ID)

	byA, err := env.movies.FindAllByUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, byA, 2)
	assert.Equal(t, "Thief", byA[1].Title)

	missing, err := env.movies.FindByTitle(ctx, "Alien")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

type fakePosters struct {
	path        string
	contentType string
	body        []byte
	err         error
}

func (f *fakePosters) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.path, f.contentType, f.body = objectPath, contentType, b
	return helpers.PublicURL("posters-bucket", objectPath), nil
}

func TestMovieService_UploadPoster(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.register(t, "A")
	b := env.register(t, "B")
	m := env.postMovie(t, a, "Heat")

	_, err := env.movies.UploadPoster(ctx, a, "Heat", strings.NewReader("png"), "p.png", "image/png")
	assert.ErrorIs(t, err, ErrPostersDisabled)

	posters := &fakePosters{}
	env.movies.Posters = posters

	_, err = env.movies.UploadPoster(ctx, b, "Heat", strings.NewReader("png"), "p.png", "image/png")
	assert.ErrorIs(t, err, ErrNotMovieOwner)

	_, err = env.movies.UploadPoster(ctx, a, "Heat", strings.NewReader("%PDF"), "p.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = env.movies.UploadPoster(ctx, a, "Alien", strings.NewReader("png"), "p.png", "image/png")
	assert.ErrorIs(t, err, ErrMovieNotFound)

	got, err := env.movies.UploadPoster(ctx, a, "Heat", bytes.NewReader([]byte("png-bytes")), "Poster.PNG", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(posters.path, "posters/1/"))
	assert.True(t, strings.HasSuffix(posters.path, ".png"))
	assert.Equal(t, []byte("png-bytes"), posters.body)
	assert.Equal(t, "https://storage.googleapis.com/posters-bucket/"+posters.path, got.PosterURL)
	assert.Equal(t, got.PosterURL, env.movie(t, "Heat").PosterURL)
	assert.Equal(t, m.ID, got.ID)

	posters.err = errors.New("bucket unavailable")
	_, err = env.movies.UploadPoster(ctx, a, "Heat", strings.NewReader("png"), "p.png", "image/png")
	assert.Error(t, err)
	assert.False(t, apperror.IsValidation(err))
}

func TestMovieService_SearchDisabled(t *testing.T) {
	env := newTestEnv(t)
	hits, err := env.movies.Search(context.Background(), "heat", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func newFakeES(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu      sync.Mutex
		indexed []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/_search") {
			_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"1","_source":{"id":1,"title":"Heat","description":"LA crime","user_id":1,"date":"2026-01-01T00:00:00Z"}}]}}`)
			return
		}
		mu.Lock()
		indexed = append(indexed, r.Method+" "+r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), indexed...)
	}
}

func TestMovieService_IndexAndSearch(t *testing.T) {
	ctx := context.Background()
	srv, indexed := newFakeES(t)
	es, err := helpers.NewESClient([]string{srv.URL}, "", "")
	require.NoError(t, err)

	env := newTestEnv(t)
	env.movies.ES = es
	env.movies.ESMoviesIndex = "movies"
	a := env.register(t, "A")
	env.postMovie(t, a, "Heat")

	assert.Equal(t, []string{"PUT /movies/_doc/1"}, indexed())

	hits, err := env.movies.Search(ctx, "heat", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Heat", hits[0].Title)
	assert.Equal(t, int64(1), hits[0].UserID)

	hits, err = env.movies.Search(ctx, "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
