package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/internal/domain/repository"
)

var errNegativeCounter = errors.New("movie counters must not be negative")

type MovieRepository struct {
	do access
}

func (r *MovieRepository) Create(_ context.Context, m *entity.Movie) error {
	return r.do(func(st *state) error {
		for _, existing := range st.movies {
			if existing.Title == m.Title {
				return repository.ErrDuplicate
			}
		}
		if _, ok := st.users[m.UserID]; !ok {
			return errors.New("movie poster does not exist")
		}
		st.nextMovieID++
		m.ID = st.nextMovieID
		st.movies[m.ID] = *m
		return nil
	})
}

func (r *MovieRepository) GetByID(_ context.Context, id int64) (*entity.Movie, error) {
	var out *entity.Movie
	err := r.do(func(st *state) error {
		if m, ok := st.movies[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MovieRepository) GetByTitle(_ context.Context, title string) (*entity.Movie, error) {
	var out *entity.Movie
	err := r.do(func(st *state) error {
		for _, m := range st.movies {
			if m.Title == title {
				m := m
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *MovieRepository) ListWithUsers(_ context.Context) ([]entity.MovieWithUser, error) {
	out := []entity.MovieWithUser{}
	err := r.do(func(st *state) error {
		for _, m := range sortedMovies(st) {
			u, ok := st.users[m.UserID]
			if !ok {
				continue
			}
			out = append(out, entity.MovieWithUser{
				ID:          m.ID,
				Title:       m.Title,
				Description: m.Description,
				PostedBy:    u.Public(),
				Date:        m.Date,
				Likes:       m.Likes,
				Hates:       m.Hates,
				PosterURL:   m.PosterURL,
			})
		}
		return nil
	})
	return out, err
}

func (r *MovieRepository) ListByUser(_ context.Context, userID int64) ([]entity.Movie, error) {
	out := []entity.Movie{}
	err := r.do(func(st *state) error {
		for _, m := range sortedMovies(st) {
			if m.UserID == userID {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}

func (r *MovieRepository) ApplyDelta(_ context.Context, movieID int64, d entity.CounterDelta) (int64, error) {
	var n int64
	err := r.do(func(st *state) error {
		m, ok := st.movies[movieID]
		if !ok {
			return nil
		}
		m.Apply(d)
		if m.Likes < 0 || m.Hates < 0 {
			return errNegativeCounter
		}
		st.movies[movieID] = m
		n = 1
		return nil
	})
	return n, err
}

func (r *MovieRepository) SetPosterURL(_ context.Context, movieID int64, url string) error {
	return r.do(func(st *state) error {
		m, ok := st.movies[movieID]
		if !ok {
			return errors.New("movie not found")
		}
		m.PosterURL = url
		st.movies[movieID] = m
		return nil
	})
}

func sortedMovies(st *state) []entity.Movie {
	out := make([]entity.Movie, 0, len(st.movies))
	for _, m := range st.movies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ repository.MovieRepository = (*MovieRepository)(nil)
