package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/internal/domain/repository"
)

type state struct {
	users    map[int64]entity.User
	movies   map[int64]entity.Movie
	opinions map[int64]entity.MovieOpinion

	nextUserID    int64
	nextMovieID   int64
	nextOpinionID int64
}

func newState() *state {
	return &state{
		users:    map[int64]entity.User{},
		movies:   map[int64]entity.Movie{},
		opinions: map[int64]entity.MovieOpinion{},
	}
}

func (s *state) clone() *state {
	c := *s
	c.users = make(map[int64]entity.User, len(s.users))
	for k, v := range s.users {
		c.users[k] = v
	}
	c.movies = make(map[int64]entity.Movie, len(s.movies))
	for k, v := range s.movies {
		c.movies[k] = v
	}
	c.opinions = make(map[int64]entity.MovieOpinion, len(s.opinions))
	for k, v := range s.opinions {
		c.opinions[k] = v
	}
	return &c
}

// Store keeps all data in process memory. Transactions are serialized behind
// one mutex and roll back by restoring a snapshot.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// access runs fn against the current state, taking the lock unless the caller
// already holds it inside WithinTx.
type access func(fn func(st *state) error) error

func (s *Store) locked(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) repos(do access) repository.Repositories {
	return repository.Repositories{
		Users:    &UserRepository{do: do, now: s.now},
		Movies:   &MovieRepository{do: do},
		Opinions: &OpinionRepository{do: do},
	}
}

func (s *Store) Repos() repository.Repositories {
	return s.repos(s.locked)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	inTx := func(f func(st *state) error) error { return f(s.st) }
	if err := fn(ctx, s.repos(inTx)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// DeleteUser removes a user and everything they own. Votes the user cast are
// taken off the movie counters, as the users delete trigger does in Postgres.
func (s *Store) DeleteUser(id int64) {
	_ = s.locked(func(st *state) error {
		delete(st.users, id)
		for oid, o := range st.opinions {
			if o.UserID == id {
				if m, ok := st.movies[o.MovieID]; ok {
					m.Apply(entity.RetractDelta(o.Opinion))
					st.movies[o.MovieID] = m
				}
				delete(st.opinions, oid)
			}
		}
		for mid, m := range st.movies {
			if m.UserID != id {
				continue
			}
			for oid, o := range st.opinions {
				if o.MovieID == mid {
					delete(st.opinions, oid)
				}
			}
			delete(st.movies, mid)
		}
		return nil
	})
}

var _ repository.Store = (*Store)(nil)
