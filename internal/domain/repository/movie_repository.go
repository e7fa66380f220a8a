package repository

import (
	"context"

	"github.com/oksasatya/movierama/internal/domain/entity"
)

// MovieRepository persists movies and their counters.
type MovieRepository interface {
	// Create assigns m.ID. Returns ErrDuplicate when the title is taken.
	Create(ctx context.Context, m *entity.Movie) error
	GetByID(ctx context.Context, id int64) (*entity.Movie, error)
	GetByTitle(ctx context.Context, title string) (*entity.Movie, error)
	ListWithUsers(ctx context.Context) ([]entity.MovieWithUser, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Movie, error)
	// ApplyDelta adds d to the counters in the store and returns the number of
	// affected rows. Counters are never computed in the caller.
	ApplyDelta(ctx context.Context, movieID int64, d entity.CounterDelta) (int64, error)
	SetPosterURL(ctx context.Context, movieID int64, url string) error
}
