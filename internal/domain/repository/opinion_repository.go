package repository

import (
	"context"

	"github.com/oksasatya/movierama/internal/domain/entity"
)

// OpinionRepository persists the opinion ledger.
type OpinionRepository interface {
	// GetForUpdate returns the user's opinion on a movie and locks it for the
	// rest of the transaction. (nil, nil) when absent.
	GetForUpdate(ctx context.Context, userID, movieID int64) (*entity.MovieOpinion, error)
	// Insert assigns o.ID. Returns ErrDuplicate when (user, movie) already has a row.
	Insert(ctx context.Context, o *entity.MovieOpinion) error
	// UpdateTag switches the tag only when it differs from to.
	UpdateTag(ctx context.Context, id int64, to entity.Opinion) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.UserMovieOpinion, error)
	// CountByMovie tallies stored opinions per tag.
	CountByMovie(ctx context.Context, movieID int64) (likes, hates int, err error)
}
