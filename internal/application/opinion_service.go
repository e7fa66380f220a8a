package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movierama/internal/domain/apperror"
	"github.com/oksasatya/movierama/internal/domain/entity"
	repo "github.com/oksasatya/movierama/internal/domain/repository"
)

// OpinionService keeps at most one opinion per (user, movie) and moves the
// movie counters in the same transaction as the opinion row.
type OpinionService struct {
	Store  repo.Store
	Logger *logrus.Logger
}

func NewOpinionService(store repo.Store, logger *logrus.Logger) *OpinionService {
	return &OpinionService{Store: store, Logger: logger}
}

// PostOpinion inserts a first vote or swaps an existing one.
func (s *OpinionService) PostOpinion(ctx context.Context, p entity.Principal, title string, tag entity.Opinion) error {
	if !tag.Valid() {
		return s.rejected(ErrInvalidOpinion)
	}
	outcome := statPosted
	err := s.Store.WithinTx(ctx, func(ctx context.Context, tx repo.Repositories) error {
		movie, err := votableMovie(ctx, tx, p, title)
		if err != nil {
			return err
		}

		existing, err := tx.Opinions.GetForUpdate(ctx, p.ID, movie.ID)
		if err != nil {
			return err
		}

		if existing == nil {
			o := &entity.MovieOpinion{Opinion: tag, UserID: p.ID, MovieID: movie.ID}
			if err := tx.Opinions.Insert(ctx, o); err != nil {
				if errors.Is(err, repo.ErrDuplicate) {
					return ErrAlreadyVoted
				}
				return err
			}
			return applyDelta(ctx, tx, movie.ID, entity.InsertDelta(tag))
		}

		if existing.Opinion == tag {
			return ErrAlreadyVoted
		}
		n, err := tx.Opinions.UpdateTag(ctx, existing.ID, tag)
		if err != nil {
			return err
		}
		if n != 1 {
			return fmt.Errorf("%w: swap updated %d opinion rows", ErrInconsistentState, n)
		}
		outcome = statSwapped
		return applyDelta(ctx, tx, movie.ID, entity.SwapDelta(existing.Opinion, tag))
	})
	if err != nil {
		return s.rejected(err)
	}
	countOpinion(outcome)
	s.log(p, title, tag).WithField("outcome", outcome).Debug("opinion stored")
	return nil
}

// RetractOpinion deletes the user's opinion and reverts its counter. The
// stored tag must match tag.
func (s *OpinionService) RetractOpinion(ctx context.Context, p entity.Principal, title string, tag entity.Opinion) error {
	if !tag.Valid() {
		return s.rejected(ErrInvalidOpinion)
	}
	err := s.Store.WithinTx(ctx, func(ctx context.Context, tx repo.Repositories) error {
		movie, err := tx.Movies.GetByTitle(ctx, strings.TrimSpace(title))
		if err != nil {
			return err
		}
		if movie == nil {
			return ErrMovieNotFound
		}

		existing, err := tx.Opinions.GetForUpdate(ctx, p.ID, movie.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNothingToRetract
		}
		if existing.Opinion != tag {
			return ErrOpinionMismatch
		}

		deleted, err := tx.Opinions.Delete(ctx, existing.ID)
		if err != nil {
			return err
		}
		updated, err := tx.Movies.ApplyDelta(ctx, movie.ID, entity.RetractDelta(existing.Opinion))
		if err != nil {
			return err
		}
		if affected := deleted + updated; affected != 2 {
			return fmt.Errorf("%w: retract affected %d rows", ErrInconsistentState, affected)
		}
		return nil
	})
	if err != nil {
		return s.rejected(err)
	}
	countOpinion(statRetracted)
	s.log(p, title, tag).Debug("opinion retracted")
	return nil
}

func (s *OpinionService) ListOpinions(ctx context.Context, p entity.Principal) ([]entity.UserMovieOpinion, error) {
	return s.Store.Repos().Opinions.ListByUser(ctx, p.ID)
}

func (s *OpinionService) rejected(err error) error {
	if apperror.IsValidation(err) {
		countOpinion(statRejected)
	}
	return err
}

func (s *OpinionService) log(p entity.Principal, title string, tag entity.Opinion) *logrus.Entry {
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger.WithFields(logrus.Fields{"user_id": p.ID, "title": title, "opinion": tag})
}

func votableMovie(ctx context.Context, tx repo.Repositories, p entity.Principal, title string) (*entity.Movie, error) {
	movie, err := tx.Movies.GetByTitle(ctx, strings.TrimSpace(title))
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}
	if movie.UserID == p.ID {
		return nil, ErrOwnMovie
	}
	return movie, nil
}

func applyDelta(ctx context.Context, tx repo.Repositories, movieID int64, d entity.CounterDelta) error {
	if d.IsZero() {
		return fmt.Errorf("%w: empty counter delta", ErrInconsistentState)
	}
	n, err := tx.Movies.ApplyDelta(ctx, movieID, d)
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("%w: counter update affected %d movie rows", ErrInconsistentState, n)
	}
	return nil
}
