package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/internal/domain/repository"
)

type OpinionRepository struct {
	do access
}

// GetForUpdate needs no row lock here: transactions already run one at a time.
func (r *OpinionRepository) GetForUpdate(_ context.Context, userID, movieID int64) (*entity.MovieOpinion, error) {
	var out *entity.MovieOpinion
	err := r.do(func(st *state) error {
		for _, o := range st.opinions {
			if o.UserID == userID && o.MovieID == movieID {
				o := o
				out = &o
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *OpinionRepository) Insert(_ context.Context, o *entity.MovieOpinion) error {
	return r.do(func(st *state) error {
		for _, existing := range st.opinions {
			if existing.UserID == o.UserID && existing.MovieID == o.MovieID {
				return repository.ErrDuplicate
			}
		}
		st.nextOpinionID++
		o.ID = st.nextOpinionID
		st.opinions[o.ID] = *o
		return nil
	})
}

func (r *OpinionRepository) UpdateTag(_ context.Context, id int64, to entity.Opinion) (int64, error) {
	var n int64
	err := r.do(func(st *state) error {
		o, ok := st.opinions[id]
		if !ok || o.Opinion == to {
			return nil
		}
		o.Opinion = to
		st.opinions[id] = o
		n = 1
		return nil
	})
	return n, err
}

func (r *OpinionRepository) Delete(_ context.Context, id int64) (int64, error) {
	var n int64
	err := r.do(func(st *state) error {
		if _, ok := st.opinions[id]; ok {
			delete(st.opinions, id)
			n = 1
		}
		return nil
	})
	return n, err
}

func (r *OpinionRepository) ListByUser(_ context.Context, userID int64) ([]entity.UserMovieOpinion, error) {
	out := []entity.UserMovieOpinion{}
	err := r.do(func(st *state) error {
		rows := make([]entity.MovieOpinion, 0)
		for _, o := range st.opinions {
			if o.UserID == userID {
				rows = append(rows, o)
			}
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
		for _, o := range rows {
			out = append(out, entity.UserMovieOpinion{Opinion: o.Opinion, MovieID: o.MovieID})
		}
		return nil
	})
	return out, err
}

func (r *OpinionRepository) CountByMovie(_ context.Context, movieID int64) (int, int, error) {
	var likes, hates int
	err := r.do(func(st *state) error {
		for _, o := range st.opinions {
			if o.MovieID != movieID {
				continue
			}
			switch o.Opinion {
			case entity.Like:
				likes++
			case entity.Hate:
				hates++
			}
		}
		return nil
	})
	return likes, hates, err
}

var _ repository.OpinionRepository = (*OpinionRepository)(nil)
