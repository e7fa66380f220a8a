package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/internal/domain/repository"
)

type OpinionRepository struct {
	db DBTX
}

func NewOpinionRepository(db DBTX) *OpinionRepository {
	return &OpinionRepository{db: db}
}

func (r *OpinionRepository) GetForUpdate(ctx context.Context, userID, movieID int64) (*entity.MovieOpinion, error) {
	o := &entity.MovieOpinion{}
	var tag string
	err := r.db.QueryRow(ctx, `
		SELECT id, opinion, user_id, movie_id
		FROM opinions
		WHERE user_id = $1 AND movie_id = $2
		FOR UPDATE
	`, userID, movieID).Scan(&o.ID, &tag, &o.UserID, &o.MovieID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	o.Opinion = entity.Opinion(tag)
	return o, nil
}

func (r *OpinionRepository) Insert(ctx context.Context, o *entity.MovieOpinion) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO opinions (opinion, user_id, movie_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, string(o.Opinion), o.UserID, o.MovieID)

	return mapErr(row.Scan(&o.ID))
}

func (r *OpinionRepository) UpdateTag(ctx context.Context, id int64, to entity.Opinion) (int64, error) {
	res, err := r.db.Exec(ctx, `
		UPDATE opinions
		SET opinion = $1
		WHERE id = $2 AND opinion <> $1
	`, string(to), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func (r *OpinionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM opinions WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func (r *OpinionRepository) ListByUser(ctx context.Context, userID int64) ([]entity.UserMovieOpinion, error) {
	rows, err := r.db.Query(ctx, `
		SELECT opinion, movie_id
		FROM opinions
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.UserMovieOpinion{}
	for rows.Next() {
		var tag string
		var o entity.UserMovieOpinion
		if err := rows.Scan(&tag, &o.MovieID); err != nil {
			return nil, err
		}
		o.Opinion = entity.Opinion(tag)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OpinionRepository) CountByMovie(ctx context.Context, movieID int64) (int, int, error) {
	var likes, hates int
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE opinion = 'LIKE'),
			COUNT(*) FILTER (WHERE opinion = 'HATE')
		FROM opinions
		WHERE movie_id = $1
	`, movieID).Scan(&likes, &hates)
	return likes, hates, err
}

var _ repository.OpinionRepository = (*OpinionRepository)(nil)
