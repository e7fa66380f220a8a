package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/internal/domain/repository"
)

const movieColumns = `id, title, description, user_id, date, likes, hates, COALESCE(poster_url, '')`

type MovieRepository struct {
	db DBTX
}

func NewMovieRepository(db DBTX) *MovieRepository {
	return &MovieRepository{db: db}
}

func scanMovie(row pgx.Row, m *entity.Movie) error {
	return row.Scan(&m.ID, &m.Title, &m.Description, &m.UserID, &m.Date, &m.Likes, &m.Hates, &m.PosterURL)
}

func (r *MovieRepository) Create(ctx context.Context, m *entity.Movie) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO movies (title, description, user_id, date, likes, hates)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, m.Title, m.Description, m.UserID, m.Date, m.Likes, m.Hates)

	return mapErr(row.Scan(&m.ID))
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*entity.Movie, error) {
	return r.getOne(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
}

func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	return r.getOne(ctx, `SELECT `+movieColumns+` FROM movies WHERE title = $1`, title)
}

func (r *MovieRepository) getOne(ctx context.Context, sql string, arg any) (*entity.Movie, error) {
	m := &entity.Movie{}
	if err := scanMovie(r.db.QueryRow(ctx, sql, arg), m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (r *MovieRepository) ListWithUsers(ctx context.Context) ([]entity.MovieWithUser, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.title, m.description, u.name, u.id, m.date, m.likes, m.hates, COALESCE(m.poster_url, '')
		FROM movies m
		JOIN users u ON u.id = m.user_id
		ORDER BY m.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.MovieWithUser{}
	for rows.Next() {
		var m entity.MovieWithUser
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.PostedBy.Name, &m.PostedBy.ID,
			&m.Date, &m.Likes, &m.Hates, &m.PosterURL); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MovieRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Movie, error) {
	rows, err := r.db.Query(ctx, `SELECT `+movieColumns+` FROM movies WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Movie{}
	for rows.Next() {
		var m entity.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MovieRepository) ApplyDelta(ctx context.Context, movieID int64, d entity.CounterDelta) (int64, error) {
	res, err := r.db.Exec(ctx, `
		UPDATE movies
		SET likes = likes + $1, hates = hates + $2
		WHERE id = $3
	`, d.Likes, d.Hates, movieID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func (r *MovieRepository) SetPosterURL(ctx context.Context, movieID int64, url string) error {
	res, err := r.db.Exec(ctx, `UPDATE movies SET poster_url = $1 WHERE id = $2`, url, movieID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("movie %d not found", movieID)
	}
	return nil
}

var _ repository.MovieRepository = (*MovieRepository)(nil)
