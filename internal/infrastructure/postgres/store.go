package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/movierama/internal/domain/repository"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func repos(db DBTX) repository.Repositories {
	return repository.Repositories{
		Users:    NewUserRepository(db),
		Movies:   NewMovieRepository(db),
		Opinions: NewOpinionRepository(db),
	}
}

func (s *Store) Repos() repository.Repositories {
	return repos(s.pool)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repositories) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, repos(tx))
	})
}

var _ repository.Store = (*Store)(nil)
