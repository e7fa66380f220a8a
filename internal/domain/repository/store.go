package repository

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by adapters when a unique constraint is violated.
var ErrDuplicate = errors.New("duplicate key")

// Repositories groups the adapters bound to one connection or transaction.
type Repositories struct {
	Users    UserRepository
	Movies   MovieRepository
	Opinions OpinionRepository
}

// TxManager runs fn inside one store transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error
}

// Store is a storage backend.
type Store interface {
	TxManager
	Repos() Repositories
}
