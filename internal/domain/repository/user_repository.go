package repository

import (
	"context"

	"github.com/oksasatya/movierama/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Lookups return (nil, nil) when the user does not exist.
type UserRepository interface {
	// Create assigns u.ID and u.CreatedAt. Returns ErrDuplicate when the name is taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
}
