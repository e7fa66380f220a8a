package application

import (
	"context"

	"github.com/oksasatya/movierama/internal/domain/entity"
	repo "github.com/oksasatya/movierama/internal/domain/repository"
)

type UserService struct {
	Users repo.UserRepository
}

func NewUserService(users repo.UserRepository) *UserService {
	return &UserService{Users: users}
}

// FindByID returns (nil, nil) when the user does not exist.
func (s *UserService) FindByID(ctx context.Context, id int64) (*entity.PublicUser, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}
