package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movierama/internal/domain/entity"
	repo "github.com/oksasatya/movierama/internal/domain/repository"
	"github.com/oksasatya/movierama/pkg/helpers"
)

type AuthService struct {
	Users  repo.UserRepository
	Tokens *helpers.TokenManager
	Hasher *helpers.PasswordHasher
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, tokens *helpers.TokenManager, hasher *helpers.PasswordHasher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Hasher: hasher, Logger: logger}
}

type LoginResponse struct {
	Name  string `json:"name"`
	Token string `json:"token"`
	ID    int64  `json:"id"`
}

// Register creates a user with a hashed password.
func (s *AuthService) Register(ctx context.Context, name, password string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(password) == "" {
		return nil, ErrBlankCredentials
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: name, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return u, nil
}

// Login returns (nil, nil) when the user does not exist.
func (s *AuthService) Login(ctx context.Context, name, password string) (*LoginResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(password) == "" {
		return nil, ErrBlankCredentials
	}
	u, err := s.Users.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if !s.Hasher.Compare(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	token, _, err := s.Tokens.Issue(u.Name)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return nil, err
	}
	return &LoginResponse{Name: u.Name, Token: token, ID: u.ID}, nil
}
