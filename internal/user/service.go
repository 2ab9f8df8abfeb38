package user

import (
	"context"
	"errors"

	"bookcase/internal/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, name, password string) (User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	u := User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate resolves credentials to a user. An unknown username and a
// wrong password both come back as ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrUnauthorized
		}
		return User{}, err
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return User{}, ErrUnauthorized
	}
	return u, nil
}

// GetByID returns the user with the given id.
func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (User, error) {
	return s.repo.GetByID(ctx, id)
}
