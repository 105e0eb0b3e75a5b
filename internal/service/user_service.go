package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/osama171998/minna-app/internal/domain"
	"github.com/osama171998/minna-app/internal/repository"
	"github.com/osama171998/minna-app/internal/security"
)

// UserService implements the self-service profile operations. They only
// ever target the authorized caller's own record; no identifier is taken
// from the request.
type UserService struct {
	userRepo repository.UserRepository
	hasher   *security.PasswordHasher
}

func NewUserService(userRepo repository.UserRepository, hasher *security.PasswordHasher) *UserService {
	return &UserService{userRepo: userRepo, hasher: hasher}
}

func (s *UserService) UpdateSelf(ctx context.Context, user *domain.User, update ProfileUpdate) (*domain.User, error) {
	repoUpdate := repository.UserUpdate{}
	if update.Email != nil {
		email := NormalizeEmail(*update.Email)
		if err := ValidateEmail(email); err != nil {
			return nil, err
		}
		repoUpdate.Email = &email
	}
	if update.Password != nil {
		if *update.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
		}
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		repoUpdate.PasswordHash = &hash
	}
	updated, err := s.userRepo.Update(ctx, user.ID, repoUpdate)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return updated, nil
}

func (s *UserService) DeleteSelf(ctx context.Context, user *domain.User) error {
	err := s.userRepo.Delete(ctx, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
