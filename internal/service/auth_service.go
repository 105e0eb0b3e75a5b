package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/osama171998/minna-app/internal/domain"
	"github.com/osama171998/minna-app/internal/repository"
	"github.com/osama171998/minna-app/internal/security"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Login must not reveal which one it was.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrUnauthenticated covers missing, malformed, tampered and expired
	// tokens, and tokens whose subject no longer resolves to a record.
	ErrUnauthenticated = errors.New("could not validate credentials")
	// ErrAlreadyExists is the registration-time duplicate email conflict.
	ErrAlreadyExists = errors.New("email already registered")
	// ErrNotFound is returned when the caller's record vanished between
	// authorization and the operation.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput marks malformed client input (bad email shape,
	// empty password).
	ErrInvalidInput = errors.New("invalid input")
)

// AuthService orchestrates credential verification, token issuance and
// per-request authorization. It holds no per-request state; tokens are
// stateless and stay valid until their embedded expiry.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *security.PasswordHasher
	jwtMgr   *security.JWTManager
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, hasher *security.PasswordHasher, jwtMgr *security.JWTManager, tokenTTL time.Duration) *AuthService {
	return &AuthService{userRepo: userRepo, hasher: hasher, jwtMgr: jwtMgr, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Email: email, PasswordHash: hash, CreatedAt: time.Now().UTC()}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !s.hasher.Check(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	token, err := s.jwtMgr.Sign(user.Email, s.tokenTTL)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Authorize verifies the bearer token and resolves the subject to a live
// identity record. A token for a deleted account fails here even though
// its signature and expiry are still good.
func (s *AuthService) Authorize(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.jwtMgr.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	return nil
}
