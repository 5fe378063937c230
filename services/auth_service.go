package services

import (
	"context"
	"errors"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/Laib363/E-Commerce-Project/models"
	"github.com/Laib363/E-Commerce-Project/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and credential verification.
type AuthService struct {
	users repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new account with a hashed password. Username and email
// must both be unused.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	taken, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if taken {
		return nil, apperrors.ErrDuplicateIdentity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Cart:     []primitive.ObjectID{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index catches registrations racing past the exists check.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateIdentity
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair and returns the matching
// user. A missing user and a wrong password are indistinguishable to the
// caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
