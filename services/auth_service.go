package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"attendee.link/configs/configsauth"
	"attendee.link/models"
	"attendee.link/repositories"
)

// ErrInvalidCredentials covers both unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// IAuthService backs the admin login endpoint and token validation.
type IAuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	UserFromToken(ctx context.Context, token string) (*models.User, error)
}

// AuthService implements IAuthService with bcrypt and signed tokens.
type AuthService struct {
	userRepo repositories.IUserRepository
}

func NewAuthService() IAuthService {
	return &AuthService{userRepo: repositories.NewUserRepository()}
}

// Login verifies the password against the stored hash and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := configsauth.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// UserFromToken loads the user a valid token refers to.
func (s *AuthService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := configsauth.ParseToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, configsauth.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

var _ IAuthService = (*AuthService)(nil)
