package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/models"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong
// password; the boundary maps both to the same 401 so login probing learns
// nothing.
var ErrInvalidCredentials = errors.New("invalid credentials")

type userFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService handles the tenant-agnostic login flow.
type AuthService struct {
	users  userFinder
	tokens *auth.TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(users userFinder, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login verifies credentials and mints a token carrying the user's tenant,
// role and branch assignments.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	branchIDs := user.BranchIDs()
	token, err := s.tokens.Generate(user, branchIDs)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		User:  user.ToDTO(),
	}, nil
}
