package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/otcheredev/clinic-pos/internal/apperrors"
	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/models"
)

type userStore interface {
	Create(ctx context.Context, rc auth.RequestContext, user *models.User) error
	List(ctx context.Context, rc auth.RequestContext) ([]models.User, error)
	GetByID(ctx context.Context, rc auth.RequestContext, id uuid.UUID) (*models.User, error)
	UpdateRole(ctx context.Context, rc auth.RequestContext, user *models.User, role models.Role) error
}

type branchSetChecker interface {
	ExistAll(ctx context.Context, rc auth.RequestContext, ids []uuid.UUID) (bool, error)
}

// UserService handles business logic for staff accounts
type UserService struct {
	users    userStore
	branches branchSetChecker
}

// NewUserService creates a new user service
func NewUserService(users userStore, branches branchSetChecker) *UserService {
	return &UserService{users: users, branches: branches}
}

// Create provisions a staff account with its branch assignments under the
// caller's tenant.
func (s *UserService) Create(ctx context.Context, rc auth.RequestContext, req *models.CreateUserRequest) (*models.UserDTO, error) {
	if !req.Role.Valid() {
		return nil, apperrors.Validation(map[string][]string{
			"role": {"must be one of Admin, User, Viewer"},
		})
	}

	// Branch assignments must resolve within the caller's tenant.
	ok, err := s.branches.ExistAll(ctx, rc, req.BranchIDs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Conflict("one or more branches do not belong to this tenant")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    time.Now().UTC(),
	}
	for _, branchID := range req.BranchIDs {
		user.UserBranches = append(user.UserBranches, models.UserBranch{
			UserID:   user.ID,
			BranchID: branchID,
		})
	}

	if err := s.users.Create(ctx, rc, user); err != nil {
		return nil, err
	}

	dto := user.ToDTO()
	return &dto, nil
}

// List returns the tenant's users.
func (s *UserService) List(ctx context.Context, rc auth.RequestContext) ([]models.UserDTO, error) {
	users, err := s.users.List(ctx, rc)
	if err != nil {
		return nil, err
	}

	result := make([]models.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, users[i].ToDTO())
	}
	return result, nil
}

// AssignRole changes a tenant user's role.
func (s *UserService) AssignRole(ctx context.Context, rc auth.RequestContext, userID uuid.UUID, req *models.AssignRoleRequest) (*models.UserDTO, error) {
	if !req.Role.Valid() {
		return nil, apperrors.Validation(map[string][]string{
			"role": {"must be one of Admin, User, Viewer"},
		})
	}

	user, err := s.users.GetByID(ctx, rc, userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, rc, user, req.Role); err != nil {
		return nil, err
	}

	dto := user.ToDTO()
	return &dto, nil
}
