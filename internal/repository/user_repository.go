package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/otcheredev/clinic-pos/internal/apperrors"
	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/models"
	"github.com/otcheredev/clinic-pos/internal/store"
)

// UserRepository handles user database operations
type UserRepository struct {
	store *store.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// Create persists a user together with its branch assignments. Usernames are
// unique globally; there is no advisory pre-check because the lookup would
// have to be cross-tenant, so the constraint alone decides.
func (r *UserRepository) Create(ctx context.Context, rc auth.RequestContext, user *models.User) error {
	if err := r.store.Scoped(rc).Create(ctx, user); err != nil {
		if store.IsUniqueViolation(err) {
			return apperrors.Conflict(fmt.Sprintf("Username '%s' already exists", user.Username))
		}
		return err
	}
	return nil
}

// List retrieves the tenant's users with their branch assignments.
func (r *UserRepository) List(ctx context.Context, rc auth.RequestContext) ([]models.User, error) {
	query, err := r.store.Scoped(rc).Query(ctx, &models.User{})
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := query.Preload("UserBranches").Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID retrieves one of the tenant's users with branch assignments.
func (r *UserRepository) GetByID(ctx context.Context, rc auth.RequestContext, id uuid.UUID) (*models.User, error) {
	query, err := r.store.Scoped(rc).Query(ctx, &models.User{})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := query.Preload("UserBranches").Where("id = ?", id).First(&user).Error; err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NotFound("User", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateRole changes a tenant user's role.
func (r *UserRepository) UpdateRole(ctx context.Context, rc auth.RequestContext, user *models.User, role models.Role) error {
	user.Role = role
	if err := r.store.Scoped(rc).Save(ctx, user); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// FindByUsername looks a user up across all tenants. This is the login
// lookup: it runs before any tenant context exists and is the only read
// that goes through the store's unfiltered surface.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.store.Unfiltered(ctx).
		Preload("UserBranches").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
