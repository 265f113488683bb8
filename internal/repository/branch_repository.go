package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/models"
	"github.com/otcheredev/clinic-pos/internal/store"
)

// BranchRepository handles branch database operations
type BranchRepository struct {
	store *store.Store
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(s *store.Store) *BranchRepository {
	return &BranchRepository{store: s}
}

// List retrieves the tenant's branches ordered by name.
func (r *BranchRepository) List(ctx context.Context, rc auth.RequestContext) ([]models.Branch, error) {
	query, err := r.store.Scoped(rc).Query(ctx, &models.Branch{})
	if err != nil {
		return nil, err
	}

	var branches []models.Branch
	if err := query.Order("name ASC").Find(&branches).Error; err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

// Exists reports whether a branch with id belongs to the tenant. Referential
// checks against branches always go through here so a reference can never
// resolve across tenants.
func (r *BranchRepository) Exists(ctx context.Context, rc auth.RequestContext, id uuid.UUID) (bool, error) {
	query, err := r.store.Scoped(rc).Query(ctx, &models.Branch{})
	if err != nil {
		return false, err
	}
	var count int64
	if err := query.Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check branch: %w", err)
	}
	return count > 0, nil
}

// ExistAll reports whether every id belongs to the tenant.
func (r *BranchRepository) ExistAll(ctx context.Context, rc auth.RequestContext, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	query, err := r.store.Scoped(rc).Query(ctx, &models.Branch{})
	if err != nil {
		return false, err
	}
	var count int64
	if err := query.Where("id IN ?", ids).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check branches: %w", err)
	}
	return count == int64(len(ids)), nil
}
