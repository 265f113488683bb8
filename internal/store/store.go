package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/otcheredev/clinic-pos/internal/apperrors"
	"github.com/otcheredev/clinic-pos/internal/auth"
)

// TenantOwned is implemented by every model that belongs to a tenant. The
// scoped store stamps and verifies ownership through it so no repository can
// write a foreign tenant id.
type TenantOwned interface {
	OwnerTenantID() uuid.UUID
	SetOwnerTenantID(uuid.UUID)
}

// Store wraps the database handle. All access to tenant-owned tables goes
// through Scoped; Unfiltered is the single named escape hatch and exists for
// the login lookup only.
type Store struct {
	db *gorm.DB
}

// New creates a store over an open database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Scoped binds the store to the caller's tenant. Every query and write built
// from the returned value carries the tenant predicate; an unauthenticated
// context fails closed on first use.
func (s *Store) Scoped(rc auth.RequestContext) *Scoped {
	return &Scoped{db: s.db, tenantID: rc.TenantID}
}

// Unfiltered returns a session with no tenant predicate. Only the login path
// may use it: authentication has no tenant context yet and must look users up
// across tenants.
func (s *Store) Unfiltered(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Scoped is a tenant-bound view of the store.
type Scoped struct {
	db       *gorm.DB
	tenantID uuid.UUID
}

// TenantID returns the bound tenant.
func (s *Scoped) TenantID() uuid.UUID {
	return s.tenantID
}

// Query starts a query against model with the tenant predicate already
// applied. Caller-supplied conditions compose with it; they can never remove
// it.
func (s *Scoped) Query(ctx context.Context, model interface{}) (*gorm.DB, error) {
	if s.tenantID == uuid.Nil {
		return nil, apperrors.Forbidden("no tenant context")
	}
	return s.db.WithContext(ctx).Model(model).Where("tenant_id = ?", s.tenantID), nil
}

// Create stamps the bound tenant onto entity and persists it. An entity that
// arrives with a different tenant already set is rejected: that is always a
// programming error upstream, never caller data.
func (s *Scoped) Create(ctx context.Context, entity TenantOwned) error {
	if s.tenantID == uuid.Nil {
		return apperrors.Forbidden("no tenant context")
	}
	if owner := entity.OwnerTenantID(); owner != uuid.Nil && owner != s.tenantID {
		return apperrors.Conflict(fmt.Sprintf("entity tenant %s does not match context tenant %s", owner, s.tenantID))
	}
	entity.SetOwnerTenantID(s.tenantID)

	return s.db.WithContext(ctx).Create(entity).Error
}

// Save persists changes to an already-loaded entity of the bound tenant.
func (s *Scoped) Save(ctx context.Context, entity TenantOwned) error {
	if s.tenantID == uuid.Nil {
		return apperrors.Forbidden("no tenant context")
	}
	if entity.OwnerTenantID() != s.tenantID {
		return apperrors.Conflict(fmt.Sprintf("entity tenant %s does not match context tenant %s", entity.OwnerTenantID(), s.tenantID))
	}
	return s.db.WithContext(ctx).Save(entity).Error
}

// Transaction runs fn inside a database transaction with the same tenant
// binding.
func (s *Scoped) Transaction(ctx context.Context, fn func(tx *Scoped) error) error {
	if s.tenantID == uuid.Nil {
		return apperrors.Forbidden("no tenant context")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Scoped{db: tx, tenantID: s.tenantID})
	})
}

// IsNotFound reports whether err is the storage layer's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
