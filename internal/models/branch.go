package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch is a tenant's physical location.
type Branch struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index:ix_branches_tenant_id" json:"tenant_id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Branch) TableName() string {
	return "branches"
}

// BeforeCreate hook
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// OwnerTenantID returns the owning tenant.
func (b *Branch) OwnerTenantID() uuid.UUID {
	return b.TenantID
}

// SetOwnerTenantID stamps the owning tenant.
func (b *Branch) SetOwnerTenantID(id uuid.UUID) {
	b.TenantID = id
}

// BranchDTO is the external representation of a branch.
type BranchDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
