package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is a tenant's patient record. Phone numbers are unique per tenant,
// not globally; the composite index is the authoritative guard.
type Patient struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_patients_tenant_phone;index:ix_patients_tenant_created" json:"tenant_id"`
	FirstName       string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string     `gorm:"type:varchar(100);not null" json:"last_name"`
	PhoneNumber     string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_patients_tenant_phone" json:"phone_number"`
	PrimaryBranchID *uuid.UUID `gorm:"type:uuid" json:"primary_branch_id,omitempty"`
	CreatedAt       time.Time  `gorm:"index:ix_patients_tenant_created,sort:desc" json:"created_at"`
}

// TableName overrides the table name
func (Patient) TableName() string {
	return "patients"
}

// BeforeCreate hook
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// OwnerTenantID returns the owning tenant.
func (p *Patient) OwnerTenantID() uuid.UUID {
	return p.TenantID
}

// SetOwnerTenantID stamps the owning tenant.
func (p *Patient) SetOwnerTenantID(id uuid.UUID) {
	p.TenantID = id
}

// CreatePatientRequest is the payload for registering a patient.
type CreatePatientRequest struct {
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	PhoneNumber     string     `json:"phoneNumber"`
	PrimaryBranchID *uuid.UUID `json:"primaryBranchId,omitempty"`
}

// PatientDTO is the external representation of a patient.
type PatientDTO struct {
	ID              uuid.UUID  `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	PhoneNumber     string     `json:"phoneNumber"`
	TenantID        uuid.UUID  `json:"tenantId"`
	PrimaryBranchID *uuid.UUID `json:"primaryBranchId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// PatientListResponse is a tenant-consistent page of patients.
type PatientListResponse struct {
	Items      []PatientDTO `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalCount int64        `json:"totalCount"`
}

// ToDTO maps the persisted row to its external representation.
func (p *Patient) ToDTO() PatientDTO {
	return PatientDTO{
		ID:              p.ID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		PhoneNumber:     p.PhoneNumber,
		TenantID:        p.TenantID,
		PrimaryBranchID: p.PrimaryBranchID,
		CreatedAt:       p.CreatedAt,
	}
}
