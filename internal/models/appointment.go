package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment books a patient into a branch at a start time. Its identity is
// the tuple (tenant, patient, branch, start); the composite unique index is
// what makes concurrent double-booking impossible.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_appointments_tenant_patient_branch_start;index:ix_appointments_tenant_branch" json:"tenant_id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_appointments_tenant_patient_branch_start" json:"patient_id"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_appointments_tenant_patient_branch_start;index:ix_appointments_tenant_branch" json:"branch_id"`
	StartAt   time.Time `gorm:"not null;uniqueIndex:uq_appointments_tenant_patient_branch_start" json:"start_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Appointment) TableName() string {
	return "appointments"
}

// BeforeCreate hook
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// OwnerTenantID returns the owning tenant.
func (a *Appointment) OwnerTenantID() uuid.UUID {
	return a.TenantID
}

// SetOwnerTenantID stamps the owning tenant.
func (a *Appointment) SetOwnerTenantID(id uuid.UUID) {
	a.TenantID = id
}

// CreateAppointmentRequest is the payload for booking an appointment.
type CreateAppointmentRequest struct {
	PatientID uuid.UUID `json:"patientId"`
	BranchID  uuid.UUID `json:"branchId"`
	StartAt   time.Time `json:"startAt"`
}

// AppointmentDTO is the external representation of an appointment.
type AppointmentDTO struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenantId"`
	BranchID  uuid.UUID `json:"branchId"`
	PatientID uuid.UUID `json:"patientId"`
	StartAt   time.Time `json:"startAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentListResponse is a tenant-consistent page of appointments.
type AppointmentListResponse struct {
	Items      []AppointmentDTO `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalCount int64            `json:"totalCount"`
}

// ToDTO maps the persisted row to its external representation.
func (a *Appointment) ToDTO() AppointmentDTO {
	return AppointmentDTO{
		ID:        a.ID,
		TenantID:  a.TenantID,
		BranchID:  a.BranchID,
		PatientID: a.PatientID,
		StartAt:   a.StartAt,
		CreatedAt: a.CreatedAt,
	}
}
