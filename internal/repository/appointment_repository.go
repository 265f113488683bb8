package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/otcheredev/clinic-pos/internal/apperrors"
	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/models"
	"github.com/otcheredev/clinic-pos/internal/store"
)

// AppointmentRepository handles appointment database operations
type AppointmentRepository struct {
	store *store.Store
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(s *store.Store) *AppointmentRepository {
	return &AppointmentRepository{store: s}
}

// Create persists an appointment, enforcing slot uniqueness on
// (patient, branch, start) within the tenant.
func (r *AppointmentRepository) Create(ctx context.Context, rc auth.RequestContext, appt *models.Appointment) error {
	sc := r.store.Scoped(rc)
	return createGuarded(ctx, sc, appt,
		func(tx *gorm.DB) (bool, error) {
			var count int64
			if err := tx.
				Where("patient_id = ? AND branch_id = ? AND start_at = ?", appt.PatientID, appt.BranchID, appt.StartAt).
				Count(&count).Error; err != nil {
				return false, err
			}
			return count > 0, nil
		},
		func() error { return apperrors.DuplicateAppointment() },
	)
}

// List retrieves one page of the tenant's appointments, most recent start
// first, with the tenant-consistent total count.
func (r *AppointmentRepository) List(ctx context.Context, rc auth.RequestContext, branchID *uuid.UUID, page, pageSize int) ([]models.Appointment, int64, error) {
	sc := r.store.Scoped(rc)

	query, err := sc.Query(ctx, &models.Appointment{})
	if err != nil {
		return nil, 0, err
	}
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	var appointments []models.Appointment
	if err := query.
		Order("start_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&appointments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}

	return appointments, total, nil
}
