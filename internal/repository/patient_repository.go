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

// PatientRepository handles patient database operations
type PatientRepository struct {
	store *store.Store
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(s *store.Store) *PatientRepository {
	return &PatientRepository{store: s}
}

// Create persists a patient, enforcing per-tenant phone uniqueness.
func (r *PatientRepository) Create(ctx context.Context, rc auth.RequestContext, patient *models.Patient) error {
	sc := r.store.Scoped(rc)
	return createGuarded(ctx, sc, patient,
		func(tx *gorm.DB) (bool, error) {
			var count int64
			if err := tx.Where("phone_number = ?", patient.PhoneNumber).Count(&count).Error; err != nil {
				return false, err
			}
			return count > 0, nil
		},
		func() error { return apperrors.DuplicatePhone(patient.PhoneNumber) },
	)
}

// List retrieves one page of the tenant's patients, newest first, with the
// tenant-consistent total count.
func (r *PatientRepository) List(ctx context.Context, rc auth.RequestContext, branchID *uuid.UUID, page, pageSize int) ([]models.Patient, int64, error) {
	sc := r.store.Scoped(rc)

	query, err := sc.Query(ctx, &models.Patient{})
	if err != nil {
		return nil, 0, err
	}
	if branchID != nil {
		query = query.Where("primary_branch_id = ?", *branchID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	var patients []models.Patient
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&patients).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}

	return patients, total, nil
}

// Exists reports whether a patient with id belongs to the tenant.
func (r *PatientRepository) Exists(ctx context.Context, rc auth.RequestContext, id uuid.UUID) (bool, error) {
	query, err := r.store.Scoped(rc).Query(ctx, &models.Patient{})
	if err != nil {
		return false, err
	}
	var count int64
	if err := query.Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check patient: %w", err)
	}
	return count > 0, nil
}
