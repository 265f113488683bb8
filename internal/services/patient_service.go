package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/otcheredev/clinic-pos/internal/apperrors"
	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/cache"
	"github.com/otcheredev/clinic-pos/internal/metrics"
	"github.com/otcheredev/clinic-pos/internal/models"
)

const patientListTTL = 5 * time.Minute

type patientStore interface {
	Create(ctx context.Context, rc auth.RequestContext, patient *models.Patient) error
	List(ctx context.Context, rc auth.RequestContext, branchID *uuid.UUID, page, pageSize int) ([]models.Patient, int64, error)
}

type branchChecker interface {
	Exists(ctx context.Context, rc auth.RequestContext, id uuid.UUID) (bool, error)
}

// PatientService handles business logic for patient records
type PatientService struct {
	patients patientStore
	branches branchChecker
	cache    cache.Cache
}

// NewPatientService creates a new patient service
func NewPatientService(patients patientStore, branches branchChecker, c cache.Cache) *PatientService {
	return &PatientService{
		patients: patients,
		branches: branches,
		cache:    c,
	}
}

// Create registers a patient under the caller's tenant.
func (s *PatientService) Create(ctx context.Context, rc auth.RequestContext, req *models.CreatePatientRequest) (*models.PatientDTO, error) {
	if req.PrimaryBranchID != nil {
		ok, err := s.branches.Exists(ctx, rc, *req.PrimaryBranchID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.NotFound("Branch", *req.PrimaryBranchID)
		}
	}

	patient := &models.Patient{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		PrimaryBranchID: req.PrimaryBranchID,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.patients.Create(ctx, rc, patient); err != nil {
		return nil, err
	}

	// The row is committed; invalidation runs even if the caller gives up
	// now, so a follow-up list never serves a page older than this write.
	invalidateCtx := context.WithoutCancel(ctx)
	if err := s.cache.DeletePrefix(invalidateCtx, cache.PatientPrefix(rc.TenantID)); err != nil {
		log.Warn().Err(err).Str("tenant_id", rc.TenantID.String()).Msg("Failed to invalidate patient cache")
	}

	dto := patient.ToDTO()
	return &dto, nil
}

// List returns one page of the tenant's patients through the read-through
// cache. declaredTenantID is the tenant the caller claims to be querying; it
// must match the authenticated context before anything touches storage.
func (s *PatientService) List(ctx context.Context, rc auth.RequestContext, declaredTenantID uuid.UUID, branchID *uuid.UUID, page, pageSize int) (*models.PatientListResponse, error) {
	if declaredTenantID != rc.TenantID {
		return nil, apperrors.Forbidden("Tenant ID mismatch")
	}

	key := cache.PatientListKey(rc.TenantID, branchID, page, pageSize)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached models.PatientListResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheHits.WithLabelValues("patients").Inc()
			return &cached, nil
		}
	}
	metrics.CacheMisses.WithLabelValues("patients").Inc()

	patients, total, err := s.patients.List(ctx, rc, branchID, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]models.PatientDTO, 0, len(patients))
	for i := range patients {
		items = append(items, patients[i].ToDTO())
	}
	result := &models.PatientListResponse{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}

	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, data, patientListTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to cache patient list")
		}
	}

	return result, nil
}
