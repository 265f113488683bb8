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
	"github.com/otcheredev/clinic-pos/internal/events"
	"github.com/otcheredev/clinic-pos/internal/metrics"
	"github.com/otcheredev/clinic-pos/internal/models"
)

const appointmentListTTL = 5 * time.Minute

type appointmentStore interface {
	Create(ctx context.Context, rc auth.RequestContext, appt *models.Appointment) error
	List(ctx context.Context, rc auth.RequestContext, branchID *uuid.UUID, page, pageSize int) ([]models.Appointment, int64, error)
}

type patientChecker interface {
	Exists(ctx context.Context, rc auth.RequestContext, id uuid.UUID) (bool, error)
}

// AppointmentService handles business logic for appointment booking
type AppointmentService struct {
	appointments appointmentStore
	patients     patientChecker
	branches     branchChecker
	cache        cache.Cache
	publisher    events.Publisher
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointments appointmentStore,
	patients patientChecker,
	branches branchChecker,
	c cache.Cache,
	publisher events.Publisher,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		patients:     patients,
		branches:     branches,
		cache:        c,
		publisher:    publisher,
	}
}

// Create books an appointment under the caller's tenant. After the commit
// the appointment cache is invalidated and an AppointmentCreated event is
// published best-effort; neither step can fail the booking.
func (s *AppointmentService) Create(ctx context.Context, rc auth.RequestContext, req *models.CreateAppointmentRequest) (*models.AppointmentDTO, error) {
	ok, err := s.patients.Exists(ctx, rc, req.PatientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Patient", req.PatientID)
	}

	ok, err = s.branches.Exists(ctx, rc, req.BranchID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Branch", req.BranchID)
	}

	appt := &models.Appointment{
		PatientID: req.PatientID,
		BranchID:  req.BranchID,
		StartAt:   req.StartAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.appointments.Create(ctx, rc, appt); err != nil {
		return nil, err
	}

	// Past the commit point: caller cancellation no longer applies to the
	// cache or the event, only to work that could still be aborted cleanly.
	postCtx := context.WithoutCancel(ctx)
	if err := s.cache.DeletePrefix(postCtx, cache.AppointmentPrefix(rc.TenantID)); err != nil {
		log.Warn().Err(err).Str("tenant_id", rc.TenantID.String()).Msg("Failed to invalidate appointment cache")
	}

	s.publisher.Publish(postCtx, events.TopicAppointmentCreated, events.AppointmentCreatedEvent{
		EventID:       uuid.New(),
		EventType:     "AppointmentCreated",
		TenantID:      appt.TenantID,
		AppointmentID: appt.ID,
		BranchID:      appt.BranchID,
		PatientID:     appt.PatientID,
		StartAt:       appt.StartAt,
		OccurredAt:    appt.CreatedAt,
	})

	dto := appt.ToDTO()
	return &dto, nil
}

// List returns one page of the tenant's appointments through the
// read-through cache.
func (s *AppointmentService) List(ctx context.Context, rc auth.RequestContext, branchID *uuid.UUID, page, pageSize int) (*models.AppointmentListResponse, error) {
	key := cache.AppointmentListKey(rc.TenantID, branchID, page, pageSize)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached models.AppointmentListResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheHits.WithLabelValues("appointments").Inc()
			return &cached, nil
		}
	}
	metrics.CacheMisses.WithLabelValues("appointments").Inc()

	appointments, total, err := s.appointments.List(ctx, rc, branchID, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]models.AppointmentDTO, 0, len(appointments))
	for i := range appointments {
		items = append(items, appointments[i].ToDTO())
	}
	result := &models.AppointmentListResponse{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}

	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, data, appointmentListTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to cache appointment list")
		}
	}

	return result, nil
}
