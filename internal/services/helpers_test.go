package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/otcheredev/clinic-pos/internal/apperrors"
	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/events"
	"github.com/otcheredev/clinic-pos/internal/models"
)

func testContext() auth.RequestContext {
	return auth.RequestContext{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     string(models.RoleAdmin),
	}
}

// fakePatientStore mimics the repository contract including tenant stamping
// and the per-tenant phone uniqueness guard.
type fakePatientStore struct {
	mu       sync.Mutex
	rows     []models.Patient
	listHits int
}

func (f *fakePatientStore) Create(ctx context.Context, rc auth.RequestContext, p *models.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.TenantID == rc.TenantID && row.PhoneNumber == p.PhoneNumber {
			return apperrors.DuplicatePhone(p.PhoneNumber)
		}
	}
	p.ID = uuid.New()
	p.TenantID = rc.TenantID
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakePatientStore) List(ctx context.Context, rc auth.RequestContext, branchID *uuid.UUID, page, pageSize int) ([]models.Patient, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listHits++
	var out []models.Patient
	for _, row := range f.rows {
		if row.TenantID != rc.TenantID {
			continue
		}
		if branchID != nil && (row.PrimaryBranchID == nil || *row.PrimaryBranchID != *branchID) {
			continue
		}
		out = append(out, row)
	}
	return out, int64(len(out)), nil
}

func (f *fakePatientStore) Exists(ctx context.Context, rc auth.RequestContext, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.TenantID == rc.TenantID && row.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// fakeBranchSet answers existence checks from a fixed per-tenant set.
type fakeBranchSet struct {
	tenantID uuid.UUID
	ids      map[uuid.UUID]bool
}

func newFakeBranchSet(tenantID uuid.UUID, ids ...uuid.UUID) *fakeBranchSet {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return &fakeBranchSet{tenantID: tenantID, ids: set}
}

func (f *fakeBranchSet) Exists(ctx context.Context, rc auth.RequestContext, id uuid.UUID) (bool, error) {
	return rc.TenantID == f.tenantID && f.ids[id], nil
}

func (f *fakeBranchSet) ExistAll(ctx context.Context, rc auth.RequestContext, ids []uuid.UUID) (bool, error) {
	if rc.TenantID != f.tenantID {
		return len(ids) == 0, nil
	}
	for _, id := range ids {
		if !f.ids[id] {
			return false, nil
		}
	}
	return true, nil
}

// recordPublisher captures published events.
type recordPublisher struct {
	mu     sync.Mutex
	events []events.AppointmentCreatedEvent
	topics []string
}

func (p *recordPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, routingKey)
	if evt, ok := payload.(events.AppointmentCreatedEvent); ok {
		p.events = append(p.events, evt)
	}
}

func (p *recordPublisher) Connected() bool { return true }

func (p *recordPublisher) Close() error { return nil }
