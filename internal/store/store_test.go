package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/otcheredev/clinic-pos/internal/apperrors"
	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/models"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_patients_tenant_phone"}
	assert.True(t, IsUniqueViolation(pgErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", pgErr)))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"})) // fk violation
	assert.False(t, IsUniqueViolation(errors.New("duplicate key value violates unique constraint")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestScopedFailsClosedWithoutTenant(t *testing.T) {
	s := New(nil).Scoped(auth.RequestContext{}) // unauthenticated context
	ctx := context.Background()

	_, err := s.Query(ctx, &models.Patient{})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	err = s.Create(ctx, &models.Patient{PhoneNumber: "0888888888"})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	err = s.Transaction(ctx, func(tx *Scoped) error { return nil })
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestCreateRejectsForeignTenant(t *testing.T) {
	rc := auth.RequestContext{UserID: uuid.New(), TenantID: uuid.New()}
	s := New(nil).Scoped(rc)

	foreign := &models.Patient{TenantID: uuid.New(), PhoneNumber: "0888888888"}
	err := s.Create(context.Background(), foreign)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}
