package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// Every key leads with the owning tenant so invalidation is always scoped to
// that tenant's prefix and never evicts another tenant's entries.

// PatientListKey keys one page of a tenant's patient list.
func PatientListKey(tenantID uuid.UUID, branchID *uuid.UUID, page, pageSize int) string {
	branch := "all"
	if branchID != nil {
		branch = branchID.String()
	}
	return fmt.Sprintf("tenant:%s:patients:branch:%s:p:%d:s:%d", tenantID, branch, page, pageSize)
}

// PatientPrefix is the invalidation prefix for a tenant's patient queries.
func PatientPrefix(tenantID uuid.UUID) string {
	return fmt.Sprintf("tenant:%s:patients:", tenantID)
}

// AppointmentListKey keys one page of a tenant's appointment list.
func AppointmentListKey(tenantID uuid.UUID, branchID *uuid.UUID, page, pageSize int) string {
	branch := "all"
	if branchID != nil {
		branch = branchID.String()
	}
	return fmt.Sprintf("tenant:%s:appointments:branch:%s:p:%d:s:%d", tenantID, branch, page, pageSize)
}

// AppointmentPrefix is the invalidation prefix for a tenant's appointment
// queries.
func AppointmentPrefix(tenantID uuid.UUID) string {
	return fmt.Sprintf("tenant:%s:appointments:", tenantID)
}

// BranchListKey keys a tenant's branch list.
func BranchListKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("tenant:%s:branches", tenantID)
}
