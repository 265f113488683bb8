package auth

import (
	"strings"

	"github.com/google/uuid"
)

// RequestContext is the per-request identity derived from verified claims.
// It is built once per inbound call and passed by value; nothing mutates it
// afterwards.
type RequestContext struct {
	UserID    uuid.UUID
	TenantID  uuid.UUID
	Role      string
	BranchIDs []uuid.UUID
}

// ContextFromClaims derives a RequestContext from already-verified claims.
// It never fails: a missing or malformed subject or tenant just leaves the
// field as uuid.Nil, which downstream tenant scoping treats as "no context"
// and fails closed.
func ContextFromClaims(claims *Claims) RequestContext {
	rc := RequestContext{Role: claims.Role}

	if id, err := uuid.Parse(claims.Subject); err == nil {
		rc.UserID = id
	}
	if id, err := uuid.Parse(claims.TenantID); err == nil {
		rc.TenantID = id
	}

	for _, part := range strings.Split(claims.BranchIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := uuid.Parse(part); err == nil {
			rc.BranchIDs = append(rc.BranchIDs, id)
		}
	}

	return rc
}

// Authenticated reports whether the context carries a usable identity for
// tenant scoping.
func (rc RequestContext) Authenticated() bool {
	return rc.UserID != uuid.Nil && rc.TenantID != uuid.Nil
}
