package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestContextFromClaims(t *testing.T) {
	userID := uuid.New()
	tenantID := uuid.New()
	branchA := uuid.New()
	branchB := uuid.New()

	claims := &Claims{
		TenantID:  tenantID.String(),
		Role:      "Admin",
		BranchIDs: branchA.String() + "," + branchB.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID.String(),
		},
	}

	rc := ContextFromClaims(claims)
	assert.Equal(t, userID, rc.UserID)
	assert.Equal(t, tenantID, rc.TenantID)
	assert.Equal(t, "Admin", rc.Role)
	assert.Equal(t, []uuid.UUID{branchA, branchB}, rc.BranchIDs)
	assert.True(t, rc.Authenticated())
}

func TestContextFromClaimsMissingOptional(t *testing.T) {
	claims := &Claims{
		TenantID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: uuid.New().String(),
		},
	}

	rc := ContextFromClaims(claims)
	assert.Empty(t, rc.Role)
	assert.Empty(t, rc.BranchIDs)
	assert.True(t, rc.Authenticated())
}

func TestContextFromClaimsMalformed(t *testing.T) {
	claims := &Claims{
		TenantID:  "not-a-uuid",
		BranchIDs: "also-not-a-uuid,,  ," + uuid.Nil.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "garbage",
		},
	}

	rc := ContextFromClaims(claims)
	assert.Equal(t, uuid.Nil, rc.UserID)
	assert.Equal(t, uuid.Nil, rc.TenantID)
	assert.False(t, rc.Authenticated())
	// uuid.Nil parses fine and stays; malformed entries are dropped
	assert.Equal(t, []uuid.UUID{uuid.Nil}, rc.BranchIDs)
}

func TestContextFromClaimsEmpty(t *testing.T) {
	rc := ContextFromClaims(&Claims{})
	assert.False(t, rc.Authenticated())
	assert.Equal(t, uuid.Nil, rc.TenantID)
	assert.Empty(t, rc.BranchIDs)
}
