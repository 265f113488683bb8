package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheGetSet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDeletePrefixScopedToTenant(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	tenantA := uuid.New()
	tenantB := uuid.New()

	keyA := PatientListKey(tenantA, nil, 1, 20)
	keyB := PatientListKey(tenantB, nil, 1, 20)
	branchesA := BranchListKey(tenantA)

	require.NoError(t, c.Set(ctx, keyA, []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, keyB, []byte("b"), time.Minute))
	require.NoError(t, c.Set(ctx, branchesA, []byte("br"), time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, PatientPrefix(tenantA)))

	_, err := c.Get(ctx, keyA)
	assert.ErrorIs(t, err, ErrCacheMiss, "tenant A patient pages must be evicted")

	val, err := c.Get(ctx, keyB)
	require.NoError(t, err, "tenant B entries must survive tenant A invalidation")
	assert.Equal(t, []byte("b"), val)

	_, err = c.Get(ctx, branchesA)
	require.NoError(t, err, "other entity kinds of the same tenant must survive")
}

func TestKeyScheme(t *testing.T) {
	tenantID := uuid.MustParse("9f0c2a9e-76a4-4f7d-9c87-1d2f3b4a5c6d")
	branchID := uuid.MustParse("0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9")

	assert.Equal(t,
		"tenant:9f0c2a9e-76a4-4f7d-9c87-1d2f3b4a5c6d:patients:branch:all:p:1:s:20",
		PatientListKey(tenantID, nil, 1, 20))
	assert.Equal(t,
		"tenant:9f0c2a9e-76a4-4f7d-9c87-1d2f3b4a5c6d:patients:branch:0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9:p:2:s:50",
		PatientListKey(tenantID, &branchID, 2, 50))
	assert.Equal(t,
		"tenant:9f0c2a9e-76a4-4f7d-9c87-1d2f3b4a5c6d:branches",
		BranchListKey(tenantID))
}
