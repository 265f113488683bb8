package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/cache"
	"github.com/otcheredev/clinic-pos/internal/models"
)

type fakeBranchStore struct {
	mu       sync.Mutex
	rows     []models.Branch
	listHits int
}

func (f *fakeBranchStore) List(ctx context.Context, rc auth.RequestContext) ([]models.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listHits++
	var out []models.Branch
	for _, row := range f.rows {
		if row.TenantID == rc.TenantID {
			out = append(out, row)
		}
	}
	return out, nil
}

func TestListBranchesCached(t *testing.T) {
	rc := testContext()
	store := &fakeBranchStore{rows: []models.Branch{
		{ID: uuid.New(), TenantID: rc.TenantID, Name: "Downtown"},
		{ID: uuid.New(), TenantID: uuid.New(), Name: "OtherTenant"},
	}}
	c := cache.NewMemoryCache()
	defer c.Close()
	svc := NewBranchService(store, c)
	ctx := context.Background()

	first, err := svc.List(ctx, rc)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Downtown", first[0].Name)

	second, err := svc.List(ctx, rc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.listHits)
}
