package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/cache"
	"github.com/otcheredev/clinic-pos/internal/metrics"
	"github.com/otcheredev/clinic-pos/internal/models"
)

const branchListTTL = 10 * time.Minute

type branchStore interface {
	List(ctx context.Context, rc auth.RequestContext) ([]models.Branch, error)
}

// BranchService handles business logic for branches
type BranchService struct {
	branches branchStore
	cache    cache.Cache
}

// NewBranchService creates a new branch service
func NewBranchService(branches branchStore, c cache.Cache) *BranchService {
	return &BranchService{branches: branches, cache: c}
}

// List returns the tenant's branches through the read-through cache.
func (s *BranchService) List(ctx context.Context, rc auth.RequestContext) ([]models.BranchDTO, error) {
	key := cache.BranchListKey(rc.TenantID)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached []models.BranchDTO
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheHits.WithLabelValues("branches").Inc()
			return cached, nil
		}
	}
	metrics.CacheMisses.WithLabelValues("branches").Inc()

	branches, err := s.branches.List(ctx, rc)
	if err != nil {
		return nil, err
	}

	result := make([]models.BranchDTO, 0, len(branches))
	for _, b := range branches {
		result = append(result, models.BranchDTO{ID: b.ID, Name: b.Name})
	}

	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, data, branchListTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to cache branch list")
		}
	}

	return result, nil
}
