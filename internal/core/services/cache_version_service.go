package services

import (
	"context"
	"fmt"

	portsrepo "github.com/dallyhq/dally_backend/internal/core/ports/repositories"
	portssvc "github.com/dallyhq/dally_backend/internal/core/ports/services"
)

// cacheVersionService implements the CacheVersionSvcFacade interface over
// the shared version-counter store.
type cacheVersionService struct {
	BaseService
	versionRepo portsrepo.CacheVersionRepository
}

// NewCacheVersionService creates a new cache version service.
func NewCacheVersionService(versionRepo portsrepo.CacheVersionRepository) portssvc.CacheVersionSvcFacade {
	return &cacheVersionService{versionRepo: versionRepo}
}

var _ portssvc.CacheVersionSvcFacade = (*cacheVersionService)(nil)

// Version returns the owner's current cache version, initialising it on
// first use.
func (s *cacheVersionService) Version(ctx context.Context, ownerID string) (int64, error) {
	version, err := s.versionRepo.GetVersion(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache version: %w", err)
	}
	return version, nil
}

// Invalidate bumps the owner's cache version by exactly one.
func (s *cacheVersionService) Invalidate(ctx context.Context, ownerID string) error {
	if err := s.versionRepo.BumpVersion(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to bump cache version: %w", err)
	}
	return nil
}
