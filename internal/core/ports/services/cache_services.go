package services

import "context"

// CacheVersionSvcFacade exposes the per-owner cache version counter. The
// counter lives in shared storage so multiple service instances agree on it;
// handlers read it to build cache keys and the ledger bumps it on every
// mutation.
type CacheVersionSvcFacade interface {
	Version(ctx context.Context, ownerID string) (int64, error)
	Invalidate(ctx context.Context, ownerID string) error
}
