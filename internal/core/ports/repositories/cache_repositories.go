package repositories

import "context"

// CacheVersionRepository stores a monotonically increasing version counter
// per owner in shared storage, so every service instance sees the same
// counter. The counter is bumped on every ledger mutation and read before
// every summary cache lookup; stale cache entries simply miss and fall
// through to a fresh computation.
type CacheVersionRepository interface {
	GetVersion(ctx context.Context, ownerID string) (int64, error)
	BumpVersion(ctx context.Context, ownerID string) error
}
