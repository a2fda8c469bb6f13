package domain

import "context"

// AggregateCache caches the assigned-by-technician fold per resource.
// Strictly a cache: it is invalidated on every ledger append and always
// recomputable from the full ledger, never a second source of truth.
type AggregateCache interface {
	Get(ctx context.Context, resourceType ResourceType, resourceID uint) (map[uint]float64, bool)
	Set(ctx context.Context, resourceType ResourceType, resourceID uint, totals map[uint]float64)
	Invalidate(ctx context.Context, resourceType ResourceType, resourceID uint)
}
