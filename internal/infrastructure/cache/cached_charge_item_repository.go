package cache

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/shared"
)

// Ensure CachedChargeItemRepository implements ChargeItemRepository
var _ booking.ChargeItemRepository = (*CachedChargeItemRepository)(nil)

// CachedChargeItemRepository decorates a ChargeItemRepository with a
// cache over FindDefaults. Writes invalidate the cache; cache failures
// degrade to repository reads, never to request failures.
type CachedChargeItemRepository struct {
	inner  booking.ChargeItemRepository
	cache  ChargeCatalogCache
	logger *zap.Logger
}

// NewCachedChargeItemRepository creates a new CachedChargeItemRepository
func NewCachedChargeItemRepository(inner booking.ChargeItemRepository, cache ChargeCatalogCache, logger *zap.Logger) *CachedChargeItemRepository {
	return &CachedChargeItemRepository{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

// FindByID finds a charge catalog item by ID
func (r *CachedChargeItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.ChargeItem, error) {
	return r.inner.FindByID(ctx, id)
}

// FindAll finds charge catalog items with filtering
func (r *CachedChargeItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]booking.ChargeItem, error) {
	return r.inner.FindAll(ctx, filter)
}

// FindDefaults returns the default catalog entries, served from cache
// when possible
func (r *CachedChargeItemRepository) FindDefaults(ctx context.Context) ([]booking.ChargeItem, error) {
	items, hit, err := r.cache.GetDefaults(ctx)
	if err != nil {
		r.logger.Warn("charge catalog cache read failed", zap.Error(err))
	} else if hit {
		return items, nil
	}

	items, err = r.inner.FindDefaults(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetDefaults(ctx, items); err != nil {
		r.logger.Warn("charge catalog cache write failed", zap.Error(err))
	}
	return items, nil
}

// Save writes a catalog item and invalidates the defaults cache
func (r *CachedChargeItemRepository) Save(ctx context.Context, item *booking.ChargeItem) error {
	if err := r.inner.Save(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Delete removes a catalog item and invalidates the defaults cache
func (r *CachedChargeItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Count counts catalog items matching the filter
func (r *CachedChargeItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.inner.Count(ctx, filter)
}

func (r *CachedChargeItemRepository) invalidate(ctx context.Context) {
	if err := r.cache.Invalidate(ctx); err != nil {
		r.logger.Warn("charge catalog cache invalidation failed", zap.Error(err))
	}
}
