package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/shared"
)

// GormChargeItemRepository implements ChargeItemRepository using GORM
type GormChargeItemRepository struct {
	db *gorm.DB
}

// NewGormChargeItemRepository creates a new GormChargeItemRepository
func NewGormChargeItemRepository(db *gorm.DB) *GormChargeItemRepository {
	return &GormChargeItemRepository{db: db}
}

// FindByID finds a charge catalog item by ID
func (r *GormChargeItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.ChargeItem, error) {
	var item booking.ChargeItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds charge catalog items with filtering and pagination
func (r *GormChargeItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]booking.ChargeItem, error) {
	var items []booking.ChargeItem
	query := r.applyFilter(r.db.WithContext(ctx).Model(&booking.ChargeItem{}), filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindDefaults finds the catalog items seeded into every new draft
func (r *GormChargeItemRepository) FindDefaults(ctx context.Context) ([]booking.ChargeItem, error) {
	var items []booking.ChargeItem
	if err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a charge catalog item
func (r *GormChargeItemRepository) Save(ctx context.Context, item *booking.ChargeItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a charge catalog item
func (r *GormChargeItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&booking.ChargeItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts charge catalog items matching the filter
func (r *GormChargeItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&booking.ChargeItem{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormChargeItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ChargeItemSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormChargeItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "charge_type":
			query = query.Where("charge_type = ?", value)
		case "is_default":
			query = query.Where("is_default = ?", value)
		case "is_vatable":
			query = query.Where("is_vatable = ?", value)
		}
	}
	return query
}
