package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/innkeep/backend/internal/domain/access"
	"github.com/innkeep/backend/internal/domain/shared"
)

// GormCardKeyRepository implements CardKeyRepository using GORM
type GormCardKeyRepository struct {
	db *gorm.DB
}

// NewGormCardKeyRepository creates a new GormCardKeyRepository
func NewGormCardKeyRepository(db *gorm.DB) *GormCardKeyRepository {
	return &GormCardKeyRepository{db: db}
}

// FindByID finds a card key by ID
func (r *GormCardKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*access.CardKey, error) {
	var key access.CardKey
	if err := r.db.WithContext(ctx).First(&key, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &key, nil
}

// FindByBooking finds the card keys issued for a booking, newest first
func (r *GormCardKeyRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]access.CardKey, error) {
	var keys []access.CardKey
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// FindAll finds card keys with filtering and pagination
func (r *GormCardKeyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]access.CardKey, error) {
	var keys []access.CardKey
	query := r.db.WithContext(ctx).Model(&access.CardKey{})

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "room_id":
			query = query.Where("room_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CardKeySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(orderBy + " " + orderDir).Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// Save creates or updates a card key
func (r *GormCardKeyRepository) Save(ctx context.Context, k *access.CardKey) error {
	return r.db.WithContext(ctx).Save(k).Error
}

// Delete removes a card key
func (r *GormCardKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&access.CardKey{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
