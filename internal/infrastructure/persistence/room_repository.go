package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/innkeep/backend/internal/domain/property"
	"github.com/innkeep/backend/internal/domain/shared"
)

// GormRoomRepository implements RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID finds a room by ID
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	var room property.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

// FindByIDs finds the rooms whose IDs are in the given set. Missing IDs
// are simply absent from the result, not an error.
func (r *GormRoomRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]property.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rooms []property.Room
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindByNumber finds a room by its room number
func (r *GormRoomRepository) FindByNumber(ctx context.Context, roomNumber string) (*property.Room, error) {
	var room property.Room
	if err := r.db.WithContext(ctx).Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

// FindAll finds rooms with filtering and pagination
func (r *GormRoomRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Room, error) {
	var rooms []property.Room
	query := r.applyFilter(r.db.WithContext(ctx).Model(&property.Room{}), filter)
	if err := query.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// Save creates or updates a room
func (r *GormRoomRepository) Save(ctx context.Context, room *property.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// Delete removes a room
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&property.Room{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts rooms matching the filter
func (r *GormRoomRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&property.Room{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormRoomRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, RoomSortFields, "room_number")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRoomRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("room_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "floor":
			query = query.Where("floor = ?", value)
		case "min_capacity":
			query = query.Where("capacity >= ?", value)
		}
	}
	return query
}

// GormRoomCategoryRepository implements RoomCategoryRepository using GORM
type GormRoomCategoryRepository struct {
	db *gorm.DB
}

// NewGormRoomCategoryRepository creates a new GormRoomCategoryRepository
func NewGormRoomCategoryRepository(db *gorm.DB) *GormRoomCategoryRepository {
	return &GormRoomCategoryRepository{db: db}
}

// FindByID finds a room category by ID
func (r *GormRoomCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.RoomCategory, error) {
	var category property.RoomCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds room categories ordered by name
func (r *GormRoomCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.RoomCategory, error) {
	var categories []property.RoomCategory
	query := r.db.WithContext(ctx).Model(&property.RoomCategory{}).Order("name ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a room category
func (r *GormRoomCategoryRepository) Save(ctx context.Context, c *property.RoomCategory) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes a room category
func (r *GormRoomCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&property.RoomCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
