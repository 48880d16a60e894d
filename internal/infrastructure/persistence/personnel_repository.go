package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/innkeep/backend/internal/domain/identity"
	"github.com/innkeep/backend/internal/domain/shared"
)

// GormPersonnelRepository implements PersonnelRepository using GORM
type GormPersonnelRepository struct {
	db *gorm.DB
}

// NewGormPersonnelRepository creates a new GormPersonnelRepository
func NewGormPersonnelRepository(db *gorm.DB) *GormPersonnelRepository {
	return &GormPersonnelRepository{db: db}
}

// FindByID finds a personnel record by ID
func (r *GormPersonnelRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Personnel, error) {
	var p identity.Personnel
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByUsername finds a personnel record by username
func (r *GormPersonnelRepository) FindByUsername(ctx context.Context, username string) (*identity.Personnel, error) {
	var p identity.Personnel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds personnel records with filtering and pagination
func (r *GormPersonnelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Personnel, error) {
	var personnel []identity.Personnel
	query := r.db.WithContext(ctx).Model(&identity.Personnel{})

	for key, value := range filter.Filters {
		switch key {
		case "role":
			query = query.Where("role = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PersonnelSortFields, "username")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(orderBy + " " + orderDir).Find(&personnel).Error; err != nil {
		return nil, err
	}
	return personnel, nil
}

// Save creates or updates a personnel record
func (r *GormPersonnelRepository) Save(ctx context.Context, p *identity.Personnel) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a personnel record
func (r *GormPersonnelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Personnel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
