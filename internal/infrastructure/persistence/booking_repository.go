package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/guest"
	"github.com/innkeep/backend/internal/domain/shared"
)

// GormBookingRepository implements BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by its ID with all child records loaded
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var b booking.Booking
	if err := r.db.WithContext(ctx).
		Preload("Rooms").
		Preload("Charges").
		Preload("Payments").
		First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByReference finds a booking by its booking reference
func (r *GormBookingRepository) FindByReference(ctx context.Context, reference string) (*booking.Booking, error) {
	var b booking.Booking
	if err := r.db.WithContext(ctx).
		Preload("Rooms").
		Preload("Charges").
		Preload("Payments").
		Where("booking_reference = ?", reference).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindAll finds bookings with filtering and pagination
func (r *GormBookingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]booking.Booking, error) {
	var bookings []booking.Booking
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&booking.Booking{}).
			Preload("Rooms").
			Preload("Charges").
			Preload("Payments"),
		filter,
	)

	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Count counts bookings matching the filter
func (r *GormBookingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&booking.Booking{}),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateFull persists a new booking with its child rooms, charges, and
// payments, and the new guest record when one is attached, in a single
// transaction. Either everything is written or nothing is.
func (r *GormBookingRepository) CreateFull(ctx context.Context, b *booking.Booking, newGuest *guest.Guest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if newGuest != nil {
			if err := tx.Create(newGuest).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		return nil
	})
}

// UpdateFull rewrites a booking and fully replaces its rooms, charges,
// and payments. Existing child rows are deleted and the draft's rows
// written fresh; merging is never attempted.
func (r *GormBookingRepository) UpdateFull(ctx context.Context, b *booking.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing booking.Booking
		if err := tx.First(&existing, "id = ?", b.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		b.CreatedAt = existing.CreatedAt
		b.Version = existing.Version + 1

		if err := tx.Where("booking_id = ?", b.ID).Delete(&booking.BookingRoom{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", b.ID).Delete(&booking.BookingCharge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", b.ID).Delete(&booking.BookingPayment{}).Error; err != nil {
			return err
		}

		if err := tx.Omit("Rooms", "Charges", "Payments").Save(b).Error; err != nil {
			return err
		}
		if len(b.Rooms) > 0 {
			if err := tx.Create(&b.Rooms).Error; err != nil {
				return err
			}
		}
		if len(b.Charges) > 0 {
			if err := tx.Create(&b.Charges).Error; err != nil {
				return err
			}
		}
		if len(b.Payments) > 0 {
			if err := tx.Create(&b.Payments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a booking and its child records
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&booking.BookingRoom{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", id).Delete(&booking.BookingCharge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", id).Delete(&booking.BookingPayment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&booking.Booking{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies filter options including pagination and ordering
func (r *GormBookingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BookingSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBookingRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("booking_reference ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "guest_id":
			query = query.Where("guest_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "check_in_from":
			if t, ok := value.(time.Time); ok {
				query = query.Where("check_in_date >= ?", t)
			}
		case "check_in_to":
			if t, ok := value.(time.Time); ok {
				query = query.Where("check_in_date <= ?", t)
			}
		case "check_out_from":
			if t, ok := value.(time.Time); ok {
				query = query.Where("check_out_date >= ?", t)
			}
		case "check_out_to":
			if t, ok := value.(time.Time); ok {
				query = query.Where("check_out_date <= ?", t)
			}
		}
	}
	return query
}
