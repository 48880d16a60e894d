package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/innkeep/backend/internal/domain/shared"
)

// RoomStatus is the operational status of a room
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// IsValid checks if the room status is known
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

// RoomCategory groups rooms of the same type (Standard, Deluxe, ...)
type RoomCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewRoomCategory creates a new room category
func NewRoomCategory(name, description string) (*RoomCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}
	now := time.Now()
	return &RoomCategory{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Room is a bookable room with its rate card. BaseOccupancy is the guest
// count included in the room rate; each guest beyond it incurs the
// extra-guest fee per night, up to Capacity.
type Room struct {
	shared.BaseAggregateRoot
	RoomNumber    string    `gorm:"uniqueIndex"`
	CategoryID    uuid.UUID `gorm:"type:uuid;index"`
	Floor         int
	BaseOccupancy int
	Capacity      int
	WeekdayRate   decimal.Decimal `gorm:"type:numeric(12,2)"`
	WeekendRate   decimal.Decimal `gorm:"type:numeric(12,2)"`
	ExtraGuestFee decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status        RoomStatus      `gorm:"index"`
}

// NewRoom creates a new room
func NewRoom(roomNumber string, categoryID uuid.UUID, floor, baseOccupancy, capacity int, weekdayRate, weekendRate, extraGuestFee decimal.Decimal) (*Room, error) {
	if roomNumber == "" {
		return nil, shared.NewDomainError("INVALID_ROOM", "Room number cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROOM", "Category ID cannot be empty")
	}
	if baseOccupancy < 1 {
		return nil, shared.NewDomainError("INVALID_ROOM", "Base occupancy must be at least 1")
	}
	if capacity < baseOccupancy {
		return nil, shared.NewDomainError("INVALID_ROOM", "Capacity cannot be below base occupancy")
	}
	if weekdayRate.IsNegative() || weekendRate.IsNegative() || extraGuestFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ROOM", "Rates cannot be negative")
	}
	return &Room{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomNumber:        roomNumber,
		CategoryID:        categoryID,
		Floor:             floor,
		BaseOccupancy:     baseOccupancy,
		Capacity:          capacity,
		WeekdayRate:       weekdayRate,
		WeekendRate:       weekendRate,
		ExtraGuestFee:     extraGuestFee,
		Status:            RoomStatusAvailable,
	}, nil
}

// RateFor returns the nightly rate for the night beginning on the given
// date. Friday and Saturday nights use the weekend rate.
func (r *Room) RateFor(night time.Time) decimal.Decimal {
	switch night.Weekday() {
	case time.Friday, time.Saturday:
		return r.WeekendRate
	default:
		return r.WeekdayRate
	}
}

// ExtraGuestFeeFor returns the per-night fee for the given guest count
func (r *Room) ExtraGuestFeeFor(allocatedGuests int) decimal.Decimal {
	extra := allocatedGuests - r.BaseOccupancy
	if extra <= 0 {
		return decimal.Zero
	}
	return r.ExtraGuestFee.Mul(decimal.NewFromInt(int64(extra)))
}

// ChangeStatus updates the room status
func (r *Room) ChangeStatus(status RoomStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_ROOM_STATUS", "Unknown room status")
	}
	r.Status = status
	r.Touch()
	return nil
}

// UpdateRates replaces the room's rate card
func (r *Room) UpdateRates(weekdayRate, weekendRate, extraGuestFee decimal.Decimal) error {
	if weekdayRate.IsNegative() || weekendRate.IsNegative() || extraGuestFee.IsNegative() {
		return shared.NewDomainError("INVALID_ROOM", "Rates cannot be negative")
	}
	r.WeekdayRate = weekdayRate
	r.WeekendRate = weekendRate
	r.ExtraGuestFee = extraGuestFee
	r.Touch()
	return nil
}

// RoomRepository persists rooms
type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Room, error)
	FindByNumber(ctx context.Context, roomNumber string) (*Room, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Room, error)
	Save(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// RoomCategoryRepository persists room categories
type RoomCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomCategory, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]RoomCategory, error)
	Save(ctx context.Context, c *RoomCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}
