package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/property"
)

// CreateRoomRequest represents a request to create a room
type CreateRoomRequest struct {
	RoomNumber    string          `json:"room_number" binding:"required,min=1,max=20"`
	CategoryID    uuid.UUID       `json:"category_id" binding:"required"`
	Floor         int             `json:"floor"`
	BaseOccupancy int             `json:"base_occupancy" binding:"required,min=1"`
	Capacity      int             `json:"capacity" binding:"required,min=1"`
	WeekdayRate   decimal.Decimal `json:"weekday_rate" binding:"required"`
	WeekendRate   decimal.Decimal `json:"weekend_rate" binding:"required"`
	ExtraGuestFee decimal.Decimal `json:"extra_guest_fee"`
}

// UpdateRoomRatesRequest replaces a room's rate card
type UpdateRoomRatesRequest struct {
	WeekdayRate   decimal.Decimal `json:"weekday_rate" binding:"required"`
	WeekendRate   decimal.Decimal `json:"weekend_rate" binding:"required"`
	ExtraGuestFee decimal.Decimal `json:"extra_guest_fee"`
}

// ChangeRoomStatusRequest changes a room's operational status
type ChangeRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available occupied maintenance"`
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID            uuid.UUID       `json:"id"`
	RoomNumber    string          `json:"room_number"`
	CategoryID    uuid.UUID       `json:"category_id"`
	Floor         int             `json:"floor"`
	BaseOccupancy int             `json:"base_occupancy"`
	Capacity      int             `json:"capacity"`
	WeekdayRate   decimal.Decimal `json:"weekday_rate"`
	WeekendRate   decimal.Decimal `json:"weekend_rate"`
	ExtraGuestFee decimal.Decimal `json:"extra_guest_fee"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToRoomResponse converts a room aggregate to a response DTO
func ToRoomResponse(r *property.Room) RoomResponse {
	return RoomResponse{
		ID:            r.ID,
		RoomNumber:    r.RoomNumber,
		CategoryID:    r.CategoryID,
		Floor:         r.Floor,
		BaseOccupancy: r.BaseOccupancy,
		Capacity:      r.Capacity,
		WeekdayRate:   r.WeekdayRate,
		WeekendRate:   r.WeekendRate,
		ExtraGuestFee: r.ExtraGuestFee,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// CreateCategoryRequest represents a request to create a room category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CategoryResponse represents a room category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a category to a response DTO
func ToCategoryResponse(c *property.RoomCategory) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateChargeItemRequest represents a request to create a charge catalog entry
type CreateChargeItemRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Value      decimal.Decimal `json:"value" binding:"required"`
	ChargeType string          `json:"charge_type" binding:"required,oneof=fixed percentage"`
	IsVATable  bool            `json:"is_vatable"`
	IsDefault  bool            `json:"is_default"`
}

// ChargeItemResponse represents a charge catalog entry in API responses
type ChargeItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	ChargeType string          `json:"charge_type"`
	IsVATable  bool            `json:"is_vatable"`
	IsDefault  bool            `json:"is_default"`
}

// ToChargeItemResponse converts a charge item to a response DTO
func ToChargeItemResponse(c *booking.ChargeItem) ChargeItemResponse {
	return ChargeItemResponse{
		ID:         c.ID,
		Name:       c.Name,
		Value:      c.Value,
		ChargeType: string(c.ChargeType),
		IsVATable:  c.IsVATable,
		IsDefault:  c.IsDefault,
	}
}
