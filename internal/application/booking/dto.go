package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/innkeep/backend/internal/domain/booking"
)

// ==================== Wizard DTOs ====================

// SetStatusRequest sets the draft booking status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetDatesRequest sets the stay dates. Either date may be null while the
// operator is still picking.
type SetDatesRequest struct {
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
}

// SetOccupancyRequest sets the party size
type SetOccupancyRequest struct {
	Adults   int `json:"adults" binding:"required,min=1"`
	Children int `json:"children" binding:"min=0"`
}

// SetGuestModeRequest switches between new and existing guest capture
type SetGuestModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=new existing"`
}

// GuestDetailsRequest carries the inline guest fields
type GuestDetailsRequest struct {
	FirstName     string `json:"first_name" binding:"max=100"`
	MiddleName    string `json:"middle_name" binding:"max=100"`
	LastName      string `json:"last_name" binding:"max=100"`
	ContactNumber string `json:"contact_number" binding:"max=30"`
	Email         string `json:"email" binding:"omitempty,email"`
	Street        string `json:"street" binding:"max=200"`
	Barangay      string `json:"barangay" binding:"max=100"`
	City          string `json:"city" binding:"max=100"`
	Province      string `json:"province" binding:"max=100"`
}

// ToGuestDetails converts the request into domain guest details
func (r GuestDetailsRequest) ToGuestDetails() booking.GuestDetails {
	return booking.GuestDetails{
		FirstName:     r.FirstName,
		MiddleName:    r.MiddleName,
		LastName:      r.LastName,
		ContactNumber: r.ContactNumber,
		Email:         r.Email,
		Street:        r.Street,
		Barangay:      r.Barangay,
		City:          r.City,
		Province:      r.Province,
	}
}

// SelectGuestRequest attaches an existing guest to the draft
type SelectGuestRequest struct {
	GuestID uuid.UUID `json:"guest_id" binding:"required"`
}

// SetAllocationRoomRequest resolves the room of one allocation slot
type SetAllocationRoomRequest struct {
	RoomID uuid.UUID `json:"room_id" binding:"required"`
}

// SetAllocationGuestsRequest sets the guest count of one allocation slot
type SetAllocationGuestsRequest struct {
	Guests int `json:"guests" binding:"required,min=1"`
}

// SetDiscountRequest sets the discount amount and type
type SetDiscountRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type" binding:"required,oneof=before_tax after_tax"`
}

// ChargeLineRequest is one charge line in a SetChargesRequest
type ChargeLineRequest struct {
	ChargeItemID uuid.UUID       `json:"charge_item_id" binding:"required"`
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Quantity     int             `json:"quantity" binding:"required,min=1"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ChargeType   string          `json:"charge_type" binding:"required,oneof=fixed percentage"`
	IsVATable    bool            `json:"is_vatable"`
}

// SetChargesRequest replaces the draft's charge lines
type SetChargesRequest struct {
	Charges []ChargeLineRequest `json:"charges"`
}

// AddPaymentRequest appends a payment line
type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required,oneof=cash card gcash bank_transfer"`
}

// SetSpecialRequestsRequest sets the free-text notes
type SetSpecialRequestsRequest struct {
	Text string `json:"text" binding:"max=2000"`
}

// AllocationResponse is one room allocation slot in a draft response
type AllocationResponse struct {
	RoomID          *uuid.UUID `json:"room_id"`
	RoomNumber      string     `json:"room_number"`
	Capacity        int        `json:"capacity"`
	AllocatedGuests int        `json:"allocated_guests"`
}

// DraftResponse is the wizard session state returned after every mutation
type DraftResponse struct {
	SessionID        string               `json:"session_id"`
	BookingReference string               `json:"booking_reference"`
	EditBookingID    *uuid.UUID           `json:"edit_booking_id,omitempty"`
	Step             int                  `json:"step"`
	StepName         string               `json:"step_name"`
	CanAdvance       bool                 `json:"can_advance"`
	Submitting       bool                 `json:"submitting"`
	Status           string               `json:"status"`
	CheckIn          *time.Time           `json:"check_in"`
	CheckOut         *time.Time           `json:"check_out"`
	Nights           int                  `json:"nights"`
	Adults           int                  `json:"adults"`
	Children         int                  `json:"children"`
	GuestMode        string               `json:"guest_mode"`
	SelectedGuestID  *uuid.UUID           `json:"selected_guest_id"`
	Guest            GuestDetailsRequest  `json:"guest"`
	HasPhoto         bool                 `json:"has_photo"`
	Allocations      []AllocationResponse `json:"allocations"`
	SpecialRequests  string               `json:"special_requests"`

	Breakdown  *booking.PriceBreakdown `json:"breakdown"`
	PriceError string                  `json:"price_error,omitempty"`
	Pricing    bool                    `json:"pricing"`
	Financials booking.Financials      `json:"financials"`
	Warnings   []string                `json:"warnings"`
}

// SubmitResult is the outcome of a successful booking submission
type SubmitResult struct {
	BookingID        uuid.UUID `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	Created          bool      `json:"created"`
	Warnings         []string  `json:"warnings,omitempty"`
}

// ValidationFailure carries the issues found by the pre-submit check
type ValidationFailure struct {
	Issues []string `json:"issues"`
}

// ==================== Booking query DTOs ====================

// BookingRoomResponse is one room line of a booking response
type BookingRoomResponse struct {
	RoomID          uuid.UUID       `json:"room_id"`
	RoomNumber      string          `json:"room_number"`
	NightlyRate     decimal.Decimal `json:"nightly_rate"`
	Nights          int             `json:"nights"`
	AllocatedGuests int             `json:"allocated_guests"`
	Amount          decimal.Decimal `json:"amount"`
}

// BookingChargeResponse is one charge line of a booking response
type BookingChargeResponse struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
	IsVATable bool            `json:"is_vatable"`
}

// BookingPaymentResponse is one payment line of a booking response
type BookingPaymentResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	PaidAt time.Time       `json:"paid_at"`
}

// BookingResponse represents a persisted booking
type BookingResponse struct {
	ID               uuid.UUID                `json:"id"`
	BookingReference string                   `json:"booking_reference"`
	GuestID          uuid.UUID                `json:"guest_id"`
	CheckInDate      time.Time                `json:"check_in_date"`
	CheckOutDate     time.Time                `json:"check_out_date"`
	Nights           int                      `json:"nights"`
	Adults           int                      `json:"adults"`
	Children         int                      `json:"children"`
	Status           string                   `json:"status"`
	SpecialRequests  string                   `json:"special_requests"`
	RoomSubtotal     decimal.Decimal          `json:"room_subtotal"`
	ChargesSubtotal  decimal.Decimal          `json:"charges_subtotal"`
	Discount         decimal.Decimal          `json:"discount"`
	DiscountType     string                   `json:"discount_type"`
	VATAmount        decimal.Decimal          `json:"vat_amount"`
	GrandTotal       decimal.Decimal          `json:"grand_total"`
	TotalPaid        decimal.Decimal          `json:"total_paid"`
	BalanceDue       decimal.Decimal          `json:"balance_due"`
	Rooms            []BookingRoomResponse    `json:"rooms"`
	Charges          []BookingChargeResponse  `json:"charges"`
	Payments         []BookingPaymentResponse `json:"payments"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// ChangeStatusRequest transitions a booking's status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ToBookingResponse converts a booking aggregate to a response DTO
func ToBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		GuestID:          b.GuestID,
		CheckInDate:      b.CheckInDate,
		CheckOutDate:     b.CheckOutDate,
		Nights:           b.Nights,
		Adults:           b.Adults,
		Children:         b.Children,
		Status:           b.Status.String(),
		SpecialRequests:  b.SpecialRequests,
		RoomSubtotal:     b.RoomSubtotal,
		ChargesSubtotal:  b.ChargesSubtotal,
		Discount:         b.Discount,
		DiscountType:     string(b.DiscountType),
		VATAmount:        b.VATAmount,
		GrandTotal:       b.GrandTotal,
		TotalPaid:        b.TotalPaid(),
		BalanceDue:       b.BalanceDue(),
		Rooms:            make([]BookingRoomResponse, 0, len(b.Rooms)),
		Charges:          make([]BookingChargeResponse, 0, len(b.Charges)),
		Payments:         make([]BookingPaymentResponse, 0, len(b.Payments)),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	for _, r := range b.Rooms {
		resp.Rooms = append(resp.Rooms, BookingRoomResponse{
			RoomID:          r.RoomID,
			RoomNumber:      r.RoomNumber,
			NightlyRate:     r.NightlyRate,
			Nights:          r.Nights,
			AllocatedGuests: r.AllocatedGuests,
			Amount:          r.Amount,
		})
	}
	for _, c := range b.Charges {
		resp.Charges = append(resp.Charges, BookingChargeResponse{
			Name:      c.Name,
			Quantity:  c.Quantity,
			UnitPrice: c.UnitPrice,
			Amount:    c.Amount,
			IsVATable: c.IsVATable,
		})
	}
	for _, p := range b.Payments {
		resp.Payments = append(resp.Payments, BookingPaymentResponse{
			Amount: p.Amount,
			Method: string(p.Method),
			PaidAt: p.PaidAt,
		})
	}
	return resp
}
