package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/innkeep/backend/internal/domain/shared"
)

// Status represents the lifecycle status of a booking
type Status string

const (
	StatusPending    Status = "pending"
	StatusReserved   Status = "reserved"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// IsValid checks if the status is a known booking status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReserved, StatusCheckedIn, StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusReserved || target == StatusCheckedIn || target == StatusCancelled
	case StatusReserved:
		return target == StatusCheckedIn || target == StatusCancelled || target == StatusNoShow
	case StatusCheckedIn:
		return target == StatusCheckedOut
	case StatusCheckedOut, StatusCancelled, StatusNoShow:
		return false // Terminal states
	}
	return false
}

// BookingRoom is one room line of a persisted booking
type BookingRoom struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID       uuid.UUID `gorm:"type:uuid;index"`
	RoomID          uuid.UUID `gorm:"type:uuid;index"`
	RoomNumber      string
	NightlyRate     decimal.Decimal `gorm:"type:numeric(12,2)"`
	Nights          int
	AllocatedGuests int
	Amount          decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt       time.Time
}

// BookingCharge is one charge line of a persisted booking
type BookingCharge struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID    uuid.UUID `gorm:"type:uuid;index"`
	ChargeItemID uuid.UUID `gorm:"type:uuid"`
	Name         string
	Quantity     int
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2)"`
	ChargeType   ChargeType
	IsVATable    bool
	Amount       decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt    time.Time
}

// BookingPayment is one payment line of a persisted booking
type BookingPayment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID uuid.UUID `gorm:"type:uuid;index"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Method    PaymentMethod
	PaidAt    time.Time
	CreatedAt time.Time
}

// Booking is the persisted booking aggregate root. It carries its rooms,
// charges, and payments as child records that are written and replaced
// together with the booking itself.
type Booking struct {
	shared.BaseAggregateRoot
	BookingReference string    `gorm:"uniqueIndex"`
	GuestID          uuid.UUID `gorm:"type:uuid;index"`
	CheckInDate      time.Time
	CheckOutDate     time.Time
	Nights           int
	Adults           int
	Children         int
	Status           Status `gorm:"index"`
	SpecialRequests  string

	RoomSubtotal    decimal.Decimal `gorm:"type:numeric(12,2)"`
	ChargesSubtotal decimal.Decimal `gorm:"type:numeric(12,2)"`
	Discount        decimal.Decimal `gorm:"type:numeric(12,2)"`
	DiscountType    DiscountType
	VATAmount       decimal.Decimal `gorm:"type:numeric(12,2)"`
	GrandTotal      decimal.Decimal `gorm:"type:numeric(12,2)"`

	Rooms    []BookingRoom    `gorm:"foreignKey:BookingID"`
	Charges  []BookingCharge  `gorm:"foreignKey:BookingID"`
	Payments []BookingPayment `gorm:"foreignKey:BookingID"`
}

// NewBooking creates a new booking aggregate
func NewBooking(reference string, guestID uuid.UUID, checkIn, checkOut time.Time, adults, children int, status Status) (*Booking, error) {
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Booking reference cannot be empty")
	}
	if guestID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_GUEST", "Guest ID cannot be empty")
	}
	if !checkOut.After(checkIn) {
		return nil, shared.NewDomainError("INVALID_DATES", "Check-out must be after check-in")
	}
	if adults < 1 {
		return nil, shared.NewDomainError("INVALID_OCCUPANCY", "At least one adult is required")
	}
	if children < 0 {
		return nil, shared.NewDomainError("INVALID_OCCUPANCY", "Children cannot be negative")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown booking status")
	}

	b := &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BookingReference:  reference,
		GuestID:           guestID,
		CheckInDate:       checkIn,
		CheckOutDate:      checkOut,
		Nights:            NightsBetween(checkIn, checkOut),
		Adults:            adults,
		Children:          children,
		Status:            status,
		Discount:          decimal.Zero,
		DiscountType:      DiscountBeforeTax,
		Rooms:             make([]BookingRoom, 0),
		Charges:           make([]BookingCharge, 0),
		Payments:          make([]BookingPayment, 0),
	}

	b.AddDomainEvent(NewBookingCreatedEvent(b))

	return b, nil
}

// AddRoom appends a room line
func (b *Booking) AddRoom(roomID uuid.UUID, roomNumber string, nightlyRate decimal.Decimal, nights, allocatedGuests int) error {
	if roomID == uuid.Nil {
		return shared.NewDomainError("INVALID_ROOM", "Room ID cannot be empty")
	}
	if allocatedGuests < 1 {
		return shared.NewDomainError("INVALID_ROOM", "Allocated guests must be at least 1")
	}
	if nightlyRate.IsNegative() {
		return shared.NewDomainError("INVALID_ROOM", "Nightly rate cannot be negative")
	}
	b.Rooms = append(b.Rooms, BookingRoom{
		ID:              uuid.New(),
		BookingID:       b.ID,
		RoomID:          roomID,
		RoomNumber:      roomNumber,
		NightlyRate:     nightlyRate,
		Nights:          nights,
		AllocatedGuests: allocatedGuests,
		Amount:          nightlyRate.Mul(decimal.NewFromInt(int64(nights))),
		CreatedAt:       time.Now(),
	})
	b.Touch()
	return nil
}

// AddCharge appends a charge line with its computed amount
func (b *Booking) AddCharge(line ChargeLine, amount decimal.Decimal) error {
	if line.Quantity < 1 {
		return shared.NewDomainError("INVALID_CHARGE", "Charge quantity must be at least 1")
	}
	b.Charges = append(b.Charges, BookingCharge{
		ID:           uuid.New(),
		BookingID:    b.ID,
		ChargeItemID: line.ChargeItemID,
		Name:         line.Name,
		Quantity:     line.Quantity,
		UnitPrice:    line.UnitPrice,
		ChargeType:   line.ChargeType,
		IsVATable:    line.IsVATable,
		Amount:       amount,
		CreatedAt:    time.Now(),
	})
	b.Touch()
	return nil
}

// AddPayment appends a payment line
func (b *Booking) AddPayment(amount decimal.Decimal, method PaymentMethod, paidAt time.Time) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT", "Unknown payment method")
	}
	b.Payments = append(b.Payments, BookingPayment{
		ID:        uuid.New(),
		BookingID: b.ID,
		Amount:    amount,
		Method:    method,
		PaidAt:    paidAt,
		CreatedAt: time.Now(),
	})
	b.Touch()
	return nil
}

// ApplyFinancials stamps the computed financial summary onto the booking
func (b *Booking) ApplyFinancials(f Financials) {
	b.RoomSubtotal = f.RoomAndGuestTotal
	b.ChargesSubtotal = f.VATableChargesSubtotal.Add(f.NonVATableChargesSubtotal)
	b.Discount = f.Discount
	b.DiscountType = f.DiscountType
	b.VATAmount = f.VATAmount
	b.GrandTotal = f.GrandTotal
	b.Touch()
}

// ChangeStatus transitions the booking to the target status
func (b *Booking) ChangeStatus(target Status) error {
	if !b.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move booking from %s to %s", b.Status, target))
	}
	from := b.Status
	b.Status = target
	b.Touch()
	b.AddDomainEvent(NewBookingStatusChangedEvent(b, from, target))
	return nil
}

// TotalPaid returns the sum of all payment lines
func (b *Booking) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// BalanceDue returns the unpaid remainder, floored at zero
func (b *Booking) BalanceDue() decimal.Decimal {
	balance := b.GrandTotal.Sub(b.TotalPaid())
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// IsTerminal reports whether the booking is in a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCheckedOut || b.Status == StatusCancelled || b.Status == StatusNoShow
}
