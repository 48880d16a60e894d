package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateType identifies which rate card a night was priced with
type RateType string

const (
	RateTypeWeekday RateType = "WEEKDAY"
	RateTypeWeekend RateType = "WEEKEND"
)

// RoomSelection is one room plus the number of guests assigned to it,
// as sent to the price provider
type RoomSelection struct {
	RoomID          uuid.UUID
	AllocatedGuests int
}

// NightlyRate is the price of one room for one night
type NightlyRate struct {
	RoomNumber    string          `json:"room_number"`
	Date          time.Time       `json:"date"`
	RateType      RateType        `json:"rate_type"`
	RoomRate      decimal.Decimal `json:"room_rate"`
	ExtraGuestFee decimal.Decimal `json:"extra_guest_fee"`
}

// PriceBreakdown is the externally computed nightly pricing for a stay.
// It is replaced wholesale on every recalculation and never mutated.
type PriceBreakdown struct {
	RoomSubtotal    decimal.Decimal `json:"room_subtotal"`
	ExtraGuestTotal decimal.Decimal `json:"extra_guest_total"`
	Nightly         []NightlyRate   `json:"nightly_breakdown"`
}

// RoomAndGuestTotal returns the room subtotal plus extra-guest fees.
// A nil breakdown contributes zero, so charges and payments can still be
// edited before a price is known.
func (b *PriceBreakdown) RoomAndGuestTotal() decimal.Decimal {
	if b == nil {
		return decimal.Zero
	}
	return b.RoomSubtotal.Add(b.ExtraGuestTotal)
}

// NightlyRateFor returns the first nightly room rate recorded for the given
// room number. The boolean is false when the room does not appear in the
// breakdown at all; callers must surface that case instead of silently
// booking the room at zero.
func (b *PriceBreakdown) NightlyRateFor(roomNumber string) (decimal.Decimal, bool) {
	if b == nil {
		return decimal.Zero, false
	}
	for _, n := range b.Nightly {
		if n.RoomNumber == roomNumber {
			return n.RoomRate, true
		}
	}
	return decimal.Zero, false
}

// PriceProvider computes a price breakdown for a stay and a set of room
// selections. Implementations perform I/O; failures must be wrapped in
// shared.ErrPriceCalculation by the caller before reaching the user.
type PriceProvider interface {
	Quote(ctx context.Context, checkIn, checkOut time.Time, rooms []RoomSelection) (*PriceBreakdown, error)
}
