// Package pricing computes nightly price breakdowns from the room rate
// tables stored with each room.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/property"
)

// Ensure RateTableProvider implements PriceProvider
var _ booking.PriceProvider = (*RateTableProvider)(nil)

// RateTableProvider prices a stay night by night from the weekday and
// weekend rates on the selected rooms. Friday and Saturday nights are
// priced at the weekend rate; guests above a room's base occupancy incur
// the room's extra-guest fee per night.
type RateTableProvider struct {
	roomRepo property.RoomRepository
	logger   *zap.Logger
}

// NewRateTableProvider creates a new RateTableProvider
func NewRateTableProvider(roomRepo property.RoomRepository, logger *zap.Logger) *RateTableProvider {
	return &RateTableProvider{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// Quote computes the price breakdown for a stay. Every selected room must
// resolve to a known room record; a selection pointing at a missing room
// fails the whole quote rather than producing a partial breakdown.
func (p *RateTableProvider) Quote(ctx context.Context, checkIn, checkOut time.Time, rooms []booking.RoomSelection) (*booking.PriceBreakdown, error) {
	nights := booking.NightsBetween(checkIn, checkOut)
	if nights < 1 {
		return nil, fmt.Errorf("stay from %s to %s has no nights", checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("no rooms selected")
	}

	ids := make([]uuid.UUID, 0, len(rooms))
	for _, sel := range rooms {
		ids = append(ids, sel.RoomID)
	}
	found, err := p.roomRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	byID := make(map[uuid.UUID]*property.Room, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	breakdown := &booking.PriceBreakdown{
		RoomSubtotal:    decimal.Zero,
		ExtraGuestTotal: decimal.Zero,
	}

	firstNight := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, checkIn.Location())
	for _, sel := range rooms {
		room, ok := byID[sel.RoomID]
		if !ok {
			return nil, fmt.Errorf("room %s not found", sel.RoomID)
		}

		extraFee := room.ExtraGuestFeeFor(sel.AllocatedGuests)
		for i := 0; i < nights; i++ {
			night := firstNight.AddDate(0, 0, i)
			rate := room.RateFor(night)

			rateType := booking.RateTypeWeekday
			if night.Weekday() == time.Friday || night.Weekday() == time.Saturday {
				rateType = booking.RateTypeWeekend
			}

			breakdown.Nightly = append(breakdown.Nightly, booking.NightlyRate{
				RoomNumber:    room.RoomNumber,
				Date:          night,
				RateType:      rateType,
				RoomRate:      rate,
				ExtraGuestFee: extraFee,
			})
			breakdown.RoomSubtotal = breakdown.RoomSubtotal.Add(rate)
			breakdown.ExtraGuestTotal = breakdown.ExtraGuestTotal.Add(extraFee)
		}
	}

	p.logger.Debug("priced stay",
		zap.Int("nights", nights),
		zap.Int("rooms", len(rooms)),
		zap.String("room_subtotal", breakdown.RoomSubtotal.String()),
		zap.String("extra_guest_total", breakdown.ExtraGuestTotal.String()))

	return breakdown, nil
}
