package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/application/guest"
	"github.com/innkeep/backend/internal/domain/booking"
	guestdomain "github.com/innkeep/backend/internal/domain/guest"
	"github.com/innkeep/backend/internal/domain/shared"
)

// SubmitService turns a validated draft into a persisted booking. The
// pipeline is strictly ordered: photo upload, guest payload, financial
// finalization, then one atomic repository write. Any failure aborts the
// whole submission and leaves the draft untouched; there are no retries.
type SubmitService struct {
	bookingRepo booking.BookingRepository
	storage     guest.ObjectStorageService
	logger      *zap.Logger
}

// NewSubmitService creates a new SubmitService
func NewSubmitService(bookingRepo booking.BookingRepository, storage guest.ObjectStorageService, logger *zap.Logger) *SubmitService {
	return &SubmitService{
		bookingRepo: bookingRepo,
		storage:     storage,
		logger:      logger,
	}
}

// Validate runs the synchronous pre-submit check. A non-empty result
// means the pipeline must not start.
func (s *SubmitService) Validate(d *booking.Draft) []string {
	return d.Validate()
}

// Submit runs the submission pipeline for a draft whose validation
// already passed. The breakdown is the latest applied price quote; it
// may be nil when no rooms were ever priced, in which case every room
// line is surfaced as unpriced.
func (s *SubmitService) Submit(ctx context.Context, d *booking.Draft, breakdown *booking.PriceBreakdown) (*SubmitResult, error) {
	if issues := d.Validate(); len(issues) > 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Draft is not submittable: %v", issues))
	}

	var newGuest *guestdomain.Guest
	if !d.IsEdit() && d.GuestMode == booking.GuestModeNew {
		g, err := s.buildGuest(ctx, d)
		if err != nil {
			return nil, err
		}
		newGuest = g
	}

	financials := booking.CalculateFinancials(breakdown, d.Charges, d.Discount, d.DiscountType, d.Payments)

	b, warnings, err := s.buildBooking(d, newGuest, breakdown, financials)
	if err != nil {
		return nil, err
	}

	if d.IsEdit() {
		if err := s.bookingRepo.UpdateFull(ctx, b); err != nil {
			s.logger.Error("booking update failed",
				zap.String("booking_reference", b.BookingReference),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %v", shared.ErrSubmission, err)
		}
	} else {
		if err := s.bookingRepo.CreateFull(ctx, b, newGuest); err != nil {
			s.logger.Error("booking create failed",
				zap.String("booking_reference", b.BookingReference),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %v", shared.ErrSubmission, err)
		}
	}

	s.logger.Info("booking submitted",
		zap.String("booking_reference", b.BookingReference),
		zap.String("booking_id", b.ID.String()),
		zap.Bool("created", !d.IsEdit()),
		zap.Strings("warnings", warnings))

	return &SubmitResult{
		BookingID:        b.ID,
		BookingReference: b.BookingReference,
		Created:          !d.IsEdit(),
		Warnings:         warnings,
	}, nil
}

// buildGuest uploads the optional photo and builds the new guest record.
// Empty optional fields become nil, never empty strings.
func (s *SubmitService) buildGuest(ctx context.Context, d *booking.Draft) (*guestdomain.Guest, error) {
	g, err := guestdomain.NewGuest(d.Guest.FirstName, d.Guest.LastName)
	if err != nil {
		return nil, err
	}
	g.SetMiddleName(d.Guest.MiddleName)
	g.SetContact(d.Guest.ContactNumber, d.Guest.Email)
	g.SetAddress(d.Guest.Street, d.Guest.Barangay, d.Guest.City, d.Guest.Province)

	if d.Photo != nil {
		key := guest.PhotoKey()
		if err := s.storage.Upload(ctx, key, d.Photo.Data, d.Photo.ContentType); err != nil {
			s.logger.Error("guest photo upload failed during submission",
				zap.String("booking_reference", d.BookingReference),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %v", shared.ErrUpload, err)
		}
		g.SetPhotoURL(s.storage.PublicURL(key))
	}
	return g, nil
}

// buildBooking assembles the persisted aggregate from the draft, the
// price breakdown, and the finalized financials. Room lines whose number
// has no match in the breakdown are written at zero and reported as
// warnings rather than silently priced.
func (s *SubmitService) buildBooking(d *booking.Draft, newGuest *guestdomain.Guest, breakdown *booking.PriceBreakdown, financials booking.Financials) (*booking.Booking, []string, error) {
	var guestID uuid.UUID
	if newGuest != nil {
		guestID = newGuest.ID
	} else if d.SelectedGuestID != nil {
		guestID = *d.SelectedGuestID
	}

	b, err := booking.NewBooking(d.BookingReference, guestID, *d.CheckIn, *d.CheckOut, d.Adults, d.Children, d.Status)
	if err != nil {
		return nil, nil, err
	}
	if d.IsEdit() {
		b.ID = *d.BookingID
	}
	b.SpecialRequests = d.SpecialRequests

	var warnings []string
	for _, a := range d.Allocations {
		rate, ok := breakdown.NightlyRateFor(a.RoomNumber)
		if !ok {
			s.logger.Warn("room missing from price breakdown",
				zap.String("booking_reference", d.BookingReference),
				zap.String("room_number", a.RoomNumber))
			warnings = append(warnings, fmt.Sprintf("room %s has no price in the breakdown", a.RoomNumber))
		}
		if err := b.AddRoom(*a.RoomID, a.RoomNumber, rate, d.Nights, a.AllocatedGuests); err != nil {
			return nil, nil, err
		}
	}

	roomAndGuestTotal := financials.RoomAndGuestTotal
	for _, line := range d.Charges {
		if err := b.AddCharge(line, line.Amount(roomAndGuestTotal)); err != nil {
			return nil, nil, err
		}
	}
	for _, p := range d.Payments {
		if err := b.AddPayment(p.Amount, p.Method, b.CreatedAt); err != nil {
			return nil, nil, err
		}
	}

	b.ApplyFinancials(financials)
	return b, warnings, nil
}
