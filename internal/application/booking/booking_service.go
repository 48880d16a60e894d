package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/shared"
)

// BookingService handles booking queries and status transitions. All
// structural changes to a booking go through the wizard and its atomic
// full-write; this service never edits child lines.
type BookingService struct {
	bookingRepo booking.BookingRepository
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo booking.BookingRepository) *BookingService {
	return &BookingService{bookingRepo: bookingRepo}
}

// GetByID retrieves a booking by ID
func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBookingResponse(b)
	return &resp, nil
}

// GetByReference retrieves a booking by its booking reference
func (s *BookingService) GetByReference(ctx context.Context, reference string) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	resp := ToBookingResponse(b)
	return &resp, nil
}

// List retrieves bookings with filtering and pagination
func (s *BookingService) List(ctx context.Context, filter shared.Filter) ([]BookingResponse, int64, error) {
	bookings, err := s.bookingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, ToBookingResponse(&bookings[i]))
	}
	return responses, total, nil
}

// ChangeStatus transitions a booking to a new status
func (s *BookingService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.ChangeStatus(booking.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdateFull(ctx, b); err != nil {
		return nil, err
	}
	resp := ToBookingResponse(b)
	return &resp, nil
}

// Delete removes a booking and its child lines
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bookingRepo.Delete(ctx, id)
}
