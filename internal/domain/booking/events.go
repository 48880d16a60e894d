package booking

import (
	"github.com/innkeep/backend/internal/domain/shared"
)

// Event types for the booking context
const (
	EventBookingCreated       = "booking.created"
	EventBookingUpdated       = "booking.updated"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingCreatedEvent is raised when a booking is first persisted
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	BookingReference string `json:"booking_reference"`
	GrandTotal       string `json:"grand_total"`
}

// NewBookingCreatedEvent creates a BookingCreatedEvent
func NewBookingCreatedEvent(b *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventBookingCreated, "Booking", b.ID),
		BookingReference: b.BookingReference,
		GrandTotal:       b.GrandTotal.String(),
	}
}

// BookingUpdatedEvent is raised when an existing booking is rewritten
type BookingUpdatedEvent struct {
	shared.BaseDomainEvent
	BookingReference string `json:"booking_reference"`
}

// NewBookingUpdatedEvent creates a BookingUpdatedEvent
func NewBookingUpdatedEvent(b *Booking) *BookingUpdatedEvent {
	return &BookingUpdatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventBookingUpdated, "Booking", b.ID),
		BookingReference: b.BookingReference,
	}
}

// BookingStatusChangedEvent is raised on a status transition
type BookingStatusChangedEvent struct {
	shared.BaseDomainEvent
	BookingReference string `json:"booking_reference"`
	From             Status `json:"from"`
	To               Status `json:"to"`
}

// NewBookingStatusChangedEvent creates a BookingStatusChangedEvent
func NewBookingStatusChangedEvent(b *Booking, from, to Status) *BookingStatusChangedEvent {
	return &BookingStatusChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventBookingStatusChanged, "Booking", b.ID),
		BookingReference: b.BookingReference,
		From:             from,
		To:               to,
	}
}
