package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/innkeep/backend/internal/domain/guest"
	"github.com/innkeep/backend/internal/domain/shared"
)

// BookingRepository persists booking aggregates. CreateFull and
// UpdateFull are the atomic booking-write operations: the booking and
// all of its child rooms, charges, and payments (plus, on create, an
// optional new guest record) are applied in a single transaction,
// all-or-nothing.
type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	FindByReference(ctx context.Context, reference string) (*Booking, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Booking, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CreateFull persists a new booking together with its children and,
	// when newGuest is non-nil, the guest record the booking references.
	CreateFull(ctx context.Context, b *Booking, newGuest *guest.Guest) error

	// UpdateFull rewrites an existing booking and fully replaces its
	// rooms, charges, and payments; child rows are never merged.
	UpdateFull(ctx context.Context, b *Booking) error

	Delete(ctx context.Context, id uuid.UUID) error
}
