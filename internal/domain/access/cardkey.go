package access

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/innkeep/backend/internal/domain/shared"
)

// CardKeyStatus is the lifecycle status of a card key
type CardKeyStatus string

const (
	CardKeyStatusActive  CardKeyStatus = "active"
	CardKeyStatusRevoked CardKeyStatus = "revoked"
	CardKeyStatusExpired CardKeyStatus = "expired"
)

// CardKey is a physical or virtual key issued against a booking and room.
// VendorKeyID is the identifier the lock vendor assigned when the key was
// issued; it is needed to revoke the key later.
type CardKey struct {
	shared.BaseAggregateRoot
	BookingID   uuid.UUID `gorm:"type:uuid;index"`
	RoomID      uuid.UUID `gorm:"type:uuid;index"`
	RoomNumber  string
	VendorKeyID string `gorm:"index"`
	Status      CardKeyStatus
	ValidFrom   time.Time
	ValidUntil  time.Time
	RevokedAt   *time.Time
}

// NewCardKey records a key issued by the lock vendor
func NewCardKey(bookingID, roomID uuid.UUID, roomNumber, vendorKeyID string, validFrom, validUntil time.Time) (*CardKey, error) {
	if bookingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CARD_KEY", "Booking ID cannot be empty")
	}
	if roomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CARD_KEY", "Room ID cannot be empty")
	}
	if vendorKeyID == "" {
		return nil, shared.NewDomainError("INVALID_CARD_KEY", "Vendor key ID cannot be empty")
	}
	if !validUntil.After(validFrom) {
		return nil, shared.NewDomainError("INVALID_CARD_KEY", "Key validity window is empty")
	}
	return &CardKey{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BookingID:         bookingID,
		RoomID:            roomID,
		RoomNumber:        roomNumber,
		VendorKeyID:       vendorKeyID,
		Status:            CardKeyStatusActive,
		ValidFrom:         validFrom,
		ValidUntil:        validUntil,
	}, nil
}

// Revoke marks the key revoked. Revoking a non-active key is an error.
func (k *CardKey) Revoke() error {
	if k.Status != CardKeyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active keys can be revoked")
	}
	now := time.Now()
	k.Status = CardKeyStatusRevoked
	k.RevokedAt = &now
	k.UpdatedAt = now
	return nil
}

// IsActive reports whether the key is active at the given instant
func (k *CardKey) IsActive(at time.Time) bool {
	return k.Status == CardKeyStatusActive && !at.Before(k.ValidFrom) && at.Before(k.ValidUntil)
}

// CardKeyRepository persists card keys
type CardKeyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CardKey, error)
	FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]CardKey, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CardKey, error)
	Save(ctx context.Context, k *CardKey) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LockVendorClient is the port to the door-lock vendor's API. The vendor
// system is an opaque collaborator; implementations live in infrastructure.
type LockVendorClient interface {
	IssueKey(ctx context.Context, roomNumber string, validFrom, validUntil time.Time) (vendorKeyID string, err error)
	RevokeKey(ctx context.Context, vendorKeyID string) error
}
