package access

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/domain/access"
	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/property"
	"github.com/innkeep/backend/internal/domain/shared"
)

// IssueKeyRequest requests a card key for one room of a booking
type IssueKeyRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
}

// CardKeyResponse represents a card key in API responses
type CardKeyResponse struct {
	ID          uuid.UUID  `json:"id"`
	BookingID   uuid.UUID  `json:"booking_id"`
	RoomID      uuid.UUID  `json:"room_id"`
	RoomNumber  string     `json:"room_number"`
	VendorKeyID string     `json:"vendor_key_id"`
	Status      string     `json:"status"`
	ValidFrom   time.Time  `json:"valid_from"`
	ValidUntil  time.Time  `json:"valid_until"`
	RevokedAt   *time.Time `json:"revoked_at"`
}

// ToCardKeyResponse converts a card key to a response DTO
func ToCardKeyResponse(k *access.CardKey) CardKeyResponse {
	return CardKeyResponse{
		ID:          k.ID,
		BookingID:   k.BookingID,
		RoomID:      k.RoomID,
		RoomNumber:  k.RoomNumber,
		VendorKeyID: k.VendorKeyID,
		Status:      string(k.Status),
		ValidFrom:   k.ValidFrom,
		ValidUntil:  k.ValidUntil,
		RevokedAt:   k.RevokedAt,
	}
}

// AccessService issues and revokes card keys through the lock vendor.
// The vendor call happens first; only a vendor-confirmed key is recorded.
type AccessService struct {
	cardKeyRepo access.CardKeyRepository
	bookingRepo booking.BookingRepository
	roomRepo    property.RoomRepository
	lockVendor  access.LockVendorClient
	logger      *zap.Logger
}

// NewAccessService creates a new AccessService
func NewAccessService(
	cardKeyRepo access.CardKeyRepository,
	bookingRepo booking.BookingRepository,
	roomRepo property.RoomRepository,
	lockVendor access.LockVendorClient,
	logger *zap.Logger,
) *AccessService {
	return &AccessService{
		cardKeyRepo: cardKeyRepo,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		lockVendor:  lockVendor,
		logger:      logger,
	}
}

// IssueKey asks the lock vendor for a key valid for the booking's stay
// window and records it.
func (s *AccessService) IssueKey(ctx context.Context, req IssueKeyRequest) (*CardKeyResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot issue a key for a closed booking")
	}
	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	vendorKeyID, err := s.lockVendor.IssueKey(ctx, room.RoomNumber, b.CheckInDate, b.CheckOutDate)
	if err != nil {
		s.logger.Error("lock vendor key issue failed",
			zap.String("booking_id", b.ID.String()),
			zap.String("room_number", room.RoomNumber),
			zap.Error(err))
		return nil, err
	}

	key, err := access.NewCardKey(b.ID, room.ID, room.RoomNumber, vendorKeyID, b.CheckInDate, b.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if err := s.cardKeyRepo.Save(ctx, key); err != nil {
		return nil, err
	}

	s.logger.Info("card key issued",
		zap.String("booking_id", b.ID.String()),
		zap.String("room_number", room.RoomNumber),
		zap.String("vendor_key_id", vendorKeyID))

	resp := ToCardKeyResponse(key)
	return &resp, nil
}

// RevokeKey revokes a key at the vendor and marks it revoked locally
func (s *AccessService) RevokeKey(ctx context.Context, keyID uuid.UUID) (*CardKeyResponse, error) {
	key, err := s.cardKeyRepo.FindByID(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if err := s.lockVendor.RevokeKey(ctx, key.VendorKeyID); err != nil {
		s.logger.Error("lock vendor key revoke failed",
			zap.String("vendor_key_id", key.VendorKeyID),
			zap.Error(err))
		return nil, err
	}
	if err := key.Revoke(); err != nil {
		return nil, err
	}
	if err := s.cardKeyRepo.Save(ctx, key); err != nil {
		return nil, err
	}
	resp := ToCardKeyResponse(key)
	return &resp, nil
}

// ListByBooking lists the card keys issued for a booking
func (s *AccessService) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]CardKeyResponse, error) {
	keys, err := s.cardKeyRepo.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	responses := make([]CardKeyResponse, 0, len(keys))
	for i := range keys {
		responses = append(responses, ToCardKeyResponse(&keys[i]))
	}
	return responses, nil
}
