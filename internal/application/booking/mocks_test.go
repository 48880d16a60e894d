package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/guest"
	"github.com/innkeep/backend/internal/domain/property"
	"github.com/innkeep/backend/internal/domain/shared"
)

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByReference(ctx context.Context, reference string) (*booking.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]booking.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CreateFull(ctx context.Context, b *booking.Booking, newGuest *guest.Guest) error {
	args := m.Called(ctx, b, newGuest)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateFull(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGuestRepository is a mock implementation of GuestRepository
type MockGuestRepository struct {
	mock.Mock
}

func (m *MockGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*guest.Guest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guest.Guest), args.Error(1)
}

func (m *MockGuestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]guest.Guest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]guest.Guest), args.Error(1)
}

func (m *MockGuestRepository) Save(ctx context.Context, g *guest.Guest) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGuestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockRoomRepository is a mock implementation of RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]property.Room, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByNumber(ctx context.Context, roomNumber string) (*property.Room, error) {
	args := m.Called(ctx, roomNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Room), args.Error(1)
}

func (m *MockRoomRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Room), args.Error(1)
}

func (m *MockRoomRepository) Save(ctx context.Context, r *property.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockChargeItemRepository is a mock implementation of ChargeItemRepository
type MockChargeItemRepository struct {
	mock.Mock
}

func (m *MockChargeItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.ChargeItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.ChargeItem), args.Error(1)
}

func (m *MockChargeItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]booking.ChargeItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.ChargeItem), args.Error(1)
}

func (m *MockChargeItemRepository) FindDefaults(ctx context.Context) ([]booking.ChargeItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.ChargeItem), args.Error(1)
}

func (m *MockChargeItemRepository) Save(ctx context.Context, item *booking.ChargeItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockChargeItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChargeItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPriceProvider is a mock implementation of PriceProvider
type MockPriceProvider struct {
	mock.Mock
}

func (m *MockPriceProvider) Quote(ctx context.Context, checkIn, checkOut time.Time, rooms []booking.RoomSelection) (*booking.PriceBreakdown, error) {
	args := m.Called(ctx, checkIn, checkOut, rooms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.PriceBreakdown), args.Error(1)
}

// MockObjectStorage is a mock implementation of the object storage port
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
