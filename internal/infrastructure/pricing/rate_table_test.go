package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/property"
	"github.com/innkeep/backend/internal/domain/shared"
)

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

func testRoom(t *testing.T, number string, baseOccupancy int, weekday, weekend, extraFee string) property.Room {
	t.Helper()
	r, err := property.NewRoom(number, uuid.New(), 1, baseOccupancy, baseOccupancy+2,
		decimal.RequireFromString(weekday),
		decimal.RequireFromString(weekend),
		decimal.RequireFromString(extraFee))
	require.NoError(t, err)
	return *r
}

func TestRateTableProvider_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("weekday and weekend nights priced from the rate card", func(t *testing.T) {
		room := testRoom(t, "101", 2, "1000", "1500", "250")
		repo := new(MockRoomRepository)
		repo.On("FindByIDs", ctx, []uuid.UUID{room.ID}).Return([]property.Room{room}, nil)

		provider := NewRateTableProvider(repo, zap.NewNop())

		// Thursday check-in, Sunday check-out: Thu + Fri + Sat nights
		checkIn := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)
		checkOut := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)

		breakdown, err := provider.Quote(ctx, checkIn, checkOut, []booking.RoomSelection{
			{RoomID: room.ID, AllocatedGuests: 2},
		})
		require.NoError(t, err)

		require.Len(t, breakdown.Nightly, 3)
		assert.Equal(t, booking.RateTypeWeekday, breakdown.Nightly[0].RateType)
		assert.Equal(t, booking.RateTypeWeekend, breakdown.Nightly[1].RateType)
		assert.Equal(t, booking.RateTypeWeekend, breakdown.Nightly[2].RateType)
		assert.True(t, breakdown.RoomSubtotal.Equal(decimal.RequireFromString("4000")), breakdown.RoomSubtotal.String())
		assert.True(t, breakdown.ExtraGuestTotal.IsZero())
	})

	t.Run("extra guests above base occupancy fee every night", func(t *testing.T) {
		room := testRoom(t, "102", 2, "1000", "1000", "250")
		repo := new(MockRoomRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return([]property.Room{room}, nil)

		provider := NewRateTableProvider(repo, zap.NewNop())

		checkIn := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
		checkOut := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

		breakdown, err := provider.Quote(ctx, checkIn, checkOut, []booking.RoomSelection{
			{RoomID: room.ID, AllocatedGuests: 4},
		})
		require.NoError(t, err)

		// 2 extra guests x 250 x 2 nights
		assert.True(t, breakdown.ExtraGuestTotal.Equal(decimal.RequireFromString("1000")), breakdown.ExtraGuestTotal.String())
		assert.True(t, breakdown.RoomAndGuestTotal().Equal(decimal.RequireFromString("3000")))
	})

	t.Run("multiple rooms each contribute their own nights", func(t *testing.T) {
		first := testRoom(t, "201", 2, "1000", "1000", "0")
		second := testRoom(t, "202", 2, "2000", "2000", "0")
		repo := new(MockRoomRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return([]property.Room{first, second}, nil)

		provider := NewRateTableProvider(repo, zap.NewNop())

		checkIn := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
		checkOut := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

		breakdown, err := provider.Quote(ctx, checkIn, checkOut, []booking.RoomSelection{
			{RoomID: first.ID, AllocatedGuests: 2},
			{RoomID: second.ID, AllocatedGuests: 2},
		})
		require.NoError(t, err)

		require.Len(t, breakdown.Nightly, 2)
		assert.True(t, breakdown.RoomSubtotal.Equal(decimal.RequireFromString("3000")))

		rate, ok := breakdown.NightlyRateFor("202")
		require.True(t, ok)
		assert.True(t, rate.Equal(decimal.RequireFromString("2000")))
	})

	t.Run("unknown room fails the whole quote", func(t *testing.T) {
		repo := new(MockRoomRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return([]property.Room{}, nil)

		provider := NewRateTableProvider(repo, zap.NewNop())

		checkIn := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
		checkOut := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

		_, err := provider.Quote(ctx, checkIn, checkOut, []booking.RoomSelection{
			{RoomID: uuid.New(), AllocatedGuests: 2},
		})
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("empty stay is rejected", func(t *testing.T) {
		provider := NewRateTableProvider(new(MockRoomRepository), zap.NewNop())
		day := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)

		_, err := provider.Quote(ctx, day, day, []booking.RoomSelection{{RoomID: uuid.New(), AllocatedGuests: 1}})
		assert.Error(t, err)

		_, err = provider.Quote(ctx, day, day.AddDate(0, 0, 1), nil)
		assert.Error(t, err)
	})
}
