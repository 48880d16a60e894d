package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/guest"
	"github.com/innkeep/backend/internal/domain/shared"
)

func setupBookingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&guest.Guest{},
		&booking.Booking{},
		&booking.BookingRoom{},
		&booking.BookingCharge{},
		&booking.BookingPayment{},
	)
	require.NoError(t, err)

	return db
}

func testBooking(t *testing.T, guestID uuid.UUID) *booking.Booking {
	t.Helper()
	checkIn := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)

	b, err := booking.NewBooking(booking.GenerateReference(), guestID, checkIn, checkOut, 2, 0, booking.StatusReserved)
	require.NoError(t, err)
	require.NoError(t, b.AddRoom(uuid.New(), "101", decimal.RequireFromString("1000"), 2, 2))
	require.NoError(t, b.AddPayment(decimal.RequireFromString("500"), booking.PaymentMethodCash, checkIn))
	return b
}

func TestGormBookingRepository_CreateFull(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormBookingRepository(db)
	ctx := context.Background()

	t.Run("persists booking with children and new guest", func(t *testing.T) {
		g, err := guest.NewGuest("Maria", "Santos")
		require.NoError(t, err)

		b := testBooking(t, g.ID)
		require.NoError(t, b.AddCharge(booking.ChargeLine{
			ChargeItemID: uuid.New(),
			Name:         "Breakfast",
			Quantity:     2,
			UnitPrice:    decimal.RequireFromString("350"),
			ChargeType:   booking.ChargeTypeFixed,
			IsVATable:    true,
		}, decimal.RequireFromString("700")))

		require.NoError(t, repo.CreateFull(ctx, b, g))

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.BookingReference, found.BookingReference)
		assert.Len(t, found.Rooms, 1)
		assert.Len(t, found.Charges, 1)
		assert.Len(t, found.Payments, 1)
		assert.Equal(t, "101", found.Rooms[0].RoomNumber)

		var savedGuest guest.Guest
		require.NoError(t, db.First(&savedGuest, "id = ?", g.ID).Error)
		assert.Equal(t, "Maria", savedGuest.FirstName)
	})

	t.Run("persists booking without a new guest", func(t *testing.T) {
		b := testBooking(t, uuid.New())
		require.NoError(t, repo.CreateFull(ctx, b, nil))

		found, err := repo.FindByReference(ctx, b.BookingReference)
		require.NoError(t, err)
		assert.Equal(t, b.ID, found.ID)
	})
}

func TestGormBookingRepository_UpdateFull(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormBookingRepository(db)
	ctx := context.Background()

	t.Run("replaces child rows instead of merging", func(t *testing.T) {
		b := testBooking(t, uuid.New())
		require.NoError(t, repo.CreateFull(ctx, b, nil))

		// rebuild the aggregate with a different room set and no payments
		updated, err := booking.NewBooking(b.BookingReference, b.GuestID, b.CheckInDate, b.CheckOutDate, 3, 1, b.Status)
		require.NoError(t, err)
		updated.ID = b.ID
		require.NoError(t, updated.AddRoom(uuid.New(), "205", decimal.RequireFromString("1500"), 2, 3))
		require.NoError(t, updated.AddRoom(uuid.New(), "206", decimal.RequireFromString("1500"), 2, 1))

		require.NoError(t, repo.UpdateFull(ctx, updated))

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, found.Adults)
		require.Len(t, found.Rooms, 2)
		assert.Empty(t, found.Payments)

		var orphans int64
		require.NoError(t, db.Model(&booking.BookingRoom{}).
			Where("room_number = ?", "101").Count(&orphans).Error)
		assert.Zero(t, orphans, "old room lines must be gone")
	})

	t.Run("returns not found for unknown booking", func(t *testing.T) {
		b := testBooking(t, uuid.New())
		err := repo.UpdateFull(ctx, b)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormBookingRepository_Delete(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormBookingRepository(db)
	ctx := context.Background()

	b := testBooking(t, uuid.New())
	require.NoError(t, repo.CreateFull(ctx, b, nil))

	require.NoError(t, repo.Delete(ctx, b.ID))

	_, err := repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var rooms int64
	require.NoError(t, db.Model(&booking.BookingRoom{}).
		Where("booking_id = ?", b.ID).Count(&rooms).Error)
	assert.Zero(t, rooms)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

func TestGormBookingRepository_FindAll(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormBookingRepository(db)
	ctx := context.Background()

	guestID := uuid.New()
	first := testBooking(t, guestID)
	second := testBooking(t, uuid.New())
	require.NoError(t, second.ChangeStatus(booking.StatusCheckedIn))
	require.NoError(t, repo.CreateFull(ctx, first, nil))
	require.NoError(t, repo.CreateFull(ctx, second, nil))

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = string(booking.StatusCheckedIn)

		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, second.ID, found[0].ID)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("filters by guest", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["guest_id"] = guestID

		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, first.ID, found[0].ID)
	})

	t.Run("rejects unknown sort column", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "grand_total; DROP TABLE bookings"

		_, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
	})
}
