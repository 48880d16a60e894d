package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time { return &t }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 14, 0, 0, 0, time.UTC)
}

// readyDraft returns a draft with every gate satisfied up to the payment step
func readyDraft(t *testing.T) *Draft {
	t.Helper()
	d := NewDraft()
	d.SetDates(datePtr(date(2026, 3, 10)), datePtr(date(2026, 3, 12)))
	d.SetGuestDetails(GuestDetails{FirstName: "Maria", LastName: "Santos"})
	require.NoError(t, d.SetAllocationRoom(0, uuid.New(), "101", 2))
	return d
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft()

	assert.Equal(t, StepStatus, d.Step)
	assert.Equal(t, StatusPending, d.Status)
	assert.Equal(t, 1, d.Adults)
	assert.Equal(t, GuestModeNew, d.GuestMode)
	assert.Len(t, d.Allocations, 1)
	assert.False(t, d.Allocations[0].Resolved())
	assert.Equal(t, DiscountBeforeTax, d.DiscountType)
	assert.True(t, strings.HasPrefix(d.BookingReference, "BK-"))
	assert.False(t, d.IsEdit())
}

func TestNightsBetween(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"whole days", date(2026, 3, 10), date(2026, 3, 12), 2},
		{"partial day rounds up", date(2026, 3, 10), date(2026, 3, 11).Add(4 * time.Hour), 2},
		{"same instant", date(2026, 3, 10), date(2026, 3, 10), 0},
		{"reversed order", date(2026, 3, 12), date(2026, 3, 10), 0},
		{"under a day rounds to one", date(2026, 3, 10), date(2026, 3, 10).Add(6 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NightsBetween(tt.checkIn, tt.checkOut))
		})
	}
}

func TestDraft_SetDatesRecomputesNights(t *testing.T) {
	d := NewDraft()

	d.SetDates(datePtr(date(2026, 3, 10)), datePtr(date(2026, 3, 13)))
	assert.Equal(t, 3, d.Nights)

	d.SetDates(datePtr(date(2026, 3, 10)), nil)
	assert.Equal(t, 0, d.Nights)

	d.SetDates(datePtr(date(2026, 3, 13)), datePtr(date(2026, 3, 10)))
	assert.Equal(t, 0, d.Nights)
}

func TestDraft_StepGates(t *testing.T) {
	d := NewDraft()

	// status defaults to pending, so step 1 passes
	require.NoError(t, d.Next())
	assert.Equal(t, StepDates, d.Step)

	// dates missing
	assert.Error(t, d.Next())
	d.SetDates(datePtr(date(2026, 3, 10)), datePtr(date(2026, 3, 12)))
	require.NoError(t, d.Next())
	assert.Equal(t, StepGuest, d.Step)

	// new-guest mode needs first and last name
	assert.Error(t, d.Next())
	d.SetGuestDetails(GuestDetails{FirstName: "Maria"})
	assert.Error(t, d.Next())
	d.SetGuestDetails(GuestDetails{FirstName: "Maria", LastName: "Santos"})
	require.NoError(t, d.Next())
	assert.Equal(t, StepRoom, d.Step)

	// room slot unresolved
	assert.Error(t, d.Next())
	require.NoError(t, d.SetAllocationRoom(0, uuid.New(), "101", 2))
	require.NoError(t, d.Next())
	assert.Equal(t, StepPayment, d.Step)

	// final step clamps
	require.NoError(t, d.Next())
	assert.Equal(t, StepPayment, d.Step)
}

func TestDraft_PreviousClampsAtFirstStep(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.Previous())
	assert.Equal(t, StepStatus, d.Step)
}

func TestDraft_ExistingGuestModeGate(t *testing.T) {
	d := readyDraft(t)
	d.Step = StepGuest
	require.NoError(t, d.SetGuestMode(GuestModeExisting))

	// copied details alone do not satisfy the gate, a selection is required
	assert.False(t, d.CanAdvance())

	d.SelectExistingGuest(uuid.New(), GuestDetails{FirstName: "Juan", LastName: "Reyes"})
	assert.True(t, d.CanAdvance())
	assert.Equal(t, "Juan", d.Guest.FirstName)

	d.ClearSelectedGuest()
	assert.False(t, d.CanAdvance())
	assert.Empty(t, d.Guest.FirstName)
}

func TestDraft_SwitchingToNewGuestClearsSelectionAndPhoto(t *testing.T) {
	d := NewDraft()
	d.SelectExistingGuest(uuid.New(), GuestDetails{FirstName: "Juan", LastName: "Reyes"})
	require.NoError(t, d.AttachPhoto([]byte{1, 2, 3}, "image/jpeg"))

	require.NoError(t, d.SetGuestMode(GuestModeNew))

	assert.Nil(t, d.SelectedGuestID)
	assert.Empty(t, d.Guest.FirstName)
	assert.Nil(t, d.Photo)
}

func TestDraft_SubmitFlagBlocksNavigationAndDuplicates(t *testing.T) {
	d := readyDraft(t)
	d.Step = StepPayment

	require.NoError(t, d.BeginSubmit())
	assert.True(t, d.IsSubmitting())

	assert.Error(t, d.Next())
	assert.Error(t, d.Previous())
	assert.Equal(t, StepPayment, d.Step)
	assert.Error(t, d.BeginSubmit())

	d.EndSubmit()
	assert.False(t, d.IsSubmitting())
	require.NoError(t, d.Previous())
}

func TestDraft_Allocations(t *testing.T) {
	d := NewDraft()

	d.AddAllocation()
	require.Len(t, d.Allocations, 2)

	require.NoError(t, d.RemoveAllocation(1))
	assert.Error(t, d.RemoveAllocation(0), "last slot must stay")

	assert.Error(t, d.SetAllocationGuests(0, 0))
	require.NoError(t, d.SetAllocationGuests(0, 3))
	assert.Equal(t, 3, d.Allocations[0].AllocatedGuests)
}

func TestDraft_RoomSelectionsSkipUnresolvedSlots(t *testing.T) {
	d := NewDraft()
	d.AddAllocation()
	roomID := uuid.New()
	require.NoError(t, d.SetAllocationRoom(0, roomID, "101", 2))

	selections := d.RoomSelections()
	require.Len(t, selections, 1)
	assert.Equal(t, roomID, selections[0].RoomID)
}

func TestDraft_Validate(t *testing.T) {
	d := NewDraft()
	issues := d.Validate()
	assert.NotEmpty(t, issues)

	d = readyDraft(t)
	assert.Empty(t, d.Validate())
}

func TestDraft_Warnings(t *testing.T) {
	d := readyDraft(t)
	require.NoError(t, d.SetOccupancy(4, 1))
	require.NoError(t, d.SetAllocationGuests(0, 5))

	warnings := d.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "capacity")

	// mismatch between allocation and party size
	require.NoError(t, d.SetAllocationGuests(0, 2))
	warnings = d.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "party size")
}

func TestNewDraftFromBooking_EditMode(t *testing.T) {
	guestID := uuid.New()
	roomID := uuid.New()
	checkIn := date(2026, 3, 10)
	checkOut := date(2026, 3, 12)

	b, err := NewBooking("BK-1700000000-abc123", guestID, checkIn, checkOut, 2, 0, StatusReserved)
	require.NoError(t, err)
	require.NoError(t, b.AddRoom(roomID, "101", dec("1000"), 2, 2))
	require.NoError(t, b.AddPayment(dec("500"), PaymentMethodCash, checkIn))

	d := NewDraftFromBooking(b)

	assert.True(t, d.IsEdit())
	assert.Equal(t, StepStatus, d.Step)
	assert.Equal(t, b.BookingReference, d.BookingReference)
	assert.Equal(t, GuestModeExisting, d.GuestMode)
	require.NotNil(t, d.SelectedGuestID)
	assert.Equal(t, guestID, *d.SelectedGuestID)
	assert.Equal(t, 2, d.Nights)
	require.Len(t, d.Allocations, 1)
	assert.Equal(t, "101", d.Allocations[0].RoomNumber)
	require.Len(t, d.Payments, 1)

	// the attached guest cannot be replaced from the edit flow
	assert.Error(t, d.SetGuestMode(GuestModeNew))
}

func TestDraft_DiscountAndPayments(t *testing.T) {
	d := NewDraft()

	assert.Error(t, d.SetDiscount(dec("-5"), DiscountBeforeTax))
	assert.Error(t, d.SetDiscount(dec("5"), DiscountType("half_off")))
	require.NoError(t, d.SetDiscount(dec("100"), DiscountAfterTax))

	assert.Error(t, d.AddPayment(decimal.Zero, PaymentMethodCash))
	assert.Error(t, d.AddPayment(dec("10"), PaymentMethod("barter")))
	require.NoError(t, d.AddPayment(dec("10"), PaymentMethodCash))
	require.NoError(t, d.RemovePayment(0))
	assert.Error(t, d.RemovePayment(0))
}

func TestGenerateReference_Format(t *testing.T) {
	ref := GenerateReference()
	parts := strings.Split(ref, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "BK", parts[0])
	assert.Len(t, parts[2], 6)
}
