package booking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/innkeep/backend/internal/domain/shared"
)

// WizardStep is one step of the linear booking wizard
type WizardStep int

const (
	StepStatus  WizardStep = 1
	StepDates   WizardStep = 2
	StepGuest   WizardStep = 3
	StepRoom    WizardStep = 4
	StepPayment WizardStep = 5
)

// String returns a human-readable step name
func (s WizardStep) String() string {
	switch s {
	case StepStatus:
		return "status"
	case StepDates:
		return "dates"
	case StepGuest:
		return "guest"
	case StepRoom:
		return "room"
	case StepPayment:
		return "payment"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// GuestMode selects between attaching an existing guest record and
// capturing a new guest inline
type GuestMode string

const (
	GuestModeNew      GuestMode = "new"
	GuestModeExisting GuestMode = "existing"
)

// RoomAllocation pairs a room with the number of guests assigned to it.
// RoomID is nil until the operator picks a room for the slot.
type RoomAllocation struct {
	RoomID          *uuid.UUID `json:"room_id"`
	RoomNumber      string     `json:"room_number"`
	Capacity        int        `json:"capacity"`
	AllocatedGuests int        `json:"allocated_guests"`
}

// Resolved reports whether a room has been picked for this slot
func (a RoomAllocation) Resolved() bool {
	return a.RoomID != nil
}

// GuestDetails are the inline guest fields captured by the wizard.
// The same set is copied in when an existing guest is selected and
// blanked when the selection is cleared.
type GuestDetails struct {
	FirstName     string `json:"first_name"`
	MiddleName    string `json:"middle_name"`
	LastName      string `json:"last_name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	Street        string `json:"street"`
	Barangay      string `json:"barangay"`
	City          string `json:"city"`
	Province      string `json:"province"`
}

// GuestPhoto is an optional photo blob attached to a new guest
type GuestPhoto struct {
	Data        []byte
	ContentType string
}

// Draft is the in-progress state of a booking being created or edited.
// It is owned exclusively by one wizard session and discarded on close;
// nothing here is persisted until submission succeeds.
type Draft struct {
	BookingReference string
	BookingID        *uuid.UUID // set only in edit mode
	Step             WizardStep

	Status   Status
	CheckIn  *time.Time
	CheckOut *time.Time
	Nights   int
	Adults   int
	Children int

	GuestMode       GuestMode
	SelectedGuestID *uuid.UUID
	Guest           GuestDetails
	Photo           *GuestPhoto

	Allocations []RoomAllocation

	Discount        decimal.Decimal
	DiscountType    DiscountType
	Charges         []ChargeLine
	Payments        []PaymentLine
	SpecialRequests string

	submitting bool
}

// NewDraft creates a fresh draft for create mode: step 1, a newly
// generated booking reference, and a single empty room allocation.
func NewDraft() *Draft {
	return &Draft{
		BookingReference: GenerateReference(),
		Step:             StepStatus,
		Status:           StatusPending,
		Adults:           1,
		Children:         0,
		GuestMode:        GuestModeNew,
		Allocations:      []RoomAllocation{{AllocatedGuests: 1}},
		Discount:         decimal.Zero,
		DiscountType:     DiscountBeforeTax,
		Charges:          make([]ChargeLine, 0),
		Payments:         make([]PaymentLine, 0),
	}
}

// NewDraftFromBooking populates a draft from an existing booking for edit
// mode. The attached guest is immutable from this flow, so guest mode is
// forced to existing. The wizard restarts at step 1.
func NewDraftFromBooking(b *Booking) *Draft {
	checkIn := b.CheckInDate
	checkOut := b.CheckOutDate
	guestID := b.GuestID
	bookingID := b.ID

	d := &Draft{
		BookingReference: b.BookingReference,
		BookingID:        &bookingID,
		Step:             StepStatus,
		Status:           b.Status,
		CheckIn:          &checkIn,
		CheckOut:         &checkOut,
		Nights:           NightsBetween(checkIn, checkOut),
		Adults:           b.Adults,
		Children:         b.Children,
		GuestMode:        GuestModeExisting,
		SelectedGuestID:  &guestID,
		Discount:         b.Discount,
		DiscountType:     b.DiscountType,
		SpecialRequests:  b.SpecialRequests,
		Allocations:      make([]RoomAllocation, 0, len(b.Rooms)),
		Charges:          make([]ChargeLine, 0, len(b.Charges)),
		Payments:         make([]PaymentLine, 0, len(b.Payments)),
	}

	for _, r := range b.Rooms {
		roomID := r.RoomID
		d.Allocations = append(d.Allocations, RoomAllocation{
			RoomID:          &roomID,
			RoomNumber:      r.RoomNumber,
			AllocatedGuests: r.AllocatedGuests,
		})
	}
	if len(d.Allocations) == 0 {
		d.Allocations = []RoomAllocation{{AllocatedGuests: 1}}
	}
	for _, c := range b.Charges {
		d.Charges = append(d.Charges, ChargeLine{
			ChargeItemID: c.ChargeItemID,
			Name:         c.Name,
			Quantity:     c.Quantity,
			UnitPrice:    c.UnitPrice,
			ChargeType:   c.ChargeType,
			IsVATable:    c.IsVATable,
		})
	}
	for _, p := range b.Payments {
		d.Payments = append(d.Payments, PaymentLine{Amount: p.Amount, Method: p.Method})
	}
	return d
}

// GenerateReference creates a client-opaque booking reference
func GenerateReference() string {
	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("BK-%d-%s", time.Now().Unix(), hex.EncodeToString(suffix))
}

// NightsBetween returns the ceiling day difference between check-in and
// check-out, or 0 when the ordering is invalid.
func NightsBetween(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	diff := checkOut.Sub(checkIn)
	nights := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// IsEdit reports whether the draft edits an existing booking
func (d *Draft) IsEdit() bool {
	return d.BookingID != nil
}

// SetStatus updates the draft status
func (d *Draft) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown booking status")
	}
	d.Status = status
	return nil
}

// SetDates updates the stay dates and synchronously recomputes nights
func (d *Draft) SetDates(checkIn, checkOut *time.Time) {
	d.CheckIn = checkIn
	d.CheckOut = checkOut
	if checkIn != nil && checkOut != nil {
		d.Nights = NightsBetween(*checkIn, *checkOut)
	} else {
		d.Nights = 0
	}
}

// SetOccupancy updates the adult and child counts
func (d *Draft) SetOccupancy(adults, children int) error {
	if adults < 1 {
		return shared.NewDomainError("INVALID_OCCUPANCY", "At least one adult is required")
	}
	if children < 0 {
		return shared.NewDomainError("INVALID_OCCUPANCY", "Children cannot be negative")
	}
	d.Adults = adults
	d.Children = children
	return nil
}

// SetGuestMode switches between new and existing guest capture.
// Switching to new clears the selection, the copied fields, and any
// attached photo; dates and rooms are untouched.
func (d *Draft) SetGuestMode(mode GuestMode) error {
	if mode != GuestModeNew && mode != GuestModeExisting {
		return shared.NewDomainError("INVALID_GUEST_MODE", "Unknown guest mode")
	}
	if d.IsEdit() && mode == GuestModeNew {
		return shared.NewDomainError("INVALID_STATE", "The guest of an existing booking cannot be replaced")
	}
	if mode == GuestModeNew && d.GuestMode != GuestModeNew {
		d.SelectedGuestID = nil
		d.Guest = GuestDetails{}
		d.Photo = nil
	}
	d.GuestMode = mode
	return nil
}

// SelectExistingGuest attaches a persisted guest and copies its fields
// into the draft
func (d *Draft) SelectExistingGuest(guestID uuid.UUID, details GuestDetails) {
	d.GuestMode = GuestModeExisting
	d.SelectedGuestID = &guestID
	d.Guest = details
	d.Photo = nil
}

// ClearSelectedGuest detaches the selected guest and blanks the copied
// fields
func (d *Draft) ClearSelectedGuest() {
	d.SelectedGuestID = nil
	d.Guest = GuestDetails{}
}

// SetGuestDetails sets the inline guest fields (new-guest mode)
func (d *Draft) SetGuestDetails(details GuestDetails) {
	d.Guest = details
}

// AttachPhoto attaches a guest photo blob
func (d *Draft) AttachPhoto(data []byte, contentType string) error {
	if len(data) == 0 {
		return shared.NewDomainError("INVALID_PHOTO", "Photo data cannot be empty")
	}
	d.Photo = &GuestPhoto{Data: data, ContentType: contentType}
	return nil
}

// AddAllocation appends an empty room allocation slot
func (d *Draft) AddAllocation() {
	d.Allocations = append(d.Allocations, RoomAllocation{AllocatedGuests: 1})
}

// RemoveAllocation removes the allocation at index i. The last slot
// cannot be removed; a booking always has at least one.
func (d *Draft) RemoveAllocation(i int) error {
	if i < 0 || i >= len(d.Allocations) {
		return shared.NewDomainError("INVALID_ALLOCATION", "Allocation index out of range")
	}
	if len(d.Allocations) == 1 {
		return shared.NewDomainError("INVALID_ALLOCATION", "A booking needs at least one room")
	}
	d.Allocations = append(d.Allocations[:i], d.Allocations[i+1:]...)
	return nil
}

// SetAllocationRoom resolves the room for the allocation at index i
func (d *Draft) SetAllocationRoom(i int, roomID uuid.UUID, roomNumber string, capacity int) error {
	if i < 0 || i >= len(d.Allocations) {
		return shared.NewDomainError("INVALID_ALLOCATION", "Allocation index out of range")
	}
	d.Allocations[i].RoomID = &roomID
	d.Allocations[i].RoomNumber = roomNumber
	d.Allocations[i].Capacity = capacity
	return nil
}

// SetAllocationGuests sets the guest count for the allocation at index i
func (d *Draft) SetAllocationGuests(i, guests int) error {
	if i < 0 || i >= len(d.Allocations) {
		return shared.NewDomainError("INVALID_ALLOCATION", "Allocation index out of range")
	}
	if guests < 1 {
		return shared.NewDomainError("INVALID_ALLOCATION", "Each room needs at least one guest")
	}
	d.Allocations[i].AllocatedGuests = guests
	return nil
}

// SetDiscount sets the discount amount and type
func (d *Draft) SetDiscount(amount decimal.Decimal, discountType DiscountType) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if !discountType.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Unknown discount type")
	}
	d.Discount = amount
	d.DiscountType = discountType
	return nil
}

// SetCharges replaces the charge lines
func (d *Draft) SetCharges(charges []ChargeLine) error {
	for _, c := range charges {
		if c.Quantity < 1 {
			return shared.NewDomainError("INVALID_CHARGE", "Charge quantity must be at least 1")
		}
		if !c.ChargeType.IsValid() {
			return shared.NewDomainError("INVALID_CHARGE", "Unknown charge type")
		}
	}
	d.Charges = charges
	return nil
}

// AddPayment appends a payment line
func (d *Draft) AddPayment(amount decimal.Decimal, method PaymentMethod) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT", "Unknown payment method")
	}
	d.Payments = append(d.Payments, PaymentLine{Amount: amount, Method: method})
	return nil
}

// RemovePayment removes the payment at index i
func (d *Draft) RemovePayment(i int) error {
	if i < 0 || i >= len(d.Payments) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment index out of range")
	}
	d.Payments = append(d.Payments[:i], d.Payments[i+1:]...)
	return nil
}

// SetSpecialRequests sets the free-text notes
func (d *Draft) SetSpecialRequests(text string) {
	d.SpecialRequests = text
}

// HasValidDates reports whether both dates are set and check-out is
// strictly after check-in
func (d *Draft) HasValidDates() bool {
	return d.CheckIn != nil && d.CheckOut != nil && d.CheckOut.After(*d.CheckIn)
}

// HasCompleteRooms reports whether at least one allocation exists and
// every allocation has a resolved room
func (d *Draft) HasCompleteRooms() bool {
	if len(d.Allocations) == 0 {
		return false
	}
	for _, a := range d.Allocations {
		if !a.Resolved() {
			return false
		}
	}
	return true
}

// RoomSelections converts the resolved allocations into price-provider
// selections. Unresolved slots are skipped.
func (d *Draft) RoomSelections() []RoomSelection {
	selections := make([]RoomSelection, 0, len(d.Allocations))
	for _, a := range d.Allocations {
		if a.Resolved() {
			selections = append(selections, RoomSelection{RoomID: *a.RoomID, AllocatedGuests: a.AllocatedGuests})
		}
	}
	return selections
}

// CanAdvance reports whether the current step's gate is satisfied
func (d *Draft) CanAdvance() bool {
	switch d.Step {
	case StepStatus:
		return d.Status.IsValid()
	case StepDates:
		return d.HasValidDates()
	case StepGuest:
		if d.IsEdit() {
			return d.SelectedGuestID != nil
		}
		if d.GuestMode == GuestModeExisting {
			return d.SelectedGuestID != nil
		}
		return d.Guest.FirstName != "" && d.Guest.LastName != ""
	case StepRoom:
		return d.HasCompleteRooms()
	case StepPayment:
		return true
	}
	return false
}

// Next advances to the following step. It is a no-op error while a
// submission is in flight, rejects unsatisfied gates, and clamps at the
// final step.
func (d *Draft) Next() error {
	if d.submitting {
		return shared.NewDomainError("SUBMIT_IN_FLIGHT", "Cannot navigate while the booking is being submitted")
	}
	if !d.CanAdvance() {
		return shared.NewDomainError("STEP_INCOMPLETE", fmt.Sprintf("The %s step is not complete", d.Step))
	}
	if d.Step < StepPayment {
		d.Step++
	}
	return nil
}

// Previous moves back one step, clamping at the first
func (d *Draft) Previous() error {
	if d.submitting {
		return shared.NewDomainError("SUBMIT_IN_FLIGHT", "Cannot navigate while the booking is being submitted")
	}
	if d.Step > StepStatus {
		d.Step--
	}
	return nil
}

// BeginSubmit raises the cooperative submission flag. A second submit
// while one is in flight is rejected.
func (d *Draft) BeginSubmit() error {
	if d.submitting {
		return shared.NewDomainError("SUBMIT_IN_FLIGHT", "A submission is already in progress")
	}
	d.submitting = true
	return nil
}

// EndSubmit lowers the submission flag
func (d *Draft) EndSubmit() {
	d.submitting = false
}

// IsSubmitting reports whether a submission is in flight
func (d *Draft) IsSubmitting() bool {
	return d.submitting
}

// Validate checks the whole draft synchronously and returns every
// problem found. Submission may only start when the result is empty.
func (d *Draft) Validate() []string {
	var issues []string
	if !d.Status.IsValid() {
		issues = append(issues, "a booking status is required")
	}
	if !d.HasValidDates() {
		issues = append(issues, "check-out must be after check-in")
	}
	if d.Adults < 1 {
		issues = append(issues, "at least one adult is required")
	}
	if !d.HasCompleteRooms() {
		issues = append(issues, "every room slot must have a room selected")
	}
	if d.IsEdit() || d.GuestMode == GuestModeExisting {
		if d.SelectedGuestID == nil {
			issues = append(issues, "a guest must be selected")
		}
	} else if d.Guest.FirstName == "" || d.Guest.LastName == "" {
		issues = append(issues, "guest first and last name are required")
	}
	if d.Discount.IsNegative() {
		issues = append(issues, "discount cannot be negative")
	}
	return issues
}

// Warnings reports soft occupancy problems. These are surfaced to the
// operator but never block submission.
func (d *Draft) Warnings() []string {
	var warnings []string
	allocated := 0
	capacity := 0
	complete := true
	for _, a := range d.Allocations {
		allocated += a.AllocatedGuests
		capacity += a.Capacity
		if !a.Resolved() {
			complete = false
		}
	}
	if total := d.Adults + d.Children; allocated != total {
		warnings = append(warnings, fmt.Sprintf("allocated guests (%d) do not match the party size (%d)", allocated, total))
	}
	if complete && capacity > 0 && allocated > capacity {
		warnings = append(warnings, fmt.Sprintf("allocated guests (%d) exceed the combined room capacity (%d)", allocated, capacity))
	}
	return warnings
}
