package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/guest"
	"github.com/innkeep/backend/internal/domain/property"
	"github.com/innkeep/backend/internal/domain/shared"
)

// DefaultSettleDelay is how long the wizard waits after the last date or
// room change before asking the price provider for a fresh quote.
const DefaultSettleDelay = 400 * time.Millisecond

// session is one live wizard session. All fields are guarded by mu; the
// debounce timer and the quote goroutine re-acquire it before touching
// anything.
type session struct {
	mu sync.Mutex

	id    string
	draft *booking.Draft

	breakdown  *booking.PriceBreakdown
	financials booking.Financials
	priceErr   string
	pricing    bool

	// generation tags each pricing kickoff; a quote whose generation no
	// longer matches is stale and gets discarded
	generation  uint64
	timer       *time.Timer
	cancelQuote context.CancelFunc
}

// WizardService owns the live booking wizard sessions. Each session has
// exactly one draft; sessions share nothing with each other.
type WizardService struct {
	mu       sync.RWMutex
	sessions map[string]*session

	bookingRepo    booking.BookingRepository
	guestRepo      guest.GuestRepository
	roomRepo       property.RoomRepository
	chargeItemRepo booking.ChargeItemRepository
	priceProvider  booking.PriceProvider
	submitter      *SubmitService
	logger         *zap.Logger
	settleDelay    time.Duration
}

// NewWizardService creates a new WizardService
func NewWizardService(
	bookingRepo booking.BookingRepository,
	guestRepo guest.GuestRepository,
	roomRepo property.RoomRepository,
	chargeItemRepo booking.ChargeItemRepository,
	priceProvider booking.PriceProvider,
	submitter *SubmitService,
	logger *zap.Logger,
	settleDelay time.Duration,
) *WizardService {
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	return &WizardService{
		sessions:       make(map[string]*session),
		bookingRepo:    bookingRepo,
		guestRepo:      guestRepo,
		roomRepo:       roomRepo,
		chargeItemRepo: chargeItemRepo,
		priceProvider:  priceProvider,
		submitter:      submitter,
		logger:         logger,
		settleDelay:    settleDelay,
	}
}

// Open starts a create-mode session. The catalog's default charge items
// are seeded into the draft once, here.
func (s *WizardService) Open(ctx context.Context) (*DraftResponse, error) {
	draft := booking.NewDraft()
	if err := s.seedDefaultCharges(ctx, draft); err != nil {
		return nil, err
	}
	sess := s.register(draft)
	return s.snapshot(sess), nil
}

// OpenForBooking starts an edit-mode session populated from an existing
// booking. Default charges are not seeded; the booking's own lines are
// loaded instead.
func (s *WizardService) OpenForBooking(ctx context.Context, bookingID uuid.UUID) (*DraftResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	draft := booking.NewDraftFromBooking(b)
	sess := s.register(draft)

	// populate the copied guest fields for display
	if draft.SelectedGuestID != nil {
		if g, err := s.guestRepo.FindByID(ctx, *draft.SelectedGuestID); err == nil {
			draft.SetGuestDetails(guestDetailsOf(g))
		}
	}
	// room capacities are not stored on the booking lines
	for i, a := range draft.Allocations {
		if a.RoomID == nil {
			continue
		}
		if room, err := s.roomRepo.FindByID(ctx, *a.RoomID); err == nil {
			_ = draft.SetAllocationRoom(i, room.ID, room.RoomNumber, room.Capacity)
		}
	}

	s.schedulePricing(sess)
	return s.snapshot(sess), nil
}

// Get returns the current session state
func (s *WizardService) Get(sessionID string) (*DraftResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sess), nil
}

// Close discards a session and its draft
func (s *WizardService) Close(sessionID string) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if ok {
		sess.mu.Lock()
		if sess.timer != nil {
			sess.timer.Stop()
		}
		sess.generation++ // orphan any in-flight quote
		if sess.cancelQuote != nil {
			sess.cancelQuote()
		}
		sess.mu.Unlock()
	}
}

// SetStatus sets the draft booking status
func (s *WizardService) SetStatus(sessionID string, req SetStatusRequest) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		return d.SetStatus(booking.Status(req.Status))
	})
}

// SetDates sets the stay dates and kicks off a debounced reprice
func (s *WizardService) SetDates(sessionID string, req SetDatesRequest) (*DraftResponse, error) {
	return s.mutate(sessionID, true, func(d *booking.Draft) error {
		d.SetDates(req.CheckIn, req.CheckOut)
		return nil
	})
}

// SetOccupancy sets the party size
func (s *WizardService) SetOccupancy(sessionID string, req SetOccupancyRequest) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		return d.SetOccupancy(req.Adults, req.Children)
	})
}

// SetGuestMode switches the guest capture mode
func (s *WizardService) SetGuestMode(sessionID string, req SetGuestModeRequest) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		return d.SetGuestMode(booking.GuestMode(req.Mode))
	})
}

// SetGuestDetails sets the inline guest fields
func (s *WizardService) SetGuestDetails(sessionID string, req GuestDetailsRequest) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		d.SetGuestDetails(req.ToGuestDetails())
		return nil
	})
}

// SelectGuest attaches an existing guest and copies its fields into the
// draft
func (s *WizardService) SelectGuest(ctx context.Context, sessionID string, req SelectGuestRequest) (*DraftResponse, error) {
	g, err := s.guestRepo.FindByID(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		d.SelectExistingGuest(g.ID, guestDetailsOf(g))
		return nil
	})
}

// ClearGuest detaches the selected guest
func (s *WizardService) ClearGuest(sessionID string) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		d.ClearSelectedGuest()
		return nil
	})
}

// AttachPhoto attaches a guest photo blob to the draft
func (s *WizardService) AttachPhoto(sessionID string, data []byte, contentType string) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		return d.AttachPhoto(data, contentType)
	})
}

// AddAllocation appends an empty room slot
func (s *WizardService) AddAllocation(sessionID string) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		d.AddAllocation()
		return nil
	})
}

// RemoveAllocation removes a room slot and reprices
func (s *WizardService) RemoveAllocation(sessionID string, index int) (*DraftResponse, error) {
	return s.mutate(sessionID, true, func(d *booking.Draft) error {
		return d.RemoveAllocation(index)
	})
}

// SetAllocationRoom resolves a room slot and reprices
func (s *WizardService) SetAllocationRoom(ctx context.Context, sessionID string, index int, req SetAllocationRoomRequest) (*DraftResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	return s.mutate(sessionID, true, func(d *booking.Draft) error {
		return d.SetAllocationRoom(index, room.ID, room.RoomNumber, room.Capacity)
	})
}

// SetAllocationGuests sets the guest count of a room slot and reprices
func (s *WizardService) SetAllocationGuests(sessionID string, index int, req SetAllocationGuestsRequest) (*DraftResponse, error) {
	return s.mutate(sessionID, true, func(d *booking.Draft) error {
		return d.SetAllocationGuests(index, req.Guests)
	})
}

// SetDiscount sets the discount; financials are recomputed synchronously
func (s *WizardService) SetDiscount(sessionID string, req SetDiscountRequest) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		return d.SetDiscount(req.Amount, booking.DiscountType(req.Type))
	})
}

// SetCharges replaces the charge lines
func (s *WizardService) SetCharges(sessionID string, req SetChargesRequest) (*DraftResponse, error) {
	lines := make([]booking.ChargeLine, 0, len(req.Charges))
	for _, c := range req.Charges {
		lines = append(lines, booking.ChargeLine{
			ChargeItemID: c.ChargeItemID,
			Name:         c.Name,
			Quantity:     c.Quantity,
			UnitPrice:    c.UnitPrice,
			ChargeType:   booking.ChargeType(c.ChargeType),
			IsVATable:    c.IsVATable,
		})
	}
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		return d.SetCharges(lines)
	})
}

// AddPayment appends a payment line
func (s *WizardService) AddPayment(sessionID string, req AddPaymentRequest) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		return d.AddPayment(req.Amount, booking.PaymentMethod(req.Method))
	})
}

// RemovePayment removes a payment line
func (s *WizardService) RemovePayment(sessionID string, index int) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		return d.RemovePayment(index)
	})
}

// SetSpecialRequests sets the free-text notes
func (s *WizardService) SetSpecialRequests(sessionID string, req SetSpecialRequestsRequest) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		d.SetSpecialRequests(req.Text)
		return nil
	})
}

// Next advances the wizard one step
func (s *WizardService) Next(sessionID string) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		return d.Next()
	})
}

// Previous moves the wizard back one step
func (s *WizardService) Previous(sessionID string) (*DraftResponse, error) {
	return s.mutate(sessionID, false, func(d *booking.Draft) error {
		return d.Previous()
	})
}

// Submit validates the draft and, when clean, runs the submission
// pipeline. The cooperative submitting flag blocks navigation and
// duplicate submits for the duration. On success the session is closed.
func (s *WizardService) Submit(ctx context.Context, sessionID string) (*SubmitResult, *ValidationFailure, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, nil, err
	}

	sess.mu.Lock()
	if issues := sess.draft.Validate(); len(issues) > 0 {
		sess.mu.Unlock()
		return nil, &ValidationFailure{Issues: issues}, nil
	}
	if err := sess.draft.BeginSubmit(); err != nil {
		sess.mu.Unlock()
		return nil, nil, err
	}
	draft := sess.draft
	breakdown := sess.breakdown
	sess.mu.Unlock()

	result, err := s.submitter.Submit(ctx, draft, breakdown)

	sess.mu.Lock()
	draft.EndSubmit()
	sess.mu.Unlock()

	if err != nil {
		// the draft survives a failed submission untouched
		return nil, nil, err
	}

	s.Close(sessionID)
	return result, nil, nil
}

// ==================== internals ====================

func (s *WizardService) register(draft *booking.Draft) *session {
	sess := &session{
		id:    uuid.NewString(),
		draft: draft,
	}
	sess.financials = booking.CalculateFinancials(nil, draft.Charges, draft.Discount, draft.DiscountType, draft.Payments)
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

func (s *WizardService) lookup(sessionID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, shared.NewDomainError("SESSION_NOT_FOUND", fmt.Sprintf("Wizard session %s does not exist", sessionID))
	}
	return sess, nil
}

// mutate applies fn to the session's draft under its lock, recomputes
// the financial projection, and optionally schedules a reprice. The
// draft is frozen while a submission is in flight: the submitter reads
// it outside the session lock, so every change is rejected until
// EndSubmit.
func (s *WizardService) mutate(sessionID string, reprice bool, fn func(d *booking.Draft) error) (*DraftResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	if sess.draft.IsSubmitting() {
		sess.mu.Unlock()
		return nil, shared.NewDomainError("SUBMIT_IN_FLIGHT", "The draft cannot change while it is being submitted")
	}
	if err := fn(sess.draft); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	sess.financials = booking.CalculateFinancials(sess.breakdown, sess.draft.Charges, sess.draft.Discount, sess.draft.DiscountType, sess.draft.Payments)
	sess.mu.Unlock()

	if reprice {
		s.schedulePricing(sess)
	}
	return s.snapshot(sess), nil
}

// schedulePricing debounces the quote: any pending timer is cleared and
// a new one is armed, so only the last change within the settle window
// triggers a provider call.
func (s *WizardService) schedulePricing(sess *session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.timer != nil {
		sess.timer.Stop()
	}
	sess.generation++
	gen := sess.generation
	if sess.cancelQuote != nil {
		sess.cancelQuote()
		sess.cancelQuote = nil
	}

	if !sess.draft.HasValidDates() || !sess.draft.HasCompleteRooms() {
		// nothing quotable; drop any previous price
		sess.breakdown = nil
		sess.priceErr = ""
		sess.pricing = false
		sess.financials = booking.CalculateFinancials(nil, sess.draft.Charges, sess.draft.Discount, sess.draft.DiscountType, sess.draft.Payments)
		return
	}

	sess.pricing = true
	checkIn := *sess.draft.CheckIn
	checkOut := *sess.draft.CheckOut
	rooms := sess.draft.RoomSelections()

	// the quote is cancelled, not just orphaned, when a newer change or
	// Close supersedes it
	ctx, cancel := context.WithCancel(context.Background())
	sess.cancelQuote = cancel

	sess.timer = time.AfterFunc(s.settleDelay, func() {
		defer cancel()
		s.quote(ctx, sess, gen, checkIn, checkOut, rooms)
	})
}

// quote calls the price provider and applies the result unless a newer
// kickoff superseded this one in the meantime.
func (s *WizardService) quote(ctx context.Context, sess *session, gen uint64, checkIn, checkOut time.Time, rooms []booking.RoomSelection) {
	breakdown, err := s.priceProvider.Quote(ctx, checkIn, checkOut, rooms)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if gen != sess.generation {
		// stale result, a newer change owns the price now
		return
	}
	sess.pricing = false
	if err != nil {
		s.logger.Warn("price quote failed",
			zap.String("booking_reference", sess.draft.BookingReference),
			zap.Error(err))
		sess.breakdown = nil
		sess.priceErr = shared.ErrPriceCalculation.Message
	} else {
		sess.breakdown = breakdown
		sess.priceErr = ""
	}
	sess.financials = booking.CalculateFinancials(sess.breakdown, sess.draft.Charges, sess.draft.Discount, sess.draft.DiscountType, sess.draft.Payments)
}

// seedDefaultCharges loads the catalog's default items into a fresh draft
func (s *WizardService) seedDefaultCharges(ctx context.Context, draft *booking.Draft) error {
	items, err := s.chargeItemRepo.FindDefaults(ctx)
	if err != nil {
		return err
	}
	lines := make([]booking.ChargeLine, 0, len(items))
	for i := range items {
		lines = append(lines, items[i].ToChargeLine())
	}
	return draft.SetCharges(lines)
}

// snapshot builds a response from the session under its lock
func (s *WizardService) snapshot(sess *session) *DraftResponse {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	d := sess.draft
	resp := &DraftResponse{
		SessionID:        sess.id,
		BookingReference: d.BookingReference,
		EditBookingID:    d.BookingID,
		Step:             int(d.Step),
		StepName:         d.Step.String(),
		CanAdvance:       d.CanAdvance(),
		Submitting:       d.IsSubmitting(),
		Status:           d.Status.String(),
		CheckIn:          d.CheckIn,
		CheckOut:         d.CheckOut,
		Nights:           d.Nights,
		Adults:           d.Adults,
		Children:         d.Children,
		GuestMode:        string(d.GuestMode),
		SelectedGuestID:  d.SelectedGuestID,
		Guest: GuestDetailsRequest{
			FirstName:     d.Guest.FirstName,
			MiddleName:    d.Guest.MiddleName,
			LastName:      d.Guest.LastName,
			ContactNumber: d.Guest.ContactNumber,
			Email:         d.Guest.Email,
			Street:        d.Guest.Street,
			Barangay:      d.Guest.Barangay,
			City:          d.Guest.City,
			Province:      d.Guest.Province,
		},
		HasPhoto:        d.Photo != nil,
		SpecialRequests: d.SpecialRequests,
		Breakdown:       sess.breakdown,
		PriceError:      sess.priceErr,
		Pricing:         sess.pricing,
		Financials:      sess.financials,
		Warnings:        d.Warnings(),
	}
	resp.Allocations = make([]AllocationResponse, 0, len(d.Allocations))
	for _, a := range d.Allocations {
		resp.Allocations = append(resp.Allocations, AllocationResponse{
			RoomID:          a.RoomID,
			RoomNumber:      a.RoomNumber,
			Capacity:        a.Capacity,
			AllocatedGuests: a.AllocatedGuests,
		})
	}
	return resp
}

func guestDetailsOf(g *guest.Guest) booking.GuestDetails {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return booking.GuestDetails{
		FirstName:     g.FirstName,
		MiddleName:    deref(g.MiddleName),
		LastName:      g.LastName,
		ContactNumber: deref(g.ContactNumber),
		Email:         deref(g.Email),
		Street:        deref(g.Street),
		Barangay:      deref(g.Barangay),
		City:          deref(g.City),
		Province:      deref(g.Province),
	}
}
