package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	bookingapp "github.com/innkeep/backend/internal/application/booking"
	"github.com/innkeep/backend/internal/interfaces/http/dto"
)

// maxPhotoSize caps inline guest photo uploads at 5 MiB
const maxPhotoSize = 5 << 20

// WizardHandler exposes the booking wizard session endpoints. Every
// mutation returns the full draft snapshot so the client never has to
// reassemble state from partial responses.
type WizardHandler struct {
	BaseHandler
	wizardService *bookingapp.WizardService
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(wizardService *bookingapp.WizardService) *WizardHandler {
	return &WizardHandler{
		wizardService: wizardService,
	}
}

// Open starts a fresh booking draft session
func (h *WizardHandler) Open(c *gin.Context) {
	resp, err := h.wizardService.Open(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// OpenForBooking starts an edit session seeded from a persisted booking
func (h *WizardHandler) OpenForBooking(c *gin.Context) {
	bookingID, ok := h.parseUUIDParam(c, "booking_id")
	if !ok {
		return
	}

	resp, err := h.wizardService.OpenForBooking(c.Request.Context(), bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns the current draft snapshot
func (h *WizardHandler) Get(c *gin.Context) {
	resp, err := h.wizardService.Get(c.Param("session_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Close discards a wizard session
func (h *WizardHandler) Close(c *gin.Context) {
	h.wizardService.Close(c.Param("session_id"))
	h.NoContent(c)
}

// SetStatus sets the draft booking status (step 1)
func (h *WizardHandler) SetStatus(c *gin.Context) {
	var req bookingapp.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SetStatus(c.Param("session_id"), req)
	h.respond(c, resp, err)
}

// SetDates sets the stay window (step 2)
func (h *WizardHandler) SetDates(c *gin.Context) {
	var req bookingapp.SetDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SetDates(c.Param("session_id"), req)
	h.respond(c, resp, err)
}

// SetOccupancy sets the party size
func (h *WizardHandler) SetOccupancy(c *gin.Context) {
	var req bookingapp.SetOccupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SetOccupancy(c.Param("session_id"), req)
	h.respond(c, resp, err)
}

// SetGuestMode switches between registering a new guest and picking an existing one
func (h *WizardHandler) SetGuestMode(c *gin.Context) {
	var req bookingapp.SetGuestModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SetGuestMode(c.Param("session_id"), req)
	h.respond(c, resp, err)
}

// SetGuestDetails updates the new-guest registration form
func (h *WizardHandler) SetGuestDetails(c *gin.Context) {
	var req bookingapp.GuestDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SetGuestDetails(c.Param("session_id"), req)
	h.respond(c, resp, err)
}

// SelectGuest attaches an existing guest to the draft
func (h *WizardHandler) SelectGuest(c *gin.Context) {
	var req bookingapp.SelectGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SelectGuest(c.Request.Context(), c.Param("session_id"), req)
	h.respond(c, resp, err)
}

// ClearGuest detaches the selected guest
func (h *WizardHandler) ClearGuest(c *gin.Context) {
	resp, err := h.wizardService.ClearGuest(c.Param("session_id"))
	h.respond(c, resp, err)
}

// AttachPhoto stores a guest photo on the draft; it is uploaded only at submission
func (h *WizardHandler) AttachPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		h.BadRequest(c, "Missing photo file")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoSize {
		h.BadRequest(c, "Photo exceeds the 5MB limit")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
	if err != nil {
		h.BadRequest(c, "Unreadable photo file")
		return
	}
	if len(data) > maxPhotoSize {
		h.BadRequest(c, "Photo exceeds the 5MB limit")
		return
	}

	contentType := header.Header.Get("Content-Type")
	resp, err := h.wizardService.AttachPhoto(c.Param("session_id"), data, contentType)
	h.respond(c, resp, err)
}

// AddAllocation appends an empty room slot
func (h *WizardHandler) AddAllocation(c *gin.Context) {
	resp, err := h.wizardService.AddAllocation(c.Param("session_id"))
	h.respond(c, resp, err)
}

// RemoveAllocation removes the room slot at the given index
func (h *WizardHandler) RemoveAllocation(c *gin.Context) {
	index, ok := h.parseIndexParam(c)
	if !ok {
		return
	}
	resp, err := h.wizardService.RemoveAllocation(c.Param("session_id"), index)
	h.respond(c, resp, err)
}

// SetAllocationRoom assigns a room to the slot at the given index
func (h *WizardHandler) SetAllocationRoom(c *gin.Context) {
	index, ok := h.parseIndexParam(c)
	if !ok {
		return
	}

	var req bookingapp.SetAllocationRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SetAllocationRoom(c.Request.Context(), c.Param("session_id"), index, req)
	h.respond(c, resp, err)
}

// SetAllocationGuests sets the guest count for the slot at the given index
func (h *WizardHandler) SetAllocationGuests(c *gin.Context) {
	index, ok := h.parseIndexParam(c)
	if !ok {
		return
	}

	var req bookingapp.SetAllocationGuestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SetAllocationGuests(c.Param("session_id"), index, req)
	h.respond(c, resp, err)
}

// SetDiscount sets the draft discount amount and type
func (h *WizardHandler) SetDiscount(c *gin.Context) {
	var req bookingapp.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SetDiscount(c.Param("session_id"), req)
	h.respond(c, resp, err)
}

// SetCharges replaces the draft's extra charge lines
func (h *WizardHandler) SetCharges(c *gin.Context) {
	var req bookingapp.SetChargesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SetCharges(c.Param("session_id"), req)
	h.respond(c, resp, err)
}

// AddPayment records a payment line on the draft
func (h *WizardHandler) AddPayment(c *gin.Context) {
	var req bookingapp.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.AddPayment(c.Param("session_id"), req)
	h.respond(c, resp, err)
}

// RemovePayment removes the payment line at the given index
func (h *WizardHandler) RemovePayment(c *gin.Context) {
	index, ok := h.parseIndexParam(c)
	if !ok {
		return
	}
	resp, err := h.wizardService.RemovePayment(c.Param("session_id"), index)
	h.respond(c, resp, err)
}

// SetSpecialRequests updates the free-form special requests note
func (h *WizardHandler) SetSpecialRequests(c *gin.Context) {
	var req bookingapp.SetSpecialRequestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	resp, err := h.wizardService.SetSpecialRequests(c.Param("session_id"), req)
	h.respond(c, resp, err)
}

// Next advances the wizard one step if the current step's gate passes
func (h *WizardHandler) Next(c *gin.Context) {
	resp, err := h.wizardService.Next(c.Param("session_id"))
	h.respond(c, resp, err)
}

// Previous steps the wizard back
func (h *WizardHandler) Previous(c *gin.Context) {
	resp, err := h.wizardService.Previous(c.Param("session_id"))
	h.respond(c, resp, err)
}

// Submit runs the pre-submit check and, if it passes, the submission
// pipeline. Validation issues come back as a 422 with one detail per
// issue rather than as an opaque error.
func (h *WizardHandler) Submit(c *gin.Context) {
	result, failure, err := h.wizardService.Submit(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if failure != nil {
		details := make([]dto.ValidationDetail, 0, len(failure.Issues))
		for _, issue := range failure.Issues {
			details = append(details, dto.ValidationDetail{Message: issue})
		}
		resp := dto.NewValidationErrorResponse("Draft is not ready for submission", getRequestID(c), details)
		resp.Error.Code = dto.ErrCodeStepIncomplete
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewSuccessResponse(result))
}

// respond writes the draft snapshot or maps the service error
func (h *WizardHandler) respond(c *gin.Context, resp *bookingapp.DraftResponse, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// parseIndexParam parses the :index path parameter
func (h *WizardHandler) parseIndexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		h.BadRequest(c, "Invalid index parameter")
		return 0, false
	}
	return index, true
}
