package handler

import (
	"github.com/gin-gonic/gin"

	bookingapp "github.com/innkeep/backend/internal/application/booking"
)

// BookingHandler handles persisted-booking API endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *bookingapp.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *bookingapp.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// Get returns a booking by ID with all of its child lines
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.bookingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByReference returns a booking by its human-facing reference
func (h *BookingHandler) GetByReference(c *gin.Context) {
	resp, err := h.bookingService.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns bookings matching the query filters
func (h *BookingHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	for _, key := range []string{"guest_id", "status", "check_in_from", "check_in_to", "check_out_from", "check_out_to"} {
		if v := c.Query(key); v != "" {
			filter.Filters[key] = v
		}
	}
	if statuses := c.QueryArray("statuses"); len(statuses) > 0 {
		filter.Filters["statuses"] = statuses
	}

	bookings, total, err := h.bookingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, bookings, total, filter.Page, filter.PageSize)
}

// ChangeStatus transitions a booking through its status lifecycle
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req bookingapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.bookingService.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a booking and its child lines
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
