package handler

import (
	"github.com/gin-gonic/gin"

	accessapp "github.com/innkeep/backend/internal/application/access"
)

// CardKeyHandler handles room card key API endpoints
type CardKeyHandler struct {
	BaseHandler
	accessService *accessapp.AccessService
}

// NewCardKeyHandler creates a new card key handler
func NewCardKeyHandler(accessService *accessapp.AccessService) *CardKeyHandler {
	return &CardKeyHandler{
		accessService: accessService,
	}
}

// Issue requests a card key from the lock vendor for a booked room
func (h *CardKeyHandler) Issue(c *gin.Context) {
	var req accessapp.IssueKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.accessService.IssueKey(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Revoke deactivates a card key with the lock vendor
func (h *CardKeyHandler) Revoke(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.accessService.RevokeKey(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByBooking returns the card keys issued for a booking
func (h *CardKeyHandler) ListByBooking(c *gin.Context) {
	bookingID, ok := h.parseUUIDParam(c, "booking_id")
	if !ok {
		return
	}

	keys, err := h.accessService.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, keys)
}
