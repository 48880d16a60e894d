package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	guestapp "github.com/innkeep/backend/internal/application/guest"
)

// GuestHandler handles guest-directory API endpoints
type GuestHandler struct {
	BaseHandler
	guestService *guestapp.GuestService
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(guestService *guestapp.GuestService) *GuestHandler {
	return &GuestHandler{
		guestService: guestService,
	}
}

// Create registers a guest directly, outside the booking wizard
func (h *GuestHandler) Create(c *gin.Context) {
	var req guestapp.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.guestService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a guest by ID
func (h *GuestHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.guestService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List searches the guest directory
func (h *GuestHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	guests, total, err := h.guestService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, guests, total, filter.Page, filter.PageSize)
}

// Update edits a guest's details
func (h *GuestHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req guestapp.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.guestService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UploadPhoto stores a guest photo and updates the guest's photo URL
func (h *GuestHandler) UploadPhoto(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

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

	resp, err := h.guestService.UploadPhoto(c.Request.Context(), id, data, header.Header.Get("Content-Type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a guest from the directory
func (h *GuestHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.guestService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
