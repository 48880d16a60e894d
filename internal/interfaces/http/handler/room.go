package handler

import (
	"github.com/gin-gonic/gin"

	propertyapp "github.com/innkeep/backend/internal/application/property"
)

// RoomHandler handles room and room-category API endpoints
type RoomHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(propertyService *propertyapp.PropertyService) *RoomHandler {
	return &RoomHandler{
		propertyService: propertyService,
	}
}

// Create adds a room to the property
func (h *RoomHandler) Create(c *gin.Context) {
	var req propertyapp.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.propertyService.CreateRoom(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a room by ID
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.propertyService.GetRoom(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns rooms matching the query filters
func (h *RoomHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	for _, key := range []string{"category_id", "status", "floor"} {
		if v := c.Query(key); v != "" {
			filter.Filters[key] = v
		}
	}

	rooms, total, err := h.propertyService.ListRooms(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rooms, total, filter.Page, filter.PageSize)
}

// UpdateRates replaces a room's rate card
func (h *RoomHandler) UpdateRates(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req propertyapp.UpdateRoomRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.propertyService.UpdateRoomRates(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangeStatus flips a room between available, occupied, and maintenance
func (h *RoomHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req propertyapp.ChangeRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.propertyService.ChangeRoomStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a room
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.DeleteRoom(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCategory adds a room category
func (h *RoomHandler) CreateCategory(c *gin.Context) {
	var req propertyapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.propertyService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCategories returns all room categories ordered by name
func (h *RoomHandler) ListCategories(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categories, err := h.propertyService.ListCategories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// DeleteCategory removes a room category
func (h *RoomHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
