package handler

import (
	"github.com/gin-gonic/gin"

	propertyapp "github.com/innkeep/backend/internal/application/property"
)

// ChargeItemHandler handles the extra-charge catalog API endpoints
type ChargeItemHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewChargeItemHandler creates a new charge item handler
func NewChargeItemHandler(propertyService *propertyapp.PropertyService) *ChargeItemHandler {
	return &ChargeItemHandler{
		propertyService: propertyService,
	}
}

// Create adds a charge item to the catalog
func (h *ChargeItemHandler) Create(c *gin.Context) {
	var req propertyapp.CreateChargeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.propertyService.CreateChargeItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns charge items matching the query filters
func (h *ChargeItemHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if v := c.Query("is_default"); v != "" {
		filter.Filters["is_default"] = v
	}

	items, total, err := h.propertyService.ListChargeItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Delete removes a charge item from the catalog
func (h *ChargeItemHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.DeleteChargeItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
