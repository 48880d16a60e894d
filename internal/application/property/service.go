package property

import (
	"context"

	"github.com/google/uuid"

	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/property"
	"github.com/innkeep/backend/internal/domain/shared"
)

// PropertyService handles room, category, and charge catalog operations
type PropertyService struct {
	roomRepo       property.RoomRepository
	categoryRepo   property.RoomCategoryRepository
	chargeItemRepo booking.ChargeItemRepository
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(roomRepo property.RoomRepository, categoryRepo property.RoomCategoryRepository, chargeItemRepo booking.ChargeItemRepository) *PropertyService {
	return &PropertyService{
		roomRepo:       roomRepo,
		categoryRepo:   categoryRepo,
		chargeItemRepo: chargeItemRepo,
	}
}

// CreateRoom creates a new room under an existing category
func (s *PropertyService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*RoomResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	room, err := property.NewRoom(req.RoomNumber, req.CategoryID, req.Floor, req.BaseOccupancy, req.Capacity, req.WeekdayRate, req.WeekendRate, req.ExtraGuestFee)
	if err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	resp := ToRoomResponse(room)
	return &resp, nil
}

// GetRoom retrieves a room by ID
func (s *PropertyService) GetRoom(ctx context.Context, id uuid.UUID) (*RoomResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRoomResponse(room)
	return &resp, nil
}

// ListRooms retrieves rooms with filtering and pagination
func (s *PropertyService) ListRooms(ctx context.Context, filter shared.Filter) ([]RoomResponse, int64, error) {
	rooms, err := s.roomRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.roomRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		responses = append(responses, ToRoomResponse(&rooms[i]))
	}
	return responses, total, nil
}

// UpdateRoomRates replaces a room's rate card
func (s *PropertyService) UpdateRoomRates(ctx context.Context, id uuid.UUID, req UpdateRoomRatesRequest) (*RoomResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := room.UpdateRates(req.WeekdayRate, req.WeekendRate, req.ExtraGuestFee); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	resp := ToRoomResponse(room)
	return &resp, nil
}

// ChangeRoomStatus changes a room's operational status
func (s *PropertyService) ChangeRoomStatus(ctx context.Context, id uuid.UUID, req ChangeRoomStatusRequest) (*RoomResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := room.ChangeStatus(property.RoomStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	resp := ToRoomResponse(room)
	return &resp, nil
}

// DeleteRoom removes a room
func (s *PropertyService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return s.roomRepo.Delete(ctx, id)
}

// CreateCategory creates a new room category
func (s *PropertyService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := property.NewRoomCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// ListCategories retrieves room categories
func (s *PropertyService) ListCategories(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// DeleteCategory removes a room category
func (s *PropertyService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}

// CreateChargeItem creates a charge catalog entry
func (s *PropertyService) CreateChargeItem(ctx context.Context, req CreateChargeItemRequest) (*ChargeItemResponse, error) {
	item, err := booking.NewChargeItem(req.Name, req.Value, booking.ChargeType(req.ChargeType), req.IsVATable, req.IsDefault)
	if err != nil {
		return nil, err
	}
	if err := s.chargeItemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToChargeItemResponse(item)
	return &resp, nil
}

// ListChargeItems retrieves the charge catalog
func (s *PropertyService) ListChargeItems(ctx context.Context, filter shared.Filter) ([]ChargeItemResponse, int64, error) {
	items, err := s.chargeItemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.chargeItemRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ChargeItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToChargeItemResponse(&items[i]))
	}
	return responses, total, nil
}

// DeleteChargeItem removes a charge catalog entry
func (s *PropertyService) DeleteChargeItem(ctx context.Context, id uuid.UUID) error {
	return s.chargeItemRepo.Delete(ctx, id)
}
