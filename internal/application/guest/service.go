package guest

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/domain/guest"
	"github.com/innkeep/backend/internal/domain/shared"
)

// ObjectStorageService is the port to the object store that holds guest
// photos. Implementations live in infrastructure.
type ObjectStorageService interface {
	// Upload stores an object under the given key
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// PublicURL returns the canonical public URL of a stored object
	PublicURL(key string) string

	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, key string) error
}

// PhotoKey builds the storage key for a guest photo: a timestamp plus a
// random suffix, so repeated uploads never collide or overwrite.
func PhotoKey() string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("guests/%d-%s", time.Now().UnixNano(), hex.EncodeToString(suffix))
}

// GuestService handles guest record business operations
type GuestService struct {
	guestRepo guest.GuestRepository
	storage   ObjectStorageService
	logger    *zap.Logger
}

// NewGuestService creates a new GuestService
func NewGuestService(guestRepo guest.GuestRepository, storage ObjectStorageService, logger *zap.Logger) *GuestService {
	return &GuestService{
		guestRepo: guestRepo,
		storage:   storage,
		logger:    logger,
	}
}

// Create creates a new guest record
func (s *GuestService) Create(ctx context.Context, req CreateGuestRequest) (*GuestResponse, error) {
	g, err := guest.NewGuest(req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	g.SetMiddleName(req.MiddleName)
	g.SetContact(req.ContactNumber, req.Email)
	g.SetAddress(req.Street, req.Barangay, req.City, req.Province)

	if err := s.guestRepo.Save(ctx, g); err != nil {
		return nil, err
	}
	resp := ToGuestResponse(g)
	return &resp, nil
}

// GetByID retrieves a guest by ID
func (s *GuestService) GetByID(ctx context.Context, id uuid.UUID) (*GuestResponse, error) {
	g, err := s.guestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToGuestResponse(g)
	return &resp, nil
}

// List retrieves guests with filtering and pagination
func (s *GuestService) List(ctx context.Context, filter shared.Filter) ([]GuestResponse, int64, error) {
	guests, err := s.guestRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.guestRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]GuestResponse, 0, len(guests))
	for i := range guests {
		responses = append(responses, ToGuestResponse(&guests[i]))
	}
	return responses, total, nil
}

// Update updates a guest record
func (s *GuestService) Update(ctx context.Context, id uuid.UUID, req UpdateGuestRequest) (*GuestResponse, error) {
	g, err := s.guestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName == "" || req.LastName == "" {
		return nil, shared.NewDomainError("INVALID_GUEST", "First and last name are required")
	}
	g.FirstName = req.FirstName
	g.LastName = req.LastName
	g.SetMiddleName(req.MiddleName)
	g.SetContact(req.ContactNumber, req.Email)
	g.SetAddress(req.Street, req.Barangay, req.City, req.Province)

	if err := s.guestRepo.Save(ctx, g); err != nil {
		return nil, err
	}
	resp := ToGuestResponse(g)
	return &resp, nil
}

// UploadPhoto stores a photo for the guest and records its public URL
func (s *GuestService) UploadPhoto(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*GuestResponse, error) {
	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_PHOTO", "Photo data cannot be empty")
	}
	g, err := s.guestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := PhotoKey()
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		s.logger.Error("guest photo upload failed", zap.String("guest_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", shared.ErrUpload, err)
	}

	g.SetPhotoURL(s.storage.PublicURL(key))
	if err := s.guestRepo.Save(ctx, g); err != nil {
		return nil, err
	}
	resp := ToGuestResponse(g)
	return &resp, nil
}

// Delete removes a guest record
func (s *GuestService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.guestRepo.Delete(ctx, id)
}
