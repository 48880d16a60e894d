package guest

import (
	"time"

	"github.com/google/uuid"

	"github.com/innkeep/backend/internal/domain/guest"
)

// CreateGuestRequest represents a request to create a guest record
type CreateGuestRequest struct {
	FirstName     string `json:"first_name" binding:"required,min=1,max=100"`
	MiddleName    string `json:"middle_name" binding:"max=100"`
	LastName      string `json:"last_name" binding:"required,min=1,max=100"`
	ContactNumber string `json:"contact_number" binding:"max=30"`
	Email         string `json:"email" binding:"omitempty,email"`
	Street        string `json:"street" binding:"max=200"`
	Barangay      string `json:"barangay" binding:"max=100"`
	City          string `json:"city" binding:"max=100"`
	Province      string `json:"province" binding:"max=100"`
}

// UpdateGuestRequest represents a request to update a guest record
type UpdateGuestRequest struct {
	FirstName     string `json:"first_name" binding:"required,min=1,max=100"`
	MiddleName    string `json:"middle_name" binding:"max=100"`
	LastName      string `json:"last_name" binding:"required,min=1,max=100"`
	ContactNumber string `json:"contact_number" binding:"max=30"`
	Email         string `json:"email" binding:"omitempty,email"`
	Street        string `json:"street" binding:"max=200"`
	Barangay      string `json:"barangay" binding:"max=100"`
	City          string `json:"city" binding:"max=100"`
	Province      string `json:"province" binding:"max=100"`
}

// GuestResponse represents a guest in API responses
type GuestResponse struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"first_name"`
	MiddleName    *string   `json:"middle_name"`
	LastName      string    `json:"last_name"`
	ContactNumber *string   `json:"contact_number"`
	Email         *string   `json:"email"`
	Street        *string   `json:"street"`
	Barangay      *string   `json:"barangay"`
	City          *string   `json:"city"`
	Province      *string   `json:"province"`
	PhotoURL      *string   `json:"photo_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToGuestResponse converts a guest aggregate to a response DTO
func ToGuestResponse(g *guest.Guest) GuestResponse {
	return GuestResponse{
		ID:            g.ID,
		FirstName:     g.FirstName,
		MiddleName:    g.MiddleName,
		LastName:      g.LastName,
		ContactNumber: g.ContactNumber,
		Email:         g.Email,
		Street:        g.Street,
		Barangay:      g.Barangay,
		City:          g.City,
		Province:      g.Province,
		PhotoURL:      g.PhotoURL,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}
