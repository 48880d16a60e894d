package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/innkeep/backend/internal/domain/identity"
	"github.com/innkeep/backend/internal/infrastructure/auth"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginResponse carries the token pair and the signed-in account
type LoginResponse struct {
	Tokens    *auth.TokenPair   `json:"tokens"`
	Personnel PersonnelResponse `json:"personnel"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreatePersonnelRequest represents a request to create a staff account
type CreatePersonnelRequest struct {
	Username    string `json:"username" binding:"required,min=1,max=100"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"max=200"`
	Role        string `json:"role" binding:"required,oneof=admin front_desk housekeeping"`
}

// PersonnelResponse represents a staff account in API responses
type PersonnelResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToPersonnelResponse converts a personnel aggregate to a response DTO
func ToPersonnelResponse(p *identity.Personnel) PersonnelResponse {
	return PersonnelResponse{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}
