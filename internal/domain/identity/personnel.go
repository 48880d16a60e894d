package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/innkeep/backend/internal/domain/shared"
)

// Role is a personnel role
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleFrontDesk    Role = "front_desk"
	RoleHousekeeping Role = "housekeeping"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleFrontDesk, RoleHousekeeping:
		return true
	}
	return false
}

// Personnel is a staff account that can sign in to the admin console
type Personnel struct {
	shared.BaseAggregateRoot
	Username     string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	DisplayName  string
	Role         Role `gorm:"index"`
	Active       bool
}

// NewPersonnel creates a staff account with a bcrypt-hashed password
func NewPersonnel(username, password, displayName string, role Role) (*Personnel, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewDomainError("INVALID_PERSONNEL", "Username cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PERSONNEL", "Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERSONNEL", "Unknown role")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Personnel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      string(hash),
		DisplayName:       displayName,
		Role:              role,
		Active:            true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (p *Personnel) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash
func (p *Personnel) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PERSONNEL", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hash)
	return nil
}

// Deactivate disables sign-in for the account
func (p *Personnel) Deactivate() {
	p.Active = false
}

// PersonnelRepository persists staff accounts
type PersonnelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Personnel, error)
	FindByUsername(ctx context.Context, username string) (*Personnel, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Personnel, error)
	Save(ctx context.Context, p *Personnel) error
	Delete(ctx context.Context, id uuid.UUID) error
}
