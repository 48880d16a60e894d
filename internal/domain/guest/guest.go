package guest

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/innkeep/backend/internal/domain/shared"
)

// Guest is a hotel guest record. Optional fields are pointers so that
// absent values persist as NULL rather than empty strings.
type Guest struct {
	shared.BaseAggregateRoot
	FirstName     string `gorm:"index"`
	MiddleName    *string
	LastName      string `gorm:"index"`
	ContactNumber *string
	Email         *string
	Street        *string
	Barangay      *string
	City          *string
	Province      *string
	PhotoURL      *string
}

// NewGuest creates a new guest. First and last name are required;
// everything else is optional.
func NewGuest(firstName, lastName string) (*Guest, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_GUEST", "First name cannot be empty")
	}
	if lastName == "" {
		return nil, shared.NewDomainError("INVALID_GUEST", "Last name cannot be empty")
	}
	return &Guest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
	}, nil
}

// OptionalField normalizes a form value into a nullable field: empty or
// whitespace-only input becomes nil, never an empty string.
func OptionalField(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// SetContact sets the optional contact fields
func (g *Guest) SetContact(contactNumber, email string) {
	g.ContactNumber = OptionalField(contactNumber)
	g.Email = OptionalField(email)
	g.Touch()
}

// SetAddress sets the optional address fields
func (g *Guest) SetAddress(street, barangay, city, province string) {
	g.Street = OptionalField(street)
	g.Barangay = OptionalField(barangay)
	g.City = OptionalField(city)
	g.Province = OptionalField(province)
	g.Touch()
}

// SetMiddleName sets the optional middle name
func (g *Guest) SetMiddleName(middleName string) {
	g.MiddleName = OptionalField(middleName)
	g.Touch()
}

// SetPhotoURL attaches the public URL of an uploaded photo
func (g *Guest) SetPhotoURL(url string) {
	g.PhotoURL = OptionalField(url)
	g.Touch()
}

// FullName returns the guest's display name
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// GuestRepository persists guest records
type GuestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Guest, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Guest, error)
	Save(ctx context.Context, g *Guest) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
