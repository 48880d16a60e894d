package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/innkeep/backend/internal/domain/shared"
)

// ChargeItem is an entry of the charge catalog. Items marked as default
// are seeded into every new booking draft once per wizard session.
type ChargeItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string          `gorm:"uniqueIndex" json:"name"`
	Value      decimal.Decimal `gorm:"type:numeric(12,2)" json:"value"`
	ChargeType ChargeType      `json:"charge_type"`
	IsVATable  bool            `json:"is_vatable"`
	IsDefault  bool            `json:"is_default"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewChargeItem creates a new charge catalog entry
func NewChargeItem(name string, value decimal.Decimal, chargeType ChargeType, isVATable, isDefault bool) (*ChargeItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CHARGE_ITEM", "Charge item name cannot be empty")
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CHARGE_ITEM", "Charge item value cannot be negative")
	}
	if !chargeType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHARGE_ITEM", "Unknown charge type")
	}
	now := time.Now()
	return &ChargeItem{
		ID:         uuid.New(),
		Name:       name,
		Value:      value,
		ChargeType: chargeType,
		IsVATable:  isVATable,
		IsDefault:  isDefault,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ToChargeLine converts a catalog entry into a draft charge line
func (c *ChargeItem) ToChargeLine() ChargeLine {
	return ChargeLine{
		ChargeItemID: c.ID,
		Name:         c.Name,
		Quantity:     1,
		UnitPrice:    c.Value,
		ChargeType:   c.ChargeType,
		IsVATable:    c.IsVATable,
	}
}

// ChargeItemRepository persists the charge catalog
type ChargeItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ChargeItem, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ChargeItem, error)
	FindDefaults(ctx context.Context) ([]ChargeItem, error)
	Save(ctx context.Context, item *ChargeItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
