package booking

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VATRate is the fixed value-added tax rate (12%). It is a business
// constant, not configuration.
var VATRate = decimal.NewFromFloat(0.12)

// DiscountType determines whether a discount is applied to the taxable
// base before VAT, or to the tax-inclusive total after VAT. The two are
// genuinely different tax treatments and must not be conflated.
type DiscountType string

const (
	DiscountBeforeTax DiscountType = "before_tax"
	DiscountAfterTax  DiscountType = "after_tax"
)

// IsValid checks if the discount type is known
func (d DiscountType) IsValid() bool {
	return d == DiscountBeforeTax || d == DiscountAfterTax
}

// ChargeType distinguishes flat charges from percentage charges
type ChargeType string

const (
	ChargeTypeFixed      ChargeType = "fixed"
	ChargeTypePercentage ChargeType = "percentage"
)

// IsValid checks if the charge type is known
func (c ChargeType) IsValid() bool {
	return c == ChargeTypeFixed || c == ChargeTypePercentage
}

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodGCash        PaymentMethod = "gcash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// IsValid checks if the payment method is known
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodGCash, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// ChargeLine is an ad-hoc charge attached to a booking draft.
// For percentage charges, UnitPrice is the percentage (10 means 10%)
// applied to the room-and-guest total, and Quantity is ignored.
type ChargeLine struct {
	ChargeItemID uuid.UUID       `json:"charge_item_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ChargeType   ChargeType      `json:"charge_type"`
	IsVATable    bool            `json:"is_vatable"`
}

// Amount computes the line amount against the given room-and-guest total
func (c ChargeLine) Amount(roomAndGuestTotal decimal.Decimal) decimal.Decimal {
	if c.ChargeType == ChargeTypePercentage {
		return roomAndGuestTotal.Mul(c.UnitPrice).Div(decimal.NewFromInt(100))
	}
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// PaymentLine is a payment recorded against a booking draft
type PaymentLine struct {
	Amount decimal.Decimal `json:"amount"`
	Method PaymentMethod   `json:"method"`
}

// ChargeAmount is an itemized, computed charge inside Financials
type ChargeAmount struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// Financials is the derived financial projection of a draft. It has no
// identity and no lifecycle: it is recomputed from its inputs on every
// change and replaced, never mutated.
type Financials struct {
	RoomSubtotal              decimal.Decimal `json:"room_subtotal"`
	ExtraGuestTotal           decimal.Decimal `json:"extra_guest_total"`
	RoomAndGuestTotal         decimal.Decimal `json:"room_and_guest_total"`
	VATableCharges            []ChargeAmount  `json:"vatable_charges"`
	NonVATableCharges         []ChargeAmount  `json:"non_vatable_charges"`
	VATableChargesSubtotal    decimal.Decimal `json:"vatable_charges_subtotal"`
	NonVATableChargesSubtotal decimal.Decimal `json:"non_vatable_charges_subtotal"`
	Discount                  decimal.Decimal `json:"discount"`
	DiscountType              DiscountType    `json:"discount_type"`
	VATBase                   decimal.Decimal `json:"vat_base"`
	VATAmount                 decimal.Decimal `json:"vat_amount"`
	GrandTotal                decimal.Decimal `json:"grand_total"`
	TotalPaid                 decimal.Decimal `json:"total_paid"`
	BalanceDue                decimal.Decimal `json:"balance_due"`
	ChangeDue                 decimal.Decimal `json:"change_due"`
}

// CalculateFinancials derives the full financial picture of a booking from
// a price breakdown, charge lines, a discount, and payments. It is pure and
// total: a nil breakdown is treated as zero room totals, and a negative
// discount is not rejected here (callers clamp upstream).
//
// Discount semantics:
//   - before_tax: the discount reduces the taxable base, so it also
//     reduces the VAT itself.
//   - after_tax: VAT is computed on the undiscounted base and the
//     discount reduces the final tax-inclusive bill.
func CalculateFinancials(breakdown *PriceBreakdown, charges []ChargeLine, discount decimal.Decimal, discountType DiscountType, payments []PaymentLine) Financials {
	f := Financials{
		Discount:          discount,
		DiscountType:      discountType,
		VATableCharges:    make([]ChargeAmount, 0),
		NonVATableCharges: make([]ChargeAmount, 0),
	}

	if breakdown != nil {
		f.RoomSubtotal = breakdown.RoomSubtotal
		f.ExtraGuestTotal = breakdown.ExtraGuestTotal
	} else {
		f.RoomSubtotal = decimal.Zero
		f.ExtraGuestTotal = decimal.Zero
	}
	f.RoomAndGuestTotal = f.RoomSubtotal.Add(f.ExtraGuestTotal)

	vatableSubtotal := decimal.Zero
	nonVatableSubtotal := decimal.Zero
	for _, line := range charges {
		amount := line.Amount(f.RoomAndGuestTotal)
		item := ChargeAmount{Name: line.Name, Quantity: line.Quantity, Amount: amount}
		if line.IsVATable {
			vatableSubtotal = vatableSubtotal.Add(amount)
			f.VATableCharges = append(f.VATableCharges, item)
		} else {
			nonVatableSubtotal = nonVatableSubtotal.Add(amount)
			f.NonVATableCharges = append(f.NonVATableCharges, item)
		}
	}
	f.VATableChargesSubtotal = vatableSubtotal
	f.NonVATableChargesSubtotal = nonVatableSubtotal

	totalVATable := f.RoomAndGuestTotal.Add(vatableSubtotal)

	switch discountType {
	case DiscountBeforeTax:
		f.VATBase = maxZero(totalVATable.Sub(discount))
		f.VATAmount = f.VATBase.Mul(VATRate)
		f.GrandTotal = f.VATBase.Add(f.VATAmount).Add(nonVatableSubtotal)
	default:
		// after_tax
		f.VATBase = totalVATable
		f.VATAmount = f.VATBase.Mul(VATRate)
		f.GrandTotal = maxZero(f.VATBase.Add(f.VATAmount).Add(nonVatableSubtotal).Sub(discount))
	}

	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}
	f.TotalPaid = totalPaid
	f.BalanceDue = maxZero(f.GrandTotal.Sub(totalPaid))
	f.ChangeDue = maxZero(totalPaid.Sub(f.GrandTotal))

	return f
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
