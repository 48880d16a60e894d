package booking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func breakdownWith(roomSubtotal, extraGuestTotal string) *PriceBreakdown {
	return &PriceBreakdown{
		RoomSubtotal:    dec(roomSubtotal),
		ExtraGuestTotal: dec(extraGuestTotal),
	}
}

func TestCalculateFinancials_DiscountBranching(t *testing.T) {
	tests := []struct {
		name         string
		discountType DiscountType
		wantVATBase  string
		wantVAT      string
		wantGrand    string
	}{
		{
			name:         "before tax discount reduces the VAT base",
			discountType: DiscountBeforeTax,
			wantVATBase:  "900",
			wantVAT:      "108",
			wantGrand:    "1008",
		},
		{
			name:         "after tax discount leaves VAT untouched",
			discountType: DiscountAfterTax,
			wantVATBase:  "1000",
			wantVAT:      "120",
			wantGrand:    "1020",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := CalculateFinancials(breakdownWith("1000", "0"), nil, dec("100"), tt.discountType, nil)

			assert.True(t, dec(tt.wantVATBase).Equal(f.VATBase), "VATBase = %s", f.VATBase)
			assert.True(t, dec(tt.wantVAT).Equal(f.VATAmount), "VATAmount = %s", f.VATAmount)
			assert.True(t, dec(tt.wantGrand).Equal(f.GrandTotal), "GrandTotal = %s", f.GrandTotal)
		})
	}
}

func TestCalculateFinancials_NilBreakdown(t *testing.T) {
	f := CalculateFinancials(nil, nil, decimal.Zero, DiscountBeforeTax, nil)

	assert.True(t, f.RoomSubtotal.IsZero())
	assert.True(t, f.ExtraGuestTotal.IsZero())
	assert.True(t, f.RoomAndGuestTotal.IsZero())
	assert.True(t, f.GrandTotal.IsZero())
}

func TestCalculateFinancials_PercentageChargeIgnoresQuantity(t *testing.T) {
	charges := []ChargeLine{
		{Name: "Service charge", Quantity: 5, UnitPrice: dec("10"), ChargeType: ChargeTypePercentage, IsVATable: true},
	}

	f := CalculateFinancials(breakdownWith("1500", "500"), charges, decimal.Zero, DiscountBeforeTax, nil)

	// 10% of 2000, quantity plays no part
	require.Len(t, f.VATableCharges, 1)
	assert.True(t, dec("200").Equal(f.VATableCharges[0].Amount), "amount = %s", f.VATableCharges[0].Amount)
	assert.True(t, dec("200").Equal(f.VATableChargesSubtotal))
}

func TestCalculateFinancials_FixedChargeMultipliesQuantity(t *testing.T) {
	charges := []ChargeLine{
		{Name: "Extra bed", Quantity: 2, UnitPrice: dec("350"), ChargeType: ChargeTypeFixed, IsVATable: true},
		{Name: "City tax", Quantity: 3, UnitPrice: dec("50"), ChargeType: ChargeTypeFixed, IsVATable: false},
	}

	f := CalculateFinancials(breakdownWith("1000", "0"), charges, decimal.Zero, DiscountBeforeTax, nil)

	assert.True(t, dec("700").Equal(f.VATableChargesSubtotal))
	assert.True(t, dec("150").Equal(f.NonVATableChargesSubtotal))
	// VAT base 1700, VAT 204, plus the non-vatable 150
	assert.True(t, dec("1700").Equal(f.VATBase))
	assert.True(t, dec("204").Equal(f.VATAmount))
	assert.True(t, dec("2054").Equal(f.GrandTotal), "GrandTotal = %s", f.GrandTotal)
}

func TestCalculateFinancials_NonVATableChargesEscapeTheDiscountBase(t *testing.T) {
	charges := []ChargeLine{
		{Name: "Laundry", Quantity: 1, UnitPrice: dec("200"), ChargeType: ChargeTypeFixed, IsVATable: false},
	}

	f := CalculateFinancials(breakdownWith("1000", "0"), charges, dec("100"), DiscountBeforeTax, nil)

	// before-tax discount applies to the vatable base only
	assert.True(t, dec("900").Equal(f.VATBase))
	assert.True(t, dec("108").Equal(f.VATAmount))
	assert.True(t, dec("1208").Equal(f.GrandTotal))
}

func TestCalculateFinancials_DiscountClampsAtZero(t *testing.T) {
	t.Run("before tax", func(t *testing.T) {
		f := CalculateFinancials(breakdownWith("100", "0"), nil, dec("500"), DiscountBeforeTax, nil)
		assert.True(t, f.VATBase.IsZero())
		assert.True(t, f.VATAmount.IsZero())
		assert.True(t, f.GrandTotal.IsZero())
	})

	t.Run("after tax", func(t *testing.T) {
		f := CalculateFinancials(breakdownWith("100", "0"), nil, dec("500"), DiscountAfterTax, nil)
		assert.True(t, dec("100").Equal(f.VATBase))
		assert.True(t, dec("12").Equal(f.VATAmount))
		assert.True(t, f.GrandTotal.IsZero())
	})
}

func TestCalculateFinancials_PaymentsBalanceAndChange(t *testing.T) {
	tests := []struct {
		name        string
		payments    []PaymentLine
		wantPaid    string
		wantBalance string
		wantChange  string
	}{
		{
			name:        "underpaid leaves a balance",
			payments:    []PaymentLine{{Amount: dec("500"), Method: PaymentMethodCash}},
			wantPaid:    "500",
			wantBalance: "620",
			wantChange:  "0",
		},
		{
			name: "overpaid yields change",
			payments: []PaymentLine{
				{Amount: dec("1000"), Method: PaymentMethodCash},
				{Amount: dec("200"), Method: PaymentMethodGCash},
			},
			wantPaid:    "1200",
			wantBalance: "0",
			wantChange:  "80",
		},
		{
			name:        "exact payment settles both to zero",
			payments:    []PaymentLine{{Amount: dec("1120"), Method: PaymentMethodCard}},
			wantPaid:    "1120",
			wantBalance: "0",
			wantChange:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// grand total is 1000 + 12% VAT = 1120
			f := CalculateFinancials(breakdownWith("1000", "0"), nil, decimal.Zero, DiscountAfterTax, tt.payments)

			assert.True(t, dec(tt.wantPaid).Equal(f.TotalPaid))
			assert.True(t, dec(tt.wantBalance).Equal(f.BalanceDue), "BalanceDue = %s", f.BalanceDue)
			assert.True(t, dec(tt.wantChange).Equal(f.ChangeDue), "ChangeDue = %s", f.ChangeDue)
		})
	}
}

func TestCalculateFinancials_ExtraGuestTotalFeedsTheBase(t *testing.T) {
	charges := []ChargeLine{
		{Name: "Service charge", Quantity: 1, UnitPrice: dec("10"), ChargeType: ChargeTypePercentage, IsVATable: true},
	}

	f := CalculateFinancials(breakdownWith("1800", "200"), charges, decimal.Zero, DiscountBeforeTax, nil)

	assert.True(t, dec("2000").Equal(f.RoomAndGuestTotal))
	// the percentage charge sees room + extra-guest, not room alone
	assert.True(t, dec("200").Equal(f.VATableChargesSubtotal))
}

func TestChargeLineAmount(t *testing.T) {
	fixed := ChargeLine{Quantity: 3, UnitPrice: dec("120"), ChargeType: ChargeTypeFixed}
	assert.True(t, dec("360").Equal(fixed.Amount(dec("99999"))))

	pct := ChargeLine{Quantity: 3, UnitPrice: dec("5"), ChargeType: ChargeTypePercentage}
	assert.True(t, dec("50").Equal(pct.Amount(dec("1000"))))
}
