package netsheet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func amountOf(t *testing.T, result Result, category string) decimal.Decimal {
	t.Helper()
	for _, item := range result.BreakdownItems {
		if item.Category == category {
			return item.Amount
		}
	}
	t.Fatalf("category %s missing from breakdown", category)
	return decimal.Zero
}

func hasCategory(result Result, category string) bool {
	for _, item := range result.BreakdownItems {
		if item.Category == category {
			return true
		}
	}
	return false
}

func TestComputeDefaultScenario(t *testing.T) {
	result := NewCalculator(zap.NewNop()).Compute(Inputs{
		SalePrice:             500000,
		Jurisdiction:          "DEFAULT",
		MortgageBalance:       250000,
		CommissionRatePercent: 6,
		HomeWarrantyCost:      500,
	})

	assert.Equal(t, "DEFAULT", result.Jurisdiction)
	assert.Equal(t, "250000", amountOf(t, result, CategoryMortgagePayoff).String())
	assert.Equal(t, "30000", amountOf(t, result, CategoryCommission).String())
	assert.Equal(t, "500", amountOf(t, result, CategoryTransferTax).String())
	assert.Equal(t, "2500", amountOf(t, result, CategoryTitleInsurance).String())
	assert.Equal(t, "125", amountOf(t, result, CategoryRecordingFees).String())
	assert.Equal(t, "1000", amountOf(t, result, CategoryEscrowFees).String())
	assert.Equal(t, "2750", amountOf(t, result, CategoryPropertyTax).String())
	assert.Equal(t, "500", amountOf(t, result, CategoryHomeWarranty).String())
	assert.False(t, hasCategory(result, CategoryAttorneyFees))
	assert.False(t, hasCategory(result, CategoryRepairs))

	assert.True(t, result.TotalDeductions.Equal(decimal.NewFromInt(287375)))
	assert.True(t, result.NetProceeds.Equal(decimal.NewFromInt(212625)))
	assert.True(t, result.NetProceeds.Add(result.TotalDeductions).Equal(decimal.NewFromInt(500000)))
	assert.False(t, result.NegativeProceeds)

	assert.InDelta(t, 6.0, result.BreakdownItems[1].PercentOfSale, 1e-9)
}

func TestComputeConservation(t *testing.T) {
	inputs := []Inputs{
		{SalePrice: 487321.37, Jurisdiction: "NY", MortgageBalance: 301234.56, CommissionRatePercent: 5.5, RepairCosts: 1234.5, HomeWarrantyCost: 450},
		{SalePrice: 1250000, Jurisdiction: "wa", CommissionRatePercent: 4.75},
		{SalePrice: 99999.99, Jurisdiction: "NJ", MortgageBalance: 150000, CommissionRatePercent: 6},
		{SalePrice: 0, Jurisdiction: "TX"},
	}

	for _, in := range inputs {
		result := Compute(in)

		sum := decimal.Zero
		for _, item := range result.BreakdownItems {
			sum = sum.Add(item.Amount)
		}
		assert.True(t, sum.Equal(result.TotalDeductions), "%s: items sum %s != total %s", in.Jurisdiction, sum, result.TotalDeductions)
		assert.True(t, result.NetProceeds.Add(result.TotalDeductions).Equal(result.GrossSalePrice),
			"%s: net %s + deductions %s != sale %s", in.Jurisdiction, result.NetProceeds, result.TotalDeductions, result.GrossSalePrice)
	}
}

func TestComputeSortsDescending(t *testing.T) {
	result := Compute(Inputs{
		SalePrice: 650000, Jurisdiction: "NY", MortgageBalance: 410000,
		CommissionRatePercent: 5, RepairCosts: 3500, HomeWarrantyCost: 600,
	})
	require.NotEmpty(t, result.BreakdownItems)
	assert.Equal(t, CategoryMortgagePayoff, result.BreakdownItems[0].Category)

	for i := 1; i < len(result.BreakdownItems); i++ {
		previous := result.BreakdownItems[i-1].Amount.Abs()
		current := result.BreakdownItems[i].Amount.Abs()
		assert.True(t, previous.GreaterThanOrEqual(current), "item %d (%s) out of order", i, result.BreakdownItems[i].Category)
	}
	assert.True(t, hasCategory(result, CategoryAttorneyFees))
	assert.True(t, hasCategory(result, CategoryRepairs))
}

func TestComputeNegativeProceeds(t *testing.T) {
	result := NewCalculator(nil).Compute(Inputs{
		SalePrice: 200000, Jurisdiction: "FL", MortgageBalance: 210000, CommissionRatePercent: 6,
	})

	assert.True(t, result.NegativeProceeds)
	assert.True(t, result.NetProceeds.IsNegative())
	assert.True(t, result.NetProceeds.Add(result.TotalDeductions).Equal(decimal.NewFromInt(200000)))
}

func TestComputeOmitsZeroTransferTax(t *testing.T) {
	result := Compute(Inputs{SalePrice: 300000, Jurisdiction: "TX", CommissionRatePercent: 6})
	assert.False(t, hasCategory(result, CategoryTransferTax))
	assert.False(t, hasCategory(result, CategoryMortgagePayoff))
}

func TestComputeUnknownJurisdictionFallsBack(t *testing.T) {
	unknown := Compute(Inputs{SalePrice: 400000, Jurisdiction: "ZZ", CommissionRatePercent: 6})
	fallback := Compute(Inputs{SalePrice: 400000, Jurisdiction: "DEFAULT", CommissionRatePercent: 6})

	assert.Equal(t, "DEFAULT", unknown.Jurisdiction)
	assert.True(t, unknown.NetProceeds.Equal(fallback.NetProceeds))
}

func TestComputeIsIdempotent(t *testing.T) {
	in := Inputs{SalePrice: 512345, Jurisdiction: "CA", MortgageBalance: 200000, CommissionRatePercent: 5}
	assert.Equal(t, Compute(in), Compute(in))
}
