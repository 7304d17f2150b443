// Package netsheet estimates a seller's proceeds after closing costs.
package netsheet

import (
	"fmt"
	"sort"

	"github.com/iwvelando/realestate-calc/pkg/constants"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Line item categories, in the order they are assembled.
const (
	CategoryMortgagePayoff = "mortgage_payoff"
	CategoryCommission     = "commission"
	CategoryTransferTax    = "transfer_tax"
	CategoryTitleInsurance = "title_insurance"
	CategoryAttorneyFees   = "attorney_fees"
	CategoryRecordingFees  = "recording_fees"
	CategoryEscrowFees     = "escrow_fees"
	CategoryPropertyTax    = "property_tax_proration"
	CategoryRepairs        = "repairs"
	CategoryHomeWarranty   = "home_warranty"
)

// Inputs describes a sale.
type Inputs struct {
	SalePrice             float64 `json:"salePrice" yaml:"salePrice"`
	Jurisdiction          string  `json:"jurisdiction" yaml:"jurisdiction"`
	MortgageBalance       float64 `json:"mortgageBalance" yaml:"mortgageBalance"`
	CommissionRatePercent float64 `json:"commissionRatePercent" yaml:"commissionRatePercent"`
	RepairCosts           float64 `json:"repairCosts" yaml:"repairCosts"`
	HomeWarrantyCost      float64 `json:"homeWarrantyCost" yaml:"homeWarrantyCost"`
}

// LineItem is one deduction from the sale price.
type LineItem struct {
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PercentOfSale float64         `json:"percentOfSale"`
}

// Result is an itemized net sheet. NetProceeds may be negative, in which
// case the seller brings money to closing and NegativeProceeds is set.
type Result struct {
	Jurisdiction     string          `json:"jurisdiction"`
	Profile          CostProfile     `json:"profile"`
	GrossSalePrice   decimal.Decimal `json:"grossSalePrice"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	NetProceeds      decimal.Decimal `json:"netProceeds"`
	NegativeProceeds bool            `json:"negativeProceeds"`
	BreakdownItems   []LineItem      `json:"breakdownItems"`
}

// Calculator builds seller net sheets.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a net sheet calculator.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Compute builds the net sheet and warns when the seller owes at closing.
func (c *Calculator) Compute(inputs Inputs) Result {
	result := Compute(inputs)
	if result.NegativeProceeds {
		c.logger.Warn(fmt.Sprintf("seller owes %s at closing", result.NetProceeds.Neg().StringFixed(2)),
			zap.String("op", "netsheet.Compute"),
			zap.String("jurisdiction", result.Jurisdiction),
		)
	}
	return result
}

// Compute itemizes the seller's deductions and net proceeds. Amounts are
// rounded to cents individually, so NetProceeds + TotalDeductions equals
// GrossSalePrice exactly.
func Compute(inputs Inputs) Result {
	profile := LookupProfile(inputs.Jurisdiction)
	sale := decimal.NewFromFloat(inputs.SalePrice)
	b := builder{sale: sale}

	b.addFlat(CategoryMortgagePayoff, "Mortgage payoff", inputs.MortgageBalance)
	b.add(CategoryCommission,
		fmt.Sprintf("Real estate commission (%s%%)", formatRate(inputs.CommissionRatePercent)),
		percentOf(sale, inputs.CommissionRatePercent), true)
	b.add(CategoryTransferTax,
		fmt.Sprintf("Transfer tax (%s%%)", formatRate(profile.TransferTaxPercent)),
		percentOf(sale, profile.TransferTaxPercent), false)
	b.add(CategoryTitleInsurance,
		fmt.Sprintf("Owner's title insurance (%s%%)", formatRate(profile.TitleInsurancePercent)),
		percentOf(sale, profile.TitleInsurancePercent), true)
	b.addFlat(CategoryAttorneyFees, "Attorney fees", profile.AttorneyFeesFlat)
	b.add(CategoryRecordingFees, "Recording fees", money(profile.RecordingFeesFlat), true)
	b.add(CategoryEscrowFees,
		fmt.Sprintf("Escrow fees (%s%%)", formatRate(profile.EscrowFeesPercent)),
		percentOf(sale, profile.EscrowFeesPercent), true)
	b.add(CategoryPropertyTax, "Prorated property tax (6 months)",
		percentOf(sale, profile.PropertyTaxRatePercent).Div(decimal.NewFromInt(constants.ProrationDivisor)).Round(2), true)
	b.addFlat(CategoryRepairs, "Repairs and concessions", inputs.RepairCosts)
	b.addFlat(CategoryHomeWarranty, "Home warranty", inputs.HomeWarrantyCost)

	total := decimal.Zero
	for _, item := range b.items {
		total = total.Add(item.Amount)
	}
	net := sale.Sub(total)

	sort.SliceStable(b.items, func(i, j int) bool {
		return b.items[i].Amount.Abs().GreaterThan(b.items[j].Amount.Abs())
	})

	return Result{
		Jurisdiction:     profile.Code,
		Profile:          profile,
		GrossSalePrice:   sale,
		TotalDeductions:  total,
		NetProceeds:      net,
		NegativeProceeds: net.IsNegative(),
		BreakdownItems:   b.items,
	}
}

type builder struct {
	sale  decimal.Decimal
	items []LineItem
}

// add appends a line item. Zero amounts are kept only when always is set.
func (b *builder) add(category, description string, amount decimal.Decimal, always bool) {
	if amount.IsZero() && !always {
		return
	}
	var percent float64
	if !b.sale.IsZero() {
		percent = amount.Div(b.sale).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	b.items = append(b.items, LineItem{
		Category:      category,
		Description:   description,
		Amount:        amount,
		PercentOfSale: percent,
	})
}

// addFlat appends a dollar amount when it is positive.
func (b *builder) addFlat(category, description string, amount float64) {
	if amount <= 0 {
		return
	}
	b.add(category, description, money(amount), true)
}

func money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

func percentOf(base decimal.Decimal, percent float64) decimal.Decimal {
	return base.Mul(decimal.NewFromFloat(percent)).Div(decimal.NewFromInt(100)).Round(2)
}

func formatRate(percent float64) string {
	return decimal.NewFromFloat(percent).String()
}
