// Package investment analyzes multi-unit rental properties: income,
// returns, debt coverage and multi-year projections.
package investment

import (
	"fmt"
	"math"

	"github.com/iwvelando/realestate-calc/pkg/constants"
	"github.com/iwvelando/realestate-calc/pkg/loans"
	"github.com/iwvelando/realestate-calc/pkg/mathutil"
	"go.uber.org/zap"
)

// Unit holds the rent and condition of one rentable unit.
type Unit struct {
	CurrentRentMonthly   float64 `json:"currentRentMonthly" yaml:"currentRentMonthly"`
	PotentialRentMonthly float64 `json:"potentialRentMonthly" yaml:"potentialRentMonthly"`
	RepairCost           float64 `json:"repairCost" yaml:"repairCost"`
	MarketValue          float64 `json:"marketValue" yaml:"marketValue"`
	Bedrooms             int     `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms            float64 `json:"bathrooms" yaml:"bathrooms"`
}

// ExpenseProfile is a snapshot of a property's operating expenses.
type ExpenseProfile struct {
	InsuranceMonthly          float64 `json:"insuranceMonthly" yaml:"insuranceMonthly"`
	PropertyTaxMonthly        float64 `json:"propertyTaxMonthly" yaml:"propertyTaxMonthly"`
	MaintenanceMonthly        float64 `json:"maintenanceMonthly" yaml:"maintenanceMonthly"`
	ManagementPercentOfIncome float64 `json:"managementPercentOfIncome" yaml:"managementPercentOfIncome"`
	VacancyPercent            float64 `json:"vacancyPercent" yaml:"vacancyPercent"`
	OtherMonthly              float64 `json:"otherMonthly" yaml:"otherMonthly"`
}

// fixedAnnual is the yearly total of the expenses that do not scale with income.
func (e ExpenseProfile) fixedAnnual() float64 {
	return (e.InsuranceMonthly + e.PropertyTaxMonthly + e.MaintenanceMonthly + e.OtherMonthly) * constants.MonthsPerYear
}

// Inputs describes a property purchase to analyze.
type Inputs struct {
	PropertyValue      float64          `json:"propertyValue" yaml:"propertyValue"`
	DownPayment        float64          `json:"downPayment" yaml:"downPayment"`
	ClosingCosts       float64          `json:"closingCosts" yaml:"closingCosts"`
	Units              []Unit           `json:"units" yaml:"units"`
	RenovationItems    []RenovationItem `json:"renovationItems,omitempty" yaml:"renovationItems,omitempty"`
	OtherMonthlyIncome float64          `json:"otherMonthlyIncome" yaml:"otherMonthlyIncome"`
	CurrentExpenses    ExpenseProfile   `json:"currentExpenses" yaml:"currentExpenses"`
	ProjectedExpenses  ExpenseProfile   `json:"projectedExpenses" yaml:"projectedExpenses"`
	Loan               loans.LoanTerms  `json:"loan" yaml:"loan"`
}

// RenovationCost is the per-unit repairs plus itemized renovation work.
func (in Inputs) RenovationCost() float64 {
	return NewRenovationBudget(in.Units, in.RenovationItems).Total()
}

// Pair holds a metric before and after the planned improvements.
type Pair struct {
	Current   float64 `json:"current"`
	Projected float64 `json:"projected"`
}

// YearProjection is the compounded state of the property N years out.
type YearProjection struct {
	Year             int     `json:"year"`
	Rent             float64 `json:"rent"`
	PropertyValue    float64 `json:"propertyValue"`
	NOI              float64 `json:"noi"`
	CashFlow         float64 `json:"cashFlow"`
	RemainingBalance float64 `json:"remainingBalance"`
	Equity           float64 `json:"equity"`
	CapRate          float64 `json:"capRate"`
	ROI              float64 `json:"roi"`
}

// Result is the full analysis of a property.
type Result struct {
	AnnualRent        Pair             `json:"annualRent"`
	GrossIncome       Pair             `json:"grossIncome"`
	EffectiveIncome   Pair             `json:"effectiveIncome"`
	OperatingExpenses Pair             `json:"operatingExpenses"`
	NOI               Pair             `json:"noi"`
	AnnualCashFlow    Pair             `json:"annualCashFlow"`
	CapRate           Pair             `json:"capRate"`
	AnnualDebtService float64          `json:"annualDebtService"`
	MonthlyPayment    float64          `json:"monthlyPayment"`
	TotalRepairCosts  float64          `json:"totalRepairCosts"`
	RenovationCost    float64          `json:"renovationCost"`
	TotalCashInvested float64          `json:"totalCashInvested"`
	CashOnCashReturn  float64          `json:"cashOnCashReturn"`
	DSCR              float64          `json:"dscr"`
	ValueGain         float64          `json:"valueGain"`
	Projections       []YearProjection `json:"projections"`
	UnitCount         int              `json:"unitCount"`
	TotalBedrooms     int              `json:"totalBedrooms"`
	TotalMarketValue  float64          `json:"totalMarketValue"`
}

// Projection returns the projection for year, if one was computed.
func (r Result) Projection(year int) (YearProjection, bool) {
	for _, p := range r.Projections {
		if p.Year == year {
			return p, true
		}
	}
	return YearProjection{}, false
}

// Analyzer runs investment analyses.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates an investment analyzer.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// Analyze computes the analysis and logs a summary.
func (a *Analyzer) Analyze(inputs Inputs) Result {
	result := Analyze(inputs)
	a.logger.Debug(fmt.Sprintf("analyzed %d unit property", result.UnitCount),
		zap.String("op", "investment.Analyze"),
		zap.Float64("noi_current", result.NOI.Current),
		zap.Float64("noi_projected", result.NOI.Projected),
		zap.Float64("cash_on_cash", result.CashOnCashReturn),
		zap.Float64("dscr", result.DSCR),
	)
	return result
}

// Analyze computes income, returns and projections for a property.
func Analyze(inputs Inputs) Result {
	var result Result

	for _, unit := range inputs.Units {
		result.AnnualRent.Current += unit.CurrentRentMonthly * constants.MonthsPerYear
		result.AnnualRent.Projected += unit.PotentialRentMonthly * constants.MonthsPerYear
		result.TotalBedrooms += unit.Bedrooms
		result.TotalMarketValue += unit.MarketValue
	}
	result.UnitCount = len(inputs.Units)

	budget := NewRenovationBudget(inputs.Units, inputs.RenovationItems)
	result.TotalRepairCosts = budget.UnitRepairTotal()
	result.RenovationCost = budget.Total()

	otherAnnual := inputs.OtherMonthlyIncome * constants.MonthsPerYear
	result.GrossIncome = Pair{
		Current:   result.AnnualRent.Current + otherAnnual,
		Projected: result.AnnualRent.Projected + otherAnnual,
	}
	result.EffectiveIncome = Pair{
		Current:   effectiveIncome(result.GrossIncome.Current, inputs.CurrentExpenses),
		Projected: effectiveIncome(result.GrossIncome.Projected, inputs.ProjectedExpenses),
	}
	result.OperatingExpenses = Pair{
		Current:   operatingExpenses(result.EffectiveIncome.Current, inputs.CurrentExpenses),
		Projected: operatingExpenses(result.EffectiveIncome.Projected, inputs.ProjectedExpenses),
	}
	result.NOI = Pair{
		Current:   result.EffectiveIncome.Current - result.OperatingExpenses.Current,
		Projected: result.EffectiveIncome.Projected - result.OperatingExpenses.Projected,
	}

	if inputs.Loan.TermYears > 0 {
		result.MonthlyPayment = loans.CalculateMonthlyPayment(inputs.Loan.Principal, inputs.Loan.AnnualRatePercent, inputs.Loan.TermYears)
	}
	result.AnnualDebtService = result.MonthlyPayment * constants.MonthsPerYear

	result.AnnualCashFlow = Pair{
		Current:   result.NOI.Current - result.AnnualDebtService,
		Projected: result.NOI.Projected - result.AnnualDebtService,
	}

	// The improved cap rate is measured against the post-renovation basis.
	result.CapRate = Pair{
		Current:   mathutil.CalculatePercentage(result.NOI.Current, inputs.PropertyValue),
		Projected: mathutil.CalculatePercentage(result.NOI.Projected, inputs.PropertyValue+result.TotalRepairCosts),
	}

	// Income growth capitalized at the pre-improvement market cap rate.
	result.ValueGain = mathutil.SafeDivide(result.NOI.Projected-result.NOI.Current, result.CapRate.Current/constants.PercentageMultiplier)

	result.TotalCashInvested = inputs.DownPayment + inputs.ClosingCosts + result.RenovationCost
	result.CashOnCashReturn = mathutil.CalculatePercentage(result.AnnualCashFlow.Projected, result.TotalCashInvested)
	result.DSCR = mathutil.SafeDivide(result.NOI.Projected, result.AnnualDebtService)

	result.Projections = make([]YearProjection, 0, len(constants.ProjectionYears))
	for _, year := range constants.ProjectionYears {
		result.Projections = append(result.Projections, project(inputs, result, otherAnnual, year))
	}

	return result
}

func effectiveIncome(gross float64, expenses ExpenseProfile) float64 {
	return gross * (1 - expenses.VacancyPercent/constants.PercentageMultiplier)
}

func operatingExpenses(effective float64, expenses ExpenseProfile) float64 {
	return expenses.fixedAnnual() + mathutil.ApplyPercentage(effective, expenses.ManagementPercentOfIncome)
}

// project compounds rent and value for the given number of years. Operating
// expenses are held at the projected level.
func project(inputs Inputs, result Result, otherAnnual float64, years int) YearProjection {
	rent := mathutil.Compound(result.AnnualRent.Projected, constants.RentGrowthRate, years)
	noi := effectiveIncome(rent+otherAnnual, inputs.ProjectedExpenses) - result.OperatingExpenses.Projected
	cashFlow := noi - result.AnnualDebtService
	value := mathutil.Compound(inputs.PropertyValue, constants.AppreciationRate, years)

	var balance float64
	if inputs.Loan.TermYears > 0 {
		balance = loans.RemainingBalance(inputs.Loan, years*constants.MonthsPerYear)
	}
	equity := value - math.Max(0, balance)

	return YearProjection{
		Year:             years,
		Rent:             rent,
		PropertyValue:    value,
		NOI:              noi,
		CashFlow:         cashFlow,
		RemainingBalance: balance,
		Equity:           equity,
		CapRate:          mathutil.CalculatePercentage(noi, value),
		ROI:              mathutil.CalculatePercentage(cashFlow, result.TotalCashInvested),
	}
}
