// Package prequal estimates the maximum home price a buyer qualifies for
// under each lending program, and whether their funds cover closing.
package prequal

import (
	"fmt"

	"github.com/iwvelando/realestate-calc/pkg/constants"
	"github.com/iwvelando/realestate-calc/pkg/loans"
	"github.com/iwvelando/realestate-calc/pkg/mathutil"
	"go.uber.org/zap"
)

// Inputs describes a buyer and the cost assumptions of the purchase. Rates
// are annual percentages of the home price.
type Inputs struct {
	MonthlyIncome          float64 `json:"monthlyIncome" yaml:"monthlyIncome"`
	MonthlyDebts           float64 `json:"monthlyDebts" yaml:"monthlyDebts"`
	FundsAvailable         float64 `json:"fundsAvailable" yaml:"fundsAvailable"`
	AnnualRatePercent      float64 `json:"annualRatePercent" yaml:"annualRatePercent"`
	PropertyTaxRatePercent float64 `json:"propertyTaxRatePercent" yaml:"propertyTaxRatePercent"`
	InsuranceRatePercent   float64 `json:"insuranceRatePercent" yaml:"insuranceRatePercent"`
	HOAMonthly             float64 `json:"hoaMonthly" yaml:"hoaMonthly"`
	ClosingCostPercent     float64 `json:"closingCostPercent" yaml:"closingCostPercent"`
}

// PaymentBreakdown itemizes the monthly housing cost at a given price.
type PaymentBreakdown struct {
	PrincipalAndInterest float64 `json:"principalAndInterest"`
	PropertyTax          float64 `json:"propertyTax"`
	Insurance            float64 `json:"insurance"`
	PMI                  float64 `json:"pmi"`
	HOA                  float64 `json:"hoa"`
	Total                float64 `json:"total"`
}

// CashToClose compares the cash a purchase needs against the buyer's funds.
type CashToClose struct {
	PurchasePrice                 float64 `json:"purchasePrice"`
	MinDownPayment                float64 `json:"minDownPayment"`
	ClosingCosts                  float64 `json:"closingCosts"`
	TotalCashNeeded               float64 `json:"totalCashNeeded"`
	FundsAvailable                float64 `json:"fundsAvailable"`
	Shortfall                     float64 `json:"shortfall"`
	SuggestedClosingCostReduction float64 `json:"suggestedClosingCostReduction"`
	RemainingDeficiency           float64 `json:"remainingDeficiency"`
	Sufficient                    bool    `json:"sufficient"`
}

// Result is the outcome of evaluating one program. A buyer who cannot
// afford any housing payment gets a non-qualifying result with every price,
// payment, ratio and cash figure zeroed. The payment limits
// MaxHousingPaymentByRatio, MaxHousingPaymentByTotalDebt and
// EffectiveMaxHousingPayment are still reported and may be zero or negative.
type Result struct {
	Program                      string           `json:"program"`
	MaxAffordableHomePrice       float64          `json:"maxAffordableHomePrice"`
	MaxLoanAmount                float64          `json:"maxLoanAmount"`
	MonthlyHousingPayment        float64          `json:"monthlyHousingPayment"`
	Qualifies                    bool             `json:"qualifies"`
	HousingRatioUsed             float64          `json:"housingRatioUsed"`
	TotalRatioUsed               float64          `json:"totalRatioUsed"`
	MaxHousingPaymentByRatio     float64          `json:"maxHousingPaymentByRatio"`
	MaxHousingPaymentByTotalDebt float64          `json:"maxHousingPaymentByTotalDebt"`
	EffectiveMaxHousingPayment   float64          `json:"effectiveMaxHousingPayment"`
	DownPaymentPercent           float64          `json:"downPaymentPercent"`
	PaymentBreakdown             PaymentBreakdown `json:"paymentBreakdown"`
	CashToClose                  CashToClose      `json:"cashToClose"`
}

// Calculator evaluates prequalification requests.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a prequalification calculator.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Evaluate runs the inputs against every lending program independently.
func (c *Calculator) Evaluate(inputs Inputs) []Result {
	results := make([]Result, 0, len(programs))
	for _, program := range Programs() {
		result := EvaluateProgram(program, inputs)
		c.logger.Debug(fmt.Sprintf("evaluated %s program", program.Name),
			zap.String("op", "prequal.Evaluate"),
			zap.Float64("max_price", result.MaxAffordableHomePrice),
			zap.Float64("max_payment", result.EffectiveMaxHousingPayment),
			zap.Bool("qualifies", result.Qualifies),
		)
		results = append(results, result)
	}
	return results
}

// EvaluateProgram finds the highest candidate price whose monthly housing
// cost stays within the program's ratio limits.
func EvaluateProgram(program Program, inputs Inputs) Result {
	byRatio := mathutil.ApplyPercentage(inputs.MonthlyIncome, program.MaxHousingRatioPercent)
	byTotalDebt := mathutil.ApplyPercentage(inputs.MonthlyIncome, program.MaxTotalDebtRatioPercent) - inputs.MonthlyDebts
	effective := byRatio
	if byTotalDebt < effective {
		effective = byTotalDebt
	}

	result := Result{
		Program:                      program.Name,
		MaxHousingPaymentByRatio:     byRatio,
		MaxHousingPaymentByTotalDebt: byTotalDebt,
		EffectiveMaxHousingPayment:   effective,
	}
	if effective <= 0 {
		return result
	}

	price, breakdown, found := searchMaxPrice(inputs, effective)
	if !found {
		return result
	}

	loanAmount := price - inputs.FundsAvailable
	result.MaxAffordableHomePrice = price
	result.MaxLoanAmount = loanAmount
	result.MonthlyHousingPayment = breakdown.Total
	result.PaymentBreakdown = breakdown
	result.HousingRatioUsed = mathutil.CalculatePercentage(breakdown.Total, inputs.MonthlyIncome)
	result.TotalRatioUsed = mathutil.CalculatePercentage(breakdown.Total+inputs.MonthlyDebts, inputs.MonthlyIncome)
	result.DownPaymentPercent = mathutil.CalculatePercentage(inputs.FundsAvailable, price)
	result.Qualifies = result.HousingRatioUsed <= program.MaxHousingRatioPercent &&
		result.TotalRatioUsed <= program.MaxTotalDebtRatioPercent &&
		loanAmount > 0
	result.CashToClose = AnalyzeCashToClose(program, price, inputs.ClosingCostPercent, inputs.FundsAvailable)

	return result
}

// searchMaxPrice scans candidate prices upward and keeps the last one whose
// monthly cost fits maxPayment. Cost only grows with price, so the first
// candidate over the limit ends the scan.
func searchMaxPrice(inputs Inputs, maxPayment float64) (float64, PaymentBreakdown, bool) {
	var (
		bestPrice     float64
		bestBreakdown PaymentBreakdown
		found         bool
	)

	for price := constants.SearchMinPrice; price <= constants.SearchMaxPrice; price += constants.SearchStep {
		breakdown, ok := MonthlyCost(price, inputs)
		if !ok {
			continue
		}
		if breakdown.Total > maxPayment {
			break
		}
		bestPrice = price
		bestBreakdown = breakdown
		found = true
	}

	return bestPrice, bestBreakdown, found
}

// MonthlyCost itemizes the monthly housing cost of buying at price with all
// available funds put down. ok is false when the funds cover the full price.
func MonthlyCost(price float64, inputs Inputs) (PaymentBreakdown, bool) {
	loanAmount := price - inputs.FundsAvailable
	if loanAmount <= 0 {
		return PaymentBreakdown{}, false
	}

	breakdown := PaymentBreakdown{
		PrincipalAndInterest: loans.CalculateMonthlyPayment(loanAmount, inputs.AnnualRatePercent, constants.PrequalTermYears),
		PropertyTax:          mathutil.ApplyPercentage(price, inputs.PropertyTaxRatePercent) / constants.MonthsPerYear,
		Insurance:            mathutil.ApplyPercentage(price, inputs.InsuranceRatePercent) / constants.MonthsPerYear,
		HOA:                  inputs.HOAMonthly,
	}
	if inputs.FundsAvailable/price < constants.PMIDownPaymentThreshold {
		breakdown.PMI = mathutil.ApplyPercentage(loanAmount, constants.PMIAnnualRatePercent) / constants.MonthsPerYear
	}
	breakdown.Total = breakdown.PrincipalAndInterest + breakdown.PropertyTax + breakdown.Insurance +
		breakdown.PMI + breakdown.HOA

	return breakdown, true
}

// AnalyzeCashToClose checks the program's minimum down payment plus closing
// costs against the buyer's funds. Seller concessions are assumed to cover
// closing costs first; anything beyond that remains a deficiency.
func AnalyzeCashToClose(program Program, purchasePrice, closingCostPercent, fundsAvailable float64) CashToClose {
	minDown := mathutil.ApplyPercentage(purchasePrice, program.MinDownPaymentPercent)
	closingCosts := mathutil.ApplyPercentage(purchasePrice, closingCostPercent)
	needed := minDown + closingCosts

	shortfall := needed - fundsAvailable
	if shortfall < 0 {
		shortfall = 0
	}
	reduction := shortfall
	if closingCosts < reduction {
		reduction = closingCosts
	}
	remaining := shortfall - closingCosts
	if remaining < 0 {
		remaining = 0
	}

	return CashToClose{
		PurchasePrice:                 purchasePrice,
		MinDownPayment:                minDown,
		ClosingCosts:                  closingCosts,
		TotalCashNeeded:               needed,
		FundsAvailable:                fundsAvailable,
		Shortfall:                     shortfall,
		SuggestedClosingCostReduction: reduction,
		RemainingDeficiency:           remaining,
		Sufficient:                    shortfall == 0,
	}
}
