// Package mortgage computes the payment breakdown for a simple purchase.
package mortgage

import "github.com/iwvelando/realestate-calc/pkg/loans"

// Result is the payment, interest and total cost of a purchase loan.
type Result struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalAmount    float64 `json:"totalAmount"`
	Principal      float64 `json:"principal"`
}

// Calculate finances homePrice less downPayment over termYears. A down
// payment at or above the price leaves nothing to finance and yields a zero
// result.
func Calculate(homePrice, downPayment, annualRatePercent float64, termYears int) Result {
	terms := Terms(homePrice, downPayment, annualRatePercent, termYears)
	if terms.Principal <= 0 || termYears <= 0 {
		return Result{}
	}

	amortized := loans.Amortize(terms)
	return Result{
		MonthlyPayment: amortized.MonthlyPayment,
		TotalInterest:  amortized.TotalInterest,
		TotalAmount:    terms.Principal + amortized.TotalInterest,
		Principal:      terms.Principal,
	}
}

// Terms returns the loan terms Calculate finances, for callers that also
// want the amortization schedule.
func Terms(homePrice, downPayment, annualRatePercent float64, termYears int) loans.LoanTerms {
	principal := homePrice - downPayment
	if principal < 0 {
		principal = 0
	}
	return loans.LoanTerms{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
	}
}
