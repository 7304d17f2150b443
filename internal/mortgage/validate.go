package mortgage

import "github.com/iwvelando/realestate-calc/pkg/validation"

// Validate rejects inputs Calculate cannot give a meaningful answer for. A
// down payment above the price is allowed and produces the zero result.
func Validate(homePrice, downPayment, annualRatePercent float64, termYears int) error {
	return validation.First(
		validation.Money("loanAmount", homePrice),
		validation.Money("downPayment", downPayment),
		validation.Percent("interestRate", annualRatePercent),
		validation.TermYears("loanTerm", termYears),
	)
}
