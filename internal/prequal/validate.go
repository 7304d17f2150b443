package prequal

import "github.com/iwvelando/realestate-calc/pkg/validation"

// Validate checks the buyer figures before any program is evaluated.
func (in Inputs) Validate() error {
	return validation.First(
		validation.Money("monthlyIncome", in.MonthlyIncome),
		validation.Money("monthlyDebts", in.MonthlyDebts),
		validation.Money("fundsAvailable", in.FundsAvailable),
		validation.Percent("annualRatePercent", in.AnnualRatePercent),
		validation.Percent("propertyTaxRatePercent", in.PropertyTaxRatePercent),
		validation.Percent("insuranceRatePercent", in.InsuranceRatePercent),
		validation.Money("hoaMonthly", in.HOAMonthly),
		validation.Percent("closingCostPercent", in.ClosingCostPercent),
	)
}
