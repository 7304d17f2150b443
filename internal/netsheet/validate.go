package netsheet

import "github.com/iwvelando/realestate-calc/pkg/validation"

// Validate checks the sale figures. Unknown jurisdictions are not an error.
func (in Inputs) Validate() error {
	return validation.First(
		validation.Money("salePrice", in.SalePrice),
		validation.Money("mortgageBalance", in.MortgageBalance),
		validation.Percent("commissionRatePercent", in.CommissionRatePercent),
		validation.Money("repairCosts", in.RepairCosts),
		validation.Money("homeWarrantyCost", in.HomeWarrantyCost),
	)
}
