package investment

import (
	"fmt"

	"github.com/iwvelando/realestate-calc/pkg/validation"
)

// Validate checks the property, its units and both expense profiles.
func (in Inputs) Validate() error {
	if err := validation.UnitCount(len(in.Units)); err != nil {
		return err
	}

	err := validation.First(
		validation.Money("propertyValue", in.PropertyValue),
		validation.Money("downPayment", in.DownPayment),
		validation.Money("closingCosts", in.ClosingCosts),
		validation.Money("otherMonthlyIncome", in.OtherMonthlyIncome),
		validation.Money("loan.principal", in.Loan.Principal),
		validation.Percent("loan.annualRatePercent", in.Loan.AnnualRatePercent),
	)
	if err != nil {
		return err
	}
	// A cash purchase may omit the term.
	if in.Loan.Principal > 0 {
		if err := validation.TermYears("loan.termYears", in.Loan.TermYears); err != nil {
			return err
		}
	}

	for i, unit := range in.Units {
		field := fmt.Sprintf("units[%d]", i)
		err := validation.First(
			validation.Money(field+".currentRentMonthly", unit.CurrentRentMonthly),
			validation.Money(field+".potentialRentMonthly", unit.PotentialRentMonthly),
			validation.Money(field+".repairCost", unit.RepairCost),
			validation.Money(field+".marketValue", unit.MarketValue),
			validation.NonNegativeInt(field+".bedrooms", unit.Bedrooms),
			validation.Money(field+".bathrooms", unit.Bathrooms),
		)
		if err != nil {
			return err
		}
	}

	for i, item := range in.RenovationItems {
		if err := validation.Money(fmt.Sprintf("renovationItems[%d].cost", i), item.Cost); err != nil {
			return err
		}
	}

	if err := in.CurrentExpenses.validate("currentExpenses"); err != nil {
		return err
	}
	return in.ProjectedExpenses.validate("projectedExpenses")
}

func (e ExpenseProfile) validate(prefix string) error {
	return validation.First(
		validation.Money(prefix+".insuranceMonthly", e.InsuranceMonthly),
		validation.Money(prefix+".propertyTaxMonthly", e.PropertyTaxMonthly),
		validation.Money(prefix+".maintenanceMonthly", e.MaintenanceMonthly),
		validation.Percent(prefix+".managementPercentOfIncome", e.ManagementPercentOfIncome),
		validation.Percent(prefix+".vacancyPercent", e.VacancyPercent),
		validation.Money(prefix+".otherMonthly", e.OtherMonthly),
	)
}

// Validate checks solver inputs. NOI may be negative but must be finite.
func (in TargetInputs) Validate() error {
	noi := in.NOI
	if noi < 0 {
		noi = -noi
	}
	return validation.First(
		validation.Money("noi", noi),
		validation.Money("totalCashInvested", in.TotalCashInvested),
		validation.Money("annualDebtService", in.AnnualDebtService),
		validation.PositivePercent("targetCapRatePercent", in.TargetCapRatePercent),
		validation.Percent("targetCashOnCashPercent", in.TargetCashOnCashPercent),
	)
}
