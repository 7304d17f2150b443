package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/realestate-calc/internal/mortgage"
	"github.com/iwvelando/realestate-calc/internal/netsheet"
	"github.com/iwvelando/realestate-calc/pkg/constants"
	"github.com/iwvelando/realestate-calc/pkg/validation"
)

// Validate rejects the first entry whose inputs are invalid. The returned
// error wraps the validation sentinel.
func (c *Configuration) Validate() error {
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return err
		}
	}
	for _, m := range c.Mortgages {
		if err := mortgage.Validate(m.HomePrice, m.DownPayment, m.InterestRate, m.LoanTerm); err != nil {
			return fmt.Errorf("mortgage '%s': %w", m.Name, err)
		}
	}
	for _, p := range c.Prequalifications {
		if err := p.Inputs.Validate(); err != nil {
			return fmt.Errorf("prequalification '%s': %w", p.Name, err)
		}
	}
	for _, inv := range c.Investments {
		if err := inv.Inputs.Validate(); err != nil {
			return fmt.Errorf("investment '%s': %w", inv.Name, err)
		}
		if inv.TargetCapRatePercent != 0 || inv.TargetCashOnCashPercent != 0 {
			err := validation.First(
				validation.PositivePercent("targetCapRatePercent", inv.TargetCapRatePercent),
				validation.Percent("targetCashOnCashPercent", inv.TargetCashOnCashPercent),
			)
			if err != nil {
				return fmt.Errorf("investment '%s': %w", inv.Name, err)
			}
		}
	}
	for _, n := range c.NetSheets {
		if err := n.Inputs.Validate(); err != nil {
			return fmt.Errorf("net sheet '%s': %w", n.Name, err)
		}
	}
	for _, t := range c.Targets {
		if err := t.TargetInputs.Validate(); err != nil {
			return fmt.Errorf("target '%s': %w", t.Name, err)
		}
	}
	return nil
}

// ValidateConfiguration performs general checks of the configuration and
// returns warnings for inputs that are valid but probably unintended.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Empty() {
		warnings = append(warnings, "configuration contains no calculations")
	}

	for _, m := range c.Mortgages {
		if m.DownPayment >= m.HomePrice {
			warnings = append(warnings, fmt.Sprintf("Mortgage '%s' down payment covers the full price - nothing to finance", m.Name))
		}
	}

	for _, inv := range c.Investments {
		if inv.Loan.Principal > 0 && inv.DownPayment+inv.Loan.Principal < inv.PropertyValue {
			warnings = append(warnings, fmt.Sprintf("Investment '%s' down payment and loan do not cover the property value", inv.Name))
		}
	}

	for _, n := range c.NetSheets {
		code := n.JurisdictionCode()
		if netsheet.LookupProfile(code).Code == constants.DefaultJurisdiction &&
			!strings.EqualFold(strings.TrimSpace(code), constants.DefaultJurisdiction) {
			warnings = append(warnings, fmt.Sprintf("Net sheet '%s' jurisdiction '%s' is not known - using %s costs",
				n.Name, code, constants.DefaultJurisdiction))
		}
	}

	return warnings
}

// JurisdictionCode returns the explicit jurisdiction, or the one resolved
// from the ZIP code when none is given.
func (n NetSheet) JurisdictionCode() string {
	if strings.TrimSpace(n.Jurisdiction) != "" {
		return n.Jurisdiction
	}
	if strings.TrimSpace(n.Zip) != "" {
		return netsheet.ResolveJurisdiction(n.Zip)
	}
	return constants.DefaultJurisdiction
}
