// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/realestate-calc/internal/batch"
)

// FindMortgage finds a mortgage result by name.
// Returns a pointer to the result if found, nil otherwise.
func FindMortgage(results *batch.Results, name string) *batch.MortgageResult {
	if results == nil {
		return nil
	}
	for i := range results.Mortgages {
		if results.Mortgages[i].Name == name {
			return &results.Mortgages[i]
		}
	}
	return nil
}

// FindInvestment finds an investment result by name.
func FindInvestment(results *batch.Results, name string) *batch.InvestmentResult {
	if results == nil {
		return nil
	}
	for i := range results.Investments {
		if results.Investments[i].Name == name {
			return &results.Investments[i]
		}
	}
	return nil
}

// FindNetSheet finds a net sheet result by name.
func FindNetSheet(results *batch.Results, name string) *batch.NetSheetResult {
	if results == nil {
		return nil
	}
	for i := range results.NetSheets {
		if results.NetSheets[i].Name == name {
			return &results.NetSheets[i]
		}
	}
	return nil
}
