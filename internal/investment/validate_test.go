package investment

import (
	"math"
	"testing"

	"github.com/iwvelando/realestate-calc/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputsValidate(t *testing.T) {
	require.NoError(t, fourplex().Validate())

	tests := []struct {
		name   string
		mutate func(*Inputs)
	}{
		{"No units", func(in *Inputs) { in.Units = nil }},
		{"Too many units", func(in *Inputs) { in.Units = make([]Unit, 101) }},
		{"Negative rent", func(in *Inputs) { in.Units[2].CurrentRentMonthly = -1 }},
		{"NaN property value", func(in *Inputs) { in.PropertyValue = math.NaN() }},
		{"Vacancy over hundred", func(in *Inputs) { in.ProjectedExpenses.VacancyPercent = 120 }},
		{"Negative renovation item", func(in *Inputs) { in.RenovationItems[0].Cost = -500 }},
		{"Financed with no term", func(in *Inputs) { in.Loan.TermYears = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := fourplex()
			tt.mutate(&inputs)
			err := inputs.Validate()
			require.Error(t, err)
			assert.True(t, validation.IsInvalidInput(err))
		})
	}
}

func TestInputsValidateCashPurchase(t *testing.T) {
	inputs := fourplex()
	inputs.Loan.Principal = 0
	inputs.Loan.TermYears = 0
	assert.NoError(t, inputs.Validate())
}

func TestTargetInputsValidate(t *testing.T) {
	valid := TargetInputs{NOI: -5000, TotalCashInvested: 100000, AnnualDebtService: 20000, TargetCapRatePercent: 8, TargetCashOnCashPercent: 10}
	assert.NoError(t, valid.Validate())

	zeroCap := valid
	zeroCap.TargetCapRatePercent = 0
	assert.ErrorIs(t, zeroCap.Validate(), validation.ErrOutOfRange)

	nanNOI := valid
	nanNOI.NOI = math.NaN()
	assert.ErrorIs(t, nanNOI.Validate(), validation.ErrNotFinite)
}
