package batch

import (
	"errors"
	"testing"

	"github.com/iwvelando/realestate-calc/internal/config"
	"github.com/iwvelando/realestate-calc/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loadTestConfig(t *testing.T) *config.Configuration {
	t.Helper()
	conf, err := config.LoadConfiguration("../config/testdata/calculations.yaml")
	require.NoError(t, err)
	return conf
}

func TestRun(t *testing.T) {
	results, err := NewRunner(zap.NewNop()).Run(loadTestConfig(t))
	require.NoError(t, err)

	require.Len(t, results.Mortgages, 2)
	assert.Equal(t, "Starter home", results.Mortgages[0].Name)
	assert.InDelta(t, 1769.79, results.Mortgages[0].MonthlyPayment, 0.01)
	assert.Empty(t, results.Mortgages[0].Schedule)
	require.Len(t, results.Mortgages[1].Schedule, 180)
	assert.InDelta(t, 200000.0/180, results.Mortgages[1].MonthlyPayment, 1e-9)

	require.Len(t, results.Prequalifications, 1)
	require.Len(t, results.Prequalifications[0].Programs, 2)
	assert.Equal(t, 220000.0, results.Prequalifications[0].Programs[0].MaxAffordableHomePrice)
	assert.Equal(t, 240000.0, results.Prequalifications[0].Programs[1].MaxAffordableHomePrice)

	require.Len(t, results.Investments, 1)
	inv := results.Investments[0]
	assert.InDelta(t, 42632.16, inv.Analysis.NOI.Projected, 0.01)
	require.NotNil(t, inv.Target)
	assert.InDelta(t, 42632.16/0.08, inv.Target.CapRateBasedPrice, 0.01)

	require.Len(t, results.NetSheets, 2)
	assert.True(t, results.NetSheets[0].NetProceeds.Equal(decimal.NewFromInt(212625)))
	assert.Equal(t, "NY", results.NetSheets[1].Jurisdiction)

	require.Len(t, results.Targets, 1)
	assert.InDelta(t, 525000, results.Targets[0].CapRateBasedPrice, 0.01)
	assert.InDelta(t, 450000, results.Targets[0].RecommendedPrice, 0.01)
	assert.InDelta(t, 405000, results.Targets[0].MaxOfferPrice, 0.01)
}

func TestRunRejectsInvalidEntries(t *testing.T) {
	conf := loadTestConfig(t)
	conf.NetSheets[1].SalePrice = -10

	results, err := NewRunner(nil).Run(conf)
	assert.Nil(t, results)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrNegative))
	assert.Contains(t, err.Error(), "Manhattan condo")
}

func TestRunRejectsCashOnCashTargetWithoutCapRate(t *testing.T) {
	conf := loadTestConfig(t)
	conf.Investments[0].TargetCapRatePercent = 0
	conf.Investments[0].TargetCashOnCashPercent = 10

	results, err := NewRunner(nil).Run(conf)
	assert.Nil(t, results)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrOutOfRange))
	assert.Contains(t, err.Error(), conf.Investments[0].Name)
}

func TestRunWarnsOnEmptyConfiguration(t *testing.T) {
	results, err := NewRunner(nil).Run(&config.Configuration{})
	require.NoError(t, err)
	assert.Len(t, results.Warnings, 1)
}
