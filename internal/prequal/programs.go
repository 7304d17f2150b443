package prequal

// Program is a lending program's debt-to-income and down payment rules.
type Program struct {
	Name                     string  `json:"name" yaml:"name"`
	MaxHousingRatioPercent   float64 `json:"maxHousingRatioPercent" yaml:"maxHousingRatioPercent"`
	MaxTotalDebtRatioPercent float64 `json:"maxTotalDebtRatioPercent" yaml:"maxTotalDebtRatioPercent"`
	MinDownPaymentPercent    float64 `json:"minDownPaymentPercent" yaml:"minDownPaymentPercent"`
}

var programs = [...]Program{
	{
		Name:                     "Conventional",
		MaxHousingRatioPercent:   28,
		MaxTotalDebtRatioPercent: 36,
		MinDownPaymentPercent:    5,
	},
	{
		Name:                     "FHA",
		MaxHousingRatioPercent:   31,
		MaxTotalDebtRatioPercent: 43,
		MinDownPaymentPercent:    3.5,
	},
}

// Programs returns the lending programs every evaluation runs against.
// The returned slice is a copy.
func Programs() []Program {
	out := make([]Program, len(programs))
	copy(out, programs[:])
	return out
}
