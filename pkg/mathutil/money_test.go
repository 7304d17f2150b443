package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := map[float64]float64{
		1.234:              1.23,
		1.236:              1.24,
		12345.678:          12345.68,
		-1.234:             -1.23,
		0.001:              0,
		0.019:              0.02,
		1769.7851258836432: 1769.79,
	}

	for input, expected := range tests {
		if got := Round(input); math.Abs(got-expected) > 1e-9 {
			t.Errorf("Round(%v) = %v, expected %v", input, got, expected)
		}
	}
}

func TestIsFinite(t *testing.T) {
	for _, v := range []float64{0, -1, 42.5, math.MaxFloat64} {
		if !IsFinite(v) {
			t.Errorf("IsFinite(%v) = false, expected true", v)
		}
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) {
			t.Errorf("IsFinite(%v) = true, expected false", v)
		}
	}
}

func TestRatios(t *testing.T) {
	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"SafeDivide regular", SafeDivide(10, 4), 2.5},
		{"SafeDivide zero denominator", SafeDivide(10, 0), 0},
		{"SafeDivide negative", SafeDivide(-9, 3), -3},
		{"DSCR without debt", SafeDivide(42000, 0), 0},
		{"Percentage of total", CalculatePercentage(25, 200), 12.5},
		{"Percentage of zero total", CalculatePercentage(25, 0), 0},
		{"Commission", ApplyPercentage(500000, 6), 30000},
		{"Vacancy", ApplyPercentage(52800, 5), 2640},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > 1e-9 {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestCompound(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		rate     float64
		periods  int
		expected float64
	}{
		{"Zero periods", 1000, 0.05, 0, 1000},
		{"Three years rent growth", 1000, 0.05, 3, 1157.625},
		{"Five years appreciation", 100000, 0.03, 5, 115927.4074},
		{"Zero rate", 500, 0, 10, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compound(tt.value, tt.rate, tt.periods)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Compound(%v, %v, %d) = %v, expected %v", tt.value, tt.rate, tt.periods, result, tt.expected)
			}
		})
	}
}
