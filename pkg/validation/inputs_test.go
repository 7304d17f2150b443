package validation

import (
	"errors"
	"math"
	"testing"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected error
	}{
		{"Zero", 0, nil},
		{"Typical price", 450000, nil},
		{"Upper bound", 1e10, nil},
		{"Negative", -0.01, ErrNegative},
		{"NaN", math.NaN(), ErrNotFinite},
		{"Positive infinity", math.Inf(1), ErrNotFinite},
		{"Too large", 1e11, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Money("salePrice", tt.value)
			if tt.expected == nil {
				if err != nil {
					t.Errorf("Money(%v) unexpected error = %v", tt.value, err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("Money(%v) error = %v, expected %v", tt.value, err, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		positive  bool
		expectErr bool
	}{
		{"Zero rate allowed", 0, false, false},
		{"Zero rate rejected when positive required", 0, true, true},
		{"Typical rate", 6.5, true, false},
		{"Hundred percent", 100, false, false},
		{"Over hundred", 100.5, false, true},
		{"Negative", -1, false, true},
		{"NaN", math.NaN(), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.positive {
				err = PositivePercent("rate", tt.value)
			} else {
				err = Percent("rate", tt.value)
			}
			if (err != nil) != tt.expectErr {
				t.Errorf("expected error %v, got %v", tt.expectErr, err)
			}
			if err != nil && !IsInvalidInput(err) {
				t.Errorf("error %v should be recognized as invalid input", err)
			}
		})
	}
}

func TestTermYearsAndUnitCount(t *testing.T) {
	for _, years := range []int{1, 15, 30, 50} {
		if err := TermYears("loanTerm", years); err != nil {
			t.Errorf("TermYears(%d) unexpected error = %v", years, err)
		}
	}
	for _, years := range []int{-5, 0, 51} {
		if err := TermYears("loanTerm", years); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("TermYears(%d) expected ErrOutOfRange, got %v", years, err)
		}
	}

	for _, count := range []int{1, 4, 100} {
		if err := UnitCount(count); err != nil {
			t.Errorf("UnitCount(%d) unexpected error = %v", count, err)
		}
	}
	for _, count := range []int{0, 101} {
		if err := UnitCount(count); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("UnitCount(%d) expected ErrOutOfRange, got %v", count, err)
		}
	}

	if err := NonNegativeInt("bedrooms", -1); !errors.Is(err, ErrNegative) {
		t.Errorf("NonNegativeInt(-1) expected ErrNegative, got %v", err)
	}
}

func TestFirst(t *testing.T) {
	if err := First(nil, nil); err != nil {
		t.Errorf("First() of nils = %v, expected nil", err)
	}

	err := First(nil, Money("a", -1), Money("b", math.NaN()))
	if !errors.Is(err, ErrNegative) {
		t.Errorf("First() = %v, expected the first failure", err)
	}
	if IsInvalidInput(errors.New("other")) {
		t.Error("unrelated errors should not be treated as invalid input")
	}
}
