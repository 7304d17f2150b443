package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/realestate-calc/pkg/constants"
	"github.com/iwvelando/realestate-calc/pkg/mathutil"
)

// Sentinel errors for rejected calculator inputs. Callers match them with
// errors.Is to tell client mistakes apart from internal failures.
var (
	ErrNotFinite  = errors.New("must be a finite number")
	ErrNegative   = errors.New("must not be negative")
	ErrOutOfRange = errors.New("out of range")
)

// Money checks a currency amount: finite, non-negative and below MaxMoneyAmount.
func Money(field string, value float64) error {
	if !mathutil.IsFinite(value) {
		return fmt.Errorf("%s %w", field, ErrNotFinite)
	}
	if value < 0 {
		return fmt.Errorf("%s %w", field, ErrNegative)
	}
	if value > constants.MaxMoneyAmount {
		return fmt.Errorf("%s %w: %.2f exceeds %.0f", field, ErrOutOfRange, value, constants.MaxMoneyAmount)
	}
	return nil
}

// Percent checks a rate expressed in percent, allowing zero.
func Percent(field string, value float64) error {
	if !mathutil.IsFinite(value) {
		return fmt.Errorf("%s %w", field, ErrNotFinite)
	}
	if value < 0 {
		return fmt.Errorf("%s %w", field, ErrNegative)
	}
	if value > constants.MaxRatePercent {
		return fmt.Errorf("%s %w: %g exceeds %g", field, ErrOutOfRange, value, constants.MaxRatePercent)
	}
	return nil
}

// PositivePercent is Percent with zero rejected.
func PositivePercent(field string, value float64) error {
	if err := Percent(field, value); err != nil {
		return err
	}
	if value == 0 {
		return fmt.Errorf("%s %w: must be greater than zero", field, ErrOutOfRange)
	}
	return nil
}

// TermYears checks a loan term.
func TermYears(field string, years int) error {
	if years < 1 || years > constants.MaxTermYears {
		return fmt.Errorf("%s %w: %d not within 1-%d years", field, ErrOutOfRange, years, constants.MaxTermYears)
	}
	return nil
}

// UnitCount checks the number of units in a property.
func UnitCount(count int) error {
	if count < constants.MinUnits || count > constants.MaxUnits {
		return fmt.Errorf("unit count %w: %d not within %d-%d", ErrOutOfRange, count, constants.MinUnits, constants.MaxUnits)
	}
	return nil
}

// NonNegativeInt checks counts such as bedrooms.
func NonNegativeInt(field string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s %w", field, ErrNegative)
	}
	return nil
}

// First returns the first non-nil error, letting callers list checks in order.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// IsInvalidInput reports whether err came from one of the validators here.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrNotFinite) || errors.Is(err, ErrNegative) ||
		errors.Is(err, ErrOutOfRange) || errors.Is(err, ErrInvalidOutputFormat)
}
