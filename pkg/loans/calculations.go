// Package loans provides the fixed-rate amortization primitives shared by
// every calculator.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/realestate-calc/pkg/constants"
	"github.com/iwvelando/realestate-calc/pkg/mathutil"
	"go.uber.org/zap"
)

// LoanTerms describes a fixed-rate, fully amortizing loan.
type LoanTerms struct {
	Principal         float64 `json:"principal" yaml:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent" yaml:"annualRatePercent"`
	TermYears         int     `json:"termYears" yaml:"termYears"`
}

// Months returns the number of scheduled monthly payments.
func (l LoanTerms) Months() int {
	return l.TermYears * constants.MonthsPerYear
}

// AmortizationResult summarizes the cost of a loan over its full term.
type AmortizationResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalPaid      float64 `json:"totalPaid"`
}

// Payment holds the values for a given payment.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// MonthlyRate converts an annual percentage rate into a periodic monthly rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termYears int) float64 {
	n := float64(termYears * constants.MonthsPerYear)
	r := MonthlyRate(annualRatePercent)
	if r == 0 {
		// For zero interest, simply divide the principal by term
		return principal / n
	}

	power := math.Pow(1+r, n)
	return principal * r * power / (power - 1)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * MonthlyRate(annualRatePercent)
}

// RemainingBalance returns the outstanding principal after paymentsMade
// scheduled payments. A loan past its final payment has a zero balance.
func RemainingBalance(loan LoanTerms, paymentsMade int) float64 {
	if paymentsMade <= 0 {
		return loan.Principal
	}
	if paymentsMade >= loan.Months() {
		return 0
	}

	payment := CalculateMonthlyPayment(loan.Principal, loan.AnnualRatePercent, loan.TermYears)
	r := MonthlyRate(loan.AnnualRatePercent)
	k := float64(paymentsMade)

	var balance float64
	if r == 0 {
		balance = loan.Principal - payment*k
	} else {
		growth := math.Pow(1+r, k)
		balance = loan.Principal*growth - payment*(growth-1)/r
	}
	if balance < 0 {
		return 0
	}
	return balance
}

// Amortize computes the payment, total interest and total paid for a loan.
func Amortize(loan LoanTerms) AmortizationResult {
	payment := CalculateMonthlyPayment(loan.Principal, loan.AnnualRatePercent, loan.TermYears)
	totalPaid := payment * float64(loan.Months())
	return AmortizationResult{
		MonthlyPayment: payment,
		TotalInterest:  totalPaid - loan.Principal,
		TotalPaid:      totalPaid,
	}
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates a complete month-by-month amortization schedule.
func (g *AmortizationScheduleGenerator) GenerateSchedule(loan LoanTerms) ([]Payment, error) {
	if loan.TermYears <= 0 {
		return nil, fmt.Errorf("loan term must be positive, got %d years", loan.TermYears)
	}
	if loan.Principal < 0 {
		return nil, fmt.Errorf("loan principal must not be negative, got %.2f", loan.Principal)
	}

	months := loan.Months()
	schedule := make([]Payment, 0, months)
	monthlyPayment := CalculateMonthlyPayment(loan.Principal, loan.AnnualRatePercent, loan.TermYears)
	remaining := loan.Principal

	for month := 1; month <= months; month++ {
		var current Payment
		current.Month = month
		current.Interest = CalculateInterestPayment(remaining, loan.AnnualRatePercent)
		current.Principal = monthlyPayment - current.Interest
		current.Payment = monthlyPayment

		if month == months || mathutil.Round(remaining-current.Principal) == 0 {
			// Absorb floating point drift into the final payment.
			current.Principal = remaining
			current.Payment = remaining + current.Interest
			current.RemainingPrincipal = 0
			schedule = append(schedule, current)
			if month < months {
				g.logger.Debug(fmt.Sprintf("loan paid off early at month %d of %d", month, months),
					zap.String("op", "loans.GenerateSchedule"),
				)
			}
			break
		}

		remaining -= current.Principal
		current.RemainingPrincipal = remaining
		schedule = append(schedule, current)
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "loans.GenerateSchedule"),
		zap.Float64("principal", loan.Principal),
		zap.Float64("rate", loan.AnnualRatePercent),
		zap.Int("payments", len(schedule)),
	)

	return schedule, nil
}
