// Package batch runs every calculation in a configuration and collects the
// results for output.
package batch

import (
	"fmt"
	"time"

	"github.com/iwvelando/realestate-calc/internal/config"
	"github.com/iwvelando/realestate-calc/internal/investment"
	"github.com/iwvelando/realestate-calc/internal/mortgage"
	"github.com/iwvelando/realestate-calc/internal/netsheet"
	"github.com/iwvelando/realestate-calc/internal/prequal"
	"github.com/iwvelando/realestate-calc/pkg/loans"
	"go.uber.org/zap"
)

// MortgageResult is a priced mortgage, with its schedule when requested.
type MortgageResult struct {
	Name string `json:"name"`
	mortgage.Result
	Schedule []loans.Payment `json:"schedule,omitempty"`
}

// PrequalificationResult holds one outcome per lending program.
type PrequalificationResult struct {
	Name     string           `json:"name"`
	Programs []prequal.Result `json:"programs"`
}

// InvestmentResult is a property analysis and, if targets were given, the
// price that reaches them.
type InvestmentResult struct {
	Name     string                  `json:"name"`
	Analysis investment.Result       `json:"analysis"`
	Target   *investment.TargetPrice `json:"target,omitempty"`
}

// NetSheetResult is an itemized seller net sheet.
type NetSheetResult struct {
	Name string `json:"name"`
	netsheet.Result
}

// TargetResult is a solved standalone target price.
type TargetResult struct {
	Name string `json:"name"`
	investment.TargetPrice
}

// Results collects the output of every section of a configuration.
type Results struct {
	Mortgages         []MortgageResult         `json:"mortgages,omitempty"`
	Prequalifications []PrequalificationResult `json:"prequalifications,omitempty"`
	Investments       []InvestmentResult       `json:"investments,omitempty"`
	NetSheets         []NetSheetResult         `json:"netSheets,omitempty"`
	Targets           []TargetResult           `json:"targets,omitempty"`
	Warnings          []string                 `json:"warnings,omitempty"`
}

// Runner evaluates configurations with shared calculators.
type Runner struct {
	logger    *zap.Logger
	schedules *loans.AmortizationScheduleGenerator
	prequal   *prequal.Calculator
	analyzer  *investment.Analyzer
	netsheet  *netsheet.Calculator
}

// NewRunner creates a batch runner.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger:    logger,
		schedules: loans.NewAmortizationScheduleGenerator(logger),
		prequal:   prequal.NewCalculator(logger),
		analyzer:  investment.NewAnalyzer(logger),
		netsheet:  netsheet.NewCalculator(logger),
	}
}

// Run validates conf and runs every calculation in it. Nothing is computed
// if any entry is invalid.
func (r *Runner) Run(conf *config.Configuration) (*Results, error) {
	start := time.Now()
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	results := &Results{Warnings: conf.ValidateConfiguration()}

	for _, m := range conf.Mortgages {
		result := MortgageResult{
			Name:   m.Name,
			Result: mortgage.Calculate(m.HomePrice, m.DownPayment, m.InterestRate, m.LoanTerm),
		}
		if m.Schedule && result.Principal > 0 {
			schedule, err := r.schedules.GenerateSchedule(mortgage.Terms(m.HomePrice, m.DownPayment, m.InterestRate, m.LoanTerm))
			if err != nil {
				return nil, fmt.Errorf("mortgage '%s': %w", m.Name, err)
			}
			result.Schedule = schedule
		}
		results.Mortgages = append(results.Mortgages, result)
	}

	for _, p := range conf.Prequalifications {
		results.Prequalifications = append(results.Prequalifications, PrequalificationResult{
			Name:     p.Name,
			Programs: r.prequal.Evaluate(p.Inputs),
		})
	}

	for _, inv := range conf.Investments {
		result := InvestmentResult{Name: inv.Name, Analysis: r.analyzer.Analyze(inv.Inputs)}
		if inv.TargetCapRatePercent != 0 || inv.TargetCashOnCashPercent != 0 {
			target, err := investment.SolveTargetPrice(investment.TargetInputsFrom(result.Analysis, inv.TargetCapRatePercent, inv.TargetCashOnCashPercent))
			if err != nil {
				return nil, fmt.Errorf("investment '%s': %w", inv.Name, err)
			}
			result.Target = &target
		}
		results.Investments = append(results.Investments, result)
	}

	for _, n := range conf.NetSheets {
		inputs := n.Inputs
		inputs.Jurisdiction = n.JurisdictionCode()
		results.NetSheets = append(results.NetSheets, NetSheetResult{
			Name:   n.Name,
			Result: r.netsheet.Compute(inputs),
		})
	}

	for _, t := range conf.Targets {
		target, err := investment.SolveTargetPrice(t.TargetInputs)
		if err != nil {
			return nil, fmt.Errorf("target '%s': %w", t.Name, err)
		}
		results.Targets = append(results.Targets, TargetResult{Name: t.Name, TargetPrice: target})
	}

	r.logger.Info("batch computed",
		zap.String("op", "batch.Run"),
		zap.Int("mortgages", len(results.Mortgages)),
		zap.Int("prequalifications", len(results.Prequalifications)),
		zap.Int("investments", len(results.Investments)),
		zap.Int("net_sheets", len(results.NetSheets)),
		zap.Int("targets", len(results.Targets)),
		zap.Duration("duration", time.Since(start)),
	)

	return results, nil
}
