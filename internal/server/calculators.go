package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/iwvelando/realestate-calc/internal/config"
	"github.com/iwvelando/realestate-calc/internal/investment"
	"github.com/iwvelando/realestate-calc/internal/mortgage"
	"github.com/iwvelando/realestate-calc/internal/netsheet"
	"github.com/iwvelando/realestate-calc/internal/prequal"
	"github.com/iwvelando/realestate-calc/pkg/format"
	"github.com/iwvelando/realestate-calc/pkg/loans"
	"github.com/iwvelando/realestate-calc/pkg/mathutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type mortgageRequest struct {
	LoanAmount   float64 `json:"loanAmount"`
	DownPayment  float64 `json:"downPayment"`
	InterestRate float64 `json:"interestRate"`
	LoanTerm     int     `json:"loanTerm"`
}

type mortgageResponse struct {
	MonthlyPayment float64         `json:"monthlyPayment"`
	TotalInterest  float64         `json:"totalInterest"`
	TotalAmount    float64         `json:"totalAmount"`
	Principal      float64         `json:"principal"`
	Schedule       []loans.Payment `json:"schedule,omitempty"`
}

// computeMortgage treats loanAmount as the purchase price; the financed
// principal is loanAmount less downPayment.
func (h *handler) computeMortgage(ctx context.Context, r *http.Request, body []byte) (interface{}, error) {
	var req mortgageRequest
	if err := decodeJSON(body, &req); err != nil {
		return nil, err
	}
	if err := mortgage.Validate(req.LoanAmount, req.DownPayment, req.InterestRate, req.LoanTerm); err != nil {
		return nil, err
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Float64("loan_amount", req.LoanAmount),
		attribute.Float64("interest_rate", req.InterestRate),
		attribute.Int("loan_term", req.LoanTerm),
	)

	result := mortgage.Calculate(req.LoanAmount, req.DownPayment, req.InterestRate, req.LoanTerm)
	resp := mortgageResponse{
		MonthlyPayment: mathutil.Round(result.MonthlyPayment),
		TotalInterest:  mathutil.Round(result.TotalInterest),
		Principal:      mathutil.Round(result.Principal),
	}
	// Summed from the rounded parts so the response adds up to the cent.
	resp.TotalAmount = mathutil.Round(resp.Principal + resp.TotalInterest)

	if wantSchedule(r) && result.Principal > 0 {
		schedule, err := h.schedules.GenerateSchedule(mortgage.Terms(req.LoanAmount, req.DownPayment, req.InterestRate, req.LoanTerm))
		if err != nil {
			return nil, fmt.Errorf("failed to build schedule: %w", err)
		}
		for i := range schedule {
			schedule[i].Payment = mathutil.Round(schedule[i].Payment)
			schedule[i].Principal = mathutil.Round(schedule[i].Principal)
			schedule[i].Interest = mathutil.Round(schedule[i].Interest)
			schedule[i].RemainingPrincipal = mathutil.Round(schedule[i].RemainingPrincipal)
		}
		resp.Schedule = schedule
	}

	return resp, nil
}

func wantSchedule(r *http.Request) bool {
	value := strings.TrimSpace(r.URL.Query().Get("schedule"))
	if value == "" {
		return false
	}
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

type prequalificationResponse struct {
	Results []prequal.Result `json:"results"`
}

func (h *handler) computePrequalification(_ context.Context, _ *http.Request, body []byte) (interface{}, error) {
	var inputs prequal.Inputs
	if err := decodeJSON(body, &inputs); err != nil {
		return nil, err
	}
	if err := inputs.Validate(); err != nil {
		return nil, err
	}
	return prequalificationResponse{Results: h.prequal.Evaluate(inputs)}, nil
}

type investmentRequest struct {
	investment.Inputs
	// LegacyRenovationCost is a lump sum from clients that do not itemize
	// renovation work. It becomes a single line item.
	LegacyRenovationCost    float64 `json:"renovationCost"`
	TargetCapRatePercent    float64 `json:"targetCapRatePercent"`
	TargetCashOnCashPercent float64 `json:"targetCashOnCashPercent"`
}

type investmentResponse struct {
	Analysis investment.Result       `json:"analysis"`
	Target   *investment.TargetPrice `json:"target,omitempty"`
}

func (h *handler) computeInvestment(ctx context.Context, _ *http.Request, body []byte) (interface{}, error) {
	var req investmentRequest
	if err := decodeJSON(body, &req); err != nil {
		return nil, err
	}

	inputs := req.Inputs
	if req.LegacyRenovationCost != 0 {
		inputs.RenovationItems = append(append([]investment.RenovationItem(nil), inputs.RenovationItems...),
			investment.RenovationItem{Description: "General renovation", Cost: req.LegacyRenovationCost})
	}
	if err := inputs.Validate(); err != nil {
		return nil, err
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("units", len(inputs.Units)))

	resp := investmentResponse{Analysis: h.analyzer.Analyze(inputs)}
	if req.TargetCapRatePercent != 0 || req.TargetCashOnCashPercent != 0 {
		targetInputs := investment.TargetInputsFrom(resp.Analysis, req.TargetCapRatePercent, req.TargetCashOnCashPercent)
		if err := targetInputs.Validate(); err != nil {
			return nil, err
		}
		target, err := investment.SolveTargetPrice(targetInputs)
		if err != nil {
			return nil, err
		}
		resp.Target = &target
	}
	return resp, nil
}

func (h *handler) computeTargetPrice(_ context.Context, _ *http.Request, body []byte) (interface{}, error) {
	var inputs investment.TargetInputs
	if err := decodeJSON(body, &inputs); err != nil {
		return nil, err
	}
	if err := inputs.Validate(); err != nil {
		return nil, err
	}
	return investment.SolveTargetPrice(inputs)
}

type netSheetRequest struct {
	netsheet.Inputs
	Zip string `json:"zip"`
}

type lineItemResponse struct {
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	PercentOfSale float64 `json:"percentOfSale"`
}

type netSheetResponse struct {
	Jurisdiction     string               `json:"jurisdiction"`
	JurisdictionName string               `json:"jurisdictionName"`
	GrossSalePrice   float64              `json:"grossSalePrice"`
	TotalDeductions  float64              `json:"totalDeductions"`
	NetProceeds      float64              `json:"netProceeds"`
	NegativeProceeds bool                 `json:"negativeProceeds"`
	BreakdownItems   []lineItemResponse   `json:"breakdownItems"`
	Profile          netsheet.CostProfile `json:"profile"`
	Warnings         []string             `json:"warnings,omitempty"`
}

// computeNetSheet resolves the jurisdiction from the explicit code or the
// ZIP code. Amounts are cents-exact decimals rendered as JSON numbers.
func (h *handler) computeNetSheet(ctx context.Context, _ *http.Request, body []byte) (interface{}, error) {
	var req netSheetRequest
	if err := decodeJSON(body, &req); err != nil {
		return nil, err
	}
	if err := req.Inputs.Validate(); err != nil {
		return nil, err
	}

	sheet := config.NetSheet{Name: "request", Zip: req.Zip, Inputs: req.Inputs}
	inputs := req.Inputs
	inputs.Jurisdiction = sheet.JurisdictionCode()

	conf := config.Configuration{NetSheets: []config.NetSheet{sheet}}
	warnings := conf.ValidateConfiguration()

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("jurisdiction", inputs.Jurisdiction))

	result := h.netsheet.Compute(inputs)
	if result.NegativeProceeds {
		warnings = append(warnings, fmt.Sprintf("seller must bring %s to closing", format.DecimalCurrency(result.NetProceeds.Neg())))
	}

	items := make([]lineItemResponse, 0, len(result.BreakdownItems))
	for _, item := range result.BreakdownItems {
		items = append(items, lineItemResponse{
			Category:      item.Category,
			Description:   item.Description,
			Amount:        item.Amount.InexactFloat64(),
			PercentOfSale: mathutil.Round(item.PercentOfSale),
		})
	}

	return netSheetResponse{
		Jurisdiction:     result.Jurisdiction,
		JurisdictionName: result.Profile.Name,
		GrossSalePrice:   result.GrossSalePrice.InexactFloat64(),
		TotalDeductions:  result.TotalDeductions.InexactFloat64(),
		NetProceeds:      result.NetProceeds.InexactFloat64(),
		NegativeProceeds: result.NegativeProceeds,
		BreakdownItems:   items,
		Profile:          result.Profile,
		Warnings:         warnings,
	}, nil
}
