package integration

import (
	"bufio"
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/realestate-calc/internal/batch"
	"github.com/iwvelando/realestate-calc/internal/config"
	"github.com/iwvelando/realestate-calc/pkg/output"
	"github.com/iwvelando/realestate-calc/pkg/testutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const exampleConfig = "../../calculations.yaml.example"

// runExample loads and runs the shipped example exactly as main() does.
func runExample(t *testing.T) *batch.Results {
	t.Helper()

	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	results, err := batch.NewRunner(zap.NewNop()).Run(conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return results
}

// TestMainIntegrationBaseline checks key figures of the example calculations
// against known-good values.
func TestMainIntegrationBaseline(t *testing.T) {
	results := runExample(t)

	if len(results.Mortgages) != 2 {
		t.Errorf("Expected 2 mortgages, got %d", len(results.Mortgages))
	}
	if len(results.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", results.Warnings)
	}

	baselineChecks := []struct {
		name        string
		actual      func() float64
		expectedVal float64
		tolerance   float64
	}{
		{"starter home payment", func() float64 { return testutil.FindMortgage(results, "Starter home").MonthlyPayment }, 1769.79, 0.01},
		{"zero rate payment", func() float64 { return testutil.FindMortgage(results, "mortgage-2").MonthlyPayment }, 1111.11, 0.01},
		{"zero rate interest", func() float64 { return testutil.FindMortgage(results, "mortgage-2").TotalInterest }, 0, 1e-6},
		{"fourplex projected NOI", func() float64 { return testutil.FindInvestment(results, "Elm Street fourplex").Analysis.NOI.Projected }, 42632.16, 0.01},
		{"fourplex cash invested", func() float64 {
			return testutil.FindInvestment(results, "Elm Street fourplex").Analysis.TotalCashInvested
		}, 138000, 0.01},
	}

	for _, check := range baselineChecks {
		t.Run(check.name, func(t *testing.T) {
			actualVal := check.actual()
			if math.Abs(actualVal-check.expectedVal) > check.tolerance {
				t.Errorf("expected %.2f, got %.2f", check.expectedVal, actualVal)
			}
		})
	}
}

// TestNetSheetsBalance verifies every net sheet in the example accounts for
// the full sale price to the cent.
func TestNetSheetsBalance(t *testing.T) {
	results := runExample(t)

	defaultSale := testutil.FindNetSheet(results, "Default sale")
	if defaultSale == nil {
		t.Fatal("Net sheet 'Default sale' not found in results")
	}
	if !defaultSale.NetProceeds.Equal(decimal.NewFromInt(212625)) {
		t.Errorf("Expected net proceeds 212625.00, got %s", defaultSale.NetProceeds.StringFixed(2))
	}

	condo := testutil.FindNetSheet(results, "Manhattan condo")
	if condo == nil {
		t.Fatal("Net sheet 'Manhattan condo' not found in results")
	}
	if condo.Jurisdiction != "NY" {
		t.Errorf("Expected jurisdiction NY from ZIP 10001, got %s", condo.Jurisdiction)
	}

	for _, sheet := range results.NetSheets {
		sum := sheet.NetProceeds.Add(sheet.TotalDeductions)
		if !sum.Equal(sheet.GrossSalePrice) {
			t.Errorf("Net sheet '%s': net %s + deductions %s != sale %s", sheet.Name,
				sheet.NetProceeds.StringFixed(2), sheet.TotalDeductions.StringFixed(2), sheet.GrossSalePrice.StringFixed(2))
		}
	}
}

// TestCSVOutputFormat tests that CSV output has one quoted four-column row
// per figure.
func TestCSVOutputFormat(t *testing.T) {
	results := runExample(t)

	scanner := bufio.NewScanner(strings.NewReader(output.CsvString(results)))

	if !scanner.Scan() {
		t.Fatalf("Could not read CSV header")
	}
	if header := scanner.Text(); header != `"section","name","metric","value"` {
		t.Errorf("Unexpected CSV header: %s", header)
	}

	lineCount := 0
	sections := map[string]bool{}
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Split(line, `","`)
		if len(parts) != 4 {
			t.Errorf("CSV line should have 4 parts, got %d: %s", len(parts), line)
			continue
		}
		sections[strings.TrimPrefix(parts[0], `"`)] = true
		lineCount++
	}

	if err := scanner.Err(); err != nil {
		t.Errorf("Error reading CSV: %v", err)
	}
	// The zero rate mortgage asks for its 180 month schedule.
	if lineCount < 180 {
		t.Errorf("Expected at least 180 CSV rows, got %d", lineCount)
	}
	for _, section := range []string{"Mortgage", "Prequalification", "Investment", "Net sheet", "Target price"} {
		if !sections[section] {
			t.Errorf("CSV output missing section %s", section)
		}
	}
	if !strings.Contains(output.CsvString(results), `"Net sheet","Default sale","Net proceeds","212625.00"`) {
		t.Error("CSV output missing exact net proceeds for 'Default sale'")
	}
}

// TestPrettyOutputFormat tests the pretty print output
func TestPrettyOutputFormat(t *testing.T) {
	results := runExample(t)

	var buf bytes.Buffer
	output.WritePretty(&buf, results)
	pretty := buf.String()

	for _, header := range []string{
		"--- Mortgage: Starter home ---",
		"--- Prequalification: First-time buyer ---",
		"--- Investment: Elm Street fourplex ---",
		"--- Net sheet: Manhattan condo ---",
		"--- Target price: Quick check ---",
	} {
		if !strings.Contains(pretty, header) {
			t.Errorf("Pretty output missing header %q", header)
		}
	}
	if !strings.Contains(pretty, "$1,769.79") {
		t.Error("Pretty output should group digits of the monthly payment")
	}
}
