package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/realestate-calc/pkg/validation"
)

const testConfigPath = "testdata/calculations.yaml"

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test data",
			configPath: testConfigPath,
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationDecodesSections(t *testing.T) {
	conf, err := LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "info" || conf.Output.Format != "pretty" {
		t.Errorf("unexpected logging/output: %+v %+v", conf.Logging, conf.Output)
	}

	if len(conf.Mortgages) != 2 {
		t.Fatalf("expected 2 mortgages, got %d", len(conf.Mortgages))
	}
	if conf.Mortgages[0].HomePrice != 350000 || conf.Mortgages[0].LoanTerm != 30 {
		t.Errorf("unexpected first mortgage: %+v", conf.Mortgages[0])
	}
	if conf.Mortgages[1].Name != "mortgage-2" || !conf.Mortgages[1].Schedule {
		t.Errorf("unnamed mortgage should get a positional name, got %+v", conf.Mortgages[1])
	}

	if len(conf.Prequalifications) != 1 || conf.Prequalifications[0].MonthlyIncome != 5000 {
		t.Errorf("unexpected prequalifications: %+v", conf.Prequalifications)
	}
	if conf.Prequalifications[0].AnnualRatePercent != 6.5 {
		t.Errorf("embedded inputs not decoded: %+v", conf.Prequalifications[0].Inputs)
	}

	if len(conf.Investments) != 1 {
		t.Fatalf("expected 1 investment, got %d", len(conf.Investments))
	}
	inv := conf.Investments[0]
	if len(inv.Units) != 4 || inv.Units[3].Bathrooms != 1.5 {
		t.Errorf("units not decoded: %+v", inv.Units)
	}
	if inv.Loan.Principal != 300000 || inv.Loan.TermYears != 30 {
		t.Errorf("loan not decoded: %+v", inv.Loan)
	}
	if len(inv.RenovationItems) != 1 || inv.RenovationItems[0].Cost != 10000 {
		t.Errorf("renovation items not decoded: %+v", inv.RenovationItems)
	}
	if inv.ProjectedExpenses.VacancyPercent != 4 || inv.TargetCapRatePercent != 8 {
		t.Errorf("expenses or targets not decoded: %+v", inv)
	}

	if len(conf.NetSheets) != 2 || conf.NetSheets[1].Zip != "10001" {
		t.Errorf("unexpected net sheets: %+v", conf.NetSheets)
	}
	if len(conf.Targets) != 1 || conf.Targets[0].NOI != 42000 {
		t.Errorf("unexpected targets: %+v", conf.Targets)
	}

	if err := conf.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfigurationExample(t *testing.T) {
	examplePath := filepath.Join("..", "..", "calculations.yaml.example")
	if _, err := os.Stat(examplePath); err != nil {
		t.Skipf("example configuration not present: %v", err)
	}

	conf, err := LoadConfiguration(examplePath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Empty() {
		t.Error("example configuration should contain calculations")
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	data := `
mortgages:
  - name: Reader
    homePrice: 300000
    downPayment: 60000
    interestRate: 6
    loanTerm: 30
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if len(conf.Mortgages) != 1 || conf.Mortgages[0].Name != "Reader" {
		t.Errorf("unexpected mortgages: %+v", conf.Mortgages)
	}

	if _, err := LoadConfigurationFromReader(strings.NewReader("mortgages: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		conf   Configuration
		target error
	}{
		{
			name:   "Bad output format",
			conf:   Configuration{Output: OutputConfig{Format: "json"}},
			target: validation.ErrInvalidOutputFormat,
		},
		{
			name:   "Mortgage without term",
			conf:   Configuration{Mortgages: []Mortgage{{Name: "m", HomePrice: 100000}}},
			target: validation.ErrOutOfRange,
		},
		{
			name:   "Investment without units",
			conf:   Configuration{Investments: []Investment{{Name: "i", TargetCapRatePercent: -2}}},
			target: validation.ErrOutOfRange,
		},
		{
			name:   "Target with zero cap rate",
			conf:   Configuration{Targets: []Target{{Name: "t"}}},
			target: validation.ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if !errors.Is(err, tt.target) {
				t.Errorf("Validate() error = %v, expected %v", err, tt.target)
			}
		})
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf := Configuration{}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 1 {
		t.Errorf("expected a warning for an empty configuration, got %v", warnings)
	}

	conf.Mortgages = []Mortgage{{Name: "Cash", HomePrice: 100000, DownPayment: 100000, LoanTerm: 30}}
	conf.NetSheets = []NetSheet{{Name: "Somewhere"}}
	conf.NetSheets[0].Jurisdiction = "ZZ"

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "Cash") || !strings.Contains(warnings[1], "ZZ") {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestJurisdictionCode(t *testing.T) {
	tests := []struct {
		name     string
		sheet    NetSheet
		expected string
	}{
		{"Explicit wins", NetSheet{Zip: "10001"}, "TX"},
		{"From zip", NetSheet{Zip: "94105"}, "CA"},
		{"Nothing given", NetSheet{}, "DEFAULT"},
	}
	tests[0].sheet.Jurisdiction = "TX"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sheet.JurisdictionCode(); got != tt.expected {
				t.Errorf("JurisdictionCode() = %s, expected %s", got, tt.expected)
			}
		})
	}
}
