// Package config defines the data structures related to configuration and
// includes functions for loading and checking a batch of calculations.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/realestate-calc/internal/investment"
	"github.com/iwvelando/realestate-calc/internal/netsheet"
	"github.com/iwvelando/realestate-calc/internal/prequal"
	"github.com/spf13/viper"
)

// Configuration holds a batch of calculations and how to report them.
type Configuration struct {
	Logging           LoggingConfig      `yaml:"logging,omitempty"`
	Output            OutputConfig       `yaml:"output,omitempty"`
	Mortgages         []Mortgage         `yaml:"mortgages,omitempty"`
	Prequalifications []Prequalification `yaml:"prequalifications,omitempty"`
	Investments       []Investment       `yaml:"investments,omitempty"`
	NetSheets         []NetSheet         `yaml:"netSheets,omitempty"`
	Targets           []Target           `yaml:"targets,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Mortgage is a single purchase loan to price.
type Mortgage struct {
	Name         string  `yaml:"name"`
	HomePrice    float64 `yaml:"homePrice"`
	DownPayment  float64 `yaml:"downPayment"`
	InterestRate float64 `yaml:"interestRate"`
	LoanTerm     int     `yaml:"loanTerm"`
	Schedule     bool    `yaml:"schedule,omitempty"`
}

// Prequalification is a buyer to run against every lending program.
type Prequalification struct {
	Name           string `yaml:"name"`
	prequal.Inputs `mapstructure:",squash" yaml:",inline"`
}

// Investment is a property to analyze. Setting either target also solves
// for the price that reaches them, and then TargetCapRatePercent must be
// positive.
type Investment struct {
	Name                    string  `yaml:"name"`
	TargetCapRatePercent    float64 `yaml:"targetCapRatePercent,omitempty"`
	TargetCashOnCashPercent float64 `yaml:"targetCashOnCashPercent,omitempty"`
	investment.Inputs       `mapstructure:",squash" yaml:",inline"`
}

// NetSheet is a sale to itemize. Zip is used when Jurisdiction is empty.
type NetSheet struct {
	Name            string `yaml:"name"`
	Zip             string `yaml:"zip,omitempty"`
	netsheet.Inputs `mapstructure:",squash" yaml:",inline"`
}

// Target is a standalone target price problem.
type Target struct {
	Name                    string `yaml:"name"`
	investment.TargetInputs `mapstructure:",squash" yaml:",inline"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r,
// as used for uploaded batches.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.assignNames()
	return &configuration, nil
}

// assignNames gives unnamed entries a positional name so results and
// errors can refer to them.
func (c *Configuration) assignNames() {
	for i := range c.Mortgages {
		if c.Mortgages[i].Name == "" {
			c.Mortgages[i].Name = fmt.Sprintf("mortgage-%d", i+1)
		}
	}
	for i := range c.Prequalifications {
		if c.Prequalifications[i].Name == "" {
			c.Prequalifications[i].Name = fmt.Sprintf("prequalification-%d", i+1)
		}
	}
	for i := range c.Investments {
		if c.Investments[i].Name == "" {
			c.Investments[i].Name = fmt.Sprintf("investment-%d", i+1)
		}
	}
	for i := range c.NetSheets {
		if c.NetSheets[i].Name == "" {
			c.NetSheets[i].Name = fmt.Sprintf("netsheet-%d", i+1)
		}
	}
	for i := range c.Targets {
		if c.Targets[i].Name == "" {
			c.Targets[i].Name = fmt.Sprintf("target-%d", i+1)
		}
	}
}

// Empty reports whether the configuration has nothing to calculate.
func (c *Configuration) Empty() bool {
	return len(c.Mortgages) == 0 && len(c.Prequalifications) == 0 &&
		len(c.Investments) == 0 && len(c.NetSheets) == 0 && len(c.Targets) == 0
}
