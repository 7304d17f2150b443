// Package constants provides shared constants for the realestate-calc application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Prequalification policy constants
const (
	// PrequalTermYears is the fixed loan term used for affordability searches
	PrequalTermYears = 30

	// SearchMinPrice is the first candidate home price in the affordability scan
	SearchMinPrice = 100000.0

	// SearchMaxPrice is the last candidate home price in the affordability scan
	SearchMaxPrice = 3000000.0

	// SearchStep is the increment between candidate home prices
	SearchStep = 5000.0

	// PMIAnnualRatePercent is the annual private mortgage insurance rate
	PMIAnnualRatePercent = 0.5

	// PMIDownPaymentThreshold is the down payment fraction at or above which PMI is waived
	PMIDownPaymentThreshold = 0.20
)

// Investment analysis policy constants
const (
	// RentGrowthRate is the fixed annual rent growth used in projections
	RentGrowthRate = 0.05

	// AppreciationRate is the fixed annual property appreciation used in projections
	AppreciationRate = 0.03

	// MaxOfferRatio is applied to the recommended price to leave room for negotiation
	MaxOfferRatio = 0.90

	// MinUnits and MaxUnits bound the number of units in a property
	MinUnits = 1
	MaxUnits = 100
)

// ProjectionYears lists the horizons reported by the investment analysis.
var ProjectionYears = []int{3, 5}

// Net sheet policy constants
const (
	// ProrationDivisor converts an annual property tax into the prorated share
	// owed at closing (six months).
	ProrationDivisor = 2

	// DefaultJurisdiction is the fallback cost profile code
	DefaultJurisdiction = "DEFAULT"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default batch configuration file name
	DefaultConfigFile = "calculations.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "calculations.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultCacheTTLSeconds is the default lifetime of cached responses
	DefaultCacheTTLSeconds = 300
)

// Boundary validation limits
const (
	// MaxMoneyAmount caps any monetary input
	MaxMoneyAmount = 1e10

	// MaxRatePercent caps any percentage input
	MaxRatePercent = 100.0

	// MaxTermYears caps loan terms
	MaxTermYears = 50
)
