package netsheet

import (
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/realestate-calc/pkg/constants"
)

// CostProfile holds a jurisdiction's seller closing cost rates. Percent
// fields are percentages of the sale price; flat fields are dollars.
type CostProfile struct {
	Code                   string  `json:"code" yaml:"code"`
	Name                   string  `json:"name" yaml:"name"`
	TransferTaxPercent     float64 `json:"transferTaxPercent" yaml:"transferTaxPercent"`
	TitleInsurancePercent  float64 `json:"titleInsurancePercent" yaml:"titleInsurancePercent"`
	AttorneyFeesFlat       float64 `json:"attorneyFeesFlat" yaml:"attorneyFeesFlat"`
	RecordingFeesFlat      float64 `json:"recordingFeesFlat" yaml:"recordingFeesFlat"`
	EscrowFeesPercent      float64 `json:"escrowFeesPercent" yaml:"escrowFeesPercent"`
	PropertyTaxRatePercent float64 `json:"propertyTaxRatePercent" yaml:"propertyTaxRatePercent"`
}

var profiles = map[string]CostProfile{
	constants.DefaultJurisdiction: {
		Name:                   "National average",
		TransferTaxPercent:     0.1,
		TitleInsurancePercent:  0.5,
		RecordingFeesFlat:      125,
		EscrowFeesPercent:      0.2,
		PropertyTaxRatePercent: 1.1,
	},
	"CA": {
		Name:                   "California",
		TransferTaxPercent:     0.11,
		TitleInsurancePercent:  0.5,
		RecordingFeesFlat:      150,
		EscrowFeesPercent:      0.25,
		PropertyTaxRatePercent: 0.75,
	},
	"CO": {
		Name:                   "Colorado",
		TransferTaxPercent:     0.01,
		TitleInsurancePercent:  0.45,
		RecordingFeesFlat:      100,
		EscrowFeesPercent:      0.2,
		PropertyTaxRatePercent: 0.5,
	},
	"FL": {
		Name:                   "Florida",
		TransferTaxPercent:     0.7,
		TitleInsurancePercent:  0.55,
		RecordingFeesFlat:      130,
		EscrowFeesPercent:      0.2,
		PropertyTaxRatePercent: 0.9,
	},
	"IL": {
		Name:                   "Illinois",
		TransferTaxPercent:     0.15,
		TitleInsurancePercent:  0.45,
		AttorneyFeesFlat:       800,
		RecordingFeesFlat:      150,
		EscrowFeesPercent:      0.1,
		PropertyTaxRatePercent: 2.1,
	},
	"MA": {
		Name:                   "Massachusetts",
		TransferTaxPercent:     0.456,
		TitleInsurancePercent:  0.4,
		AttorneyFeesFlat:       1000,
		RecordingFeesFlat:      175,
		PropertyTaxRatePercent: 1.2,
	},
	"NJ": {
		Name:                   "New Jersey",
		TransferTaxPercent:     1.0,
		TitleInsurancePercent:  0.5,
		AttorneyFeesFlat:       1200,
		RecordingFeesFlat:      200,
		PropertyTaxRatePercent: 2.4,
	},
	"NY": {
		Name:                   "New York",
		TransferTaxPercent:     0.4,
		TitleInsurancePercent:  0.45,
		AttorneyFeesFlat:       1500,
		RecordingFeesFlat:      250,
		PropertyTaxRatePercent: 1.7,
	},
	"PA": {
		Name:                   "Pennsylvania",
		TransferTaxPercent:     1.0,
		TitleInsurancePercent:  0.5,
		RecordingFeesFlat:      250,
		PropertyTaxRatePercent: 1.5,
	},
	"TX": {
		Name:                   "Texas",
		TitleInsurancePercent:  0.55,
		RecordingFeesFlat:      100,
		EscrowFeesPercent:      0.2,
		PropertyTaxRatePercent: 1.8,
	},
	"WA": {
		Name:                   "Washington",
		TransferTaxPercent:     1.28,
		TitleInsurancePercent:  0.45,
		RecordingFeesFlat:      200,
		EscrowFeesPercent:      0.25,
		PropertyTaxRatePercent: 0.95,
	},
}

// LookupProfile returns the cost profile for a jurisdiction code. Unknown
// codes resolve to the DEFAULT profile, so the lookup never fails.
func LookupProfile(code string) CostProfile {
	key := strings.ToUpper(strings.TrimSpace(code))
	profile, ok := profiles[key]
	if !ok {
		key = constants.DefaultJurisdiction
		profile = profiles[key]
	}
	profile.Code = key
	return profile
}

// Profiles lists every known cost profile ordered by code.
func Profiles() []CostProfile {
	codes := make([]string, 0, len(profiles))
	for code := range profiles {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]CostProfile, 0, len(codes))
	for _, code := range codes {
		out = append(out, LookupProfile(code))
	}
	return out
}

type zipRange struct {
	low, high int
	code      string
}

// zipRanges maps three-digit ZIP prefixes to jurisdictions.
var zipRanges = []zipRange{
	{10, 27, "MA"},
	{70, 89, "NJ"},
	{100, 149, "NY"},
	{150, 196, "PA"},
	{320, 349, "FL"},
	{600, 629, "IL"},
	{750, 799, "TX"},
	{800, 816, "CO"},
	{900, 961, "CA"},
	{980, 994, "WA"},
}

// ResolveJurisdiction maps a US postal code to a jurisdiction code, falling
// back to DEFAULT for malformed or unmapped codes.
func ResolveJurisdiction(zip string) string {
	zip = strings.TrimSpace(zip)
	if len(zip) < 5 {
		return constants.DefaultJurisdiction
	}
	for i := 0; i < 5; i++ {
		if zip[i] < '0' || zip[i] > '9' {
			return constants.DefaultJurisdiction
		}
	}

	prefix, _ := strconv.Atoi(zip[:3])
	for _, r := range zipRanges {
		if prefix >= r.low && prefix <= r.high {
			return r.code
		}
	}
	return constants.DefaultJurisdiction
}
