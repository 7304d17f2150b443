// Package validation checks calculator inputs and command line options
// before any calculation runs.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/realestate-calc/pkg/constants"
)

// ErrInvalidOutputFormat is returned for output formats other than pretty or csv.
var ErrInvalidOutputFormat = errors.New("invalid output format")

var outputFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV}

// ValidateOutputFormat checks if the output format is one of the supported
// formats. Matching is exact.
func ValidateOutputFormat(format string) error {
	for _, supported := range outputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("%w: expected one of %s, got %q", ErrInvalidOutputFormat,
		strings.Join(outputFormats, ", "), format)
}
