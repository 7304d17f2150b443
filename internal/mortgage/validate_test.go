package mortgage

import (
	"testing"

	"github.com/iwvelando/realestate-calc/pkg/validation"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(350000, 70000, 6.5, 30))
	assert.NoError(t, Validate(350000, 400000, 6.5, 30), "over-funded purchase is a zero result, not an error")
	assert.NoError(t, Validate(350000, 0, 0, 15))
	assert.ErrorIs(t, Validate(350000, 70000, 6.5, 0), validation.ErrOutOfRange)
	assert.ErrorIs(t, Validate(-1, 0, 6.5, 30), validation.ErrNegative)
	assert.ErrorIs(t, Validate(350000, 0, 101, 30), validation.ErrOutOfRange)
}
