package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeValidity(t *testing.T) {
	assert.Equal(t, Valid, ComputeValidity(false, "", false))
	assert.Equal(t, Valid, ComputeValidity(true, "cat", false))
	assert.Equal(t, ValueMissing, ComputeValidity(true, "", false))

	// A failed fetch is customError, not valueMissing, even when required
	// and empty — and it is recoverable by typing again.
	assert.Equal(t, CustomError, ComputeValidity(true, "", true))
	assert.Equal(t, CustomError, ComputeValidity(false, "cat", true))
}
