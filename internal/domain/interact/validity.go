package interact

// Validity mirrors the native form-validity states a host control can be in.
// The engine computes it after every commit, reset, and fetch outcome.
type Validity string

const (
	// Valid means the control would pass form validation.
	Valid Validity = "valid"
	// ValueMissing means the control is required and has no committed value.
	ValueMissing Validity = "valueMissing"
	// CustomError is the recoverable state set after a failed fetch. The user
	// clears it by typing again; it never makes the control permanently invalid.
	CustomError Validity = "customError"
)

// ComputeValidity derives the control's validity. A failed fetch dominates as
// a recoverable custom error; otherwise required-with-empty-value is
// valueMissing.
func ComputeValidity(required bool, value string, fetchFailed bool) Validity {
	if fetchFailed {
		return CustomError
	}
	if required && value == "" {
		return ValueMissing
	}
	return Valid
}
