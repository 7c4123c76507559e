package generator

import (
	"errors"
	"fmt"
)

// ErrEmptyLot reports a lot group with no yield values reaching the
// statistics step. Every lot has at least one wafer by construction, so
// this is an internal invariant violation, never a recoverable input
// condition.
var ErrEmptyLot = errors.New("lot group contains no yield values")

// InvalidParameterError reports an out-of-domain generation parameter.
type InvalidParameterError struct {
	Field string
	Value int
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: must be at least 1, got %d", e.Field, e.Value)
}

// IsInvalidParameter reports whether err is an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ipe *InvalidParameterError
	return errors.As(err, &ipe)
}
