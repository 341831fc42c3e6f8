package field

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the only domain error: a value that cannot be used
// to compute the field.
var ErrInvalidParameter = errors.New("field: invalid parameter")

// ParamError wraps ErrInvalidParameter with the offending field.
type ParamError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParamError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(field, value, reason string) error {
	return &ParamError{Field: field, Value: value, Reason: reason}
}
