package collection

import "errors"

// ErrInvalidOperation is returned when an operation does not apply to the
// shape of a Container.
var ErrInvalidOperation = errors.New("invalid operation")

// OpError records the operation that failed.
type OpError struct {
	Op     string
	Reason string
}

func (e *OpError) Error() string {
	return e.Op + ": " + e.Reason
}

// Unwrap returns ErrInvalidOperation.
func (e *OpError) Unwrap() error { return ErrInvalidOperation }
