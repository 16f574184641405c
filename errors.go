package geodesy

import (
	"errors"
	"fmt"
)

// ErrInvalidEllipsoid signals an equatorial radius or polar semi-axis that
// is not a finite positive quantity.
var ErrInvalidEllipsoid = errors.New("invalid ellipsoid")

// InvalidEllipsoidError wraps ErrInvalidEllipsoid with the offending axis.
type InvalidEllipsoidError struct {
	Param string
	Value float64
}

func (e *InvalidEllipsoidError) Error() string {
	return fmt.Sprintf("%s: %s is not positive (%g)", ErrInvalidEllipsoid.Error(), e.Param, e.Value)
}

func (e *InvalidEllipsoidError) Unwrap() error { return ErrInvalidEllipsoid }
