package wave

import (
	"errors"
	"fmt"
)

// Construction errors. A failed Build never returns a partial Set.
var (
	ErrEmpty             = errors.New("wave: set has no waves")
	ErrInvalidDirection  = errors.New("wave: direction cannot be normalized")
	ErrInvalidAmplitude  = errors.New("wave: amplitude must be positive")
	ErrInvalidWavelength = errors.New("wave: wavelength must be positive")
	ErrInvalidSteepness  = errors.New("wave: steepness must be within [0, 1]")
	ErrInvalidSpeed      = errors.New("wave: speed must be finite")
)

// ErrNonFinite reports a NaN or infinite evaluation result. It indicates a
// broken caller contract (non-finite position or time), never a recoverable
// runtime condition.
var ErrNonFinite = errors.New("wave: non-finite displacement")

// ValidationError identifies which wave of a parameter list was rejected.
type ValidationError struct {
	Index int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wave %d: %v", e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
