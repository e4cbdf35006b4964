package viewport

import (
	"errors"
	"fmt"
)

// ErrInvalidViewport indicates a viewport whose span is zero, negative or not finite.
// It is a caller contract violation, not a runtime condition.
var ErrInvalidViewport = errors.New("invalid viewport")

// ViewportError describes why a viewport was rejected.
type ViewportError struct {
	Start  float64
	End    float64
	Reason string
}

// Error implements the error interface.
func (e *ViewportError) Error() string {
	return fmt.Sprintf("invalid viewport [%g, %g): %s", e.Start, e.End, e.Reason)
}

// Unwrap returns ErrInvalidViewport so callers can use errors.Is.
func (e *ViewportError) Unwrap() error {
	return ErrInvalidViewport
}
