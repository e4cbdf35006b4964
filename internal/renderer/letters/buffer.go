// Package letters decides when the sequence is shown base by base and lays the
// visible letters out so each one lines up with its coordinate on the axis.
package letters

import (
	"errors"
	"fmt"
)

// ErrInvalidBuffer indicates a sequence buffer whose letters do not match its bounds.
var ErrInvalidBuffer = errors.New("invalid sequence buffer")

// Buffer is a contiguous loaded slice of the full sequence.
// Letters[i] is the base at coordinate Bounds[0]+i.
type Buffer struct {
	Bounds  [2]int
	Letters string
}

// NewBuffer creates a buffer whose first letter sits at coordinate start.
func NewBuffer(start int, letters string) Buffer {
	return Buffer{Bounds: [2]int{start, start + len(letters)}, Letters: letters}
}

// Len returns the number of loaded bases.
func (b Buffer) Len() int {
	return len(b.Letters)
}

// Validate checks len(Letters) == Bounds[1]-Bounds[0].
func (b Buffer) Validate() error {
	if want := b.Bounds[1] - b.Bounds[0]; want != len(b.Letters) {
		return fmt.Errorf("%w: bounds [%d, %d) hold %d bases, got %d letters",
			ErrInvalidBuffer, b.Bounds[0], b.Bounds[1], want, len(b.Letters))
	}
	return nil
}

// Covers returns true if every base in [first, last) is loaded.
func (b Buffer) Covers(first, last int) bool {
	return first >= b.Bounds[0] && last <= b.Bounds[1]
}
