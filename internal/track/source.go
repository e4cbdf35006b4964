package track

import (
	"math"

	"github.com/dshills/seqview/internal/renderer/letters"
	"github.com/dshills/seqview/internal/renderer/viewport"
)

// DefaultChunk is the number of bases served per buffer.
const DefaultChunk = 50000

// Source serves sequence buffers around a viewport.
type Source struct {
	seq    string
	bounds [2]int
	chunk  int
}

// NewSource creates a source over the track sequence. A non-positive chunk
// means DefaultChunk.
func NewSource(t *Track, chunk int) *Source {
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	return &Source{seq: t.Sequence, bounds: t.Bounds, chunk: chunk}
}

// Empty returns true if there are no bases to serve.
func (s *Source) Empty() bool {
	return s.seq == ""
}

// Chunk returns the buffer size.
func (s *Source) Chunk() int {
	return s.chunk
}

// BufferFor returns a buffer centred on vp that covers every base of
// [floor(Start), floor(End)) inside the sequence bounds. The buffer holds at
// least Chunk bases when the sequence is long enough.
func (s *Source) BufferFor(vp viewport.Viewport) letters.Buffer {
	if s.Empty() {
		return letters.Buffer{}
	}

	first := max(vp.FirstBase(), s.bounds[0])
	last := min(vp.LastBase(), s.bounds[1])
	size := max(s.chunk, last-first)

	center := int(math.Floor(vp.Center()))
	lo := center - size/2
	hi := lo + size
	if lo > first {
		lo = first
	}
	if hi < last {
		hi = last
	}
	if lo < s.bounds[0] {
		hi += s.bounds[0] - lo
		lo = s.bounds[0]
	}
	if hi > s.bounds[1] {
		lo -= hi - s.bounds[1]
		hi = s.bounds[1]
	}
	lo = max(lo, s.bounds[0])

	off := s.bounds[0]
	return letters.Buffer{Bounds: [2]int{lo, hi}, Letters: s.seq[lo-off : hi-off]}
}
