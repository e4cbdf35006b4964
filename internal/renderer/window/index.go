package window

import (
	"sort"

	"github.com/dshills/seqview/internal/glyph"
)

// Index answers the two boundary queries of a reload in O(log n).
//
// A linear scan for "first record whose span max exceeds x" does not need the
// span maxima to be sorted. The running maximum of span maxima is monotonic
// and its first element exceeding x is at the same index, so a binary search
// over the prefix maxima returns exactly the scan's answer. The same holds
// for span minima.
type Index struct {
	prefixMax []float64 // running max of span maxima
	prefixMin []float64 // running max of span minima
	lo        []float64
	hi        []float64
}

// NewIndex builds the boundary index for records.
func NewIndex(records []glyph.Record) *Index {
	n := len(records)
	idx := &Index{
		prefixMax: make([]float64, n),
		prefixMin: make([]float64, n),
		lo:        make([]float64, n),
		hi:        make([]float64, n),
	}
	for i, r := range records {
		lo, hi := r.Span()
		idx.lo[i], idx.hi[i] = lo, hi
		if i == 0 {
			idx.prefixMax[i], idx.prefixMin[i] = hi, lo
			continue
		}
		idx.prefixMax[i] = max(idx.prefixMax[i-1], hi)
		idx.prefixMin[i] = max(idx.prefixMin[i-1], lo)
	}
	return idx
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.lo)
}

// Span returns the span of record i.
func (idx *Index) Span(i int) (lo, hi float64) {
	return idx.lo[i], idx.hi[i]
}

// FirstMaxAfter returns the first index whose span maximum is > x, or -1.
func (idx *Index) FirstMaxAfter(x float64) int {
	return firstGreater(idx.prefixMax, x)
}

// FirstMinAfter returns the first index whose span minimum is > x, or -1.
func (idx *Index) FirstMinAfter(x float64) int {
	return firstGreater(idx.prefixMin, x)
}

// Bounds resolves the slice [first, last] to load for a viewport extended
// by maxRange on both sides. It returns ok=false when there are no records.
func (idx *Index) Bounds(start, end, maxRange float64) (first, last int, ok bool) {
	n := idx.Len()
	if n == 0 {
		return 0, 0, false
	}
	first = idx.FirstMaxAfter(start - maxRange)
	if first < 0 {
		first = 0
	}
	last = idx.FirstMinAfter(end + maxRange)
	if last < 0 {
		last = n - 1
	}
	return first, last, true
}

func firstGreater(prefix []float64, x float64) int {
	i := sort.Search(len(prefix), func(i int) bool { return prefix[i] > x })
	if i == len(prefix) {
		return -1
	}
	return i
}

// ScanBounds is the linear reference for Index.Bounds.
func ScanBounds(records []glyph.Record, start, end, maxRange float64) (first, last int, ok bool) {
	n := len(records)
	if n == 0 {
		return 0, 0, false
	}
	first, last = -1, -1
	for i, r := range records {
		if _, hi := r.Span(); hi > start-maxRange {
			first = i
			break
		}
	}
	for i, r := range records {
		if lo, _ := r.Span(); lo > end+maxRange {
			last = i
			break
		}
	}
	if first < 0 {
		first = 0
	}
	if last < 0 {
		last = n - 1
	}
	return first, last, true
}
