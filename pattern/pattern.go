/*
Package pattern computes shift-tolerant visual fingerprints of images and
measures the distance between them.

A Pattern is a square luminance grid which, after a 2D Haar wavelet
decomposition, holds multi-resolution coefficients. A Signature is a short
vector of per-scale energies reduced from a decomposed Pattern. Both are
plain values: every function in this package returns new values and never
modifies its arguments.
*/
package pattern

import (
	"errors"
	"fmt"
)

// DefaultSize is the width and height of the luminance grid images are
// reduced to.
const DefaultSize = 64

var (
	// ErrInvalidSize is returned when a pattern size is not a power of two
	// greater than one.
	ErrInvalidSize = errors.New("pattern size must be a power of two greater than one")

	// ErrSizeMismatch is returned when two values of different dimensions
	// are compared.
	ErrSizeMismatch = errors.New("pattern sizes do not match")
)

// Pattern is a size×size grid of values. The first index is the column (x)
// of the source image and the second the row (y).
type Pattern struct {
	size   int
	values []float32
}

// ValidSize reports whether size can be used as a pattern size.
func ValidSize(size int) bool {
	return size > 1 && size&(size-1) == 0
}

// New returns a zero-valued pattern of the given size.
func New(size int) (*Pattern, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return newPattern(size), nil
}

func newPattern(size int) *Pattern {
	return &Pattern{
		size:   size,
		values: make([]float32, size*size),
	}
}

// FromValues builds a pattern from a slice of columns, values[x][y]. All
// columns must have the same length as the slice itself.
func FromValues(values [][]float32) (*Pattern, error) {
	size := len(values)
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	pattern := newPattern(size)
	for x, column := range values {
		if len(column) != size {
			return nil, fmt.Errorf("column %d has %d values, expected %d", x, len(column), size)
		}
		copy(pattern.values[x*size:(x+1)*size], column)
	}
	return pattern, nil
}

// Size returns the width (and height) of the pattern.
func (p *Pattern) Size() int {
	return p.size
}

// Levels returns the number of dyadic scale levels, log2(Size()).
func (p *Pattern) Levels() int {
	levels := 0
	for size := p.size; size > 1; size /= 2 {
		levels++
	}
	return levels
}

// At returns the value at (x, y). It panics if the coordinates are out of
// range.
func (p *Pattern) At(x, y int) float32 {
	return p.values[p.offset(x, y)]
}

// Set stores v at (x, y). It panics if the coordinates are out of range.
func (p *Pattern) Set(x, y int, v float32) {
	p.values[p.offset(x, y)] = v
}

func (p *Pattern) offset(x, y int) int {
	if x < 0 || x >= p.size || y < 0 || y >= p.size {
		panic(fmt.Sprintf("pattern: index (%d, %d) out of range [0, %d)", x, y, p.size))
	}
	return x*p.size + y
}

// Values returns a copy of the grid as columns, values[x][y].
func (p *Pattern) Values() [][]float32 {
	columns := make([][]float32, p.size)
	for x := range columns {
		columns[x] = make([]float32, p.size)
		copy(columns[x], p.values[x*p.size:(x+1)*p.size])
	}
	return columns
}

// Flat returns a copy of the grid in column-major order.
func (p *Pattern) Flat() []float32 {
	flat := make([]float32, len(p.values))
	copy(flat, p.values)
	return flat
}

// FromFlat is the inverse of Flat.
func FromFlat(flat []float32) (*Pattern, error) {
	size := 0
	for size*size < len(flat) {
		size++
	}
	if size*size != len(flat) || !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d values", ErrInvalidSize, len(flat))
	}
	pattern := newPattern(size)
	copy(pattern.values, flat)
	return pattern, nil
}

// Clone returns a deep copy of the pattern.
func (p *Pattern) Clone() *Pattern {
	clone := newPattern(p.size)
	copy(clone.values, p.values)
	return clone
}

// Equal reports whether both patterns have the same size and identical
// values.
func (p *Pattern) Equal(other *Pattern) bool {
	if p.size != other.size {
		return false
	}
	for index, value := range p.values {
		if other.values[index] != value {
			return false
		}
	}
	return true
}

// region is a rectangle [x, x+width) × [y, y+height) of a pattern.
type region struct {
	x, y          int
	width, height int
}

// subBands returns the horizontal, vertical and diagonal detail regions of
// the scale level whose sub-bands have the given edge length.
func subBands(size int) [3]region {
	return [3]region{
		{x: size, y: 0, width: size, height: size},
		{x: 0, y: size, width: size, height: size},
		{x: size, y: size, width: size, height: size},
	}
}
