package pattern

import (
	"fmt"
	"math"
)

// Distance compares two decomposed (or two shuffled) patterns. It is the
// square root of the sum of squared coefficient differences where the
// differences of every level are weighted by a multiplier that starts at 1
// for the largest sub-bands and doubles per level; the approximation
// coefficient gets the last, largest multiplier.
//
// The result is symmetric, non-negative and zero for identical patterns. It
// is a weighted L2 norm of the difference rather than the plain Euclidean
// distance.
func Distance(a, b *Pattern) (float32, error) {
	if a.size != b.size {
		return 0, fmt.Errorf("%w: %d and %d", ErrSizeMismatch, a.size, b.size)
	}

	var distance float32
	mult := float32(1)
	for size := a.size; size > 1; {
		size /= 2
		for _, band := range subBands(size) {
			distance += mult * squaredDifference(a, b, band)
		}
		mult *= 2
	}
	diff := a.At(0, 0) - b.At(0, 0)
	distance += mult * diff * diff

	return float32(math.Sqrt(float64(distance))), nil
}

func squaredDifference(a, b *Pattern, r region) float32 {
	var sum float32
	for i := r.x; i < r.x+r.width; i++ {
		for j := r.y; j < r.y+r.height; j++ {
			diff := a.At(i, j) - b.At(i, j)
			sum += diff * diff
		}
	}
	return sum
}

// SignatureDistance is the Euclidean distance between two signatures.
func SignatureDistance(a, b Signature) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: signature lengths %d and %d", ErrSizeMismatch, len(a), len(b))
	}

	var distance float32
	for index := range a {
		diff := a[index] - b[index]
		distance += diff * diff
	}
	return float32(math.Sqrt(float64(distance))), nil
}
