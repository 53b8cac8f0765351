package pattern

import "math"

// Signature is a short vector of per-scale energies of a decomposed
// pattern: three values (horizontal, vertical, diagonal) per scale level,
// from the largest sub-bands to the smallest.
type Signature []float32

// SignatureLength returns the length of the signatures of patterns of the
// given size.
func SignatureLength(size int) int {
	length := 0
	for ; size > 1; size /= 2 {
		length += 3
	}
	return length
}

// NewSignature reduces a decomposed (or shuffled) pattern to its signature.
// Each entry is the L2 norm of one sub-band multiplied by a weight that
// starts at 1 for the largest sub-bands and doubles with every level.
func NewSignature(p *Pattern) Signature {
	signature := make(Signature, 0, SignatureLength(p.size))
	mult := float32(1)
	for size := p.size; size > 1; {
		size /= 2
		for _, band := range subBands(size) {
			signature = append(signature, mult*norm(p, band))
		}
		mult *= 2
	}
	return signature
}

func norm(p *Pattern, r region) float32 {
	var sum float32
	for i := r.x; i < r.x+r.width; i++ {
		for j := r.y; j < r.y+r.height; j++ {
			value := p.At(i, j)
			sum += value * value
		}
	}
	return float32(math.Sqrt(float64(sum)))
}

// Clone returns a copy of the signature.
func (s Signature) Clone() Signature {
	clone := make(Signature, len(s))
	copy(clone, s)
	return clone
}
