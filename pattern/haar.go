package pattern

// Decompose performs a full dyadic 2D Haar wavelet transform of a raw
// pattern. At every level the three detail sub-bands are written into the
// quadrants right of, below and diagonal to the current approximation
// region. The single remaining approximation coefficient ends up at (0, 0).
//
// With A, B, C, D being the approximation values at (2i, 2j), (2i+1, 2j),
// (2i, 2j+1) and (2i+1, 2j+1), a level of size 2s produces
//
//	(i+s, j)   = (-A + B - C + D) / 4
//	(i, j+s)   = (-A - B + C + D) / 4
//	(i+s, j+s) = ( A - B - C + D) / 4
//
// and the next approximation (A + B + C + D) / 4 at (i, j).
func Decompose(raw *Pattern) *Pattern {
	decomposed := newPattern(raw.size)

	// The approximation of the current level, indexed x*current+y. It starts
	// out as a copy of the raw values and shrinks by four every level.
	current := raw.size
	approximation := make([]float32, len(raw.values))
	copy(approximation, raw.values)

	for current > 1 {
		half := current / 2
		next := make([]float32, half*half)
		for i := 0; i < half; i++ {
			for j := 0; j < half; j++ {
				a := approximation[(2*i)*current+2*j]
				b := approximation[(2*i+1)*current+2*j]
				c := approximation[(2*i)*current+2*j+1]
				d := approximation[(2*i+1)*current+2*j+1]

				decomposed.Set(i+half, j, (-a+b-c+d)/4)
				decomposed.Set(i, j+half, (-a-b+c+d)/4)
				decomposed.Set(i+half, j+half, (a-b-c+d)/4)
				next[i*half+j] = (a + b + c + d) / 4
			}
		}
		approximation = next
		current = half
	}

	decomposed.Set(0, 0, approximation[0])
	return decomposed
}

// Reconstruct is the inverse of Decompose: it rebuilds the raw pattern from
// its wavelet coefficients.
func Reconstruct(decomposed *Pattern) *Pattern {
	approximation := []float32{decomposed.At(0, 0)}

	for current := 1; current < decomposed.size; current *= 2 {
		double := current * 2
		next := make([]float32, double*double)
		for i := 0; i < current; i++ {
			for j := 0; j < current; j++ {
				m := approximation[i*current+j]
				h := decomposed.At(i+current, j)
				v := decomposed.At(i, j+current)
				d := decomposed.At(i+current, j+current)

				next[(2*i)*double+2*j] = m - h - v + d
				next[(2*i+1)*double+2*j] = m + h - v - d
				next[(2*i)*double+2*j+1] = m - h + v - d
				next[(2*i+1)*double+2*j+1] = m + h + v + d
			}
		}
		approximation = next
	}

	raw := newPattern(decomposed.size)
	copy(raw.values, approximation)
	return raw
}
