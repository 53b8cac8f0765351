package pattern

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateNeighborhood is returned by Shuffle when a cell has no
// positively weighted neighbour to average over.
var ErrDegenerateNeighborhood = errors.New("shuffle neighborhood has no positive weight")

// Shuffle makes a decomposed pattern less sensitive to small shifts of the
// image content. Every detail sub-band is replaced by a weighted root mean
// square over a circular window clipped to the sub-band. The window radius
// is a quarter of the sub-band's edge, so coarse sub-bands are smoothed
// more than fine ones. Sub-bands with an edge below 4 and the approximation
// coefficient are copied unchanged.
func Shuffle(src *Pattern) (*Pattern, error) {
	dst := src.Clone()

	for size := src.size; size > 4; {
		size /= 2
		for _, band := range subBands(size) {
			if err := shuffleRegion(dst, src, band, size/4); err != nil {
				return nil, err
			}
		}
	}
	return dst, nil
}

// shuffleRegion writes to dst the smoothed values of the region read from
// src. Windows overlap, so src and dst must not be the same pattern.
func shuffleRegion(dst, src *Pattern, r region, w int) error {
	if w < 1 {
		return fmt.Errorf("%w: radius %d for region (%d, %d) %dx%d", ErrDegenerateNeighborhood, w, r.x, r.y, r.width, r.height)
	}
	radius := float32(w)

	for i := r.x; i < r.x+r.width; i++ {
		for j := r.y; j < r.y+r.height; j++ {
			iiMin, iiMax := maxInt(r.x, i-w), minInt(r.x+r.width, i+w+1)
			jjMin, jjMax := maxInt(r.y, j-w), minInt(r.y+r.height, j+w+1)

			var sum, sumR float32
			for ii := iiMin; ii < iiMax; ii++ {
				for jj := jjMin; jj < jjMax; jj++ {
					di, dj := float32(i-ii), float32(j-jj)
					weight := 1 - float32(math.Sqrt(float64(di*di+dj*dj)))/radius
					if weight <= 0 {
						continue
					}
					value := src.At(ii, jj)
					sum += value * value * weight
					sumR += weight
				}
			}

			if sumR <= 0 {
				return fmt.Errorf("%w: cell (%d, %d)", ErrDegenerateNeighborhood, i, j)
			}
			dst.Set(i, j, float32(math.Sqrt(float64(sum/sumR))))
		}
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
