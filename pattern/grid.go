package pattern

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrImageSize is returned when an image handed to FromImage has not been
// resampled to the pattern size.
var ErrImageSize = errors.New("image has not been resampled to pattern size")

// FromImage converts an image, already resampled to size×size, into a
// luminance grid. Each cell is the root mean square of the pixel's red,
// green and blue channels scaled to [0, 1].
func FromImage(img image.Image, size int) (*Pattern, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	bounds := img.Bounds()
	if bounds.Dx() != size || bounds.Dy() != size {
		return nil, fmt.Errorf("%w: got %dx%d, expected %dx%d", ErrImageSize, bounds.Dx(), bounds.Dy(), size, size)
	}

	pattern := newPattern(size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			pattern.Set(x, y, luminance(img, bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return pattern, nil
}

func luminance(img image.Image, x, y int) float32 {
	r32, g32, b32, _ := img.At(x, y).RGBA()
	red := float32(r32>>8) / 255
	green := float32(g32>>8) / 255
	blue := float32(b32>>8) / 255
	return float32(math.Sqrt(float64((red*red + green*green + blue*blue) / 3)))
}

// Normalize stretches the values of a pattern linearly so that its minimum
// becomes 0 and its maximum 1. A uniform pattern has no range to stretch
// and normalizes to all zeros.
func Normalize(p *Pattern) *Pattern {
	min, max := p.values[0], p.values[0]
	for _, value := range p.values {
		if value < min {
			min = value
		}
		if value > max {
			max = value
		}
	}

	normalized := newPattern(p.size)
	if max == min {
		return normalized
	}
	scale := max - min
	for index, value := range p.values {
		normalized.values[index] = (value - min) / scale
	}
	return normalized
}
