package pattern

import (
	"github.com/stretchr/testify/require"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func uniformImage(size int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	t.Run("Grey pixels keep their intensity", func(t *testing.T) {
		a := require.New(t)
		pattern, err := FromImage(uniformImage(4, color.RGBA{R: 51, G: 51, B: 51, A: 255}), 4)
		a.Nil(err)
		for _, value := range pattern.Flat() {
			a.InDelta(0.2, value, epsilon)
		}
	})

	t.Run("Root mean square of the channels", func(t *testing.T) {
		a := require.New(t)
		img := uniformImage(2, color.Black)
		img.Set(1, 0, color.RGBA{R: 255, A: 255})
		img.Set(0, 1, color.White)

		pattern, err := FromImage(img, 2)
		a.Nil(err)
		a.InDelta(0, pattern.At(0, 0), epsilon)
		a.InDelta(0.57735, pattern.At(1, 0), epsilon)
		a.InDelta(1, pattern.At(0, 1), epsilon)
	})

	t.Run("Image bounds not at origin", func(t *testing.T) {
		a := require.New(t)
		img := image.NewRGBA(image.Rect(10, 20, 12, 22))
		img.Set(11, 20, color.White)

		pattern, err := FromImage(img, 2)
		a.Nil(err)
		a.InDelta(1, pattern.At(1, 0), epsilon)
		a.InDelta(0, pattern.At(0, 1), epsilon)
	})

	t.Run("Image not resampled", func(t *testing.T) {
		a := require.New(t)
		_, err := FromImage(image.NewRGBA(image.Rect(0, 0, 8, 4)), 4)
		a.ErrorIs(err, ErrImageSize)
	})

	t.Run("Invalid size", func(t *testing.T) {
		a := require.New(t)
		_, err := FromImage(image.NewRGBA(image.Rect(0, 0, 3, 3)), 3)
		a.ErrorIs(err, ErrInvalidSize)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("Range is stretched to zero and one", func(t *testing.T) {
		a := require.New(t)
		rng := rand.New(rand.NewSource(3))
		for round := 0; round < 10; round++ {
			raw := randomPattern(rng, 16)
			normalized := Normalize(raw)

			var min, max float32 = 1, 0
			for _, value := range normalized.Flat() {
				a.GreaterOrEqual(value, float32(0))
				a.LessOrEqual(value, float32(1))
				if value < min {
					min = value
				}
				if value > max {
					max = value
				}
			}
			a.Equal(float32(0), min)
			a.Equal(float32(1), max)
		}
	})

	t.Run("Linear mapping", func(t *testing.T) {
		a := require.New(t)
		raw, _ := FromValues([][]float32{{0.2, 0.4}, {0.6, 0.3}})
		normalized := Normalize(raw)
		a.InDelta(0, normalized.At(0, 0), epsilon)
		a.InDelta(0.5, normalized.At(0, 1), epsilon)
		a.InDelta(1, normalized.At(1, 0), epsilon)
		a.InDelta(0.25, normalized.At(1, 1), epsilon)
	})

	t.Run("Uniform pattern becomes zero", func(t *testing.T) {
		a := require.New(t)
		raw, _ := FromValues([][]float32{{0.7, 0.7}, {0.7, 0.7}})
		normalized := Normalize(raw)
		a.Equal([]float32{0, 0, 0, 0}, normalized.Flat())
	})

	t.Run("Input is not modified", func(t *testing.T) {
		a := require.New(t)
		raw := randomPattern(rand.New(rand.NewSource(4)), 8)
		before := raw.Clone()
		_ = Normalize(raw)
		a.True(before.Equal(raw))
	})
}
