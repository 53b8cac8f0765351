package pattern

import (
	"github.com/stretchr/testify/require"
	"image"
	"image/color"
	"math"
	"testing"
)

type recordingObserver struct {
	stages []Stage
}

func (s *recordingObserver) ObservePattern(name string, stage Stage, p *Pattern) {
	s.stages = append(s.stages, stage)
}

func (s *recordingObserver) ObserveSignature(name string, stage Stage, signature Signature) {
	s.stages = append(s.stages, stage)
}

func checkerboard(size int, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.RGBA{R: 40, G: 80, B: 120, A: 255})
			}
		}
	}
	return img
}

func TestNewFingerprinter(t *testing.T) {
	a := require.New(t)

	fingerprinter, err := NewFingerprinter(DefaultSize, nil)
	a.Nil(err)
	a.Equal(NopObserver{}, fingerprinter.Observer)

	_, err = NewFingerprinter(48, nil)
	a.ErrorIs(err, ErrInvalidSize)
}

func TestFingerprinter_Fingerprint(t *testing.T) {
	t.Run("Identical images", func(t *testing.T) {
		a := require.New(t)
		sut, _ := NewFingerprinter(32, nil)

		f1, err := sut.Fingerprint("first", checkerboard(32, 4))
		a.Nil(err)
		f2, err := sut.Fingerprint("second", checkerboard(32, 4))
		a.Nil(err)

		a.True(f1.Pattern.Equal(f2.Pattern))
		a.True(f1.ShuffledPattern.Equal(f2.ShuffledPattern))
		a.Equal(f1.Signature, f2.Signature)
		a.Equal(f1.ShuffledSignature, f2.ShuffledSignature)

		distances, err := Compare(f1, f2)
		a.Nil(err)
		a.Equal(Distances{}, distances)
	})

	t.Run("Different images", func(t *testing.T) {
		a := require.New(t)
		sut, _ := NewFingerprinter(32, nil)

		f1, _ := sut.Fingerprint("fine", checkerboard(32, 2))
		f2, _ := sut.Fingerprint("coarse", checkerboard(32, 8))

		distances, err := Compare(f1, f2)
		a.Nil(err)
		a.Greater(distances.Pattern, float32(0))
		a.Greater(distances.ShuffledPattern, float32(0))
		a.Greater(distances.Signature, float32(0))
		a.Greater(distances.ShuffledSignature, float32(0))
	})

	t.Run("Black and white images", func(t *testing.T) {
		a := require.New(t)
		sut, _ := NewFingerprinter(16, nil)

		black, err := sut.Fingerprint("black", uniformImage(16, color.Black))
		a.Nil(err)
		white, err := sut.Fingerprint("white", uniformImage(16, color.White))
		a.Nil(err)

		distances, err := Compare(black, white)
		a.Nil(err)
		for _, d := range []float32{distances.Pattern, distances.ShuffledPattern, distances.Signature, distances.ShuffledSignature} {
			a.False(math.IsNaN(float64(d)))
			a.Equal(float32(0), d)
		}

		again, err := Compare(black, white)
		a.Nil(err)
		a.Equal(distances, again)
	})

	t.Run("Observer sees every stage in order", func(t *testing.T) {
		a := require.New(t)
		observer := &recordingObserver{}
		sut, _ := NewFingerprinter(8, observer)

		_, err := sut.Fingerprint("image", checkerboard(8, 2))
		a.Nil(err)
		a.Equal([]Stage{
			StageBuilt, StageNormalized, StageDecomposed, StageShuffled, StageSignature, StageShuffledSignature,
		}, observer.stages)
	})

	t.Run("Image of wrong size", func(t *testing.T) {
		a := require.New(t)
		sut, _ := NewFingerprinter(8, nil)

		_, err := sut.Fingerprint("image", checkerboard(16, 2))
		a.ErrorIs(err, ErrImageSize)
	})
}

func TestCompare_SizeMismatch(t *testing.T) {
	a := require.New(t)
	small, _ := NewFingerprinter(8, nil)
	large, _ := NewFingerprinter(16, nil)

	f1, _ := small.Fingerprint("small", checkerboard(8, 2))
	f2, _ := large.Fingerprint("large", checkerboard(16, 2))

	_, err := Compare(f1, f2)
	a.ErrorIs(err, ErrSizeMismatch)
}

func TestStage_String(t *testing.T) {
	a := require.New(t)
	a.Equal("decomposed", StageDecomposed.String())
	a.Equal("shuffled-signature", StageShuffledSignature.String())
	a.Equal("unknown", Stage(42).String())
}
