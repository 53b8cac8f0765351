package debugdump

import (
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"image"
	"image/color"
	"path/filepath"
	"testing"
	"vincit.fi/imgsmlr/pattern"
)

func TestPatternImage(t *testing.T) {
	p, err := pattern.FromValues([][]float32{
		{0, 0.5},
		{1, -0.5},
	})
	require.Nil(t, err)

	t.Run("Gray", func(t *testing.T) {
		a := assert.New(t)
		img := PatternImage(p, false)

		a.Equal(image.Rect(0, 0, 2, 2), img.Bounds())
		a.Equal(color.NRGBA{R: 0, G: 0, B: 0, A: 255}, img.NRGBAAt(0, 0))
		a.Equal(color.NRGBA{R: 127, G: 127, B: 127, A: 255}, img.NRGBAAt(0, 1))
		a.Equal(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(1, 0))
		a.Equal(color.NRGBA{R: 0, G: 0, B: 0, A: 255}, img.NRGBAAt(1, 1))
	})

	t.Run("Signed", func(t *testing.T) {
		a := assert.New(t)
		img := PatternImage(p, true)

		a.Equal(color.NRGBA{G: 127, A: 255}, img.NRGBAAt(0, 1))
		a.Equal(color.NRGBA{G: 255, A: 255}, img.NRGBAAt(1, 0))
		a.Equal(color.NRGBA{R: 127, A: 255}, img.NRGBAAt(1, 1))
	})
}

func TestSignatureImage(t *testing.T) {
	a := assert.New(t)

	img := SignatureImage(pattern.Signature{1, 4, 0})
	a.Equal(image.Rect(0, 0, 3, 1), img.Bounds())
	a.Equal(uint8(63), img.NRGBAAt(0, 0).R)
	a.Equal(uint8(255), img.NRGBAAt(1, 0).R)
	a.Equal(uint8(0), img.NRGBAAt(2, 0).R)

	zeros := SignatureImage(pattern.Signature{0, 0})
	a.Equal(uint8(0), zeros.NRGBAAt(1, 0).G)
}

func TestImageObserver(t *testing.T) {
	a := require.New(t)
	dir := filepath.Join(t.TempDir(), "dump")
	sut, err := NewImageObserver(dir)
	a.Nil(err)

	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 30)})
		}
	}
	fingerprinter, err := pattern.NewFingerprinter(8, sut)
	a.Nil(err)
	_, err = fingerprinter.Fingerprint("image.jpg", img)
	a.Nil(err)

	stages := []pattern.Stage{
		pattern.StageBuilt, pattern.StageNormalized, pattern.StageDecomposed, pattern.StageShuffled,
	}
	for _, stage := range stages {
		path := sut.FileName("image.jpg", stage)
		a.FileExists(path)
		dumped, err := imaging.Open(path)
		a.Nil(err)
		a.Equal(image.Rect(0, 0, 8, 8), dumped.Bounds())
	}

	dumped, err := imaging.Open(filepath.Join(dir, "image.jpg-signature.png"))
	a.Nil(err)
	a.Equal(pattern.SignatureLength(8), dumped.Bounds().Dx())
	a.FileExists(sut.FileName("image.jpg", pattern.StageShuffledSignature))
}
