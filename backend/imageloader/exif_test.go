package imageloader

import (
	"github.com/stretchr/testify/assert"
	"image"
	"image/color"
	"testing"
)

func TestExifOrientationToAngleAndFlip(t *testing.T) {
	a := assert.New(t)

	expected := map[int]Orientation{
		0: {0, false},
		1: {0, false},
		2: {0, true},
		3: {180, false},
		4: {180, true},
		5: {270, true},
		6: {270, false},
		7: {90, true},
		8: {90, false},
		9: {0, false},
	}
	for orientation, value := range expected {
		result := ExifOrientationToAngleAndFlip(orientation)
		a.Equal(value.Rotation(), result.Rotation(), "orientation %d", orientation)
		a.Equal(value.Flipped(), result.Flipped(), "orientation %d", orientation)
	}
}

func TestExifRotateImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.Black)

	t.Run("No rotation", func(t *testing.T) {
		a := assert.New(t)
		a.Same(img, ExifRotateImage(img, ExifOrientationToAngleAndFlip(1)))
	})

	t.Run("Rotate 90 clockwise", func(t *testing.T) {
		a := assert.New(t)
		rotated := ExifRotateImage(img, ExifOrientationToAngleAndFlip(6))
		a.Equal(1, rotated.Bounds().Dx())
		a.Equal(2, rotated.Bounds().Dy())

		r, _, _, _ := rotated.At(0, 0).RGBA()
		a.Equal(uint32(0xffff), r)
	})

	t.Run("Flip", func(t *testing.T) {
		a := assert.New(t)
		flipped := ExifRotateImage(img, ExifOrientationToAngleAndFlip(2))
		a.Equal(2, flipped.Bounds().Dx())

		r, _, _, _ := flipped.At(0, 0).RGBA()
		a.Equal(uint32(0), r)
	})
}

func TestReadOrientation_NoExif(t *testing.T) {
	a := assert.New(t)
	a.Equal(noOrientation, ReadOrientation([]byte("no exif here")))
	a.Equal(noOrientation, ReadOrientation(nil))
}
