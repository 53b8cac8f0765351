package imageloader

import (
	"bytes"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"image"
	"image/color"
)

const (
	noRotate  = 0
	rotate180 = 180
	left90    = 90
	right90   = 270

	noHorizontalFlip = false
	horizontalFlip   = true
)

type Orientation struct {
	rotation float64
	flipped  bool
}

var noOrientation = Orientation{noRotate, noHorizontalFlip}

// ReadOrientation reads the EXIF orientation of JPEG data. Images without
// EXIF data, or without an orientation tag, are returned as they are.
func ReadOrientation(data []byte) Orientation {
	decodedExif, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return noOrientation
	}
	tag, err := decodedExif.Get(exif.Orientation)
	if err != nil {
		return noOrientation
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return noOrientation
	}
	return ExifOrientationToAngleAndFlip(orientation)
}

func ExifOrientationToAngleAndFlip(orientation int) Orientation {
	switch orientation {
	case 1:
		return Orientation{noRotate, noHorizontalFlip}
	case 2:
		return Orientation{noRotate, horizontalFlip}
	case 3:
		return Orientation{rotate180, noHorizontalFlip}
	case 4:
		return Orientation{rotate180, horizontalFlip}
	case 5:
		return Orientation{right90, horizontalFlip}
	case 6:
		return Orientation{right90, noHorizontalFlip}
	case 7:
		return Orientation{left90, horizontalFlip}
	case 8:
		return Orientation{left90, noHorizontalFlip}
	default:
		return noOrientation
	}
}

func (s Orientation) Rotation() float64 {
	return s.rotation
}

func (s Orientation) Flipped() bool {
	return s.flipped
}

func ExifRotateImage(loadedImage image.Image, orientation Orientation) image.Image {
	if orientation == noOrientation {
		return loadedImage
	}
	loadedImage = imaging.Rotate(loadedImage, orientation.rotation, color.Black)
	if orientation.flipped {
		return imaging.FlipH(loadedImage)
	} else {
		return loadedImage
	}
}
