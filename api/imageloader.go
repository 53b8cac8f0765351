package api

import (
	"image"
	"vincit.fi/imgsmlr/api/apitype"
)

type ImageLoader interface {
	// LoadImage decodes the image with its EXIF orientation applied.
	LoadImage(*apitype.ImageFile) (image.Image, error)
	// LoadImageScaled returns the image resampled to exactly size×size.
	LoadImageScaled(*apitype.ImageFile, int) (image.Image, error)
}
