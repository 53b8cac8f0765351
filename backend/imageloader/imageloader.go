package imageloader

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/pixiv/go-libjpeg/jpeg"
	"image"
	"image/gif"
	"image/png"
	"os"
	"time"
	"vincit.fi/imgsmlr/api"
	"vincit.fi/imgsmlr/api/apitype"
	"vincit.fi/imgsmlr/common/logger"
)

var ErrUnknownExtension = errors.New("unknown image extension")

var options = &jpeg.DecoderOptions{}

type DecodingImageLoader struct {
	resampler Resampler

	api.ImageLoader
}

func NewImageLoader(resampler Resampler) api.ImageLoader {
	return &DecodingImageLoader{
		resampler: resampler,
	}
}

func (s *DecodingImageLoader) LoadImage(imageFile *apitype.ImageFile) (image.Image, error) {
	return s.load(imageFile, options)
}

// LoadImageScaled decodes the image and resamples it to size×size. JPEG
// images are already scaled down by libjpeg while decoding, to the smallest
// DCT scale that is still at least size×size.
func (s *DecodingImageLoader) LoadImageScaled(imageFile *apitype.ImageFile, size int) (image.Image, error) {
	loaded, err := s.load(imageFile, &jpeg.DecoderOptions{ScaleTarget: image.Rect(0, 0, size, size)})
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	scaled := s.resampler.Resample(loaded, size)
	logger.Trace.Printf("'%s': Resampled with %s in %s", imageFile.Path(), s.resampler.Name(), time.Since(startTime))
	return scaled, nil
}

func (s *DecodingImageLoader) load(imageFile *apitype.ImageFile, jpegOptions *jpeg.DecoderOptions) (image.Image, error) {
	if imageFile.Format() == apitype.UnknownFormat {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, imageFile.Path())
	}

	startTime := time.Now()
	data, err := os.ReadFile(imageFile.Path())
	if err != nil {
		return nil, err
	}

	decoded, err := Decode(data, imageFile.Format(), jpegOptions)
	if err != nil {
		return nil, fmt.Errorf("could not decode '%s': %w", imageFile.Path(), err)
	}
	logger.Trace.Printf("'%s': Image loaded in %s", imageFile.Path(), time.Since(startTime))
	return decoded, nil
}

// Decode decodes in-memory image data of the given format. The EXIF
// orientation of JPEG images is applied.
func Decode(data []byte, format apitype.ImageFormat, jpegOptions *jpeg.DecoderOptions) (image.Image, error) {
	switch format {
	case apitype.JpegFormat:
		decoded, err := jpeg.Decode(bytes.NewReader(data), jpegOptions)
		if err != nil {
			return nil, err
		}
		return ExifRotateImage(decoded, ReadOrientation(data)), nil
	case apitype.PngFormat:
		return png.Decode(bytes.NewReader(data))
	case apitype.GifFormat:
		return gif.Decode(bytes.NewReader(data))
	default:
		return nil, ErrUnknownExtension
	}
}
