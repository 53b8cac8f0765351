package imageloader

import (
	"fmt"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	"image"
	"sort"
)

// Resampler scales an image to exactly size×size, ignoring its aspect
// ratio.
type Resampler interface {
	Resample(img image.Image, size int) image.Image
	Name() string
}

const DefaultResampler = "linear"

var resamplers = map[string]Resampler{
	"linear":         &imagingResampler{name: "linear", filter: imaging.Linear},
	"box":            &imagingResampler{name: "box", filter: imaging.Box},
	"bilinear-nfnt":  &nfntResampler{name: "bilinear-nfnt", interpolation: resize.Bilinear},
	"bilinear-xdraw": &xdrawResampler{name: "bilinear-xdraw", scaler: draw.BiLinear},
}

func ResamplerByName(name string) (Resampler, error) {
	if resampler, ok := resamplers[name]; ok {
		return resampler, nil
	}
	return nil, fmt.Errorf("unknown resampler '%s', expected one of %v", name, ResamplerNames())
}

func ResamplerNames() []string {
	names := make([]string, 0, len(resamplers))
	for name := range resamplers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type imagingResampler struct {
	name   string
	filter imaging.ResampleFilter
}

func (s *imagingResampler) Resample(img image.Image, size int) image.Image {
	return imaging.Resize(img, size, size, s.filter)
}

func (s *imagingResampler) Name() string {
	return s.name
}

type nfntResampler struct {
	name          string
	interpolation resize.InterpolationFunction
}

func (s *nfntResampler) Resample(img image.Image, size int) image.Image {
	return resize.Resize(uint(size), uint(size), img, s.interpolation)
}

func (s *nfntResampler) Name() string {
	return s.name
}

type xdrawResampler struct {
	name   string
	scaler draw.Scaler
}

func (s *xdrawResampler) Resample(img image.Image, size int) image.Image {
	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	s.scaler.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	return scaled
}

func (s *xdrawResampler) Name() string {
	return s.name
}
