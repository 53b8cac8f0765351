// Package debugdump writes the intermediate patterns and signatures of the
// fingerprint calculation as PNG images.
package debugdump

import (
	"fmt"
	"github.com/disintegration/imaging"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"vincit.fi/imgsmlr/common/logger"
	"vincit.fi/imgsmlr/pattern"
)

type ImageObserver struct {
	directory string

	pattern.Observer
}

func NewImageObserver(directory string) (*ImageObserver, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, err
	}
	return &ImageObserver{directory: directory}, nil
}

// FileName is the name of the dump file for the image and stage.
func (s *ImageObserver) FileName(name string, stage pattern.Stage) string {
	return filepath.Join(s.directory, fmt.Sprintf("%s-%s.png", name, stage))
}

func (s *ImageObserver) ObservePattern(name string, stage pattern.Stage, p *pattern.Pattern) {
	signed := stage == pattern.StageDecomposed || stage == pattern.StageShuffled
	s.save(s.FileName(name, stage), PatternImage(p, signed))
}

func (s *ImageObserver) ObserveSignature(name string, stage pattern.Stage, signature pattern.Signature) {
	s.save(s.FileName(name, stage), SignatureImage(signature))
}

func (s *ImageObserver) save(path string, img image.Image) {
	if err := imaging.Save(img, path); err != nil {
		logger.Warn.Printf("Could not write '%s': %s", path, err)
	} else {
		logger.Trace.Printf("Wrote '%s'", path)
	}
}

// PatternImage renders value (x, y) as pixel (x, y). Signed patterns show
// positive values in green and negative values in red, others are gray.
func PatternImage(p *pattern.Pattern, signed bool) *image.NRGBA {
	size := p.Size()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			value := p.At(x, y)
			switch {
			case !signed:
				level := toLevel(value)
				img.SetNRGBA(x, y, color.NRGBA{R: level, G: level, B: level, A: 255})
			case value >= 0:
				img.SetNRGBA(x, y, color.NRGBA{G: toLevel(value), A: 255})
			default:
				img.SetNRGBA(x, y, color.NRGBA{R: toLevel(-value), A: 255})
			}
		}
	}
	return img
}

// SignatureImage renders the signature as a single gray row scaled by its
// largest value.
func SignatureImage(signature pattern.Signature) *image.NRGBA {
	var max float32
	for _, value := range signature {
		if value > max {
			max = value
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, len(signature), 1))
	for i, value := range signature {
		var level uint8
		if max > 0 {
			level = toLevel(value / max)
		}
		img.SetNRGBA(i, 0, color.NRGBA{R: level, G: level, B: level, A: 255})
	}
	return img
}

func toLevel(value float32) uint8 {
	if value <= 0 {
		return 0
	} else if value >= 1 {
		return 255
	}
	return uint8(value * 255.999)
}
