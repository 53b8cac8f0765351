package library

import (
	"context"
	"fmt"
	"image"
	"time"
	"vincit.fi/imgsmlr/api"
	"vincit.fi/imgsmlr/api/apitype"
	"vincit.fi/imgsmlr/common/logger"
	"vincit.fi/imgsmlr/pattern"
)

type fingerprintJob struct {
	index     int
	imageFile *apitype.ImageFile
}

type FingerprintResult struct {
	index       int
	imageFile   *apitype.ImageFile
	fingerprint *pattern.Fingerprint
	err         error
}

func (s *FingerprintResult) ImageFile() *apitype.ImageFile {
	return s.imageFile
}

func (s *FingerprintResult) Fingerprint() *pattern.Fingerprint {
	return s.fingerprint
}

// Err is the reason the image could not be fingerprinted, nil on success.
func (s *FingerprintResult) Err() error {
	return s.err
}

func fingerprintImages(ctx context.Context, input <-chan *fingerprintJob, output chan<- *FingerprintResult, imageLoader api.ImageLoader, fingerprinter *pattern.Fingerprinter) {
	for job := range input {
		if ctx.Err() != nil {
			logger.Debug.Printf("Quit fingerprinting")
			return
		}

		result := &FingerprintResult{
			index:     job.index,
			imageFile: job.imageFile,
		}
		if decodedImage, err := openImageForFingerprint(imageLoader, job.imageFile, fingerprinter.Size); err != nil {
			result.err = err
		} else {
			result.fingerprint, result.err = generateFingerprint(fingerprinter, decodedImage, job.imageFile)
		}
		output <- result
	}
}

func openImageForFingerprint(imageLoader api.ImageLoader, imageFile *apitype.ImageFile, size int) (image.Image, error) {
	if !logger.IsLogLevel(logger.TRACE) {
		return imageLoader.LoadImageScaled(imageFile, size)
	}
	startTime := time.Now()
	decodedImage, err := imageLoader.LoadImageScaled(imageFile, size)
	logger.Trace.Printf("'%s': Image loaded and scaled in %s", imageFile.Path(), time.Since(startTime))
	return decodedImage, err
}

func generateFingerprint(fingerprinter *pattern.Fingerprinter, img image.Image, imageFile *apitype.ImageFile) (*pattern.Fingerprint, error) {
	name := ObserverName(imageFile)
	if !logger.IsLogLevel(logger.TRACE) {
		return fingerprinter.Fingerprint(name, img)
	}
	startTime := time.Now()
	fingerprint, err := fingerprinter.Fingerprint(name, img)
	logger.Trace.Printf("'%s': Calculated fingerprint in %s", imageFile.Path(), time.Since(startTime))
	return fingerprint, err
}

// ObserverName identifies the image to the fingerprint observer. The id keeps
// images with the same file name in different directories apart.
func ObserverName(imageFile *apitype.ImageFile) string {
	if imageFile.Id() == apitype.NoImage {
		return imageFile.FileName()
	}
	return fmt.Sprintf("%d-%s", imageFile.Id(), imageFile.FileName())
}
