package library

import (
	"context"
	"fmt"
	"sync"
	"time"
	"vincit.fi/imgsmlr/api"
	"vincit.fi/imgsmlr/api/apitype"
	"vincit.fi/imgsmlr/common/logger"
	"vincit.fi/imgsmlr/pattern"
)

const (
	FingerprintProgress = "fingerprints"
	DistanceProgress    = "distances"
)

type FingerprintCalculator struct {
	imageLoader      api.ImageLoader
	fingerprinter    *pattern.Fingerprinter
	progressReporter api.ProgressReporter
	threadCount      int
}

func NewFingerprintCalculator(imageLoader api.ImageLoader, fingerprinter *pattern.Fingerprinter, progressReporter api.ProgressReporter, threadCount int) *FingerprintCalculator {
	if threadCount < 1 {
		threadCount = 1
	}
	if progressReporter == nil {
		progressReporter = api.NoopProgressReporter{}
	}
	return &FingerprintCalculator{
		imageLoader:      imageLoader,
		fingerprinter:    fingerprinter,
		progressReporter: progressReporter,
		threadCount:      threadCount,
	}
}

// CalculateFingerprints fingerprints all images on threadCount goroutines.
// The results are in the same order as imageFiles and a failed image only
// sets the error of its own result. The returned error is non-nil only when
// ctx is done before all images are processed.
func (s *FingerprintCalculator) CalculateFingerprints(ctx context.Context, imageFiles []*apitype.ImageFile) ([]*FingerprintResult, error) {
	startTime := time.Now()
	expected := len(imageFiles)
	logger.Info.Printf("Calculate fingerprints for %d images...", expected)
	s.progressReporter.Update(FingerprintProgress, 0, expected)
	results := make([]*FingerprintResult, expected)

	if expected == 0 {
		logger.Info.Printf("No fingerprints to calculate")
		return results, nil
	}

	logger.Info.Printf(" * Using %d threads", s.threadCount)
	inputChannel := make(chan *fingerprintJob, expected)
	for i, imageFile := range imageFiles {
		inputChannel <- &fingerprintJob{index: i, imageFile: imageFile}
	}
	close(inputChannel)

	// Only threadCount images are decoded at once so that memory use stays
	// bounded regardless of the number of images
	outputChannel := make(chan *FingerprintResult)
	var wg sync.WaitGroup
	for i := 0; i < s.threadCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fingerprintImages(ctx, inputChannel, outputChannel, s.imageLoader, s.fingerprinter)
		}()
	}
	go func() {
		wg.Wait()
		close(outputChannel)
	}()

	processed := 0
	failed := 0
	for result := range outputChannel {
		results[result.index] = result
		processed++
		if result.err != nil {
			failed++
			s.progressReporter.Error(fmt.Sprintf("Could not calculate fingerprint for '%s'", result.imageFile.Path()), result.err)
		}
		s.progressReporter.Update(FingerprintProgress, processed, expected)
	}

	if err := ctx.Err(); err != nil && processed < expected {
		logger.Warn.Printf("Fingerprint calculation stopped after %d/%d images", processed, expected)
		return nil, err
	}

	d := time.Since(startTime)
	logger.Info.Printf("%d fingerprints calculated in %s (%d errors)", expected, d, failed)
	if succeeded := expected - failed; succeeded > 0 {
		// Thread count is taken into account, otherwise the average is too small
		average := d * time.Duration(s.threadCount) / time.Duration(succeeded)
		logger.Info.Printf("  On average: %s/image", average)
	}

	return results, nil
}
