package library

import (
	"context"
	"fmt"
	"sync"
	"time"
	"vincit.fi/imgsmlr/api/apitype"
	"vincit.fi/imgsmlr/common/logger"
	"vincit.fi/imgsmlr/pattern"
)

// ImageDistance holds the distances between two fingerprinted images. First
// always precedes Second in the input.
type ImageDistance struct {
	first     *FingerprintResult
	second    *FingerprintResult
	distances pattern.Distances
	err       error
}

func (s *ImageDistance) First() *apitype.ImageFile {
	return s.first.imageFile
}

func (s *ImageDistance) Second() *apitype.ImageFile {
	return s.second.imageFile
}

func (s *ImageDistance) Distances() pattern.Distances {
	return s.distances
}

func (s *ImageDistance) String() string {
	return fmt.Sprintf("%s / %s: %f %f %f %f",
		s.First().Path(), s.Second().Path(),
		s.distances.Pattern, s.distances.ShuffledPattern,
		s.distances.Signature, s.distances.ShuffledSignature)
}

// Pairs returns every pair (j, i) with j < i of the successfully
// fingerprinted results, ordered by i and then j.
func Pairs(results []*FingerprintResult) []*ImageDistance {
	var fingerprinted []*FingerprintResult
	for _, result := range results {
		if result != nil && result.err == nil {
			fingerprinted = append(fingerprinted, result)
		}
	}

	var pairs []*ImageDistance
	for i := range fingerprinted {
		for j := 0; j < i; j++ {
			pairs = append(pairs, &ImageDistance{
				first:  fingerprinted[j],
				second: fingerprinted[i],
			})
		}
	}
	return pairs
}

func compareImages(ctx context.Context, input <-chan *ImageDistance, output chan<- *ImageDistance) {
	for pair := range input {
		if ctx.Err() != nil {
			return
		}
		pair.distances, pair.err = pattern.Compare(pair.first.fingerprint, pair.second.fingerprint)
		output <- pair
	}
}

// CalculateDistances compares every pair of successfully fingerprinted
// images. Failed results are skipped.
func (s *FingerprintCalculator) CalculateDistances(ctx context.Context, results []*FingerprintResult) ([]*ImageDistance, error) {
	startTime := time.Now()
	pairs := Pairs(results)
	expected := len(pairs)
	logger.Info.Printf("Calculate distances for %d image pairs...", expected)
	s.progressReporter.Update(DistanceProgress, 0, expected)

	if expected == 0 {
		return pairs, nil
	}

	inputChannel := make(chan *ImageDistance, expected)
	for _, pair := range pairs {
		inputChannel <- pair
	}
	close(inputChannel)

	outputChannel := make(chan *ImageDistance)
	var wg sync.WaitGroup
	for i := 0; i < s.threadCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			compareImages(ctx, inputChannel, outputChannel)
		}()
	}
	go func() {
		wg.Wait()
		close(outputChannel)
	}()

	processed := 0
	var firstErr error
	for pair := range outputChannel {
		processed++
		if pair.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("could not compare '%s' and '%s': %w", pair.First().Path(), pair.Second().Path(), pair.err)
		}
		s.progressReporter.Update(DistanceProgress, processed, expected)
	}

	if err := ctx.Err(); err != nil && processed < expected {
		logger.Warn.Printf("Distance calculation stopped after %d/%d pairs", processed, expected)
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	logger.Info.Printf("%d distances calculated in %s", expected, time.Since(startTime))
	return pairs, nil
}
