package backend

import (
	"github.com/upper/db/v4"
	"time"
	"vincit.fi/imgsmlr/api/apitype"
	"vincit.fi/imgsmlr/backend/database"
	"vincit.fi/imgsmlr/backend/library"
	"vincit.fi/imgsmlr/common/logger"
)

// Persist stores the successfully fingerprinted images, their fingerprints
// and all distances as a new run.
func (s *Stores) Persist(patternSize int, resampler string, results []*library.FingerprintResult, distances []*library.ImageDistance) (database.RunId, error) {
	startTime := time.Now()

	var imageFiles []*apitype.ImageFile
	for _, result := range results {
		if result.Err() == nil {
			imageFiles = append(imageFiles, result.ImageFile())
		}
	}

	storedImages, err := s.ImageStore.AddImages(imageFiles)
	if err != nil {
		return "", err
	}
	imageIds := map[string]apitype.ImageId{}
	for _, imageFile := range storedImages {
		imageIds[imageFile.Path()] = imageFile.Id()
	}

	for _, result := range results {
		if result.Err() != nil {
			continue
		}
		if err := s.FingerprintStore.Put(imageIds[result.ImageFile().Path()], result.Fingerprint()); err != nil {
			return "", err
		}
	}

	runId, err := s.DistanceStore.StartRun(patternSize, resampler)
	if err != nil {
		return "", err
	}
	err = s.DistanceStore.DoInTransaction(func(session db.Session) error {
		// The same file may be given more than once
		stored := map[[2]apitype.ImageId]bool{}
		for _, distance := range distances {
			imageId := imageIds[distance.First().Path()]
			otherImageId := imageIds[distance.Second().Path()]
			key := [2]apitype.ImageId{imageId, otherImageId}
			if stored[key] {
				continue
			}
			stored[key] = true
			if err := s.DistanceStore.AddDistance(session, runId, imageId, otherImageId, distance.Distances()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info.Printf("Stored %d fingerprints and %d distances as run %s in %s",
		len(storedImages), len(distances), runId, time.Since(startTime))
	return runId, nil
}
