package database

import (
	"github.com/google/uuid"
	"github.com/upper/db/v4"
	"time"
	"vincit.fi/imgsmlr/api/apitype"
	"vincit.fi/imgsmlr/common/logger"
	"vincit.fi/imgsmlr/pattern"
)

type RunId string

// StoredDistance is a distance read back from the store.
type StoredDistance struct {
	ImageId      apitype.ImageId
	OtherImageId apitype.ImageId
	Distances    pattern.Distances
}

type DistanceStore struct {
	database           *Database
	runCollection      db.Collection
	distanceCollection db.Collection
}

func NewDistanceStore(database *Database) *DistanceStore {
	return &DistanceStore{
		database: database,
	}
}

func (s *DistanceStore) getRunCollection() db.Collection {
	if s.runCollection == nil {
		s.runCollection = s.database.Session().Collection("run")
	}
	return s.runCollection
}

func (s *DistanceStore) getDistanceCollection() db.Collection {
	if s.distanceCollection == nil {
		s.distanceCollection = s.database.Session().Collection("image_distance")
	}
	return s.distanceCollection
}

func (s *DistanceStore) DoInTransaction(fn func(session db.Session) error) error {
	return s.database.DoInTransaction(fn)
}

// StartRun registers a new batch of distances computed with the given
// pattern size and resampler.
func (s *DistanceStore) StartRun(patternSize int, resampler string) (RunId, error) {
	runUuid, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	run := &Run{
		Id:          runUuid.String(),
		StartedTime: time.Now(),
		PatternSize: patternSize,
		Resampler:   resampler,
	}
	if _, err := s.getRunCollection().Insert(run); err != nil {
		return "", err
	}
	logger.Debug.Printf("Started distance run %s", run.Id)
	return RunId(run.Id), nil
}

// AddDistance stores the distances of one image pair. When session is nil
// the database session is used, otherwise the given transaction.
func (s *DistanceStore) AddDistance(session db.Session, runId RunId, imageId apitype.ImageId, otherImageId apitype.ImageId, distances pattern.Distances) error {
	collection := s.getDistanceCollection()
	if session != nil {
		collection = session.Collection(collection.Name())
	}

	_, err := collection.Insert(&ImageDistance{
		RunId:             string(runId),
		ImageId:           imageId,
		OtherImageId:      otherImageId,
		Pattern:           distances.Pattern,
		ShuffledPattern:   distances.ShuffledPattern,
		Signature:         distances.Signature,
		ShuffledSignature: distances.ShuffledSignature,
	})
	return err
}

// GetDistances returns the distances of the run in insertion order.
func (s *DistanceStore) GetDistances(runId RunId) ([]*StoredDistance, error) {
	var rows []ImageDistance
	err := s.getDistanceCollection().
		Find(db.Cond{"run_id": string(runId)}).
		OrderBy("rowid").
		All(&rows)
	if err != nil {
		return nil, err
	}

	distances := make([]*StoredDistance, len(rows))
	for i, row := range rows {
		distances[i] = &StoredDistance{
			ImageId:      row.ImageId,
			OtherImageId: row.OtherImageId,
			Distances: pattern.Distances{
				Pattern:           row.Pattern,
				ShuffledPattern:   row.ShuffledPattern,
				Signature:         row.Signature,
				ShuffledSignature: row.ShuffledSignature,
			},
		}
	}
	return distances, nil
}

func (s *DistanceStore) GetRun(runId RunId) (*Run, error) {
	var run Run
	if err := s.getRunCollection().Find(db.Cond{"id": string(runId)}).One(&run); err != nil {
		return nil, err
	}
	return &run, nil
}
