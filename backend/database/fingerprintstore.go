package database

import (
	"github.com/upper/db/v4"
	"vincit.fi/imgsmlr/api/apitype"
	"vincit.fi/imgsmlr/common/logger"
	"vincit.fi/imgsmlr/pattern"
)

type FingerprintStore struct {
	database   *Database
	collection db.Collection
}

func NewFingerprintStore(database *Database) *FingerprintStore {
	return &FingerprintStore{
		database: database,
	}
}

func (s *FingerprintStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("fingerprint")
	}
	return s.collection
}

// Put stores the fingerprint of the image, replacing any earlier one.
func (s *FingerprintStore) Put(imageId apitype.ImageId, fingerprint *pattern.Fingerprint) error {
	row, err := toDbFingerprint(imageId, fingerprint)
	if err != nil {
		return err
	}

	return s.database.DoInTransaction(func(session db.Session) error {
		collection := session.Collection(s.getCollection().Name())
		if err := collection.Find(db.Cond{"image_id": imageId}).Delete(); err != nil {
			return err
		}
		if _, err := collection.Insert(row); err != nil {
			logger.Error.Printf("Could not store fingerprint for image %d", imageId)
			return err
		}
		return nil
	})
}

// Get returns db.ErrNoMoreRows when the image has no fingerprint.
func (s *FingerprintStore) Get(imageId apitype.ImageId) (*pattern.Fingerprint, error) {
	var row Fingerprint
	if err := s.getCollection().Find(db.Cond{"image_id": imageId}).One(&row); err != nil {
		return nil, err
	}
	return toFingerprint(&row)
}

func toDbFingerprint(imageId apitype.ImageId, fingerprint *pattern.Fingerprint) (*Fingerprint, error) {
	row := &Fingerprint{
		ImageId:     imageId,
		PatternSize: fingerprint.Pattern.Size(),
	}

	var err error
	if row.Pattern, err = encodeValues(fingerprint.Pattern.Flat()); err != nil {
		return nil, err
	}
	if row.ShuffledPattern, err = encodeValues(fingerprint.ShuffledPattern.Flat()); err != nil {
		return nil, err
	}
	if row.Signature, err = encodeValues(fingerprint.Signature); err != nil {
		return nil, err
	}
	if row.ShuffledSignature, err = encodeValues(fingerprint.ShuffledSignature); err != nil {
		return nil, err
	}
	return row, nil
}

func toFingerprint(row *Fingerprint) (*pattern.Fingerprint, error) {
	fingerprint := &pattern.Fingerprint{}

	values, err := decodeValues(row.Pattern)
	if err != nil {
		return nil, err
	}
	if fingerprint.Pattern, err = pattern.FromFlat(values); err != nil {
		return nil, err
	}

	if values, err = decodeValues(row.ShuffledPattern); err != nil {
		return nil, err
	}
	if fingerprint.ShuffledPattern, err = pattern.FromFlat(values); err != nil {
		return nil, err
	}

	if fingerprint.Signature, err = decodeValues(row.Signature); err != nil {
		return nil, err
	}
	if fingerprint.ShuffledSignature, err = decodeValues(row.ShuffledSignature); err != nil {
		return nil, err
	}
	return fingerprint, nil
}
