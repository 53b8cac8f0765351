package database

import (
	"time"
	"vincit.fi/imgsmlr/api/apitype"
)

type MigrationId int64

type Migration struct {
	Id MigrationId `db:"id"`
}

type Image struct {
	Id           apitype.ImageId `db:"id,omitempty"`
	Path         string          `db:"path"`
	FileName     string          `db:"file_name"`
	Directory    string          `db:"directory"`
	ByteSize     int64           `db:"byte_size"`
	ModifiedTime time.Time       `db:"modified_timestamp"`
}

type Fingerprint struct {
	ImageId           apitype.ImageId `db:"image_id"`
	PatternSize       int             `db:"pattern_size"`
	Pattern           []byte          `db:"pattern"`
	ShuffledPattern   []byte          `db:"shuffled_pattern"`
	Signature         []byte          `db:"signature"`
	ShuffledSignature []byte          `db:"shuffled_signature"`
}

type Run struct {
	Id          string    `db:"id"`
	StartedTime time.Time `db:"started_timestamp"`
	PatternSize int       `db:"pattern_size"`
	Resampler   string    `db:"resampler"`
}

type ImageDistance struct {
	RunId             string          `db:"run_id"`
	ImageId           apitype.ImageId `db:"image_id"`
	OtherImageId      apitype.ImageId `db:"other_image_id"`
	Pattern           float32         `db:"pattern"`
	ShuffledPattern   float32         `db:"shuffled_pattern"`
	Signature         float32         `db:"signature"`
	ShuffledSignature float32         `db:"shuffled_signature"`
}
