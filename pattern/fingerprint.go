package pattern

import (
	"fmt"
	"image"
)

// Fingerprint holds everything computed for one image.
type Fingerprint struct {
	Pattern           *Pattern
	ShuffledPattern   *Pattern
	Signature         Signature
	ShuffledSignature Signature
}

// Distances are the four distances between two fingerprints.
type Distances struct {
	Pattern           float32
	ShuffledPattern   float32
	Signature         float32
	ShuffledSignature float32
}

// Fingerprinter runs the whole pipeline for images already resampled to
// Size×Size.
type Fingerprinter struct {
	Size     int
	Observer Observer
}

// NewFingerprinter returns a Fingerprinter for the given pattern size which
// reports to observer. A nil observer is replaced by NopObserver.
func NewFingerprinter(size int, observer Observer) (*Fingerprinter, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Fingerprinter{Size: size, Observer: observer}, nil
}

// Fingerprint computes the fingerprint of img. The name is only passed on
// to the observer.
func (f *Fingerprinter) Fingerprint(name string, img image.Image) (*Fingerprint, error) {
	raw, err := FromImage(img, f.Size)
	if err != nil {
		return nil, err
	}
	f.Observer.ObservePattern(name, StageBuilt, raw)

	normalized := Normalize(raw)
	f.Observer.ObservePattern(name, StageNormalized, normalized)

	decomposed := Decompose(normalized)
	f.Observer.ObservePattern(name, StageDecomposed, decomposed)

	shuffled, err := Shuffle(decomposed)
	if err != nil {
		return nil, err
	}
	f.Observer.ObservePattern(name, StageShuffled, shuffled)

	fingerprint := &Fingerprint{
		Pattern:           decomposed,
		ShuffledPattern:   shuffled,
		Signature:         NewSignature(decomposed),
		ShuffledSignature: NewSignature(shuffled),
	}
	f.Observer.ObserveSignature(name, StageSignature, fingerprint.Signature)
	f.Observer.ObserveSignature(name, StageShuffledSignature, fingerprint.ShuffledSignature)

	return fingerprint, nil
}

// Compare computes all four distances between two fingerprints.
func Compare(a, b *Fingerprint) (Distances, error) {
	var distances Distances
	var err error
	if distances.Pattern, err = Distance(a.Pattern, b.Pattern); err != nil {
		return Distances{}, err
	}
	if distances.ShuffledPattern, err = Distance(a.ShuffledPattern, b.ShuffledPattern); err != nil {
		return Distances{}, err
	}
	if distances.Signature, err = SignatureDistance(a.Signature, b.Signature); err != nil {
		return Distances{}, err
	}
	if distances.ShuffledSignature, err = SignatureDistance(a.ShuffledSignature, b.ShuffledSignature); err != nil {
		return Distances{}, err
	}
	return distances, nil
}
