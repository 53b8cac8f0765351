package pattern

// Stage identifies a checkpoint of the fingerprint pipeline.
type Stage int

const (
	StageBuilt Stage = iota
	StageNormalized
	StageDecomposed
	StageShuffled
	StageSignature
	StageShuffledSignature
)

func (s Stage) String() string {
	switch s {
	case StageBuilt:
		return "built"
	case StageNormalized:
		return "normalized"
	case StageDecomposed:
		return "decomposed"
	case StageShuffled:
		return "shuffled"
	case StageSignature:
		return "signature"
	case StageShuffledSignature:
		return "shuffled-signature"
	}
	return "unknown"
}

// Observer is notified with the intermediate values of a Fingerprinter.
// Implementations must not modify the values they are given.
type Observer interface {
	ObservePattern(name string, stage Stage, p *Pattern)
	ObserveSignature(name string, stage Stage, s Signature)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) ObservePattern(string, Stage, *Pattern)     {}
func (NopObserver) ObserveSignature(string, Stage, Signature) {}
