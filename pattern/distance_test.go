package pattern

import (
	"github.com/stretchr/testify/require"
	"math"
	"math/rand"
	"testing"
)

func TestDistance_Identity(t *testing.T) {
	a := require.New(t)
	rng := rand.New(rand.NewSource(15))
	for _, size := range []int{2, 16, 64} {
		p := Decompose(randomPattern(rng, size))
		distance, err := Distance(p, p.Clone())
		a.Nil(err)
		a.Equal(float32(0), distance)
	}
}

func TestDistance_Symmetry(t *testing.T) {
	a := require.New(t)
	rng := rand.New(rand.NewSource(16))
	for round := 0; round < 10; round++ {
		p1 := Decompose(randomPattern(rng, 32))
		p2 := Decompose(randomPattern(rng, 32))

		d12, err := Distance(p1, p2)
		a.Nil(err)
		d21, err := Distance(p2, p1)
		a.Nil(err)

		a.Equal(d12, d21)
		a.Greater(d12, float32(0))
	}
}

func TestDistance_Weights(t *testing.T) {
	zero, _ := New(4)

	for _, test := range []struct {
		name     string
		x, y     int
		expected float64
	}{
		{"Largest level", 2, 1, 1},
		{"Smallest level", 1, 1, math.Sqrt2},
		{"Approximation", 0, 0, 2},
	} {
		t.Run(test.name, func(t *testing.T) {
			a := require.New(t)
			other := zero.Clone()
			other.Set(test.x, test.y, 1)

			distance, err := Distance(zero, other)
			a.Nil(err)
			a.InDelta(test.expected, distance, epsilon)
		})
	}
}

func TestDistance_SizeMismatch(t *testing.T) {
	a := require.New(t)
	p4, _ := New(4)
	p8, _ := New(8)

	_, err := Distance(p4, p8)
	a.ErrorIs(err, ErrSizeMismatch)
}

func TestSignatureDistance(t *testing.T) {
	t.Run("Euclidean", func(t *testing.T) {
		a := require.New(t)
		distance, err := SignatureDistance(Signature{0, 3, 1}, Signature{4, 0, 1})
		a.Nil(err)
		a.InDelta(5, distance, epsilon)
	})

	t.Run("Identity and symmetry", func(t *testing.T) {
		a := require.New(t)
		s1 := Signature{1, 2, 3}
		s2 := Signature{3, 2, 1}

		d, err := SignatureDistance(s1, s1.Clone())
		a.Nil(err)
		a.Equal(float32(0), d)

		d12, _ := SignatureDistance(s1, s2)
		d21, _ := SignatureDistance(s2, s1)
		a.Equal(d12, d21)
	})

	t.Run("Triangle inequality", func(t *testing.T) {
		a := require.New(t)
		rng := rand.New(rand.NewSource(17))
		signatures := make([]Signature, 6)
		for index := range signatures {
			signatures[index] = NewSignature(Decompose(Normalize(randomPattern(rng, 32))))
		}

		for _, s1 := range signatures {
			for _, s2 := range signatures {
				for _, s3 := range signatures {
					d12, _ := SignatureDistance(s1, s2)
					d23, _ := SignatureDistance(s2, s3)
					d13, _ := SignatureDistance(s1, s3)
					a.LessOrEqual(float64(d13), float64(d12)+float64(d23)+1e-3)
				}
			}
		}
	})

	t.Run("Length mismatch", func(t *testing.T) {
		a := require.New(t)
		_, err := SignatureDistance(Signature{1, 2}, Signature{1, 2, 3})
		a.ErrorIs(err, ErrSizeMismatch)
	})
}
