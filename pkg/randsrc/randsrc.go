// Package randsrc provides the simulator's single pseudo-random source:
// seedable for reproducible runs, falling back to real entropy otherwise.
package randsrc

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is a monotonically-advancing pseudo-random source shared by every
// test the diagnosis engine performs in a run.
type Source struct {
	rng  *rand.Rand
	seed uint64
}

// New creates a Source. If seed is nil, a seed is drawn from the system's
// cryptographic entropy source and returned via Seed() so the run can be
// logged and replayed.
func New(seed *uint64) (*Source, error) {
	var s uint64
	if seed != nil {
		s = *seed
	} else {
		var buf [8]byte
		if _, err := cryptorand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("randsrc: failed to seed from entropy: %w", err)
		}
		s = binary.LittleEndian.Uint64(buf[:])
	}

	return &Source{
		rng:  rand.New(rand.NewPCG(s, s)),
		seed: s,
	}, nil
}

// Seed returns the seed this source was constructed with, for logging.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Chance reports whether an event with the given probability (in [0, 1])
// occurs on this draw.
func (s *Source) Chance(probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	return s.rng.Float64() < probability
}
