// Package split partitions one class's items into train/val/test.
//
// The shuffle is seeded and uses math/rand, whose generator sequence is
// covered by the Go 1 compatibility promise: the same seed over the same
// input order yields the same partition on every run and platform. Split
// is applied per class, never globally, so every split carries an
// approximately proportional sample of every class.
package split

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
)

// ErrInvalidRatios reports split ratios that do not sum to 1.
var ErrInvalidRatios = errors.New("split ratios must sum to 1")

// DefaultRatios is the train/val/test proportion used when no override is
// configured.
var DefaultRatios = [3]float64{0.7, 0.2, 0.1}

const ratioTolerance = 1e-6

// ValidateRatios checks that ratios sum to 1 within floating tolerance.
// Callers validate before any filesystem work so a bad configuration never
// touches the output tree.
func ValidateRatios(ratios [3]float64) error {
	if math.Abs(ratios[0]+ratios[1]+ratios[2]-1.0) > ratioTolerance {
		return fmt.Errorf("%w: got %v", ErrInvalidRatios, ratios)
	}
	return nil
}

// Three shuffles a copy of items with the seeded generator and cuts it at
// floor(n*r0) and floor(n*(r0+r1)). The three returned slices are disjoint
// and together contain every input item exactly once. Tiny classes may
// legitimately yield an empty val or test slice.
func Three(items []string, ratios [3]float64, seed int64) (train, val, test []string, err error) {
	if err := ValidateRatios(ratios); err != nil {
		return nil, nil, nil, err
	}

	shuffled := slices.Clone(items)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := len(shuffled)
	n1 := int(float64(n) * ratios[0])
	n2 := int(float64(n) * (ratios[0] + ratios[1]))
	return shuffled[:n1], shuffled[n1:n2], shuffled[n2:], nil
}
