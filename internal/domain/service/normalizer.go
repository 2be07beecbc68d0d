// Package service contains the pure scoring core: population normalization,
// the weighted composite risk score, tier classification and the mitigation
// action heuristics. Nothing in this package performs I/O or holds shared
// mutable state; every function is deterministic over its inputs.
package service

import (
	"github.com/openbom/bomsight/pkg/errors"
)

// Normalizer maps raw values onto a 0-100 scale fitted to a sample
// population at construction time. It does not auto-update: the owner must
// rebuild it whenever the source population changes.
type Normalizer struct {
	min      float64
	valRange float64
}

// NewNormalizer fits a min-max normalizer to a non-empty sample.
// An empty sample is rejected with ErrInvalidPopulation rather than
// producing a silent degenerate mapping. A zero range (all samples equal)
// is guarded to 1 so Normalize never divides by zero.
func NewNormalizer(values []float64) (*Normalizer, error) {
	if len(values) == 0 {
		return nil, errors.ErrInvalidPopulation
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	valRange := max - min
	if valRange < 1 {
		valRange = 1
	}

	return &Normalizer{min: min, valRange: valRange}, nil
}

// Normalize maps v onto the fitted 0-100 scale. Values outside the sampled
// range map outside [0,100]; that is intentional, the normalizer reflects
// the fitted population and callers clamp downstream where needed.
func (n *Normalizer) Normalize(v float64) float64 {
	return (v - n.min) / n.valRange * 100
}
