// Package sample draws categorical samples from non-negative weights
// or from unnormalized log-likelihoods.
package sample

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNegativeWeight = errors.New("negative weight")
	ErrCapacity       = errors.New("weighted sampler is full")
)

// Weighted accumulates up to a fixed number of weights and draws an
// index with probability proportional to its weight.  When every
// weight is zero, Sample draws uniformly.
type Weighted struct {
	weights []float64
	sum     float64
	rng     *rand.Rand
}

func NewWeighted(capacity int, rng *rand.Rand) *Weighted {
	return &Weighted{
		weights: make([]float64, 0, capacity),
		rng:     rng,
	}
}

// Add appends a weight.
func (s *Weighted) Add(w float64) error {
	if w < 0 || math.IsNaN(w) {
		return errors.Wrapf(ErrNegativeWeight, "weight %v at %d", w, len(s.weights))
	}
	if len(s.weights) == cap(s.weights) {
		return errors.Wrapf(ErrCapacity, "capacity %d", cap(s.weights))
	}
	s.weights = append(s.weights, w)
	s.sum += w
	return nil
}

// AddLogLikelihoods normalizes logs with Normalize and appends the
// resulting probabilities.
func (s *Weighted) AddLogLikelihoods(logs []float64) error {
	for _, p := range Normalize(logs) {
		if e := s.Add(p); e != nil {
			return e
		}
	}
	return nil
}

func (s *Weighted) Len() int {
	return len(s.weights)
}

// Reset drops all weights and keeps the capacity.
func (s *Weighted) Reset() {
	s.weights = s.weights[:0]
	s.sum = 0
}

// Probabilities returns the normalized weights.
func (s *Weighted) Probabilities() []float64 {
	p := make([]float64, len(s.weights))
	if len(p) == 0 {
		return p
	}
	if s.sum <= 0 {
		for i := range p {
			p[i] = 1 / float64(len(p))
		}
		return p
	}
	if inf := s.infinite(); len(inf) > 0 {
		for _, i := range inf {
			p[i] = 1 / float64(len(inf))
		}
		return p
	}
	copy(p, s.weights)
	floats.Scale(1/s.sum, p)
	return p
}

// infinite returns the slots holding +Inf.  They share all the mass,
// as in Normalize.
func (s *Weighted) infinite() []int {
	if !math.IsInf(s.sum, 1) {
		return nil
	}
	var r []int
	for i, w := range s.weights {
		if math.IsInf(w, 1) {
			r = append(r, i)
		}
	}
	return r
}

// Sample returns an index in [0, Len()), or -1 if no weight was added.
func (s *Weighted) Sample() int {
	n := len(s.weights)
	if n == 0 {
		return -1
	}
	if s.sum <= 0 {
		return s.rng.Intn(n)
	}
	if inf := s.infinite(); len(inf) > 0 {
		return inf[s.rng.Intn(len(inf))]
	}

	u := s.rng.Float64() * s.sum
	last := -1
	for i, w := range s.weights {
		if w <= 0 {
			continue
		}
		last = i
		if u < w {
			return i
		}
		u -= w
	}
	// Rounding left a sliver of u; it belongs to the last non-zero slot.
	return last
}

// Normalize converts log-likelihoods into probabilities by subtracting
// the maximum, exponentiating and dividing by the sum.  If every entry
// is -Inf the result is uniform; entries equal to +Inf share all mass.
func Normalize(logs []float64) []float64 {
	p := make([]float64, len(logs))
	if len(p) == 0 {
		return p
	}
	top := floats.Max(logs)
	switch {
	case math.IsInf(top, -1) || math.IsNaN(top):
		for i := range p {
			p[i] = 1
		}
	case math.IsInf(top, 1):
		for i, l := range logs {
			if math.IsInf(l, 1) {
				p[i] = 1
			}
		}
	default:
		for i, l := range logs {
			p[i] = math.Exp(l - top)
		}
	}
	floats.Scale(1/floats.Sum(p), p)
	return p
}
