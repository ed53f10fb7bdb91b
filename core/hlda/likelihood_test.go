package hlda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/godist/canopy/core/corpus"
)

func TestStickBreakingWithoutWords(t *testing.T) {
	assert.InDeltaSlice(t, []float64{0.5, 0.25, 0.25},
		StickBreaking([]int{0, 0, 0}, 0.5, 100), 1e-12)
	assert.Empty(t, StickBreaking(nil, 0.5, 100))
	assert.Equal(t, []float64{1}, StickBreaking([]int{4}, 0.5, 100))
}

func TestStickBreakingFollowsCounts(t *testing.T) {
	// (m*pi + n_0) / (pi + n) = (1 + 8) / (2 + 10)
	r := StickBreaking([]int{8, 2}, 0.5, 2)
	assert.InDelta(t, 0.75, r[0], 1e-12)
	assert.InDelta(t, 0.25, r[1], 1e-12)
}

func TestStickBreakingSumsToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 500; i++ {
		counts := make([]int, 1+rng.Intn(6))
		for l := range counts {
			counts[l] = rng.Intn(50)
		}
		m := 0.01 + 3*rng.Float64()
		pi := 0.01 + 1000*rng.Float64()
		r := StickBreaking(counts, m, pi)
		for _, p := range r {
			assert.True(t, p >= 0, "negative stick in %v for m=%v pi=%v", r, m, pi)
		}
		assert.InDelta(t, 1.0, floats.Sum(r), 1e-9)
	}
}

func TestSplitByLevel(t *testing.T) {
	d := corpus.FromCounts(map[int32]int32{1: 2, 4: 1, 6: 3})
	d.Levels = []int{1, 0, 1}
	lw := splitByLevel(d, 3)
	assert.Equal(t, []int32{4}, lw.words[0])
	assert.Equal(t, []int32{1, 6}, lw.words[1])
	assert.Equal(t, []int32{2, 3}, lw.counts[1])
	assert.Empty(t, lw.words[2])
}
