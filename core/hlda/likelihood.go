package hlda

import (
	"github.com/godist/canopy/core/corpus"
)

// StickBreaking returns the GEM(m, pi) level distribution of a
// document whose words sit at levels with levelCounts occurrences.
// Level l takes the fraction (m*pi + n_l) / (pi + n_{>=l}) of the stick
// left by the levels above it; the last level takes whatever is left,
// so the result always sums to one.
func StickBreaking(levelCounts []int, m, pi float64) []float64 {
	L := len(levelCounts)
	r := make([]float64, L)
	if L == 0 {
		return r
	}

	below := make([]int, L+1)
	for l := L - 1; l >= 0; l-- {
		below[l] = below[l+1] + levelCounts[l]
	}

	remaining := 1.0
	used := 0.0
	for l := 0; l < L-1; l++ {
		frac := (m*pi + float64(levelCounts[l])) / (pi + float64(below[l]))
		if frac > 1 {
			frac = 1
		} else if frac < 0 {
			frac = 0
		}
		r[l] = remaining * frac
		used += r[l]
		remaining *= 1 - frac
	}
	if last := 1 - used; last > 0 {
		r[L-1] = last
	}
	return r
}

// levelWords splits a document's words by their current level.
type levelWords struct {
	words  [][]int32
	counts [][]int32
}

func splitByLevel(d *corpus.Document, depth int) levelWords {
	lw := levelWords{
		words:  make([][]int32, depth),
		counts: make([][]int32, depth),
	}
	for i, w := range d.Words {
		l := d.Levels[i]
		if l < 0 || l >= depth {
			continue
		}
		lw.words[l] = append(lw.words[l], w)
		lw.counts[l] = append(lw.counts[l], d.Counts[i])
	}
	return lw
}
