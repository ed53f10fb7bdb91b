package hlda

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/godist/canopy/core/corpus"
)

const (
	testingGroupWords = 5
	testingEta        = 0.1
)

// CreateTestingConfig returns a two-level configuration that favors
// deep topics.
func CreateTestingConfig() Config {
	return Config{
		MaxDepth:    2,
		Gamma:       1.0,
		Eta:         []float64{0.5, 0.1},
		M:           0.2,
		Pi:          10,
		Seed:        1,
		Parallelism: 1,
	}
}

// CreateTestingGroups creates docsPerGroup documents for each of two
// groups with disjoint vocabularies: g0w0..g0w4 and g1w0..g1w4.
func CreateTestingGroups(docsPerGroup, docLen int, seed uint64) ([]*corpus.Document, *corpus.Vocabulary) {
	rng := rand.New(rand.NewSource(seed))
	v := corpus.NewVocabulary()
	for g := 0; g < 2; g++ {
		for w := 0; w < testingGroupWords; w++ {
			v.IdFor(fmt.Sprintf("g%dw%d", g, w))
		}
	}
	docs := make([]*corpus.Document, 0, 2*docsPerGroup)
	for i := 0; i < docsPerGroup; i++ {
		for g := 0; g < 2; g++ {
			counts := make(map[int32]int32)
			for j := 0; j < docLen; j++ {
				counts[int32(g*testingGroupWords+rng.Intn(testingGroupWords))]++
			}
			docs = append(docs, corpus.FromCounts(counts))
		}
	}
	return docs, v
}

// TestingGroupOf returns the group of a document made by
// CreateTestingGroups.
func TestingGroupOf(d *corpus.Document) int {
	return int(d.Words[0]) / testingGroupWords
}
