package gibbs

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/godist/canopy/core/corpus"
)

// In their paper "Finding Scientific Topics" on PNAS 2004, Thomas
// Griffiths and Mark Steyvers verify LDA on documents mixing the rows
// and the columns of a 5x5 grid.  Every learned topic's five most
// frequent words should be exactly one bar.
func TestRecoverBars(t *testing.T) {
	if testing.Short() {
		t.Skip("convergence test")
	}
	rng := rand.New(rand.NewSource(1))
	src, vocab := corpus.Bars(1000, 100, 1.0, rng)

	numTopics := 2 * corpus.BarsSide
	m := NewModel(numTopics, vocab.Len(), 1.0, 0.01)
	docs := make([]*Document, len(src))
	for i, d := range src {
		docs[i] = InitializeDocument(d, numTopics, rng)
		docs[i].ApplyToModel(m)
	}

	s := NewSampler(m, rng)
	for iter := 0; iter < 300; iter++ {
		for _, d := range docs {
			s.Sample(d)
		}
	}

	learned := make(map[string]bool)
	for topic := 0; topic < numTopics; topic++ {
		learned[barKey(m, vocab, topic)] = true
	}
	for _, bar := range corpus.BarsTopics() {
		key := strings.Join(sorted(bar), " ")
		assert.True(t, learned[key], "bar %s not recovered from %v", key, learned)
	}
}

func barKey(m *Model, v *corpus.Vocabulary, topic int) string {
	var words []string
	for _, kc := range m.TopWords(topic, corpus.BarsSide) {
		words = append(words, v.Token(int32(kc.Key)))
	}
	return strings.Join(sorted(words), " ")
}

func sorted(s []string) []string {
	c := append([]string(nil), s...)
	sort.Strings(c)
	return c
}
