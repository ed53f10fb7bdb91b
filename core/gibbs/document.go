package gibbs

import (
	"golang.org/x/exp/rand"

	"github.com/godist/canopy/core/corpus"
	"github.com/godist/canopy/core/hist"
)

// Document expands a corpus.Document into one entry per word
// occurrence, each with its own topic.
type Document struct {
	TopicHist hist.Sparse
	Words     []int32
	Topics    []int32
}

func (d *Document) Len() int {
	return len(d.Words)
}

// InitializeDocument assigns every occurrence in src a uniformly random
// topic.
func InitializeDocument(src *corpus.Document, numTopics int, rng *rand.Rand) *Document {
	n := src.Len()
	d := &Document{
		Words:     make([]int32, 0, n),
		Topics:    make([]int32, 0, n),
		TopicHist: hist.NewSparse(),
	}
	for i, w := range src.Words {
		for j := int32(0); j < src.Counts[i]; j++ {
			topic := rng.Intn(numTopics)
			d.Words = append(d.Words, w)
			d.Topics = append(d.Topics, int32(topic))
			d.TopicHist.Inc(topic, 1)
		}
	}
	return d
}

func (d *Document) ApplyToModel(m *Model) {
	for i := range d.Words {
		m.WordTopicHist(d.Words[i]).Inc(int(d.Topics[i]), 1)
		m.GlobalTopicHist.Inc(int(d.Topics[i]), 1)
	}
}
