// Package gibbs implements latent Dirichlet allocation with a fixed
// number of topics, trained by collapsed Gibbs sampling.
package gibbs

import (
	"fmt"
	"io"

	"github.com/godist/canopy/core/corpus"
	"github.com/godist/canopy/core/hist"
)

type Model struct {
	GlobalTopicHist hist.Dense
	WordTopicHists  []hist.Hist
	TopicPrior      []float64
	TopicPriorSum   float64
	WordPrior       float64
	WordPriorSum    float64
}

func NewModel(numTopics, vocabSize int, topicPrior, wordPrior float64) *Model {
	if numTopics < 2 {
		panic(fmt.Sprintf("numTopics = %d, less than 2", numTopics))
	}
	if vocabSize < 2 {
		panic(fmt.Sprintf("vocabSize = %d, less than 2", vocabSize))
	}
	if topicPrior <= 0.0 {
		panic(fmt.Sprintf("topicPrior = %f, less than 0", topicPrior))
	}
	if wordPrior <= 0.0 {
		panic(fmt.Sprintf("wordPrior = %f, less than 0", wordPrior))
	}
	m := &Model{
		GlobalTopicHist: hist.NewDense(numTopics),
		WordTopicHists:  make([]hist.Hist, vocabSize),
		TopicPrior:      make([]float64, numTopics),
		TopicPriorSum:   topicPrior * float64(numTopics),
		WordPrior:       wordPrior,
		WordPriorSum:    wordPrior * float64(vocabSize),
	}
	for i := range m.TopicPrior {
		m.TopicPrior[i] = topicPrior
	}
	return m
}

func (m *Model) NumTopics() int {
	return m.GlobalTopicHist.Len()
}

func (m *Model) VocabSize() int {
	return len(m.WordTopicHists)
}

// WordTopicHist returns the topic histogram of token, creating it on
// first use.
func (m *Model) WordTopicHist(token int32) hist.Hist {
	if h := m.WordTopicHists[token]; h != nil {
		return h
	}
	h := hist.NewSparse()
	m.WordTopicHists[token] = h
	return h
}

// TopWords returns the n most frequent words of topic.
func (m *Model) TopWords(topic, n int) []hist.KeyCount {
	k := hist.NewTopK(n)
	for word, h := range m.WordTopicHists {
		if h != nil {
			if c := h.At(topic); c > 0 {
				k.Push(word, c)
			}
		}
	}
	return k.Sorted()
}

// PrintTopics prints each topic as its n most frequent words in
// descending order of count.
func (m *Model) PrintTopics(w io.Writer, v *corpus.Vocabulary, n int) {
	m.GlobalTopicHist.ForEach(func(topic int, count int64) error {
		fmt.Fprintf(w, "Topic %05d Nt %05d:", topic, count)
		for _, kc := range m.TopWords(topic, n) {
			fmt.Fprintf(w, " %s (%d)", v.Token(int32(kc.Key)), kc.Count)
		}
		fmt.Fprintf(w, "\n")
		return nil
	})
}
