package gibbs

import (
	log "github.com/golang/glog"
	"golang.org/x/exp/rand"

	"github.com/godist/canopy/core/sample"
)

// Sampler resamples the topic of every word occurrence of a document
// from its full conditional
//
//	P(z=k) ∝ (n_dk + a_k) (n_kw + b) / (n_k + bV)
//
// where the counts exclude the occurrence being resampled.
type Sampler struct {
	model   *Model
	weights *sample.Weighted
}

func NewSampler(m *Model, rng *rand.Rand) *Sampler {
	return &Sampler{
		model:   m,
		weights: sample.NewWeighted(m.NumTopics(), rng),
	}
}

func (s *Sampler) neglectOrConsiderWord(doc *Document, token, topic int32, neglect bool) {
	t := int(topic)
	if neglect {
		s.model.WordTopicHist(token).Dec(t, 1)
		s.model.GlobalTopicHist.Dec(t, 1)
		doc.TopicHist.Dec(t, 1)
	} else {
		s.model.WordTopicHist(token).Inc(t, 1)
		s.model.GlobalTopicHist.Inc(t, 1)
		doc.TopicHist.Inc(t, 1)
	}
}

func (s *Sampler) sampleNewTopic(doc *Document, token int32) int32 {
	m := s.model
	h := m.WordTopicHist(token)
	s.weights.Reset()
	for t := 0; t < m.NumTopics(); t++ {
		w := (float64(doc.TopicHist.At(t)) + m.TopicPrior[t]) *
			(float64(h.At(t)) + m.WordPrior) /
			(float64(m.GlobalTopicHist.At(t)) + m.WordPriorSum)
		if e := s.weights.Add(w); e != nil {
			log.Fatalf("Failed in sampling topic %d: %v", t, e)
		}
	}
	return int32(s.weights.Sample())
}

func (s *Sampler) Sample(doc *Document) {
	for i := 0; i < doc.Len(); i++ {
		token := doc.Words[i]
		s.neglectOrConsiderWord(doc, token, doc.Topics[i], true)
		newTopic := s.sampleNewTopic(doc, token)
		doc.Topics[i] = newTopic
		s.neglectOrConsiderWord(doc, token, newTopic, false)
	}
}
