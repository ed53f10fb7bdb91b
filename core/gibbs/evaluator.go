package gibbs

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// TopicWordDist returns P(token|topic) for every topic.
func (m *Model) TopicWordDist(token int32) []float64 {
	dist := make([]float64, m.NumTopics())
	h := m.WordTopicHists[token]
	for t := range dist {
		var c int64
		if h != nil {
			c = h.At(t)
		}
		dist[t] = (float64(c) + m.WordPrior) /
			(float64(m.GlobalTopicHist.At(t)) + m.WordPriorSum)
	}
	return dist
}

// LogLikelihood computes log-likelihood of a document given its
// current topic histogram.  It returns the document length too, so
// that perplexity of a corpus is exp(-sum(logl)/sum(length)).
func (m *Model) LogLikelihood(doc *Document) (float64, int) {
	if doc.Len() <= 0 {
		return 0.0, 0
	}
	theta := make([]float64, m.NumTopics())
	for t := range theta {
		theta[t] = (float64(doc.TopicHist.At(t)) + m.TopicPrior[t]) /
			(float64(doc.Len()) + m.TopicPriorSum)
	}
	logl := 0.0
	for _, w := range doc.Words {
		logl += math.Log(floats.Dot(m.TopicWordDist(w), theta))
	}
	return logl, doc.Len()
}

// Perplexity of docs.
func (m *Model) Perplexity(docs []*Document) float64 {
	logl, n := 0.0, 0
	for _, d := range docs {
		l, c := m.LogLikelihood(d)
		logl += l
		n += c
	}
	if n == 0 {
		return math.Inf(1)
	}
	return math.Exp(-logl / float64(n))
}
