package gibbs

import (
	"strings"

	"golang.org/x/exp/rand"

	"github.com/godist/canopy/core/corpus"
)

const (
	testingV = 4

	testingAlpha = 0.1
	testingBeta  = 0.01
	testingK     = 2
)

// CreateTestingDocument creates a document of "apple orange" with
// topics drawn from a fixed seed.
func CreateTestingDocument(v *corpus.Vocabulary) *Document {
	rng := rand.New(rand.NewSource(1))
	src := corpus.NewDocument(strings.Fields("apple unknown orange"), v, false)
	return InitializeDocument(src, testingK, rng)
}

// CreateTestingModel creates a model with testingK topics over the
// testing vocabulary, holding a single document from
// CreateTestingDocument.
func CreateTestingModel() (*Model, *Document) {
	v, e := corpus.CreateTestingVocabulary()
	if e != nil {
		panic("CreateTestingModel failed at CreateTestingVocabulary")
	}
	d := CreateTestingDocument(v)
	m := NewModel(testingK, testingV, testingAlpha, testingBeta)
	d.ApplyToModel(m)
	return m, d
}

// CreateTestingCorpus initializes the testing corpus on a fresh model.
func CreateTestingCorpus(rng *rand.Rand) (*Model, []*Document, *corpus.Vocabulary) {
	docs, v := corpus.CreateTestingCorpus()
	m := NewModel(testingK, v.Len(), testingAlpha, testingBeta)
	r := make([]*Document, len(docs))
	for i, d := range docs {
		r[i] = InitializeDocument(d, testingK, rng)
		r[i].ApplyToModel(m)
	}
	return m, r, v
}
