package utils

import (
	log "github.com/golang/glog"
	"golang.org/x/exp/rand"

	"github.com/godist/canopy/core/corpus"
	"github.com/godist/canopy/core/gibbs"
)

func LoadVocabOrDie(filename string) *corpus.Vocabulary {
	log.Infof("Loading vocab %s ... ", filename)

	r, e := corpus.Open(filename)
	if e != nil {
		log.Fatalf("Cannot open vocab file %s: %v", filename, e)
	}
	defer r.Close()

	vocab := corpus.NewVocabulary()
	if e := vocab.Load(r); e != nil {
		log.Fatalf("Failed loading vocab file %s: %v", filename, e)
	}

	log.Infof("Done loading vocabulary, %d tokens.", vocab.Len())
	return vocab
}

// LoadCorpusOrDie loads documents of length in [minLen, maxLen].  If
// vocab is nil, the vocabulary is built from the corpus; otherwise
// tokens out of vocab are dropped.
func LoadCorpusOrDie(filename string, vocab *corpus.Vocabulary,
	minLen, maxLen int) ([]*corpus.Document, *corpus.Vocabulary) {

	log.Infof("Loading corpus %s ... ", filename)

	r, e := corpus.Open(filename)
	if e != nil {
		log.Fatalf("Cannot open corpus file %s: %v", filename, e)
	}
	defer r.Close()

	grow := vocab == nil
	if grow {
		vocab = corpus.NewVocabulary()
	}
	docs, scanned, e := corpus.Load(r, vocab, grow, minLen, maxLen)
	if e != nil {
		log.Fatalf("Failed loading corpus %s: %v", filename, e)
	}

	log.Infof("Done loading corpus: %d out of %d.", len(docs), scanned)
	return docs, vocab
}

func SaveCorpusOrDie(filename string, docs []*corpus.Document, vocab *corpus.Vocabulary) {
	w, e := corpus.Create(filename)
	if e != nil {
		log.Fatalf("Cannot create file %s: %v", filename, e)
	}
	if e := corpus.Write(w, docs, vocab); e != nil {
		log.Fatalf("Failed writing %s: %v", filename, e)
	}
	if e := w.Close(); e != nil {
		log.Fatalf("Failed closing %s: %v", filename, e)
	}
	log.Infof("Saved %d documents to %s.", len(docs), filename)
}

// InitializeModel assigns random topics to every word of docs and
// builds the flat model holding them.
func InitializeModel(docs []*corpus.Document, vocab *corpus.Vocabulary,
	topics int, alpha, beta float64, rng *rand.Rand) (*gibbs.Model, []*gibbs.Document) {

	log.Info("Initializing model ... ")
	model := gibbs.NewModel(topics, vocab.Len(), alpha, beta)
	r := make([]*gibbs.Document, len(docs))
	for i, d := range docs {
		r[i] = gibbs.InitializeDocument(d, topics, rng)
		r[i].ApplyToModel(model)
	}
	log.Info("Done initializing model.")
	return model, r
}
