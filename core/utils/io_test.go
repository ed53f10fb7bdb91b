package utils

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/godist/canopy/core/corpus"
)

func TestLoadVocabOrDie(t *testing.T) {
	v, e := corpus.CreateTestingVocabulary()
	assert.NoError(t, e)
	dir := t.TempDir()
	for _, ext := range []string{"", ".gz", ".zst"} {
		name := filepath.Join(dir, "vocab"+ext)
		createTempFile(t, name, strings.Join(v.Tokens(), "\n"))
		v2 := LoadVocabOrDie(name)
		assert.Equal(t, v.Tokens(), v2.Tokens(), ext)
	}
}

func TestCorpusRoundTripOrDie(t *testing.T) {
	docs, v := corpus.CreateTestingCorpus()
	name := filepath.Join(t.TempDir(), "corpus.gz")
	SaveCorpusOrDie(name, docs, v)

	loaded, v2 := LoadCorpusOrDie(name, v, 0, 0)
	assert.Equal(t, v, v2)
	assert.Len(t, loaded, len(docs))
	assert.Equal(t, docs[2].Words, loaded[2].Words)

	// Length filters and a vocabulary built from the corpus.
	loaded, v3 := LoadCorpusOrDie(name, nil, 3, 3)
	assert.Len(t, loaded, 2)
	assert.Equal(t, 4, v3.Len())
}

func TestInitializeModel(t *testing.T) {
	docs, v := corpus.CreateTestingCorpus()
	m, ds := InitializeModel(docs, v, 3, 0.1, 0.01, rand.New(rand.NewSource(1)))
	assert.Equal(t, 3, m.NumTopics())
	assert.Len(t, ds, len(docs))
	total := 0
	for _, d := range docs {
		total += d.Len()
	}
	assert.Equal(t, int64(total), m.GlobalTopicHist.Total())
}

func createTempFile(t *testing.T, filename, content string) {
	w, e := corpus.Create(filename)
	if e != nil {
		t.Fatalf("Cannot create %s: %v", filename, e)
	}
	defer w.Close()
	if _, e := w.Write([]byte(content)); e != nil {
		t.Fatalf("Failed writing to temp file %s: %v", filename, e)
	}
}
