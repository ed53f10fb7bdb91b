package hlda

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godist/canopy/core/corpus"
)

func createTestingEngine(t *testing.T, cfg Config, docsPerGroup int) *Engine {
	docs, vocab := CreateTestingGroups(docsPerGroup, 20, 3)
	e, err := NewEngine(cfg, vocab)
	require.NoError(t, err)
	require.NoError(t, e.Ingest(docs))
	return e
}

// checkInvariants verifies the bookkeeping shared by paths, nodes and
// documents.
func checkInvariants(t *testing.T, e *Engine, pruned bool) {
	tr := e.Tree()
	var words int64
	for d := 0; d < e.NumDocuments(); d++ {
		p, err := e.Path(d)
		require.NoError(t, err)
		require.Len(t, p, e.cfg.MaxDepth)
		assert.Equal(t, tr.Root(), p[0])
		for l, id := range p {
			n := tr.MustNode(id)
			assert.Equal(t, l, n.Depth())
			assert.True(t, n.HasVisitor(d))
			if l > 0 {
				assert.Equal(t, p[l-1], n.Parent())
			}
		}
		doc, err := e.Document(d)
		require.NoError(t, err)
		for l, c := range doc.LevelCounts(e.cfg.MaxDepth) {
			assert.Equal(t, int64(c), tr.MustNode(p[l]).DocTotal(d))
		}
		words += int64(doc.Len())
	}

	var total int64
	tr.Walk(func(n *Node) {
		total += n.Total()
		assert.Equal(t, n.Words().Total(), n.Total())
		for _, c := range n.Children() {
			assert.Equal(t, n.ID(), tr.MustNode(c).Parent())
		}
		if pruned {
			assert.True(t, n.Popularity() > 0, "node %d has no visitors", n.ID())
		}
	})
	assert.Equal(t, words, total)
	assert.Equal(t, len(tr.IDs()), tr.Len())
	assert.Equal(t, e.NumDocuments(), tr.MustNode(tr.Root()).Popularity())
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	_, vocab := CreateTestingGroups(1, 1, 1)
	cfg := CreateTestingConfig()
	cfg.Pi = 0
	_, err := NewEngine(cfg, vocab)
	assert.Equal(t, ErrInvalidConfig, errors.Cause(err))

	_, err = NewEngine(CreateTestingConfig(), corpus.NewVocabulary())
	assert.Equal(t, ErrIllegalArgument, errors.Cause(err))
}

func TestEngineStates(t *testing.T) {
	docs, vocab := CreateTestingGroups(2, 5, 1)
	e, err := NewEngine(CreateTestingConfig(), vocab)
	require.NoError(t, err)
	assert.Equal(t, Uninitialized, e.State())
	assert.Equal(t, ErrIllegalArgument, errors.Cause(e.Sweep()))
	assert.Equal(t, ErrIllegalArgument, errors.Cause(e.Ingest(nil)))

	require.NoError(t, e.Ingest(docs))
	assert.Equal(t, Initialized, e.State())
	assert.Equal(t, ErrIllegalArgument, errors.Cause(e.Ingest(docs)))

	require.NoError(t, e.Sweep())
	assert.Equal(t, Sampling, e.State())
	require.NoError(t, e.RunSweeps(2))
	assert.Equal(t, Stopped, e.State())
	assert.Equal(t, 3, e.Sweeps())
	assert.Equal(t, ErrIllegalArgument, errors.Cause(e.Sweep()))
	assert.Equal(t, "stopped", e.State().String())

	_, err = e.Path(len(docs))
	assert.Equal(t, ErrIllegalArgument, errors.Cause(err))
}

func TestIngestRejectsUnknownWords(t *testing.T) {
	_, vocab := CreateTestingGroups(1, 1, 1)
	e, err := NewEngine(CreateTestingConfig(), vocab)
	require.NoError(t, err)
	bad := corpus.FromCounts(map[int32]int32{int32(vocab.Len()): 1})
	assert.Equal(t, ErrIllegalArgument, errors.Cause(e.Ingest([]*corpus.Document{bad})))
	assert.Equal(t, Uninitialized, e.State())
}

func TestInvariantsHoldAcrossSweeps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gamma = 2
	e := createTestingEngine(t, cfg, 10)
	checkInvariants(t, e, false)
	for i := 0; i < 15; i++ {
		require.NoError(t, e.Sweep())
		checkInvariants(t, e, true)
		assert.False(t, math.IsInf(e.LogLikelihood(), 0))
	}
}

func TestSingleDocument(t *testing.T) {
	docs, vocab := CreateTestingGroups(1, 8, 2)
	cfg := CreateTestingConfig()
	cfg.Gamma = 0
	e, err := NewEngine(cfg, vocab)
	require.NoError(t, err)
	require.NoError(t, e.Ingest(docs[:1]))
	require.NoError(t, e.RunSweeps(5))
	checkInvariants(t, e, true)
	assert.Equal(t, cfg.MaxDepth, e.NumTopics())
}

func TestZeroGammaNeverBranches(t *testing.T) {
	cfg := CreateTestingConfig()
	cfg.Gamma = 0
	e := createTestingEngine(t, cfg, 5)
	assert.Equal(t, 2, e.NumTopics())
	require.NoError(t, e.RunSweeps(5))
	assert.Equal(t, 2, e.NumTopics())
}

func TestSameSeedSameModel(t *testing.T) {
	cfg := DefaultConfig()
	a := createTestingEngine(t, cfg, 6)
	cfg.Parallelism = 4
	b := createTestingEngine(t, cfg, 6)
	require.NoError(t, a.RunSweeps(5))
	require.NoError(t, b.RunSweeps(5))

	assert.Equal(t, a.Tree().IDs(), b.Tree().IDs())
	for d := 0; d < a.NumDocuments(); d++ {
		pa, _ := a.Path(d)
		pb, _ := b.Path(d)
		assert.Equal(t, pa, pb)
		da, err := a.Document(d)
		require.NoError(t, err)
		db, err := b.Document(d)
		require.NoError(t, err)
		assert.Equal(t, da.Levels, db.Levels)
	}
	assert.Equal(t, a.LogLikelihood(), b.LogLikelihood())
}

func TestDisjointGroupsGetDisjointLeaves(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}
	e := createTestingEngine(t, CreateTestingConfig(), 20)
	before := e.LogLikelihood()
	require.NoError(t, e.RunSweeps(100))
	assert.True(t, e.LogLikelihood() > before)

	groups := make(map[int]map[int]bool)
	for d := 0; d < e.NumDocuments(); d++ {
		p, _ := e.Path(d)
		if groups[p.Leaf()] == nil {
			groups[p.Leaf()] = make(map[int]bool)
		}
		doc, err := e.Document(d)
		require.NoError(t, err)
		groups[p.Leaf()][TestingGroupOf(doc)] = true
	}
	assert.True(t, len(groups) >= 2)
	for leaf, g := range groups {
		assert.Len(t, g, 1, "leaf %d mixes both groups", leaf)
	}
}

func TestTopicsSummaryAndPrintTree(t *testing.T) {
	e := createTestingEngine(t, CreateTestingConfig(), 4)
	require.NoError(t, e.RunSweeps(3))

	topics, err := e.TopicsSummary(3, 0)
	require.NoError(t, err)
	require.Len(t, topics, e.NumTopics())
	assert.Equal(t, e.Tree().Root(), topics[0].ID)
	assert.Equal(t, e.NumDocuments(), topics[0].Documents)
	for _, tp := range topics {
		assert.True(t, len(tp.Top) <= 3)
		assert.Len(t, tp.Tokens, len(tp.Top))
	}

	popular, err := e.TopicsSummary(3, e.NumDocuments())
	require.NoError(t, err)
	require.NotEmpty(t, popular)
	for _, tp := range popular {
		assert.Equal(t, e.NumDocuments(), tp.Documents)
	}

	var buf bytes.Buffer
	require.NoError(t, e.PrintTree(&buf, 3, 0))
	assert.Contains(t, buf.String(), "Topic 00000 Nd 00008")
	assert.Contains(t, buf.String(), "Topics per level: [1 ")
	assert.Equal(t, e.NumTopics(), strings.Count(buf.String(), "Topic "))
}

func TestPrintTreeSkipsUnpopularTopics(t *testing.T) {
	e := createTestingEngine(t, CreateTestingConfig(), 4)
	require.NoError(t, e.RunSweeps(3))

	var buf bytes.Buffer
	require.NoError(t, e.PrintTree(&buf, 3, e.NumDocuments()))
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "Topic ") {
			assert.Contains(t, line, "Nd 00008", line)
		}
	}
	assert.Contains(t, buf.String(), "Topic 00000 Nd 00008")

	buf.Reset()
	require.NoError(t, e.PrintTree(&buf, 3, e.NumDocuments()+1))
	assert.NotContains(t, buf.String(), "Topic ")
	assert.Contains(t, buf.String(), "Topics per level: [1 ")
}

func TestIngestRejectsMalformedDocuments(t *testing.T) {
	_, vocab := CreateTestingGroups(1, 5, 1)
	for name, doc := range map[string]*corpus.Document{
		"nil":            nil,
		"missing levels": {Words: []int32{0, 1}, Counts: []int32{1, 1}},
		"missing counts": {Words: []int32{0, 1}, Counts: []int32{1}, Levels: []int{-1, -1}},
		"zero count":     {Words: []int32{0, 1}, Counts: []int32{1, 0}, Levels: []int{-1, -1}},
	} {
		e, err := NewEngine(CreateTestingConfig(), vocab)
		require.NoError(t, err)
		err = e.Ingest([]*corpus.Document{doc})
		assert.Equal(t, ErrIllegalArgument, errors.Cause(err), name)
		assert.Equal(t, Uninitialized, e.State(), name)
		assert.Nil(t, e.Tree(), name)
	}
}

func TestDocumentOutOfRange(t *testing.T) {
	e := createTestingEngine(t, CreateTestingConfig(), 1)
	_, err := e.Document(e.NumDocuments())
	assert.Equal(t, ErrIllegalArgument, errors.Cause(err))
	_, err = e.Document(-1)
	assert.Equal(t, ErrIllegalArgument, errors.Cause(err))
	doc, err := e.Document(0)
	require.NoError(t, err)
	assert.NotNil(t, doc)
}
