// Package hlda implements the hierarchical topic model built on the
// nested Chinese restaurant process, trained by collapsed Gibbs
// sampling.
//
// Every document owns a path of MaxDepth topics from the root of a
// tree whose shape is sampled along with everything else, and every
// distinct word of a document sits at one level of that path.  A sweep
// resamples, for each document in turn, its path and then the level of
// each of its words; nodes left without documents are pruned at the
// end of the sweep.
package hlda

import (
	"fmt"
	"math"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/godist/canopy/core/corpus"
	"github.com/godist/canopy/core/sample"
)

type State int

const (
	Uninitialized State = iota
	Initialized
	Sampling
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Sampling:
		return "sampling"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Engine struct {
	cfg   Config
	vocab *corpus.Vocabulary
	rng   *rand.Rand

	tree   *Tree
	docs   []*corpus.Document
	paths  []Path
	state  State
	sweeps int
}

// NewEngine validates cfg and returns an engine waiting for Ingest.
func NewEngine(cfg Config, vocab *corpus.Vocabulary) (*Engine, error) {
	if e := cfg.Validate(); e != nil {
		return nil, e
	}
	if vocab == nil || vocab.Len() == 0 {
		return nil, errors.Wrap(ErrIllegalArgument, "empty vocabulary")
	}
	eta := make([]float64, len(cfg.Eta))
	copy(eta, cfg.Eta)
	cfg.Eta = eta
	return &Engine{
		cfg:   cfg,
		vocab: vocab,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

func (e *Engine) Config() Config    { return e.cfg }
func (e *Engine) State() State      { return e.state }
func (e *Engine) Tree() *Tree       { return e.tree }
func (e *Engine) Sweeps() int       { return e.sweeps }
func (e *Engine) NumDocuments() int { return len(e.docs) }
func (e *Engine) NumTopics() int    { return e.tree.Len() }

// Document returns document d as sampled so far.
func (e *Engine) Document(d int) (*corpus.Document, error) {
	if d < 0 || d >= len(e.docs) {
		return nil, errors.Wrapf(ErrIllegalArgument, "document %d out of range [0, %d)", d, len(e.docs))
	}
	return e.docs[d], nil
}

// Path returns a copy of the path of document d.
func (e *Engine) Path(d int) (Path, error) {
	if d < 0 || d >= len(e.paths) {
		return nil, errors.Wrapf(ErrIllegalArgument, "document %d out of range [0, %d)", d, len(e.paths))
	}
	p := make(Path, len(e.paths[d]))
	copy(p, e.paths[d])
	return p, nil
}

// Ingest takes ownership of docs, creates the root and draws an
// initial path for every document and a uniform level for each of its
// words.
func (e *Engine) Ingest(docs []*corpus.Document) error {
	if e.state != Uninitialized {
		return errors.Wrapf(ErrIllegalArgument, "Ingest on a %v engine", e.state)
	}
	if len(docs) == 0 {
		return errors.Wrap(ErrIllegalArgument, "no documents")
	}
	for i, d := range docs {
		if err := e.checkDocument(d); err != nil {
			return errors.Wrapf(err, "document %d", i)
		}
	}

	e.tree = NewTree(e.cfg.MaxDepth, e.vocab.Len())
	e.docs = docs
	e.paths = make([]Path, len(docs))
	for d := range docs {
		if err := e.initialize(d); err != nil {
			return err
		}
	}
	e.state = Initialized
	log.Infof("Initialized %d documents on %d topics", len(docs), e.tree.Len())
	return nil
}

func (e *Engine) checkDocument(d *corpus.Document) error {
	if d == nil {
		return errors.Wrap(ErrIllegalArgument, "nil document")
	}
	if len(d.Counts) != len(d.Words) || len(d.Levels) != len(d.Words) {
		return errors.Wrapf(ErrIllegalArgument, "%d words, %d counts and %d levels",
			len(d.Words), len(d.Counts), len(d.Levels))
	}
	for i, w := range d.Words {
		if w < 0 || int(w) >= e.vocab.Len() {
			return errors.Wrapf(ErrIllegalArgument, "word %d out of vocabulary", w)
		}
		if d.Counts[i] < 1 {
			return errors.Wrapf(ErrIllegalArgument, "word %d counted %d times", w, d.Counts[i])
		}
	}
	return nil
}

func (e *Engine) initialize(d int) error {
	steps := make([]Step, 1, e.cfg.MaxDepth)
	steps[0] = Existing(e.tree.root)
	n := e.tree.MustNode(e.tree.root)
	for l := 1; l < e.cfg.MaxDepth; l++ {
		if n == nil {
			steps = append(steps, Spawn())
			continue
		}
		s := sample.NewWeighted(len(n.children)+1, e.rng)
		for _, id := range n.children {
			if err := s.Add(float64(e.tree.MustNode(id).Popularity())); err != nil {
				return err
			}
		}
		if err := s.Add(e.cfg.Gamma); err != nil {
			return err
		}
		if k := s.Sample(); k < len(n.children) {
			n = e.tree.MustNode(n.children[k])
			steps = append(steps, Existing(n.id))
		} else {
			n = nil
			steps = append(steps, Spawn())
		}
	}

	p := NewPath(e.cfg.MaxDepth)
	if err := p.Materialize(steps, e.tree); err != nil {
		return err
	}
	p.AddDocument(d, e.tree)
	e.paths[d] = p

	doc := e.docs[d]
	for i, w := range doc.Words {
		doc.Levels[i] = e.rng.Intn(e.cfg.MaxDepth)
		if err := p.AddWord(d, w, int(doc.Counts[i]), doc.Levels[i], e.tree); err != nil {
			return err
		}
	}
	return nil
}

// Sweep resamples the path and the word levels of every document once,
// then prunes topics no document visits.
func (e *Engine) Sweep() error {
	if e.state != Initialized && e.state != Sampling {
		return errors.Wrapf(ErrIllegalArgument, "Sweep on a %v engine", e.state)
	}
	e.state = Sampling
	for d := range e.docs {
		if err := e.samplePath(d); err != nil {
			return errors.Wrapf(err, "document %d", d)
		}
		if err := e.sampleLevels(d); err != nil {
			return errors.Wrapf(err, "document %d", d)
		}
	}
	pruned := e.tree.Prune()
	e.sweeps++
	if log.V(1) {
		log.Infof("Sweep %04d: %d topics, pruned %d, per level %v",
			e.sweeps, e.tree.Len(), pruned, e.tree.DepthHistogram())
	}
	return nil
}

// RunSweeps runs n sweeps and stops the engine.
func (e *Engine) RunSweeps(n int) error {
	for i := 0; i < n; i++ {
		if err := e.Sweep(); err != nil {
			return err
		}
		if e.cfg.EvalLag > 0 && e.sweeps%e.cfg.EvalLag == 0 {
			log.Infof("Sweep %04d topics %5d loglikelihood %f",
				e.sweeps, e.tree.Len(), e.LogLikelihood())
		}
	}
	e.Stop()
	return nil
}

// Stop ends training; later Sweep calls fail.
func (e *Engine) Stop() {
	if e.state != Uninitialized {
		e.state = Stopped
	}
}

func (e *Engine) samplePath(d int) error {
	e.propagate(d)
	cands := e.candidates()
	scores, err := e.score(d, cands)
	if err != nil {
		return err
	}
	s := sample.NewWeighted(len(cands), e.rng)
	if err := s.AddLogLikelihoods(scores); err != nil {
		return err
	}
	chosen := cands[s.Sample()]

	p := e.paths[d]
	if err := p.Validate(chosen.steps, e.tree); err != nil {
		return err
	}
	doc := e.docs[d]
	for i, w := range doc.Words {
		if err := p.RemoveWord(d, w, int(doc.Counts[i]), doc.Levels[i], e.tree); err != nil {
			return err
		}
	}
	p.RemoveDocument(d, e.tree)
	if err := p.Materialize(chosen.steps, e.tree); err != nil {
		return err
	}
	p.AddDocument(d, e.tree)
	for i, w := range doc.Words {
		if err := p.AddWord(d, w, int(doc.Counts[i]), doc.Levels[i], e.tree); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) sampleLevels(d int) error {
	doc := e.docs[d]
	p := e.paths[d]
	depth := e.cfg.MaxDepth
	V := float64(e.tree.vocabSize)
	counts := doc.LevelCounts(depth)
	s := sample.NewWeighted(depth, e.rng)

	for i, w := range doc.Words {
		c := int(doc.Counts[i])
		if err := p.RemoveWord(d, w, c, doc.Levels[i], e.tree); err != nil {
			return err
		}
		counts[doc.Levels[i]] -= c
		doc.Levels[i] = corpus.Unassigned

		stick := StickBreaking(counts, e.cfg.M, e.cfg.Pi)
		s.Reset()
		for l := 0; l < depth; l++ {
			n := e.tree.MustNode(p[l])
			eta := e.cfg.Eta[l]
			prob := (float64(n.Count(w)) + eta) / (float64(n.Total()) + V*eta)
			if err := s.Add(stick[l] * prob); err != nil {
				return err
			}
		}

		l := s.Sample()
		doc.Levels[i] = l
		counts[l] += c
		if err := p.AddWord(d, w, c, l, e.tree); err != nil {
			return err
		}
	}
	return nil
}

// LogLikelihood is the log probability of the corpus words given the
// current paths and levels, with every topic integrated out.
func (e *Engine) LogLikelihood() float64 {
	if e.tree == nil {
		return math.Inf(-1)
	}
	ll := 0.0
	e.tree.Walk(func(n *Node) {
		ll += n.MarginalLogLikelihood(e.cfg.Eta[n.depth])
	})
	return ll
}
