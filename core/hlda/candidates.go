package hlda

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// candidate is a path a document may move to, with its structure
// prior.
type candidate struct {
	steps []Step
	prior float64
}

// propagate caches on every node the nCRP log-weight of reaching it,
// and of branching to a new child below it, for a path drawn for doc.
// Counts exclude doc itself.  Nodes that cannot be reached keep -Inf.
func (e *Engine) propagate(doc int) {
	for _, id := range e.tree.IDs() {
		n := e.tree.MustNode(id)
		n.weight = math.Inf(-1)
		n.branchWeight = math.Inf(-1)
	}

	gamma := e.cfg.Gamma
	var walk func(n *Node, w float64)
	walk = func(n *Node, w float64) {
		n.weight = w
		if n.depth >= e.cfg.MaxDepth-1 {
			return
		}
		denom := float64(n.popularityWithout(doc)) + gamma
		if denom <= 0 {
			n.branchWeight = w
			return
		}
		n.branchWeight = w + math.Log(gamma/denom)
		for _, id := range n.children {
			c := e.tree.MustNode(id)
			if pop := c.popularityWithout(doc); pop > 0 {
				walk(c, w+math.Log(float64(pop)/denom))
			}
		}
	}
	walk(e.tree.MustNode(e.tree.root), 0)
}

// candidates lists every path with a finite prior after propagate:
// complete existing paths, and for every reachable inner node the path
// that branches off below it.
func (e *Engine) candidates() []candidate {
	var r []candidate
	prefix := make([]Step, 0, e.cfg.MaxDepth)
	var walk func(n *Node)
	walk = func(n *Node) {
		prefix = append(prefix, Existing(n.id))
		defer func() { prefix = prefix[:len(prefix)-1] }()

		if n.depth == e.cfg.MaxDepth-1 {
			r = append(r, candidate{copySteps(prefix, e.cfg.MaxDepth), n.weight})
			return
		}
		if !math.IsInf(n.branchWeight, -1) {
			steps := copySteps(prefix, e.cfg.MaxDepth)
			for len(steps) < e.cfg.MaxDepth {
				steps = append(steps, Spawn())
			}
			r = append(r, candidate{steps, n.branchWeight})
		}
		for _, id := range n.children {
			if c := e.tree.MustNode(id); !math.IsInf(c.weight, -1) {
				walk(c)
			}
		}
	}
	walk(e.tree.MustNode(e.tree.root))
	return r
}

func copySteps(s []Step, capacity int) []Step {
	c := make([]Step, len(s), capacity)
	copy(c, s)
	return c
}

// score returns the log posterior, up to a constant, of moving doc to
// each candidate: the structure prior plus the word likelihood of
// every level.  Node likelihoods are computed once per node, in
// parallel when configured; nothing is written to the tree.
func (e *Engine) score(doc int, cands []candidate) ([]float64, error) {
	lw := splitByLevel(e.docs[doc], e.cfg.MaxDepth)

	index := make(map[int]int)
	var reached []*Node
	for _, c := range cands {
		for _, s := range c.steps {
			if s.spawn {
				break
			}
			if _, ok := index[s.id]; !ok {
				index[s.id] = len(reached)
				reached = append(reached, e.tree.MustNode(s.id))
			}
		}
	}

	ll := make([]float64, len(reached))
	var g errgroup.Group
	if e.cfg.Parallelism > 1 {
		g.SetLimit(e.cfg.Parallelism)
	} else {
		g.SetLimit(1)
	}
	for i, n := range reached {
		i, n := i, n
		g.Go(func() error {
			l := n.depth
			ll[i] = n.LogLikelihood(doc, lw.words[l], lw.counts[l], e.cfg.Eta[l])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fresh := make([]float64, e.cfg.MaxDepth)
	for l := range fresh {
		fresh[l] = EmptyLogLikelihood(lw.words[l], lw.counts[l], e.cfg.Eta[l], e.tree.vocabSize)
	}

	scores := make([]float64, len(cands))
	for i, c := range cands {
		s := c.prior
		for l, st := range c.steps {
			if st.spawn {
				s += fresh[l]
			} else {
				s += ll[index[st.id]]
			}
		}
		scores[i] = s
	}
	return scores, nil
}
