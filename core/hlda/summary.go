package hlda

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/godist/canopy/core/hist"
)

// Topic describes one node of the tree for reporting.
type Topic struct {
	ID        int
	Parent    int
	Depth     int
	Documents int
	Words     int64
	Top       []hist.KeyCount
	Tokens    []string
}

// TopicsSummary describes, in pre-order, every topic visited by at
// least minDocuments documents, with its numWords most frequent words.
func (e *Engine) TopicsSummary(numWords, minDocuments int) ([]Topic, error) {
	if e.tree == nil {
		return nil, nil
	}
	var nodes []*Node
	e.tree.Walk(func(n *Node) {
		if n.Popularity() >= minDocuments {
			nodes = append(nodes, n)
		}
	})

	topics := make([]Topic, len(nodes))
	var g errgroup.Group
	g.SetLimit(2 * runtime.NumCPU())
	for i, n := range nodes {
		i, n := i, n
		g.Go(func() error {
			top := hist.Of(n.words, numWords)
			t := Topic{
				ID:        n.id,
				Parent:    n.parent,
				Depth:     n.depth,
				Documents: n.Popularity(),
				Words:     n.total,
				Top:       top,
				Tokens:    make([]string, len(top)),
			}
			for j, kc := range top {
				t.Tokens[j] = e.vocab.Token(int32(kc.Key))
			}
			topics[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return topics, nil
}

// PrintTree writes one indented line per topic visited by at least
// minDocuments documents, with its most frequent words, followed by the
// number of topics per level of the whole tree.
func (e *Engine) PrintTree(w io.Writer, numWords, minDocuments int) error {
	topics, err := e.TopicsSummary(numWords, minDocuments)
	if err != nil {
		return err
	}
	for _, t := range topics {
		fmt.Fprintf(w, "%sTopic %05d Nd %05d Nw %05d:",
			strings.Repeat("  ", t.Depth), t.ID, t.Documents, t.Words)
		for j, kc := range t.Top {
			fmt.Fprintf(w, " %s (%d)", t.Tokens[j], kc.Count)
		}
		fmt.Fprintf(w, "\n")
	}
	_, err = fmt.Fprintf(w, "Topics per level: %v\n", e.tree.DepthHistogram())
	return err
}
