package hlda

import (
	"math"
	"sort"

	log "github.com/golang/glog"

	"github.com/godist/canopy/core/hist"
)

// NoParent is the parent id of the root.
const NoParent = -1

// Node is a topic: a word histogram shared by the documents whose
// paths pass through it.  Nodes are owned by a Tree and refer to each
// other by id.
type Node struct {
	id       int
	parent   int
	depth    int
	children []int

	words    hist.Dense
	total    int64
	docWords map[int]hist.Sparse
	docTotal map[int]int64
	visitors map[int]struct{}

	// Structure-prior log-weights for the document being resampled:
	// reaching this node, and branching to a new child below it.
	weight       float64
	branchWeight float64
}

func newNode(parent, depth, vocabSize int) *Node {
	return &Node{
		parent:       parent,
		depth:        depth,
		words:        hist.NewDense(vocabSize),
		docWords:     make(map[int]hist.Sparse),
		docTotal:     make(map[int]int64),
		visitors:     make(map[int]struct{}),
		weight:       math.Inf(-1),
		branchWeight: math.Inf(-1),
	}
}

func (n *Node) ID() int     { return n.id }
func (n *Node) Parent() int { return n.parent }
func (n *Node) Depth() int  { return n.depth }

// Children returns a copy of the child ids in creation order.
func (n *Node) Children() []int {
	c := make([]int, len(n.children))
	copy(c, n.children)
	return c
}

func (n *Node) NumChildren() int { return len(n.children) }

// Total is the number of word occurrences assigned to the node.
func (n *Node) Total() int64 { return n.total }

func (n *Node) Count(word int32) int64 { return n.words.At(int(word)) }

// Words exposes the word histogram.  Callers must not modify it.
func (n *Node) Words() hist.Hist { return n.words }

func (n *Node) DocCount(doc int, word int32) int64 {
	if h, ok := n.docWords[doc]; ok {
		return h.At(int(word))
	}
	return 0
}

func (n *Node) DocTotal(doc int) int64 { return n.docTotal[doc] }

func (n *Node) AddWord(doc int, word int32, count int) {
	if count <= 0 {
		return
	}
	n.words.Inc(int(word), count)
	n.total += int64(count)

	h, ok := n.docWords[doc]
	if !ok {
		h = hist.NewSparse()
		n.docWords[doc] = h
	}
	h.Inc(int(word), count)
	n.docTotal[doc] += int64(count)
}

// RemoveWord undoes AddWord.  Removing more than was added clamps the
// counts at zero and logs a warning.
func (n *Node) RemoveWord(doc int, word int32, count int) {
	if count <= 0 {
		return
	}
	removed := int64(count)
	if have := n.words.At(int(word)); have < removed {
		log.Warningf("node %d: removing %d of word %d, only %d present", n.id, count, word, have)
		removed = have
	}
	n.words.Dec(int(word), count)
	n.total -= removed

	h := n.docWords[doc]
	if h == nil || h.Dec(int(word), count) {
		log.Warningf("node %d: document %d holds fewer than %d of word %d", n.id, doc, count, word)
	}
	if t := n.docTotal[doc] - int64(count); t > 0 {
		n.docTotal[doc] = t
	} else {
		delete(n.docTotal, doc)
		delete(n.docWords, doc)
	}
}

// AddVisitor marks doc as passing through the node.  It returns false
// if doc was already a visitor.
func (n *Node) AddVisitor(doc int) bool {
	if _, ok := n.visitors[doc]; ok {
		return false
	}
	n.visitors[doc] = struct{}{}
	return true
}

// RemoveVisitor returns false if doc was not a visitor.
func (n *Node) RemoveVisitor(doc int) bool {
	if _, ok := n.visitors[doc]; !ok {
		return false
	}
	delete(n.visitors, doc)
	return true
}

func (n *Node) HasVisitor(doc int) bool {
	_, ok := n.visitors[doc]
	return ok
}

// Visitors returns the visiting documents in ascending order.
func (n *Node) Visitors() []int {
	r := make([]int, 0, len(n.visitors))
	for d := range n.visitors {
		r = append(r, d)
	}
	sort.Ints(r)
	return r
}

// Popularity is the number of documents visiting the node.
func (n *Node) Popularity() int { return len(n.visitors) }

// Share is the popularity normalized by the corpus size.
func (n *Node) Share(totalDocuments int) float64 {
	if totalDocuments <= 0 {
		return 0
	}
	return float64(len(n.visitors)) / float64(totalDocuments)
}

// popularityWithout is the popularity not counting doc.
func (n *Node) popularityWithout(doc int) int {
	if n.HasVisitor(doc) {
		return len(n.visitors) - 1
	}
	return len(n.visitors)
}

// LogLikelihood is the Dirichlet-multinomial log probability of
// emitting counts[i] occurrences of words[i] from the node, given the
// node's words minus those doc currently holds here.
//
// A node doc does not occupy is scored the same way, with nothing to
// subtract.  Returning 0 for it would rank every unvisited node above
// the document's own, since any non-empty emission has negative log
// probability.
func (n *Node) LogLikelihood(doc int, words, counts []int32, eta float64) float64 {
	var x int64
	for _, c := range counts {
		x += int64(c)
	}
	if x == 0 {
		return 0
	}
	etaTotal := eta * float64(n.words.Len())
	rest := float64(n.total - n.docTotal[doc])
	if rest < 0 {
		rest = 0
	}
	ll := lgamma(etaTotal+rest) - lgamma(etaTotal+rest+float64(x))

	own := n.docWords[doc]
	for i, w := range words {
		if counts[i] <= 0 {
			continue
		}
		c := n.words.At(int(w))
		if own != nil {
			c -= own.At(int(w))
		}
		if c < 0 {
			c = 0
		}
		ll += lgamma(eta+float64(c)+float64(counts[i])) - lgamma(eta+float64(c))
	}
	return ll
}

// EmptyLogLikelihood is LogLikelihood for a node that holds no words
// yet, as a freshly spawned one.
func EmptyLogLikelihood(words, counts []int32, eta float64, vocabSize int) float64 {
	var x int64
	for _, c := range counts {
		x += int64(c)
	}
	if x == 0 {
		return 0
	}
	etaTotal := eta * float64(vocabSize)
	ll := lgamma(etaTotal) - lgamma(etaTotal+float64(x))
	for i := range words {
		if counts[i] > 0 {
			ll += lgamma(eta+float64(counts[i])) - lgamma(eta)
		}
	}
	return ll
}

// MarginalLogLikelihood is the log probability of all words on the
// node with the topic integrated out.
func (n *Node) MarginalLogLikelihood(eta float64) float64 {
	if n.total == 0 {
		return 0
	}
	etaTotal := eta * float64(n.words.Len())
	ll := lgamma(etaTotal) - lgamma(etaTotal+float64(n.total))
	for _, c := range n.words {
		if c > 0 {
			ll += lgamma(eta+float64(c)) - lgamma(eta)
		}
	}
	return ll
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
