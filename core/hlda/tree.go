package hlda

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/godist/canopy/core/registry"
)

// Tree is the arena of topic nodes.  Nodes are addressed by the ids
// the registry issues; ids of pruned nodes are never handed out again.
type Tree struct {
	maxDepth  int
	vocabSize int
	nodes     *registry.Registry[*Node]
	root      int
}

// NewTree creates a tree holding only the root.
func NewTree(maxDepth, vocabSize int) *Tree {
	t := &Tree{
		maxDepth:  maxDepth,
		vocabSize: vocabSize,
		nodes:     registry.New[*Node](),
	}
	r := newNode(NoParent, 0, vocabSize)
	r.id = t.nodes.Add(r)
	t.root = r.id
	return t
}

func (t *Tree) Root() int      { return t.root }
func (t *Tree) MaxDepth() int  { return t.maxDepth }
func (t *Tree) VocabSize() int { return t.vocabSize }

// Len is the number of live nodes, root included.
func (t *Tree) Len() int { return t.nodes.Len() }

// IDs returns the live node ids in ascending order.
func (t *Tree) IDs() []int { return t.nodes.IDs() }

func (t *Tree) Has(id int) bool { return t.nodes.Has(id) }

func (t *Tree) Node(id int) (*Node, error) {
	n, ok := t.nodes.Get(id)
	if !ok {
		return nil, errors.Wrapf(ErrIllegalArgument, "unknown node %d", id)
	}
	return n, nil
}

// MustNode is Node for ids known to be live.
func (t *Tree) MustNode(id int) *Node {
	n, e := t.Node(id)
	if e != nil {
		panic(e)
	}
	return n
}

// Spawn creates a child of parent and registers it.
func (t *Tree) Spawn(parent int) (*Node, error) {
	p, e := t.Node(parent)
	if e != nil {
		return nil, e
	}
	if p.depth+1 >= t.maxDepth {
		return nil, errors.Wrapf(ErrIllegalArgument, "node %d is at the deepest level", parent)
	}
	c := newNode(parent, p.depth+1, t.vocabSize)
	c.id = t.nodes.Add(c)
	p.children = append(p.children, c.id)
	return c, nil
}

// remove detaches id from its parent and drops it from the registry.
func (t *Tree) remove(id int) {
	n, ok := t.nodes.Get(id)
	if !ok {
		return
	}
	if p, ok := t.nodes.Get(n.parent); ok {
		for i, c := range p.children {
			if c == id {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	t.nodes.Delete(id)
}

// Prune removes every non-root node without visitors and children,
// deepest first, so that an abandoned chain goes away in one call.
// It returns the number of removed nodes.
func (t *Tree) Prune() int {
	ids := t.nodes.IDs()
	sort.SliceStable(ids, func(i, j int) bool {
		return t.MustNode(ids[i]).depth > t.MustNode(ids[j]).depth
	})
	pruned := 0
	for _, id := range ids {
		n := t.MustNode(id)
		if id != t.root && len(n.visitors) == 0 && len(n.children) == 0 {
			t.remove(id)
			pruned++
		}
	}
	return pruned
}

// Walk visits nodes in pre-order, children in creation order.
func (t *Tree) Walk(fn func(n *Node)) {
	var walk func(id int)
	walk = func(id int) {
		n := t.MustNode(id)
		fn(n)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
}

// DepthHistogram counts live nodes per level.
func (t *Tree) DepthHistogram() []int {
	h := make([]int, t.maxDepth)
	t.Walk(func(n *Node) { h[n.depth]++ })
	return h
}
