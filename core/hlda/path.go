package hlda

import (
	"github.com/pkg/errors"
)

// Step is one element of a path under construction: either an
// existing node or a node to be spawned.
type Step struct {
	id    int
	spawn bool
}

func Existing(id int) Step { return Step{id: id} }

func Spawn() Step { return Step{id: -1, spawn: true} }

func (s Step) IsSpawn() bool { return s.spawn }

// ID is the node id of an existing step, -1 for a spawn step.
func (s Step) ID() int { return s.id }

// Path lists the node of every level from the root down to a leaf.
type Path []int

func NewPath(maxDepth int) Path {
	p := make(Path, maxDepth)
	for i := range p {
		p[i] = -1
	}
	return p
}

func (p Path) Leaf() int { return p[len(p)-1] }

// Validate checks steps against the tree without changing anything.
// The first step must be the root, every existing step a child of the
// step before it, and every step after a spawn a spawn too.
func (p Path) Validate(steps []Step, t *Tree) error {
	if len(steps) != len(p) {
		return errors.Wrapf(ErrIllegalArgument, "%d steps for a path of depth %d", len(steps), len(p))
	}
	if steps[0].spawn || steps[0].id != t.root {
		return errors.Wrapf(ErrIllegalArgument, "path must start at root %d", t.root)
	}
	spawning := false
	for l := 1; l < len(steps); l++ {
		s := steps[l]
		if s.spawn {
			spawning = true
			continue
		}
		if spawning {
			return errors.Wrapf(ErrIllegalArgument, "existing node %d below a spawn at level %d", s.id, l)
		}
		n, e := t.Node(s.id)
		if e != nil {
			return errors.Wrapf(e, "level %d", l)
		}
		if n.parent != steps[l-1].id {
			return errors.Wrapf(ErrIllegalArgument, "node %d is not a child of %d", s.id, steps[l-1].id)
		}
	}
	return nil
}

// Materialize rewrites p to follow steps, spawning nodes for spawn
// steps.  Nothing changes if steps are invalid.
func (p Path) Materialize(steps []Step, t *Tree) error {
	if e := p.Validate(steps, t); e != nil {
		return e
	}
	for l, s := range steps {
		if !s.spawn {
			p[l] = s.id
			continue
		}
		c, e := t.Spawn(p[l-1])
		if e != nil {
			return e
		}
		p[l] = c.id
	}
	return nil
}

func (p Path) AddDocument(doc int, t *Tree) {
	for _, id := range p {
		t.MustNode(id).AddVisitor(doc)
	}
}

func (p Path) RemoveDocument(doc int, t *Tree) {
	for _, id := range p {
		t.MustNode(id).RemoveVisitor(doc)
	}
}

func (p Path) node(level int, t *Tree) (*Node, error) {
	if level < 0 || level >= len(p) {
		return nil, errors.Wrapf(ErrIllegalArgument, "level %d out of range [0, %d)", level, len(p))
	}
	return t.Node(p[level])
}

func (p Path) AddWord(doc int, word int32, count, level int, t *Tree) error {
	n, e := p.node(level, t)
	if e != nil {
		return e
	}
	n.AddWord(doc, word, count)
	return nil
}

func (p Path) RemoveWord(doc int, word int32, count, level int, t *Tree) error {
	n, e := p.node(level, t)
	if e != nil {
		return e
	}
	n.RemoveWord(doc, word, count)
	return nil
}
