package corpus

import (
	"fmt"
	"sort"
	"strings"
)

// Unassigned is the level of a word that has not been placed on a
// path yet.
const Unassigned = -1

// Document is a bag of words.  Distinct word ids are kept in ascending
// order in Words, with their occurrence counts in Counts.  Levels holds
// the path level every distinct word is currently assigned to by the
// hierarchical sampler.
type Document struct {
	Words  []int32
	Counts []int32
	Levels []int
}

// NewDocument builds a document from tokens.  Tokens missing from
// vocab are added when grow is true, and dropped otherwise.
func NewDocument(tokens []string, vocab *Vocabulary, grow bool) *Document {
	counts := make(map[int32]int32)
	for _, t := range tokens {
		var id int32
		if grow {
			id = vocab.IdFor(t)
		} else if id = vocab.Id(t); id < 0 {
			continue
		}
		counts[id]++
	}
	return FromCounts(counts)
}

// FromCounts builds a document from a word-id to count map.
func FromCounts(counts map[int32]int32) *Document {
	d := &Document{
		Words:  make([]int32, 0, len(counts)),
		Counts: make([]int32, 0, len(counts)),
		Levels: make([]int, 0, len(counts)),
	}
	for w, c := range counts {
		if c > 0 {
			d.Words = append(d.Words, w)
		}
	}
	sort.Slice(d.Words, func(i, j int) bool { return d.Words[i] < d.Words[j] })
	for _, w := range d.Words {
		d.Counts = append(d.Counts, counts[w])
		d.Levels = append(d.Levels, Unassigned)
	}
	return d
}

// Len returns the number of word occurrences.
func (d *Document) Len() int {
	n := 0
	for _, c := range d.Counts {
		n += int(c)
	}
	return n
}

// Distinct returns the number of distinct words.
func (d *Document) Distinct() int {
	return len(d.Words)
}

// Tokens expands the document back into one token per occurrence, in
// word id order.
func (d *Document) Tokens(vocab *Vocabulary) []string {
	r := make([]string, 0, d.Len())
	for i, w := range d.Words {
		for j := int32(0); j < d.Counts[i]; j++ {
			r = append(r, vocab.Token(w))
		}
	}
	return r
}

// LevelCounts returns the number of word occurrences at every level
// in [0, depth).
func (d *Document) LevelCounts(depth int) []int {
	r := make([]int, depth)
	for i, l := range d.Levels {
		if l >= 0 && l < depth {
			r[l] += int(d.Counts[i])
		}
	}
	return r
}

func (d *Document) Describe(vocab *Vocabulary) string {
	var b strings.Builder
	for i, w := range d.Words {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%d@%d", vocab.Token(w), d.Counts[i], d.Levels[i])
	}
	return b.String()
}
