// Package hist provides count histograms shared by the flat and the
// hierarchical samplers.
package hist

// Hist is a histogram of non-negative counts indexed by an integer
// key.  Keys are word ids for topic-word histograms and topic ids for
// document-topic histograms.
type Hist interface {
	At(key int) int64
	Inc(key, count int)

	// Dec subtracts count from the bucket at key.  A bucket never
	// goes below zero; if count exceeds the current value the bucket
	// is clamped to zero and Dec returns true.
	Dec(key, count int) (clamped bool)
	Len() int
	Total() int64

	// ForEach access elements in the histogram one-by-one. For each
	// element <key, count>, it calls p(key, count).  If p returns
	// nil, it goes on to rest elements; otherwise, it stops the
	// traversal and returns the error from p.
	ForEach(p func(key int, count int64) error) error

	Clone() Hist
}
