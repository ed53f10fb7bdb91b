package hist

import "container/heap"

// TopK keeps the K keys with the highest counts seen so far.  Among
// equal counts the most recently pushed key wins.
type TopK struct {
	k   int
	seq int
	h   minHeap
}

// KeyCount is one entry of a TopK result.
type KeyCount struct {
	Key   int
	Count int64
}

func NewTopK(k int) *TopK {
	if k < 0 {
		k = 0
	}
	return &TopK{k: k, h: make(minHeap, 0, k)}
}

func (t *TopK) Push(key int, count int64) {
	if t.k == 0 {
		return
	}
	t.seq++
	e := entry{KeyCount{key, count}, t.seq}
	if t.h.Len() < t.k {
		heap.Push(&t.h, e)
	} else if !e.less(t.h[0]) {
		t.h[0] = e
		heap.Fix(&t.h, 0)
	}
}

// Sorted returns the kept entries with the highest count first.  It
// leaves the selector unchanged.
func (t *TopK) Sorted() []KeyCount {
	c := make(minHeap, len(t.h))
	copy(c, t.h)
	r := make([]KeyCount, len(c))
	for i := len(r) - 1; i >= 0; i-- {
		r[i] = heap.Pop(&c).(entry).KeyCount
	}
	return r
}

// Of returns the k highest-count keys of h.
func Of(h Hist, k int) []KeyCount {
	t := NewTopK(k)
	h.ForEach(func(key int, count int64) error {
		if count > 0 {
			t.Push(key, count)
		}
		return nil
	})
	return t.Sorted()
}

type entry struct {
	KeyCount
	seq int
}

func (e entry) less(o entry) bool {
	return e.Count < o.Count || (e.Count == o.Count && e.seq < o.seq)
}

type minHeap []entry

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(entry)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
