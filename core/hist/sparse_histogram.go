package hist

import (
	"fmt"
	"math"
	"sort"
)

// Sparse represents histogram using Go map.  It holds the words a
// single document contributes to a topic node, and the word
// topic-histograms of the flat model.
type Sparse map[int32]int32

func NewSparse() Sparse {
	return make(Sparse)
}

func (s Sparse) Clear() {
	for k := range s {
		delete(s, k)
	}
}

func (s Sparse) Add(o Sparse) {
	for k, v := range o {
		s[k] += v
	}
}

func (s Sparse) Equal(o Sparse) bool {
	if len(s) != len(o) {
		return false
	}
	for k, v := range s {
		if v2, ok := o[k]; !ok || v2 != v {
			return false
		}
	}
	return true
}

func (s Sparse) Len() int {
	return len(s)
}

func (s Sparse) Total() int64 {
	var t int64
	for _, v := range s {
		t += int64(v)
	}
	return t
}

func (s Sparse) At(key int) int64 {
	return int64(s[int32(key)])
}

func (s Sparse) Inc(key, count int) {
	if count <= 0 {
		panic(fmt.Sprintf("Inc(key=%d, count=%d): count must > 0",
			key, count))
	}
	if count > int(math.MaxInt32) {
		panic(fmt.Sprintf("count (%d) larger than MaxInt32", count))
	}
	k := int32(key)
	if s[k] >= math.MaxInt32-int32(count) {
		panic(fmt.Sprintf("s[%d] = %d overflow", key, s[k]))
	}
	s[k] += int32(count)
}

func (s Sparse) Dec(key, count int) bool {
	if count <= 0 {
		panic(fmt.Sprintf("Dec(key=%d, count=%d): count must > 0",
			key, count))
	}
	k := int32(key)
	clamped := int(s[k]) < count
	if clamped || int(s[k]) == count {
		delete(s, k)
		return clamped
	}
	s[k] -= int32(count)
	return false
}

// Keys returns the non-zero keys in ascending order.
func (s Sparse) Keys() []int {
	keys := make([]int, 0, len(s))
	for k := range s {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	return keys
}

// ForEach visits elements in ascending key order, so that callers
// drawing random numbers inside p stay reproducible.
func (s Sparse) ForEach(p func(key int, count int64) error) error {
	for _, k := range s.Keys() {
		if e := p(k, int64(s[int32(k)])); e != nil {
			return e
		}
	}
	return nil
}

func (s Sparse) Clone() Hist {
	n := NewSparse()
	for k, v := range s {
		n[k] = v
	}
	return n
}
