package hist

import (
	"fmt"
	"math"
)

// Dense is a plain histogram represented by a count array. It
// represents the word histogram of a topic node and the global topic
// histogram of the flat model.
type Dense []int64

func NewDense(dim int) Dense {
	return make(Dense, dim, dim)
}

func (d Dense) At(key int) int64 {
	return d[key]
}

func (d Dense) Inc(key, count int) {
	if count < 0 {
		panic(fmt.Sprintf("count (%d) is negative", count))
	}
	if d[key] >= math.MaxInt64-int64(count) {
		panic(fmt.Sprintf("d[%d] = %d overflow", key, d[key]))
	}
	d[key] += int64(count)
}

func (d Dense) Dec(key, count int) bool {
	if count < 0 {
		panic(fmt.Sprintf("count (%d) is negative", count))
	}
	if d[key] < int64(count) {
		d[key] = 0
		return true
	}
	d[key] -= int64(count)
	return false
}

func (d Dense) Len() int {
	return len(d)
}

func (d Dense) Total() int64 {
	var s int64
	for _, v := range d {
		s += v
	}
	return s
}

func (d Dense) ForEach(p func(key int, count int64) error) error {
	for i, v := range d {
		if e := p(i, v); e != nil {
			return e
		}
	}
	return nil
}

func (d Dense) Clone() Hist {
	n := NewDense(d.Len())
	copy(n, d)
	return n
}
