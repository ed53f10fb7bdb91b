package hist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDense(t *testing.T) {
	assert.Equal(t, "[0 0]", fmt.Sprint(NewDense(2)))
}

func TestDenseClone(t *testing.T) {
	s := NewDense(0)
	assert.Equal(t, 0, s.Clone().Len())

	s = Dense{2, 0}
	c := s.Clone()
	assert.Equal(t, s, c)
	s[0] = 5
	assert.Equal(t, int64(2), c.At(0))
}

func TestDenseDecClamps(t *testing.T) {
	d := Dense{2, 1}
	assert.True(t, d.Dec(0, 3))
	assert.Equal(t, int64(0), d.At(0))
	assert.False(t, d.Dec(1, 1))
	assert.Equal(t, int64(0), d.Total())
}

func TestDenseIncNegativePanics(t *testing.T) {
	assert.Panics(t, func() { NewDense(1).Inc(0, -1) })
}
