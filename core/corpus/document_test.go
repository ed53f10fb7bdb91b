package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocumentSortsAndCounts(t *testing.T) {
	v, _ := CreateTestingVocabulary()
	d := NewDocument(strings.Fields("tiger apple unknown tiger"), v, false)
	assert.Equal(t, []int32{0, 3}, d.Words)
	assert.Equal(t, []int32{1, 2}, d.Counts)
	assert.Equal(t, []int{Unassigned, Unassigned}, d.Levels)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 2, d.Distinct())
	assert.Equal(t, []string{"apple", "tiger", "tiger"}, d.Tokens(v))
}

func TestNewDocumentGrows(t *testing.T) {
	v, _ := CreateTestingVocabulary()
	d := NewDocument(strings.Fields("zebra apple"), v, true)
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, []int32{0, 4}, d.Words)
}

func TestLevelCounts(t *testing.T) {
	d := FromCounts(map[int32]int32{1: 2, 5: 3, 7: 1})
	d.Levels = []int{0, 2, 2}
	assert.Equal(t, []int{2, 0, 4}, d.LevelCounts(3))
	d.Levels[0] = Unassigned
	assert.Equal(t, []int{0, 0, 4}, d.LevelCounts(3))
}
