package corpus

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// BarsSide is the side length of the bars grid.  The vocabulary has
// BarsSide*BarsSide words and there are 2*BarsSide topics: one per row
// and one per column.
const BarsSide = 5

// BarsToken names the word at cell (row, col) of the grid.
func BarsToken(row, col int) string {
	return fmt.Sprintf("r%dc%d", row, col)
}

// BarsTopics returns the word sets of the true topics, rows first.
func BarsTopics() [][]string {
	topics := make([][]string, 0, 2*BarsSide)
	for r := 0; r < BarsSide; r++ {
		t := make([]string, BarsSide)
		for c := range t {
			t[c] = BarsToken(r, c)
		}
		topics = append(topics, t)
	}
	for c := 0; c < BarsSide; c++ {
		t := make([]string, BarsSide)
		for r := range t {
			t[r] = BarsToken(r, c)
		}
		topics = append(topics, t)
	}
	return topics
}

// Bars generates the synthetic corpus of Griffiths and Steyvers: every
// document mixes the bar topics with proportions drawn from a
// symmetric Dirichlet(alpha), and each of its docLen tokens is drawn
// uniformly from the cells of a bar picked by those proportions.
func Bars(numDocs, docLen int, alpha float64, rng *rand.Rand) ([]*Document, *Vocabulary) {
	vocab := NewVocabulary()
	topics := BarsTopics()
	for _, t := range topics {
		for _, w := range t {
			vocab.IdFor(w)
		}
	}

	prior := make([]float64, len(topics))
	for i := range prior {
		prior[i] = alpha
	}
	dir := distmv.NewDirichlet(prior, rng)

	docs := make([]*Document, 0, numDocs)
	theta := make([]float64, len(topics))
	for d := 0; d < numDocs; d++ {
		dir.Rand(theta)
		pick := distuv.NewCategorical(theta, rng)
		counts := make(map[int32]int32)
		for i := 0; i < docLen; i++ {
			t := topics[int(pick.Rand())]
			counts[vocab.Id(t[rng.Intn(len(t))])]++
		}
		docs = append(docs, FromCounts(counts))
	}
	return docs, vocab
}
