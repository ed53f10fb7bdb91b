package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/godist/canopy/core/corpus"
	"github.com/godist/canopy/core/utils"
)

func BarsCmd() *cobra.Command {
	var (
		out          string
		docs, docLen int
		alpha        float64
		seed         uint64
	)
	cmd := &cobra.Command{
		Use:   "bars",
		Short: "Write a synthetic corpus mixing the rows and columns of a 5x5 grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, v := corpus.Bars(docs, docLen, alpha, rand.New(rand.NewSource(seed)))
			utils.SaveCorpusOrDie(out, d, v)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&out, "out", "bars.txt", "Output corpus; .gz and .zst are compressed")
	fs.IntVar(&docs, "docs", 1000, "Number of documents")
	fs.IntVar(&docLen, "len", 100, "Words per document")
	fs.Float64Var(&alpha, "alpha", 1.0, "Dirichlet prior of topic mixtures")
	fs.Uint64Var(&seed, "seed", 1, "Random seed")
	return cmd
}
