package main

import (
	"os"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/godist/canopy/core/corpus"
	"github.com/godist/canopy/core/gibbs"
	"github.com/godist/canopy/core/utils"
)

type ldaFlags struct {
	corpus, vocab, addr   string
	minLen, maxLen, words int
	topics, iter, evalLag int
	alpha, beta           float64
	seed                  uint64
}

func LDACmd() *cobra.Command {
	f := new(ldaFlags)
	cmd := &cobra.Command{
		Use:   "lda",
		Short: "Learn a fixed number of flat topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLDA(f)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.corpus, "corpus", "", "Corpus file, one document per line")
	fs.StringVar(&f.vocab, "vocab", "", "Vocabulary file; built from the corpus if empty")
	fs.StringVar(&f.addr, "addr", "", "HTTP status page address, e.g. :6060")
	fs.IntVar(&f.minLen, "minlen", 1, "Minimum document length")
	fs.IntVar(&f.maxLen, "maxlen", -1, "Maximum document length")
	fs.IntVar(&f.words, "words", 10, "Words printed per topic")
	fs.IntVar(&f.topics, "topics", 10, "Number of topics to be learned")
	fs.IntVar(&f.iter, "iter", 100, "Gibbs sampling iterations")
	fs.IntVar(&f.evalLag, "eval-lag", 1, "Evaluation lag")
	fs.Float64Var(&f.alpha, "alpha", 0.1, "Topic prior")
	fs.Float64Var(&f.beta, "beta", 0.01, "Word prior")
	fs.Uint64Var(&f.seed, "seed", 1, "Random seed")
	cmd.MarkFlagRequired("corpus")
	return cmd
}

func runLDA(f *ldaFlags) error {
	var vocab *corpus.Vocabulary
	if len(f.vocab) > 0 {
		vocab = utils.LoadVocabOrDie(f.vocab)
	}
	src, vocab := utils.LoadCorpusOrDie(f.corpus, vocab, f.minLen, f.maxLen)

	is := utils.EnableExpvar(f.addr)
	log.Infof("Initialization start at %s", is.Start().StartTime)
	rng := rand.New(rand.NewSource(f.seed))
	model, docs := utils.InitializeModel(src, vocab, f.topics, f.alpha, f.beta, rng)
	sampler := gibbs.NewSampler(model, rng)
	log.Infof("Initialization done in %s", is.End(model.Perplexity(docs), f.topics).Duration)

	exit := interrupted()
GibbsIterations:
	for iter := 0; iter < f.iter; iter++ {
		select {
		case <-exit:
			log.Infof("Early terminated by signal.")
			break GibbsIterations
		default:
		}

		log.Infof("Iteration %04d start at %s", iter, is.Start().StartTime)
		for _, d := range docs {
			sampler.Sample(d)
		}

		pp := 0.0
		if f.evalLag > 0 && iter%f.evalLag == 0 {
			pp = model.Perplexity(docs)
			log.Infof("Iteration %04d perplexity %f", iter, pp)
		}
		log.Infof("Iteration %04d done in %s", iter, is.End(pp, f.topics).Duration)
	}

	model.PrintTopics(os.Stdout, vocab, f.words)
	return nil
}
