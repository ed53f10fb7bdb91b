package main

import (
	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/godist/canopy/core/corpus"
	"github.com/godist/canopy/core/hlda"
	"github.com/godist/canopy/core/utils"
)

type hldaFlags struct {
	corpus, vocab, config, addr string
	sweeps, minLen, maxLen      int
	words, minDocs              int

	depth, parallelism, evalLag int
	gamma, m, pi                float64
	eta                         []float64
	seed                        uint64
}

func HLDACmd() *cobra.Command {
	f := new(hldaFlags)
	d := hlda.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "hlda",
		Short: "Learn a topic hierarchy with the nested Chinese restaurant process",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHLDA(cmd, f)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.corpus, "corpus", "", "Corpus file, one document per line")
	fs.StringVar(&f.vocab, "vocab", "", "Vocabulary file; built from the corpus if empty")
	fs.StringVar(&f.config, "config", "", "TOML configuration file")
	fs.StringVar(&f.addr, "addr", "", "HTTP status page address, e.g. :6060")
	fs.IntVar(&f.sweeps, "sweeps", 100, "Gibbs sampling sweeps")
	fs.IntVar(&f.minLen, "minlen", 1, "Minimum document length")
	fs.IntVar(&f.maxLen, "maxlen", -1, "Maximum document length")
	fs.IntVar(&f.words, "words", 10, "Words printed per topic")
	fs.IntVar(&f.minDocs, "min-docs", 1, "Topics with fewer documents are not printed")
	fs.IntVar(&f.depth, "depth", d.MaxDepth, "Levels of the tree")
	fs.IntVar(&f.parallelism, "parallelism", d.Parallelism, "Goroutines scoring candidate paths")
	fs.IntVar(&f.evalLag, "eval-lag", d.EvalLag, "Sweeps between log-likelihood evaluations")
	fs.Float64Var(&f.gamma, "gamma", d.Gamma, "nCRP concentration")
	fs.Float64Var(&f.m, "m", d.M, "GEM mean")
	fs.Float64Var(&f.pi, "pi", d.Pi, "GEM scale")
	fs.Float64SliceVar(&f.eta, "eta", d.Eta, "Topic smoothing per level")
	fs.Uint64Var(&f.seed, "seed", d.Seed, "Random seed")
	cmd.MarkFlagRequired("corpus")
	return cmd
}

// hldaConfig starts from the defaults, or from the config file, and
// applies the flags given on the command line.
func hldaConfig(cmd *cobra.Command, f *hldaFlags) (hlda.Config, error) {
	cfg := hlda.DefaultConfig()
	if len(f.config) > 0 {
		c, e := hlda.LoadConfig(f.config)
		if e != nil {
			return cfg, e
		}
		cfg = *c
	}
	fs := cmd.Flags()
	if fs.Changed("depth") {
		cfg.MaxDepth = f.depth
	}
	if fs.Changed("parallelism") {
		cfg.Parallelism = f.parallelism
	}
	if fs.Changed("eval-lag") {
		cfg.EvalLag = f.evalLag
	}
	if fs.Changed("gamma") {
		cfg.Gamma = f.gamma
	}
	if fs.Changed("m") {
		cfg.M = f.m
	}
	if fs.Changed("pi") {
		cfg.Pi = f.pi
	}
	if fs.Changed("eta") {
		cfg.Eta = f.eta
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	return cfg, cfg.Validate()
}

func runHLDA(cmd *cobra.Command, f *hldaFlags) error {
	cfg, e := hldaConfig(cmd, f)
	if e != nil {
		return e
	}
	log.Infof("Configuration:\n%v", cfg)

	var vocab *corpus.Vocabulary
	if len(f.vocab) > 0 {
		vocab = utils.LoadVocabOrDie(f.vocab)
	}
	docs, vocab := utils.LoadCorpusOrDie(f.corpus, vocab, f.minLen, f.maxLen)

	is := utils.EnableExpvar(f.addr)
	log.Infof("Initialization start at %s", is.Start().StartTime)
	engine, e := hlda.NewEngine(cfg, vocab)
	if e != nil {
		return e
	}
	if e := engine.Ingest(docs); e != nil {
		return errors.Wrap(e, "initializing")
	}
	log.Infof("Initialization done in %s", is.End(engine.LogLikelihood(), engine.NumTopics()).Duration)

	exit := interrupted()
Sweeps:
	for iter := 0; iter < f.sweeps; iter++ {
		select {
		case <-exit:
			log.Infof("Early terminated by signal.")
			break Sweeps
		default:
		}

		log.Infof("Iteration %04d start at %s", iter, is.Start().StartTime)
		if e := engine.Sweep(); e != nil {
			return e
		}
		ll := 0.0
		if cfg.EvalLag > 0 && iter%cfg.EvalLag == 0 {
			ll = engine.LogLikelihood()
			log.Infof("Iteration %04d topics %d loglikelihood %f", iter, engine.NumTopics(), ll)
		}
		log.Infof("Iteration %04d done in %s", iter, is.End(ll, engine.NumTopics()).Duration)
	}
	engine.Stop()

	topics, e := engine.TopicsSummary(f.words, f.minDocs)
	if e != nil {
		return e
	}
	log.Infof("%d of %d topics visited by at least %d documents", len(topics), engine.NumTopics(), f.minDocs)
	return engine.PrintTree(cmd.OutOrStdout(), f.words, f.minDocs)
}
