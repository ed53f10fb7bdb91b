package hlda

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the hyperparameters of the hierarchical model and the
// settings of a training run.  It must not change after it is passed
// to NewEngine.
type Config struct {
	// MaxDepth is the number of levels of every path, root included.
	MaxDepth int `toml:"max_depth"`

	// Gamma is the nCRP concentration; larger values grow wider trees.
	Gamma float64 `toml:"gamma"`

	// Eta holds the topic-word Dirichlet smoothing of every level.
	Eta []float64 `toml:"eta"`

	// M and Pi are the mean and the scale of the GEM stick-breaking
	// prior over levels.  Small M favors general (shallow) topics.
	M  float64 `toml:"m"`
	Pi float64 `toml:"pi"`

	Seed uint64 `toml:"seed"`

	// Parallelism bounds the goroutines scoring candidate paths of a
	// document.  Values below 2 score sequentially.
	Parallelism int `toml:"parallelism"`

	// Corpus log-likelihood is logged after every EvalLag sweeps.
	// Zero disables it.
	EvalLag int `toml:"eval_lag"`
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:    3,
		Gamma:       1.0,
		Eta:         []float64{2.0, 1.0, 0.5},
		M:           0.5,
		Pi:          100,
		Seed:        1,
		Parallelism: 1,
		EvalLag:     10,
	}
}

func (c *Config) Validate() error {
	if c.MaxDepth < 2 {
		return errors.Wrapf(ErrInvalidConfig, "max_depth = %d, less than 2", c.MaxDepth)
	}
	if c.Gamma < 0 {
		return errors.Wrapf(ErrInvalidConfig, "gamma = %v, negative", c.Gamma)
	}
	if len(c.Eta) < c.MaxDepth {
		return errors.Wrapf(ErrInvalidConfig, "%d eta values for %d levels", len(c.Eta), c.MaxDepth)
	}
	for l, eta := range c.Eta {
		if !(eta > 0) {
			return errors.Wrapf(ErrInvalidConfig, "eta[%d] = %v, must be positive", l, eta)
		}
	}
	if !(c.M > 0) {
		return errors.Wrapf(ErrInvalidConfig, "m = %v, must be positive", c.M)
	}
	if !(c.Pi > 0) {
		return errors.Wrapf(ErrInvalidConfig, "pi = %v, must be positive", c.Pi)
	}
	return nil
}

// String returns the TOML encoding of c.
func (c Config) String() string {
	var buf bytes.Buffer
	if e := toml.NewEncoder(&buf).Encode(c); e != nil {
		return fmt.Sprintf("%#v", c)
	}
	return buf.String()
}

// LoadConfig decodes a TOML file over DefaultConfig and validates the
// result.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	if _, e := toml.DecodeFile(filename, &cfg); e != nil {
		return nil, errors.Wrapf(e, "Cannot parse config file %s", filename)
	}
	if e := cfg.Validate(); e != nil {
		return nil, errors.Wrap(e, "Invalid configuration")
	}
	return &cfg, nil
}
