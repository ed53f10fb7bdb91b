package hlda

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	assert.NoError(t, c.Validate())
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(c *Config){
		"shallow":      func(c *Config) { c.MaxDepth = 1 },
		"gamma":        func(c *Config) { c.Gamma = -0.5 },
		"eta too few":  func(c *Config) { c.Eta = c.Eta[:2] },
		"eta zero":     func(c *Config) { c.Eta[1] = 0 },
		"m zero":       func(c *Config) { c.M = 0 },
		"pi negative":  func(c *Config) { c.Pi = -1 },
		"deeper paths": func(c *Config) { c.MaxDepth = 4 },
	} {
		c := DefaultConfig()
		mutate(&c)
		assert.Equal(t, ErrInvalidConfig, errors.Cause(c.Validate()), name)
	}

	c := DefaultConfig()
	c.Gamma = 0
	c.M = 1.5
	assert.NoError(t, c.Validate())
}

func TestLoadConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "hlda.toml")
	require.NoError(t, os.WriteFile(name, []byte(`
max_depth = 4
gamma = 0.5
eta = [1.0, 0.5, 0.25, 0.125]
parallelism = 8
`), 0644))

	c, e := LoadConfig(name)
	require.NoError(t, e)
	assert.Equal(t, 4, c.MaxDepth)
	assert.Equal(t, 0.5, c.Gamma)
	assert.Equal(t, []float64{1.0, 0.5, 0.25, 0.125}, c.Eta)
	assert.Equal(t, 8, c.Parallelism)
	assert.Equal(t, DefaultConfig().Pi, c.Pi)

	require.NoError(t, os.WriteFile(name, []byte("max_depth = 5\n"), 0644))
	_, e = LoadConfig(name)
	assert.Equal(t, ErrInvalidConfig, errors.Cause(e))

	_, e = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, e)
}

func TestConfigString(t *testing.T) {
	c := DefaultConfig()
	assert.Contains(t, c.String(), "max_depth = 3")
}
