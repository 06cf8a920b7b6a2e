package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	version int
	program string
}

func withVersion(v int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if v < 400 {
			return errors.New("version too old")
		}
		c.version = v

		return nil
	})
}

func withProgram(p string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.program = p
	})
}

func TestApply(t *testing.T) {
	t.Run("AppliesInOrder", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withVersion(410), withProgram("a"), withProgram("b"))
		require.NoError(t, err)
		require.Equal(t, 410, cfg.version)
		require.Equal(t, "b", cfg.program)
	})

	t.Run("StopsAtFirstError", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withProgram("a"), withVersion(300), withProgram("b"))
		require.EqualError(t, err, "version too old")
		require.Equal(t, "a", cfg.program)
	})

	t.Run("SkipsNil", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withProgram("x")))
		require.Equal(t, "x", cfg.program)
	})
}
