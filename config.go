package mdf4

import (
	"fmt"
	"log/slog"

	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/internal/logger"
	"github.com/R1tschY/mdf4j-sub001/internal/options"
)

// Config holds the settings of an open file.
type Config struct {
	logger        *slog.Logger
	maxListLength int
}

func defaultConfig() *Config {
	return &Config{
		logger:        logger.Discard(),
		maxListLength: blocks.DefaultMaxListLength,
	}
}

// Option configures how a file is opened and read.
type Option = options.Option[*Config]

// WithLogger sets the logger for file level events. The default discards
// everything.
func WithLogger(l *slog.Logger) Option {
	return options.New(func(c *Config) error {
		if l == nil {
			return fmt.Errorf("logger must not be nil")
		}
		c.logger = l

		return nil
	})
}

// WithMaxListLength bounds the number of blocks in any linked list of the
// file. Longer lists fail with errs.ErrListTooLong.
func WithMaxListLength(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("max list length must be positive, got %d", n)
		}
		c.maxListLength = n

		return nil
	})
}
