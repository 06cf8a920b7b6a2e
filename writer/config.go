package writer

import (
	"fmt"

	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/internal/options"
)

// DefaultVersion is the format version written unless configured otherwise.
var DefaultVersion = blocks.Version{Major: 4, Minor: 20}

// Config holds the identification block fields of a new file.
type Config struct {
	Version   blocks.Version
	ProgramID string // at most 8 Latin-1 bytes
}

// DefaultConfig returns version 4.20 and the library program id.
func DefaultConfig() Config {
	return Config{Version: DefaultVersion, ProgramID: blocks.DefaultProgramID}
}

// Validate checks that the fields fit the identification block.
func (c Config) Validate() error {
	if c.Version.Major != blocks.SupportedMajor {
		return fmt.Errorf("unsupported major version %d", c.Version.Major)
	}
	if c.Version.Minor < 0 || c.Version.Minor > 99 {
		return fmt.Errorf("minor version %d out of range", c.Version.Minor)
	}
	b, err := cursor.Latin1.Encode(c.ProgramID)
	if err != nil {
		return fmt.Errorf("program id %q: %w", c.ProgramID, err)
	}
	if len(b) > 8 {
		return fmt.Errorf("program id %q longer than 8 bytes", c.ProgramID)
	}

	return nil
}

// Option configures a Writer.
type Option = options.Option[*Config]

// WithVersion sets the format version. Only major version 4 is accepted.
func WithVersion(v blocks.Version) Option {
	return options.New(func(c *Config) error {
		if v.Major != blocks.SupportedMajor {
			return fmt.Errorf("unsupported major version %d", v.Major)
		}
		c.Version = v

		return nil
	})
}

// WithProgramID sets the program identifier of the identification block.
func WithProgramID(id string) Option {
	return options.NoError(func(c *Config) {
		c.ProgramID = id
	})
}
