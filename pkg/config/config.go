package config

import (
	"strings"

	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/types"
)

// Output formats accepted by output.format
const (
	FormatAuto = "auto"
	FormatTerm = "term"
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Config is the merged host configuration
type Config struct {
	Game   Game              `koanf:"game"`
	Flags  map[string]string `koanf:"flags"`
	Files  []FileStateEntry  `koanf:"files"`
	Target string            `koanf:"target"`
	Oracle Oracle            `koanf:"oracle"`
	Output Output            `koanf:"output"`
}

// Game describes the host game
type Game struct {
	Version string `koanf:"version"`
}

// FileStateEntry declares the state of one file for file dependencies
type FileStateEntry struct {
	Path  string          `koanf:"path"`
	State types.FileState `koanf:"state"`
}

// Oracle configures how unlisted files are answered
type Oracle struct {
	Default types.FileState `koanf:"default"`
}

// Output selects how results are printed
type Output struct {
	Format string `koanf:"format"`
}

// FileStates returns the configured file states keyed by path.
// Later entries for the same path win.
func (c *Config) FileStates() map[string]types.FileState {
	states := make(map[string]types.FileState, len(c.Files))
	for _, f := range c.Files {
		states[f.Path] = f.State
	}
	return states
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Output.Format) {
	case FormatAuto, FormatTerm, FormatText, FormatJSON, FormatYAML, FormatTOML:
		c.Output.Format = strings.ToLower(c.Output.Format)
	default:
		return fomoderrors.Newf(fomoderrors.ErrConfigParse,
			"unknown output format %q", c.Output.Format).
			WithDetail("key", "output.format")
	}

	for i, f := range c.Files {
		if f.Path == "" {
			return fomoderrors.Newf(fomoderrors.ErrConfigParse,
				"files entry %d has no path", i).
				WithDetail("key", "files")
		}
	}
	return nil
}
