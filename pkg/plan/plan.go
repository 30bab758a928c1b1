// Package plan turns the installer's resolved file map into an ordered
// install plan and serialises it.
package plan

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Entry copies Source, relative to the package root, to Destination,
// relative to the target directory.
type Entry struct {
	Destination string `json:"destination" yaml:"destination" toml:"destination"`
	Source      string `json:"source" yaml:"source" toml:"source"`
}

// document wraps entries for formats that need a top-level table
type document struct {
	Files []Entry `json:"files" yaml:"files" toml:"files"`
}

// FromFiles builds a plan sorted by destination, case-insensitively.
func FromFiles(files map[string]string) []Entry {
	entries := make([]Entry, 0, len(files))
	for dest, src := range files {
		entries = append(entries, Entry{Destination: dest, Source: src})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Destination), strings.ToLower(entries[j].Destination)
		if a != b {
			return a < b
		}
		return entries[i].Destination < entries[j].Destination
	})
	return entries
}

// Encode writes entries to w as json, yaml or toml.
func Encode(w io.Writer, format string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	doc := document{Files: entries}

	var err error
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err == nil {
			err = enc.Close()
		}
	case "toml":
		err = toml.NewEncoder(w).Encode(doc)
	default:
		return fomoderrors.Newf(fomoderrors.ErrInvalidInput, "unsupported plan format %q", format).
			WithDetail("format", format)
	}

	if err != nil {
		return fomoderrors.Wrap(err, fomoderrors.ErrIOFailure, "failed to write plan")
	}
	return nil
}
