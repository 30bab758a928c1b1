package installer

import (
	"strings"

	"github.com/arthur-debert/fomod/pkg/dependencies"
	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/paths"
	"github.com/arthur-debert/fomod/pkg/types"
	"github.com/rs/zerolog"
)

// beforeFirstPage is the page index of the snapshot created at construction.
const beforeFirstPage = -1

// environment is what every snapshot of one wizard shares.
type environment struct {
	root        *types.PackageRoot
	path        string
	fs          types.FS
	gameVersion string
	files       types.FileOracle
	logger      zerolog.Logger
}

// snapshot is the wizard state after one step.
type snapshot struct {
	env       *environment
	pageIndex int
	flags     types.Flags
	// files maps canonical destinations to sources.
	files map[string]string
	// priorities records the winning priority of each claimed destination.
	// A present key with a nil value is a claim without priority.
	priorities map[string]*int
	// canonical maps lowercased destinations to their canonical casing.
	canonical map[string]string
	previous  *snapshot
}

func newSnapshot(env *environment, flags types.Flags) *snapshot {
	return &snapshot{
		env:        env,
		pageIndex:  beforeFirstPage,
		flags:      flags.Clone(),
		files:      make(map[string]string),
		priorities: make(map[string]*int),
		canonical:  make(map[string]string),
	}
}

// derive copies s into a new unpublished snapshot one page further on.
func (s *snapshot) derive() *snapshot {
	next := &snapshot{
		env:        s.env,
		pageIndex:  s.pageIndex + 1,
		flags:      s.flags.Clone(),
		files:      make(map[string]string, len(s.files)),
		priorities: make(map[string]*int, len(s.priorities)),
		canonical:  make(map[string]string, len(s.canonical)),
		previous:   s,
	}
	for k, v := range s.files {
		next.files[k] = v
	}
	for k, v := range s.priorities {
		next.priorities[k] = v
	}
	for k, v := range s.canonical {
		next.canonical[k] = v
	}
	return next
}

// page returns the page s is positioned on, or nil outside the page range.
func (s *snapshot) page() *types.Page {
	if s.pageIndex < 0 || s.pageIndex >= len(s.env.root.Pages) {
		return nil
	}
	return &s.env.root.Pages[s.pageIndex]
}

func (s *snapshot) evaluate(expr types.Dependency) (bool, error) {
	return dependencies.Evaluate(expr, dependencies.Context{
		Flags:       s.flags,
		GameVersion: s.env.gameVersion,
		Files:       s.env.files,
	})
}

// installFiles applies entries to s. It must only be called on a snapshot
// that has not been published yet.
func (s *snapshot) installFiles(entries []types.InstallEntry) error {
	for _, entry := range entries {
		switch e := entry.(type) {
		case types.File:
			s.installFile(e)
		case types.Folder:
			if err := s.installFolder(e); err != nil {
				return err
			}
		default:
			return fomoderrors.Newf(fomoderrors.ErrInvalidInput,
				"unsupported install entry %T", entry)
		}
	}
	return nil
}

func (s *snapshot) installFolder(folder types.Folder) error {
	source, err := paths.Resolve(s.env.fs, folder.Source, s.env.path)
	if err != nil {
		return err
	}

	relative, err := paths.Walk(s.env.fs, source, s.env.path)
	if err != nil {
		return err
	}

	s.env.logger.Trace().
		Str("folder", source).
		Int("files", len(relative)).
		Msg("Expanding folder")

	expanded := make([]types.InstallEntry, 0, len(relative))
	for _, rel := range relative {
		expanded = append(expanded, types.File{
			Source:      paths.Normalize(source + "/" + rel),
			Destination: paths.Normalize(folder.Destination + "/" + rel),
			Priority:    folder.Priority,
		})
	}
	return s.installFiles(expanded)
}

func (s *snapshot) installFile(file types.File) {
	lower := strings.ToLower(file.Destination)
	key, claimed := s.canonical[lower]
	if !claimed {
		key = file.Destination
	}

	if prior := s.priorities[key]; claimed && prior != nil {
		if file.Priority == nil || *file.Priority <= *prior {
			s.env.logger.Trace().
				Str("destination", key).
				Str("kept", s.files[key]).
				Str("discarded", file.Source).
				Msg("Lower priority file discarded")
			return
		}
	}

	s.canonical[lower] = key
	s.priorities[key] = file.Priority
	s.files[key] = file.Source
}
