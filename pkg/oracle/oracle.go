// Package oracle answers file dependencies: whether a file is missing,
// inactive or active in the target installation.
package oracle

import (
	"strings"

	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/logging"
	"github.com/arthur-debert/fomod/pkg/paths"
	"github.com/arthur-debert/fomod/pkg/types"
)

// Source reports the state of a file, and whether it knows about it at all.
type Source interface {
	State(file string) (types.FileState, bool, error)
}

// Oracle adapts a Source into a types.FileOracle. Files no source knows
// about are treated as missing.
func Oracle(src Source) types.FileOracle {
	logger := logging.GetLogger("oracle")
	return func(dep types.FileDependency) (bool, error) {
		state, known, err := src.State(dep.File)
		if err != nil {
			return false, err
		}
		if !known {
			state = types.FileMissing
		}
		logger.Trace().
			Str("file", dep.File).
			Str("state", string(state)).
			Str("want", string(dep.State)).
			Msg("File dependency checked")
		return state == dep.State, nil
	}
}

// StateTable is a fixed table of file states, looked up case-insensitively.
type StateTable struct {
	states   map[string]types.FileState
	fallback types.FileState
}

// NewStateTable builds a table from path to state. Files not in the table
// report fallback; an empty fallback leaves them unknown.
func NewStateTable(states map[string]types.FileState, fallback types.FileState) *StateTable {
	t := &StateTable{
		states:   make(map[string]types.FileState, len(states)),
		fallback: fallback,
	}
	for file, state := range states {
		t.states[key(file)] = state
	}
	return t
}

func (t *StateTable) State(file string) (types.FileState, bool, error) {
	if state, ok := t.states[key(file)]; ok {
		return state, true, nil
	}
	if t.fallback != "" {
		return t.fallback, true, nil
	}
	return "", false, nil
}

// TargetProbe inspects a target directory. A file that exists there is
// active; anything else is unknown.
type TargetProbe struct {
	fs   types.FS
	root string
}

func NewTargetProbe(fs types.FS, root string) *TargetProbe {
	return &TargetProbe{fs: fs, root: root}
}

func (p *TargetProbe) State(file string) (types.FileState, bool, error) {
	_, err := paths.Resolve(p.fs, file, p.root)
	switch {
	case err == nil:
		return types.FileActive, true, nil
	case fomoderrors.IsErrorCode(err, fomoderrors.ErrPathNotFound):
		return "", false, nil
	default:
		return "", false, err
	}
}

// Chain consults each source in turn and returns the first answer.
type Chain []Source

func (c Chain) State(file string) (types.FileState, bool, error) {
	for _, src := range c {
		state, known, err := src.State(file)
		if err != nil || known {
			return state, known, err
		}
	}
	return "", false, nil
}

func key(file string) string {
	return strings.ToLower(paths.Normalize(file))
}
