// pkg/oracle/oracle_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: In-memory afero filesystem
// PURPOSE: Test file state lookups used by file dependencies

package oracle

import (
	"errors"
	"testing"

	"github.com/arthur-debert/fomod/pkg/filesystem"
	"github.com/arthur-debert/fomod/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) State(string) (types.FileState, bool, error) {
	return "", false, errors.New("disk on fire")
}

func TestStateTable(t *testing.T) {
	table := NewStateTable(map[string]types.FileState{
		"Data\\Base.esm": types.FileActive,
		"old.esp":        types.FileInactive,
	}, "")

	state, known, err := table.State("data/base.ESM")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, types.FileActive, state)

	_, known, err = table.State("other.esp")
	require.NoError(t, err)
	assert.False(t, known)

	withFallback := NewStateTable(nil, types.FileInactive)
	state, known, err = withFallback.State("anything.esp")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, types.FileInactive, state)
}

func TestTargetProbe(t *testing.T) {
	fsys, mem := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(mem, "/game/Data/Base.esm", []byte("x"), 0644))
	probe := NewTargetProbe(fsys, "/game")

	state, known, err := probe.State("data/base.esm")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, types.FileActive, state)

	_, known, err = probe.State("Data/Missing.esp")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestChain(t *testing.T) {
	fsys, mem := filesystem.NewMemory()
	require.NoError(t, afero.WriteFile(mem, "/game/present.esp", []byte("x"), 0644))

	chain := Chain{
		NewStateTable(map[string]types.FileState{"present.esp": types.FileInactive}, ""),
		NewTargetProbe(fsys, "/game"),
	}

	state, known, err := chain.State("present.esp")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, types.FileInactive, state, "earlier sources win")

	_, known, err = chain.State("absent.esp")
	require.NoError(t, err)
	assert.False(t, known)

	_, _, err = Chain{failingSource{}, NewStateTable(nil, types.FileActive)}.State("x")
	assert.Error(t, err)
}

func TestOracle(t *testing.T) {
	check := Oracle(NewStateTable(map[string]types.FileState{"a.esp": types.FileActive}, ""))

	tests := []struct {
		name string
		dep  types.FileDependency
		want bool
	}{
		{"active matches", types.FileDependency{File: "A.esp", State: types.FileActive}, true},
		{"active is not inactive", types.FileDependency{File: "a.esp", State: types.FileInactive}, false},
		{"unknown is missing", types.FileDependency{File: "b.esp", State: types.FileMissing}, true},
		{"unknown is not active", types.FileDependency{File: "b.esp", State: types.FileActive}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := check(tt.dep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Oracle(failingSource{})(types.FileDependency{File: "x", State: types.FileActive})
	assert.Error(t, err)
}
