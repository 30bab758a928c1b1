package testutil

import (
	"path"
	"testing"

	"github.com/arthur-debert/fomod/pkg/filesystem"
	"github.com/arthur-debert/fomod/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// TestPackage is a package directory on an in-memory filesystem
type TestPackage struct {
	FS   types.FS
	Mem  afero.Fs
	Root string
}

// NewTestPackage creates an empty package directory at root
func NewTestPackage(t *testing.T, root string) *TestPackage {
	t.Helper()

	fsys, mem := filesystem.NewMemory()
	require.NoError(t, mem.MkdirAll(root, 0755))
	return &TestPackage{FS: fsys, Mem: mem, Root: root}
}

// AddFile writes a file relative to the package root
func (tp *TestPackage) AddFile(t *testing.T, name, content string) *TestPackage {
	t.Helper()

	require.NoError(t, afero.WriteFile(tp.Mem, path.Join(tp.Root, name), []byte(content), 0644))
	return tp
}

// AddFiles writes each named file with its own name as content
func (tp *TestPackage) AddFiles(t *testing.T, names ...string) *TestPackage {
	t.Helper()

	for _, name := range names {
		tp.AddFile(t, name, name)
	}
	return tp
}

// AddConfig writes the package description at the given relative path,
// which lets tests vary its casing.
func (tp *TestPackage) AddConfig(t *testing.T, rel, xml string) *TestPackage {
	t.Helper()
	return tp.AddFile(t, rel, xml)
}
