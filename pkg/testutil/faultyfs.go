package testutil

import (
	"io/fs"

	"github.com/arthur-debert/fomod/pkg/types"
)

// FaultyFS returns the configured error for matching paths and delegates
// everything else.
type FaultyFS struct {
	types.FS
	Errors map[string]error
}

// NewFaultyFS wraps fsys with no faults
func NewFaultyFS(fsys types.FS) *FaultyFS {
	return &FaultyFS{FS: fsys, Errors: make(map[string]error)}
}

// Fail makes every operation on name return err
func (f *FaultyFS) Fail(name string, err error) *FaultyFS {
	f.Errors[name] = err
	return f
}

func (f *FaultyFS) Stat(name string) (fs.FileInfo, error) {
	if err, ok := f.Errors[name]; ok {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err, ok := f.Errors[name]; ok {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	if err, ok := f.Errors[name]; ok {
		return nil, err
	}
	return f.FS.ReadFile(name)
}
