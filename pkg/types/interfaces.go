package types

import (
	"io/fs"
)

// FS is the read-only filesystem view required by the engine and the loader.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
}

// FileOracle answers file dependencies on behalf of the host. It reports
// whether the file named by dep is currently in dep.State.
type FileOracle func(dep FileDependency) (bool, error)
