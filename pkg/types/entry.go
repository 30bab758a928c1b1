package types

// InstallEntry is either a File or a Folder.
type InstallEntry interface {
	isInstallEntry()
}

// File installs a single source file to Destination.
type File struct {
	// Source is relative to the package root.
	Source string
	// Destination is relative to the install target.
	Destination string
	// Priority is nil when the entry declares none.
	Priority *int
}

// Folder installs every file beneath Source under Destination.
type Folder struct {
	Source      string
	Destination string
	Priority    *int
}

func (File) isInstallEntry()   {}
func (Folder) isInstallEntry() {}

// PriorityOf returns a pointer to n, for building entries with a priority.
func PriorityOf(n int) *int {
	return &n
}
