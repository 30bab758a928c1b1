package installer

import (
	"maps"

	"github.com/arthur-debert/fomod/pkg/filesystem"
	"github.com/arthur-debert/fomod/pkg/logging"
	"github.com/arthur-debert/fomod/pkg/types"
)

// Option configures an Installer
type Option func(*settings)

type settings struct {
	fs          types.FS
	flags       types.Flags
	gameVersion string
	files       types.FileOracle
}

// WithFS sets the filesystem used to expand folders. Defaults to the OS.
func WithFS(fs types.FS) Option {
	return func(s *settings) { s.fs = fs }
}

// WithFlags seeds the first snapshot with flags supplied by the host.
func WithFlags(flags types.Flags) Option {
	return func(s *settings) { s.flags = flags }
}

// WithGameVersion sets the version compared by game dependencies.
func WithGameVersion(version string) Option {
	return func(s *settings) { s.gameVersion = version }
}

// WithFileOracle sets the callback answering file dependencies. By default
// every file dependency is met.
func WithFileOracle(oracle types.FileOracle) Option {
	return func(s *settings) { s.files = oracle }
}

func alwaysMet(types.FileDependency) (bool, error) {
	return true, nil
}

// Installer wraps a parsed package and tracks the current wizard snapshot.
// It is not safe for concurrent use; the maps it returns are copies.
type Installer struct {
	env     *environment
	current *snapshot
}

// New creates an installer for root, whose files live under path. The
// package's required files are installed before New returns.
func New(root *types.PackageRoot, path string, opts ...Option) (*Installer, error) {
	cfg := settings{files: alwaysMet}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fs == nil {
		cfg.fs = filesystem.NewOS()
	}
	if cfg.files == nil {
		cfg.files = alwaysMet
	}

	env := &environment{
		root:        root,
		path:        path,
		fs:          cfg.fs,
		gameVersion: cfg.gameVersion,
		files:       cfg.files,
		logger:      logging.GetLogger("installer").With().Str("package", root.Name).Logger(),
	}

	initial := newSnapshot(env, cfg.flags)
	if err := initial.installFiles(root.RequiredFiles); err != nil {
		return nil, err
	}

	env.logger.Debug().
		Int("pages", len(root.Pages)).
		Int("requiredFiles", len(initial.files)).
		Msg("Installer created")

	return &Installer{env: env, current: initial}, nil
}

// Name returns the package name
func (i *Installer) Name() string {
	return i.env.root.Name
}

// Path returns the package root directory
func (i *Installer) Path() string {
	return i.env.path
}

// Image returns the package image relative to Path, or "" if there is none
func (i *Installer) Image() string {
	return i.env.root.Image
}

// IsValid evaluates the package-level dependencies against the current state.
func (i *Installer) IsValid() (bool, error) {
	return i.current.evaluate(i.env.root.Dependencies)
}

// Page returns the current page, or nil before the first page and once all
// pages are exhausted.
func (i *Installer) Page() *types.Page {
	return i.current.page()
}

// HasNext reports whether the wizard has not yet run past the last page.
func (i *Installer) HasNext() bool {
	return i.current.pageIndex < len(i.env.root.Pages)
}

// HasPrevious reports whether Previous would move.
func (i *Installer) HasPrevious() bool {
	return i.current.previous != nil
}

// Next applies the options selected on the current page and advances to the
// next visible page. It returns nil once no pages remain. On error the
// current snapshot is left untouched.
func (i *Installer) Next(selected []types.Option) (*types.Page, error) {
	next, err := i.current.next(selected)
	if err != nil {
		return nil, err
	}
	i.current = next

	i.env.logger.Debug().
		Int("page", next.pageIndex).
		Int("selected", len(selected)).
		Int("files", len(next.files)).
		Msg("Advanced")
	return next.page(), nil
}

// Previous returns to the snapshot the current one was derived from. At the
// initial snapshot it stays in place.
func (i *Installer) Previous() *types.Page {
	if i.current.previous != nil {
		i.current = i.current.previous
	}
	return i.current.page()
}

// Files returns the resolved destination to source map.
func (i *Installer) Files() map[string]string {
	return maps.Clone(i.current.files)
}

// Flags returns the flags accumulated so far.
func (i *Installer) Flags() types.Flags {
	return i.current.flags.Clone()
}
