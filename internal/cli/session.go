package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/fomod/pkg/config"
	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/installer"
	"github.com/arthur-debert/fomod/pkg/loader"
	"github.com/arthur-debert/fomod/pkg/oracle"
	"github.com/arthur-debert/fomod/pkg/types"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	verbosity  int
	configFile string
	format     string

	// fs is replaced in tests
	fs types.FS
}

// sessionOptions are the per-command flags that feed the installer
type sessionOptions struct {
	gameVersion string
	flags       []string
	target      string
}

// session is a loaded package ready to be walked
type session struct {
	cfg       *config.Config
	pkg       *types.PackageRoot
	installer *installer.Installer
}

func (o *rootOptions) loadConfig(so *sessionOptions) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if o.format != "" {
		overrides["output.format"] = o.format
	}
	if so != nil && so.gameVersion != "" {
		overrides["game.version"] = so.gameVersion
	}
	if so != nil && so.target != "" {
		overrides["target"] = so.target
	}

	cfg, err := config.Load(config.Options{File: o.configFile, Overrides: overrides})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

func (o *rootOptions) loadPackage(dir string) (*types.PackageRoot, error) {
	pkg, err := loader.New(o.fs).Load(dir)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadPackage, err)
	}
	return pkg, nil
}

func (o *rootOptions) openSession(dir string, so *sessionOptions) (*session, error) {
	cfg, err := o.loadConfig(so)
	if err != nil {
		return nil, err
	}

	flags, err := initialFlags(cfg.Flags, so.flags)
	if err != nil {
		return nil, err
	}

	pkg, err := o.loadPackage(dir)
	if err != nil {
		return nil, err
	}

	inst, err := installer.New(pkg, dir,
		installer.WithFS(o.fs),
		installer.WithFlags(flags),
		installer.WithGameVersion(cfg.Game.Version),
		installer.WithFileOracle(fileOracle(cfg, o.fs)),
	)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, pkg: pkg, installer: inst}, nil
}

// initialFlags merges configured flags with name=value pairs from the
// command line; the command line wins.
func initialFlags(configured map[string]string, pairs []string) (types.Flags, error) {
	flags := types.Flags(configured).Clone()
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fomoderrors.Newf(fomoderrors.ErrInvalidInput, MsgErrBadFlag, pair).
				WithDetail("flag", pair)
		}
		flags[name] = value
	}
	return flags, nil
}

// fileOracle answers file dependencies from the configured states first,
// then the target directory, then the configured default.
func fileOracle(cfg *config.Config, fs types.FS) types.FileOracle {
	chain := oracle.Chain{oracle.NewStateTable(cfg.FileStates(), "")}
	if cfg.Target != "" {
		chain = append(chain, oracle.NewTargetProbe(fs, cfg.Target))
	}
	if cfg.Oracle.Default != "" {
		chain = append(chain, oracle.NewStateTable(nil, cfg.Oracle.Default))
	}
	return oracle.Oracle(chain)
}
