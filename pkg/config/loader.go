package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/logging"
	"github.com/arthur-debert/fomod/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix marks environment variables read as configuration
const EnvPrefix = "FOMOD_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Options controls which layers Load reads
type Options struct {
	// UserFile replaces the XDG user config location. Empty uses the default.
	UserFile string
	// File is an explicit config file that must exist when set.
	File string
	// Overrides are dotted keys applied last, e.g. "game.version".
	Overrides map[string]interface{}
}

// UserConfigPath is where the per-user config file lives
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "fomod", "config.toml")
}

// Load merges every configuration layer and decodes the result
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fomoderrors.Wrap(err, fomoderrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config if it exists
	userFile := opts.UserFile
	if userFile == "" {
		userFile = UserConfigPath()
	}
	if _, err := os.Stat(userFile); err == nil {
		if err := loadFile(k, userFile, logger); err != nil {
			return nil, err
		}
	}

	// 3. Explicit config
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, fomoderrors.Wrapf(err, fomoderrors.ErrConfigLoad,
				"config file %s", opts.File).
				WithDetail("path", opts.File)
		}
		if err := loadFile(k, opts.File, logger); err != nil {
			return nil, err
		}
	}

	// 4. Env vars
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fomoderrors.Wrap(err, fomoderrors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fomoderrors.Wrap(err, fomoderrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 6. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToFileStateHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fomoderrors.Wrap(err, fomoderrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("gameVersion", cfg.Game.Version).
		Int("flags", len(cfg.Flags)).
		Int("files", len(cfg.Files)).
		Str("target", cfg.Target).
		Msg("Configuration loaded")
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string, logger zerolog.Logger) error {
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return fomoderrors.Wrapf(err, fomoderrors.ErrConfigParse,
			"failed to load config from %s", path).
			WithDetail("path", path)
	}
	logger.Debug().Str("path", path).Msg("Config file merged")
	return nil
}

// stringToFileStateHookFunc accepts file states in any letter case. An
// empty string decodes to the empty state.
func stringToFileStateHookFunc() mapstructure.DecodeHookFuncType {
	stateType := reflect.TypeOf(types.FileState(""))
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != stateType {
			return data, nil
		}
		s, _ := data.(string)
		if strings.TrimSpace(s) == "" {
			return types.FileState(""), nil
		}
		return types.ParseFileState(s)
	}
}
