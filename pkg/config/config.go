package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/fast/pkg/errors"
	"github.com/arthur-debert/fast/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	toml2 "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of the environment variables read as configuration.
const EnvPrefix = "FAST_"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ToolConfig holds the settings of one tool (fd or fl)
type ToolConfig struct {
	Storage string `koanf:"storage" toml:"storage"`
}

// StoreConfig holds settings shared by both stores
type StoreConfig struct {
	BackupMalformed bool `koanf:"backup_malformed" toml:"backup_malformed"`
}

// ListConfig holds the column widths used when listing fast links
type ListConfig struct {
	NameWidth int `koanf:"name_width" toml:"name_width"`
	TagsWidth int `koanf:"tags_width" toml:"tags_width"`
}

// OutputConfig holds terminal output settings
type OutputConfig struct {
	Color string `koanf:"color" toml:"color"`
}

// Config is the main configuration structure
type Config struct {
	FD     ToolConfig   `koanf:"fd" toml:"fd"`
	FL     ToolConfig   `koanf:"fl" toml:"fl"`
	Store  StoreConfig  `koanf:"store" toml:"store"`
	List   ListConfig   `koanf:"list" toml:"list"`
	Output OutputConfig `koanf:"output" toml:"output"`
}

// Sources names the optional files read on top of the embedded defaults.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

// DefaultSources returns the config and dotenv files under the XDG config dir.
func DefaultSources() Sources {
	return Sources{
		ConfigFile: paths.ConfigFilePath(),
		EnvFile:    paths.EnvFilePath(),
	}
}

// Load loads the configuration from the default sources.
func Load() (*Config, error) {
	return LoadFrom(DefaultSources())
}

// LoadFrom loads configuration in this order, later layers winning:
//  1. embedded defaults
//  2. the TOML config file, if it exists
//  3. FAST_* variables from the dotenv file, if it exists
//  4. FAST_* variables from the process environment
func LoadFrom(src Sources) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if src.ConfigFile != "" && fileExists(src.ConfigFile) {
		if err := k.Load(file.Provider(src.ConfigFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", src.ConfigFile)
		}
	}

	if src.EnvFile != "" && fileExists(src.EnvFile) {
		vars, err := godotenv.Read(src.EnvFile)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", src.EnvFile)
		}
		if err := k.Load(confmap.Provider(envToConf(vars), "."), nil); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load %s", src.EnvFile)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	cfg.FD.Storage = storagePath(cfg.FD.Storage, paths.FastDirStore)
	cfg.FL.Storage = storagePath(cfg.FL.Storage, paths.FastLinkStore)
	cfg.Output.Color = strings.ToLower(cfg.Output.Color)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	}

	return &cfg, nil
}

// Dump renders the configuration as TOML.
func Dump(cfg *Config) (string, error) {
	data, err := toml2.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	return string(data), nil
}

// envKey maps FAST_FD_STORAGE to fd.storage: the first underscore separates
// the section from the key.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// envToConf keeps the FAST_* entries of a dotenv file as config keys.
func envToConf(vars map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(vars))
	for name, value := range vars {
		if strings.HasPrefix(name, EnvPrefix) {
			out[envKey(name)] = value
		}
	}
	return out
}

// storagePath expands ~ in a configured store path. A blank value selects
// the default file in the home directory.
func storagePath(configured, fallback string) string {
	if strings.TrimSpace(configured) == "" {
		return paths.DefaultStorePath(fallback)
	}
	return paths.ExpandHome(configured)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
