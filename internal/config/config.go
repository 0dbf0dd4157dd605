// Package config loads the shell settings.
//
// Values are layered, highest precedence first: bound command line flags, CHEPY_*
// environment variables, .env files in the working directory and then the config
// directory, config.yaml, and the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the shell.
const EnvPrefix = "CHEPY"

// Keys of the settings.
const (
	KeyHistoryFile     = "history_file"
	KeyTheme           = "theme"
	KeyOutput          = "output"
	KeyFuzzy           = "fuzzy"
	KeyHints           = "hints"
	KeyCatalogCacheTTL = "catalog_cache_ttl"
	KeyLogLevel        = "log_level"
	KeyLogFile         = "log_file"
)

// Config holds the resolved settings.
type Config struct {
	HistoryFile     string        `mapstructure:"history_file"`
	Theme           string        `mapstructure:"theme"`
	Output          string        `mapstructure:"output"`
	Fuzzy           bool          `mapstructure:"fuzzy"`
	Hints           bool          `mapstructure:"hints"`
	CatalogCacheTTL time.Duration `mapstructure:"catalog_cache_ttl"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFile         string        `mapstructure:"log_file"`
}

// Options locate the configuration sources. Empty fields use the defaults.
type Options struct {
	ConfigFile string // explicit config file, must exist
	ConfigDir  string // directory holding config.yaml and .env
	WorkDir    string // directory searched for a local .env
}

// DefaultDir returns $XDG_CONFIG_HOME/chepy, or the platform equivalent.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chepy")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chepy")
}

// DefaultHistoryFile returns the history file used when none is configured.
func DefaultHistoryFile() string {
	return filepath.Join(os.TempDir(), "chepy")
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHistoryFile, DefaultHistoryFile())
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyOutput, "auto")
	v.SetDefault(KeyFuzzy, true)
	v.SetDefault(KeyHints, true)
	v.SetDefault(KeyCatalogCacheTTL, time.Duration(0))
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
}

// Load reads every source into v and returns the resolved settings.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = DefaultDir()
	}

	if err := readConfigFile(v, opts.ConfigFile, configDir); err != nil {
		return nil, err
	}

	workDir := opts.WorkDir
	if workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			workDir = wd
		}
	}
	for _, dir := range []string{configDir, workDir} {
		if dir == "" {
			continue
		}
		if err := mergeDotEnv(v, filepath.Join(dir, ".env")); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, file, dir string) error {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		return nil
	}

	if dir == "" {
		return nil
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// mergeDotEnv merges the CHEPY_* entries of a .env file into the config layer.
// A missing file is not an error.
func mergeDotEnv(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	envMap, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	values := make(map[string]any)
	prefix := EnvPrefix + "_"
	for key, value := range envMap {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		values[strings.ToLower(strings.TrimPrefix(key, prefix))] = value
	}
	if len(values) == 0 {
		return nil
	}
	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge .env file %s: %w", path, err)
	}
	return nil
}
