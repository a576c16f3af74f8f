// Package app holds the command-line configuration and logger setup.
package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	unionfind "github.com/FrenchMajesty/dynamic-connectivity"
	"github.com/FrenchMajesty/dynamic-connectivity/pkg/snapshot"
)

// EnvPrefix prefixes every environment variable read by the CLI
const EnvPrefix = "DYNCONN"

// Config holds settings shared by every command
type Config struct {
	Strategy string `mapstructure:"strategy"`
	Backend  string `mapstructure:"backend"`
	Store    string `mapstructure:"store"`
	Verbose  bool   `mapstructure:"verbose"`

	Grid    int    `mapstructure:"grid"`
	Trials  int    `mapstructure:"trials"`
	Workers int    `mapstructure:"workers"`
	Seed    uint64 `mapstructure:"seed"`
}

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("strategy", string(unionfind.DefaultStrategy))
	v.SetDefault("backend", string(snapshot.BackendFile))
	v.SetDefault("store", "")
	v.SetDefault("verbose", false)
	v.SetDefault("grid", 20)
	v.SetDefault("trials", 30)
	v.SetDefault("workers", 4)
	v.SetDefault("seed", 0)
}

// Load reads configuration from v. Values come from bound flags, then
// DYNCONN_* environment variables, then configFile if set, then defaults.
// An unset store path defaults per backend, see snapshot.DefaultPath.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Store == "" {
		backend, _ := snapshot.ParseBackend(cfg.Backend)
		cfg.Store = snapshot.DefaultPath(backend)
	}
	return cfg, nil
}

// Validate checks the strategy and backend names
func (c Config) Validate() error {
	if _, err := unionfind.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if _, err := snapshot.ParseBackend(c.Backend); err != nil {
		return err
	}
	return nil
}

// LoadEnv loads environment variables from .env files. Files that do not
// exist are skipped.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// NewLogger returns a text logger writing to w. Debug records are kept
// only when verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
