// Package config loads ignorehub configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Source identifies the remote template repository.
type Source struct {
	Owner string
	Repo  string
	Ref   string
}

// Cache controls the local index cache.
type Cache struct {
	Path string
	TTL  time.Duration
}

// Config is the resolved application configuration.
type Config struct {
	Source Source
	Cache  Cache
	Output string
	Plain  bool
	Theme  string
}

// Load reads configuration from cfgFile (or the default config dir when
// empty), with IGNOREHUB_* environment variables taking precedence over
// the file and defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("source.owner", "github")
	v.SetDefault("source.repo", "gitignore")
	v.SetDefault("source.ref", "main")
	v.SetDefault("cache.path", filepath.Join(DefaultConfigDir(), "index.db"))
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("output", ".gitignore")
	v.SetDefault("plain", false)
	v.SetDefault("theme", "default")

	v.SetEnvPrefix("IGNOREHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Source: Source{
			Owner: v.GetString("source.owner"),
			Repo:  v.GetString("source.repo"),
			Ref:   v.GetString("source.ref"),
		},
		Cache: Cache{
			Path: v.GetString("cache.path"),
			TTL:  v.GetDuration("cache.ttl"),
		},
		Output: v.GetString("output"),
		Plain:  v.GetBool("plain"),
		Theme:  v.GetString("theme"),
	}
	return cfg, nil
}

// DefaultConfigDir returns the ignorehub config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "ignorehub")
}

// AliasesPath returns the user alias overlay file location.
func (c *Config) AliasesPath() string {
	return filepath.Join(DefaultConfigDir(), "aliases.yaml")
}
