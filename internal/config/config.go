// Package config loads the longboard configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing default
// file is not an error.
const DefaultPath = "longboard.yaml"

// Environment overrides.
const (
	EnvLogLevel  = "LONGBOARD_LOG_LEVEL"
	EnvRedisAddr = "LONGBOARD_REDIS_ADDR"
	EnvStore     = "LONGBOARD_STORE"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the root of longboard.yaml.
type Config struct {
	Settings  domain.Settings  `yaml:"settings"`
	Log       LogConfig        `yaml:"log"`
	Store     StoreConfig      `yaml:"store"`
	Server    ServerConfig     `yaml:"server"`
	Documents []DocumentConfig `yaml:"documents"`
	Beams     []geometry.Beam  `yaml:"beams"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type StoreConfig struct {
	Backend string        `yaml:"backend"`
	Path    string        `yaml:"path"`
	LockTTL time.Duration `yaml:"lock_ttl"`
	Redis   RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
	// Lock enables the distributed lock shared by all replicas.
	Lock bool `yaml:"lock"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"`
}

// DocumentConfig registers a designspace file under an ID.
type DocumentConfig struct {
	ID    string `yaml:"id"`
	Path  string `yaml:"path"`
	Glyph string `yaml:"glyph"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Settings: domain.DefaultSettings(),
		Log:      LogConfig{Level: "info", Format: "text"},
		Store:    StoreConfig{Backend: BackendMemory},
		Server:   ServerConfig{Addr: ":8080", Metrics: true},
	}
}

// Load reads path over the defaults and applies environment overrides.
// If path is DefaultPath and the file does not exist, defaults are returned.
// Relative document paths are resolved against the directory of path.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dir := filepath.Dir(path)
	for i, d := range cfg.Documents {
		if d.Path != "" && !filepath.IsAbs(d.Path) {
			cfg.Documents[i].Path = filepath.Join(dir, d.Path)
		}
	}

	cfg.applyEnv()
	cfg.Settings = cfg.Settings.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvStore); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Store.Redis.Addr = v
	}
}

// Validate reports the first inconsistency in c.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	seen := make(map[string]bool, len(c.Documents))
	for i, d := range c.Documents {
		if d.ID == "" || d.Path == "" {
			return fmt.Errorf("documents[%d]: id and path are required", i)
		}
		if seen[d.ID] {
			return fmt.Errorf("documents[%d]: duplicate id %q", i, d.ID)
		}
		seen[d.ID] = true
	}
	switch c.Settings.UnknownAxes {
	case domain.UnknownAxisPassThrough, domain.UnknownAxisReject:
	default:
		return fmt.Errorf("unknown settings.unknown_axes %q", c.Settings.UnknownAxes)
	}
	return nil
}

// Document returns the document entry with the given ID.
func (c *Config) Document(id string) (DocumentConfig, bool) {
	for _, d := range c.Documents {
		if d.ID == id {
			return d, true
		}
	}
	return DocumentConfig{}, false
}
