package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/longboard/internal/config"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "longboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default().Store, cfg.Store)
	assert.Equal(t, domain.DefaultSettings(), cfg.Settings)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := write(t, `
settings:
  allow_extrapolation: false
  sensitivity: 0.0001
log:
  level: debug
  format: json
store:
  backend: redis
  lock_ttl: 10s
  redis:
    addr: localhost:6379
    ttl: 1h
    lock: true
server:
  addr: ":9090"
documents:
  - id: sans
    path: sans.designspace.yaml
    glyph: a
beams:
  - start: {x: 0, y: 250}
    end: {x: 1000, y: 250}
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Settings.AllowExtrapolation)
	assert.Equal(t, 0.0001, cfg.Settings.Sensitivity)
	assert.Equal(t, domain.DefaultPrecisionDamping, cfg.Settings.PrecisionDamping, "unset fields are normalised")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.Store.LockTTL)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	assert.True(t, cfg.Store.Redis.Lock)
	assert.True(t, cfg.Server.Metrics, "defaults survive partial sections")
	assert.Equal(t, ":9090", cfg.Server.Addr)

	doc, ok := cfg.Document("sans")
	require.True(t, ok)
	assert.Equal(t, "a", doc.Glyph)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "sans.designspace.yaml"), doc.Path)
	require.Len(t, cfg.Beams, 1)
	assert.Equal(t, 1000.0, cfg.Beams[0].End.X)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(config.EnvStore, "redis")
	t.Setenv(config.EnvRedisAddr, "redis:6379")
	t.Setenv(config.EnvLogLevel, "warn")

	cfg, err := config.Load(write(t, "{}"))
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"backend":       "store: {backend: s3}",
		"redis addr":    "store: {backend: redis}",
		"document":      "documents: [{id: a}]",
		"duplicate doc": "documents: [{id: a, path: x}, {id: a, path: y}]",
		"policy":        "settings: {unknown_axes: ignore}",
		"syntax":        "settings: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(write(t, body))
			assert.Error(t, err)
		})
	}
}
