package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/longboard/internal/config"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../examples/sans/Sans.designspace.yaml"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "longboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func absFixture(t *testing.T) string {
	t.Helper()
	abs, err := filepath.Abs(fixture)
	require.NoError(t, err)
	return abs
}

func TestCreateLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()

	logger, err := CreateLogger(Options{LogFormat: "json", Stderr: &buf}, cfg)
	require.NoError(t, err)
	logger.Info("hello")
	logger.Debug("hidden")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	logger, err = CreateLogger(Options{Debug: true, Stderr: &buf}, cfg)
	require.NoError(t, err)
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")

	_, err = CreateLogger(Options{LogLevel: "loud"}, cfg)
	assert.Error(t, err)
	_, err = CreateLogger(Options{LogFormat: "xml"}, cfg)
	assert.Error(t, err)
}

func TestResolveDocument(t *testing.T) {
	ctx := context.Background()
	path := writeConfig(t, "documents:\n  - id: sans\n    path: "+absFixture(t)+"\n    glyph: I\n")
	engine, err := CreateEngine(Options{ConfigPath: path, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)

	id, err := ResolveDocument(ctx, engine, "", "")
	require.NoError(t, err)
	assert.Equal(t, "sans", id)

	id, err = ResolveDocument(ctx, engine, "sans", "o")
	require.NoError(t, err)
	require.NoError(t, engine.Manager().View(ctx, id, func(_ context.Context, c *navigation.Coordinator) error {
		assert.Equal(t, "o", c.Glyph())
		return nil
	}))

	id, err = ResolveDocument(ctx, engine, fixture, "I")
	require.NoError(t, err)
	assert.Equal(t, "Sans", id)

	_, err = ResolveDocument(ctx, engine, "nope", "")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestResolveDocument_Ambiguous(t *testing.T) {
	engine, err := CreateEngine(Options{ConfigPath: writeConfig(t, "{}"), Stderr: &bytes.Buffer{}})
	require.NoError(t, err)
	_, err = ResolveDocument(context.Background(), engine, "", "")
	assert.ErrorContains(t, err, "no document given")
}
