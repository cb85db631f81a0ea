package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with a config pointing at a fresh state
// directory. Flags are global, so every call sets the ones it relies on.
func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func testConfig(t *testing.T) string {
	t.Helper()
	fixture, err := filepath.Abs("../../examples/sans/Sans.designspace.yaml")
	require.NoError(t, err)
	dir := t.TempDir()
	body := "store:\n  backend: file\n  path: " + filepath.Join(dir, "state") + "\n" +
		"documents:\n  - id: sans\n    path: " + fixture + "\n    glyph: I\n"
	path := filepath.Join(dir, "longboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestCLI_PreviewPersists(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "preview", "set", "--doc", "sans", "--glyph", "I", "weight=900")
	require.NoError(t, err)
	assert.Contains(t, out, "width 320.00")

	out, err = run(t, cfg, "session", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "- sans")

	out, err = run(t, cfg, "analyze", "--doc", "sans", "--glyph", "I", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"width": 320`)

	out, err = run(t, cfg, "session", "rm", "sans")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed session 'sans'")
}

func TestCLI_Roles(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "roles", "--doc", "sans", "--glyph", "", "weight=vertical", "width=horizontal")
	require.NoError(t, err)
	assert.Regexp(t, `weight\s+vertical`, out)
	assert.Regexp(t, `width\s+horizontal`, out)

	_, err = run(t, cfg, "roles", "--doc", "sans", "--glyph", "", "slant=vertical")
	assert.ErrorIs(t, err, domain.ErrUnknownAxis)
}

func TestCLI_InspectChart(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, cfg, "inspect", "--doc", "sans", "--glyph", "", "--chart")
	require.NoError(t, err)
	assert.Contains(t, out, "quadrantChart")
	assert.Contains(t, out, "Bold")
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, testConfig(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "longboard version")
}

func TestParseLocation(t *testing.T) {
	loc, err := parseLocation([]string{"weight=650", "optical=10,12"})
	require.NoError(t, err)
	assert.True(t, loc["weight"].Equal(domain.Scalar(650)))
	assert.True(t, loc["optical"].Equal(domain.Anisotropic(10, 12)))

	for _, bad := range []string{"weight", "=1", "weight=heavy", "weight=1,2,3"} {
		_, err := parseLocation([]string{bad})
		assert.Error(t, err, bad)
	}
}
