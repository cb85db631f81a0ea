package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Exec(t *testing.T) {
	ctx := context.Background()
	mgr, store := newManager(t)
	var out bytes.Buffer
	c := NewConsole(mgr, "doc", strings.NewReader(""), &out)

	_, err := c.Exec(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No glyph selected")

	_, err = c.Exec(ctx, "glyph a")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "a at weight_400.00")

	_, err = c.Exec(ctx, "set weight 600")
	require.NoError(t, err)
	state, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, 600.0, state.Preview["weight"].Scalar())

	_, err = c.Exec(ctx, "j Black")
	require.NoError(t, err)
	state, _ = store.Load(ctx, "doc")
	assert.Equal(t, 900.0, state.Preview["weight"].Scalar())

	_, err = c.Exec(ctx, "0")
	require.NoError(t, err)
	_, err = c.Exec(ctx, "drag 100 0")
	require.NoError(t, err)
	state, _ = store.Load(ctx, "doc")
	assert.InDelta(t, 450.0, state.Preview["weight"].Scalar(), 1e-6)

	_, err = c.Exec(ctx, "role weight vertical")
	require.NoError(t, err)
	require.NoError(t, mgr.View(ctx, "doc", func(_ context.Context, co *navigation.Coordinator) error {
		assert.Equal(t, "vertical", string(co.Roles().Role("weight")))
		return nil
	}))

	out.Reset()
	_, err = c.Exec(ctx, "add")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Added instance")
	_, err = c.Exec(ctx, "add")
	assert.Error(t, err, "duplicate instance")

	out.Reset()
	_, err = c.Exec(ctx, "info")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "weight")
}

func TestConsole_Errors(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newManager(t)
	c := NewConsole(mgr, "doc", strings.NewReader(""), &bytes.Buffer{})

	for _, line := range []string{"fly", "set weight", "set weight heavy", "jump", "drag 1", "role weight sideways", "r x"} {
		_, err := c.Exec(ctx, line)
		assert.Error(t, err, line)
	}

	quit, err := c.Exec(ctx, "q")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestConsole_Run(t *testing.T) {
	mgr, store := newManager(t)
	var out bytes.Buffer
	c := NewConsole(mgr, "doc", strings.NewReader("g a\nset weight 700\nbogus\nquit\nset weight 100\n"), &out)

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Exploring 'doc'")
	assert.Contains(t, out.String(), `unknown command "bogus"`)

	state, err := store.Load(context.Background(), "doc")
	require.NoError(t, err)
	assert.Equal(t, 700.0, state.Preview["weight"].Scalar(), "commands after quit are ignored")
}
