package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"under limit", DefaultMaxInputSize - 1, false},
		{"exact limit", DefaultMaxInputSize, false},
		{"over limit", DefaultMaxInputSize + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("a", tt.size))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"plain", "set weight 500", "set weight 500"},
		{"tab", "set\tweight 500", "set\tweight 500"},
		{"ansi", "\x1b[31mreset\x1b[0m", "[31mreset[0m"},
		{"null", "jump\x00 Bold", "jump Bold"},
		{"bell", "r\x07", "r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeInput_Invalid(t *testing.T) {
	_, err := SanitizeInput("weight \xff")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")

	_, err := SanitizeInput("12345678901")
	assert.ErrorIs(t, err, ErrInputTooLarge)
	_, err = SanitizeInput("12345")
	assert.NoError(t, err)
}

func TestConsole_RejectsOversizedLine(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "8")
	mgr, _ := newManager(t)
	c := NewConsole(mgr, "doc", strings.NewReader(""), &strings.Builder{})

	_, err := c.Exec(context.Background(), "set weight 600")
	assert.ErrorIs(t, err, ErrInputTooLarge)
}
