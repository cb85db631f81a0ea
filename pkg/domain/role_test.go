package domain_test

import (
	"testing"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultRoles(t *testing.T) {
	roles := domain.DefaultRoles([]string{"weight", "width", "opsz"})
	assert.Equal(t, domain.RoleHorizontal, roles.Role("weight"))
	assert.Equal(t, domain.RoleVertical, roles.Role("width"))
	assert.Equal(t, domain.RoleIgnore, roles.Role("opsz"))
	assert.Equal(t, domain.RoleIgnore, roles.Role("missing"))
	assert.Len(t, roles.Active(), 2)
}

func TestRoles_With(t *testing.T) {
	roles := domain.DefaultRoles([]string{"weight"})
	updated := roles.With("weight", domain.RoleVertical).With("width", domain.RoleHorizontal)

	assert.Equal(t, domain.RoleHorizontal, roles.Role("weight"), "original untouched")
	assert.Equal(t, domain.RoleVertical, updated.Role("weight"))
	assert.Equal(t, domain.RoleHorizontal, updated.Role("width"))
	assert.Equal(t, "width", updated[1].Axis)
}

func TestParseAxisRole(t *testing.T) {
	for in, want := range map[string]domain.AxisRole{
		"Horizontal": domain.RoleHorizontal,
		"v":          domain.RoleVertical,
		"":           domain.RoleIgnore,
		" ignore ":   domain.RoleIgnore,
	} {
		got, err := domain.ParseAxisRole(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := domain.ParseAxisRole("diagonal")
	assert.Error(t, err)
}
