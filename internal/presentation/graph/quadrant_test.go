package graph_test

import (
	"testing"

	"github.com/aretw0/longboard/internal/presentation/graph"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func axes() []domain.Axis {
	return []domain.Axis{
		{Name: "weight", Kind: domain.Continuous, Minimum: 100, Default: 400, Maximum: 900},
		{Name: "width", Kind: domain.Continuous, Minimum: 50, Default: 100, Maximum: 150},
	}
}

func TestGenerateQuadrant(t *testing.T) {
	roles := domain.DefaultRoles([]string{"weight", "width"})
	points := []domain.InterestingLocation{
		{Name: "Sans Light", Kind: domain.InterestingSource, Location: domain.LocationFromScalars(map[string]float64{"weight": 100, "width": 50})},
		{Name: "Bold: Wide", Kind: domain.InterestingInstance, Location: domain.LocationFromScalars(map[string]float64{"weight": 900, "width": 150})},
	}
	overlay := &graph.Overlay{Preview: domain.LocationFromScalars(map[string]float64{"weight": 1300, "width": 100})}

	out, err := graph.GenerateQuadrant("Sans", axes(), roles, points, overlay)
	require.NoError(t, err)

	for _, want := range []string{
		"quadrantChart\n",
		"    title Sans\n",
		`    x-axis "weight 100" --> "weight 900"`,
		`    y-axis "width 50" --> "width 150"`,
		"    Sans Light:::source: [0.000, 0.000]\n",
		"    Bold  Wide:::instance: [1.000, 1.000]\n",
		"    Preview:::current: [1.000, 0.500]\n",
		"classDef current",
	} {
		assert.Contains(t, out, want)
	}
}

func TestGenerateQuadrant_RoleSelection(t *testing.T) {
	roles := domain.Roles{
		{Axis: "weight", Role: domain.RoleIgnore},
		{Axis: "width", Role: domain.RoleHorizontal},
	}
	out, err := graph.GenerateQuadrant("", axes(), roles, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, `x-axis "width 50" --> "width 150"`)
	assert.NotContains(t, out, "y-axis")
	assert.NotContains(t, out, "title")

	_, err = graph.GenerateQuadrant("", axes(), domain.Roles{{Axis: "weight", Role: domain.RoleVertical}}, nil, nil)
	assert.ErrorIs(t, err, graph.ErrNoHorizontalAxis)
}
