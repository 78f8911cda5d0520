package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trenchcore/internal/brush"
	"trenchcore/internal/mathx"
)

func cube(t *testing.T, half float64) *brush.Brush {
	t.Helper()
	axes := []mathx.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	var defs []brush.PlaneDef
	for _, n := range axes {
		defs = append(defs, brush.PlaneDef{Plane: mathx.Plane{Normal: n, Dist: half}})
	}
	wb := mathx.BBox{Min: mathx.Vec3{-4096, -4096, -4096}, Max: mathx.Vec3{4096, 4096, 4096}}
	b, err := brush.NewBrushFromFaces(wb, defs)
	require.NoError(t, err)
	return b
}

func TestAddIndexesVerticesAndEdges(t *testing.T) {
	m := New()
	b := cube(t, 64)
	m.Add(b)

	assert.Len(t, m.unselectedVertices, 8)
	assert.Len(t, m.unselectedEdges, 12)
	assert.True(t, m.Dirty())
}

func TestSelectDeselectMovesBetweenMaps(t *testing.T) {
	m := New()
	b := cube(t, 64)
	m.Add(b)

	pos := mathx.Vec3{64, 64, 64}
	m.SelectVertex(pos)
	assert.Len(t, m.selectedVertices, 1)
	assert.Len(t, m.unselectedVertices, 7)

	m.DeselectVertex(pos)
	assert.Len(t, m.selectedVertices, 0)
	assert.Len(t, m.unselectedVertices, 8)
}

func TestSaveRestoreSelectionSkipsVanishedPositions(t *testing.T) {
	m := New()
	b := cube(t, 64)
	m.Add(b)

	m.SelectVertex(mathx.Vec3{64, 64, 64})
	saved := m.SaveSelection()

	m.Remove(b)
	m.RestoreSelection(saved)

	assert.Len(t, m.selectedVertices, 0)
}

func TestPickFindsClosestHandle(t *testing.T) {
	m := New()
	b := cube(t, 64)
	m.Add(b)

	ray := mathx.Ray{Origin: mathx.Vec3{200, 64, 64}, Direction: mathx.Vec3{-1, 0, 0}}
	result := m.Pick(ray, 1000)

	assert.Equal(t, KindVertex, result.Kind)
	assert.InDelta(t, 64.0, result.Position.X(), mathx.SnapEpsilon)
}

func TestPickMissesBeyondMaxDistance(t *testing.T) {
	m := New()
	b := cube(t, 64)
	m.Add(b)

	ray := mathx.Ray{Origin: mathx.Vec3{200, 64, 64}, Direction: mathx.Vec3{-1, 0, 0}}
	result := m.Pick(ray, 1)

	assert.Equal(t, KindNone, result.Kind)
}
