package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trenchcore/internal/brush"
	"trenchcore/internal/mathx"
	"trenchcore/internal/texture"
)

func worldBounds() mathx.BBox {
	return mathx.BBox{Min: mathx.Vec3{-4096, -4096, -4096}, Max: mathx.Vec3{4096, 4096, 4096}}
}

func cubeDefs(half float64) []brush.PlaneDef {
	axes := []mathx.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	var defs []brush.PlaneDef
	for _, n := range axes {
		defs = append(defs, brush.PlaneDef{Plane: mathx.Plane{Normal: n, Dist: half}})
	}
	return defs
}

func TestNewBrushAddsToDocumentAndIndex(t *testing.T) {
	doc := New(worldBounds(), texture.NewInMemoryManager())
	b, err := doc.NewBrush(cubeDefs(64))
	require.NoError(t, err)

	assert.Len(t, doc.Brushes, 1)
	assert.True(t, doc.Handles.Dirty())

	verts, _ := b.Vertices()
	assert.Len(t, verts, 8)
}

func TestMoveVerticesUpdatesHandleIndex(t *testing.T) {
	doc := New(worldBounds(), texture.NewInMemoryManager())
	b, err := doc.NewBrush(cubeDefs(64))
	require.NoError(t, err)

	verts, _ := b.Vertices()
	var target mathx.Vec3
	for _, v := range verts {
		if v.Position.X() > 0 && v.Position.Y() > 0 && v.Position.Z() > 0 {
			target = v.Position
			break
		}
	}

	err = doc.MoveVertices(map[*brush.Brush][]mathx.Vec3{b: {target}}, mathx.Vec3{-10, 0, 0})
	require.NoError(t, err)

	bounds := b.Bounds()
	assert.InDelta(t, 54, bounds.Max.X(), mathx.SnapEpsilon)
	assert.True(t, doc.Commands.CanUndo())
}

func TestUndoRestoresBoundsAndReindexes(t *testing.T) {
	doc := New(worldBounds(), texture.NewInMemoryManager())
	b, err := doc.NewBrush(cubeDefs(64))
	require.NoError(t, err)

	verts, _ := b.Vertices()
	var target mathx.Vec3
	for _, v := range verts {
		if v.Position.X() > 0 && v.Position.Y() > 0 && v.Position.Z() > 0 {
			target = v.Position
			break
		}
	}

	require.NoError(t, doc.MoveVertices(map[*brush.Brush][]mathx.Vec3{b: {target}}, mathx.Vec3{-10, 0, 0}))
	require.NoError(t, doc.Undo())

	bounds := b.Bounds()
	assert.InDelta(t, 64, bounds.Max.X(), mathx.SnapEpsilon)
	assert.True(t, doc.Commands.CanRedo())
}

func TestRemoveBrushDropsItAndUnindexes(t *testing.T) {
	doc := New(worldBounds(), texture.NewInMemoryManager())
	b, err := doc.NewBrush(cubeDefs(64))
	require.NoError(t, err)

	doc.RemoveBrush(b)
	assert.Len(t, doc.Brushes, 0)
}

const sampleMap = `{
"classname" "worldspawn"
{
( 0 0 0 ) ( 0 1 0 ) ( 1 0 0 ) __TB_empty 0 0 0 1 1
}
}
`

func TestLoadMapReportsPropertiesAndBuildFailure(t *testing.T) {
	doc := New(worldBounds(), texture.NewInMemoryManager())
	results, errs := doc.LoadMap([]byte(sampleMap))
	require.Len(t, results, 1)
	assert.Equal(t, "worldspawn", results[0].Properties["classname"])
	// A single face can't form a closed solid; Build rejects it rather
	// than adding a degenerate brush to the document.
	assert.Empty(t, results[0].Brushes)
	assert.Len(t, doc.Brushes, 0)
	require.NotEmpty(t, errs)
}
