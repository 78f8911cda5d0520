package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trenchcore/internal/brush"
	"trenchcore/internal/config"
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

func TestMoveVerticesCommandRejection(t *testing.T) {
	b := cube(t, 64)
	before := b.Bounds()

	cmd := &MoveVerticesCommand{
		Targets: map[*brush.Brush][]mathx.Vec3{b: {{64, 64, 64}}},
		Delta:   mathx.Vec3{-200, 0, 0},
	}
	err := cmd.Do()
	assert.Error(t, err)
	assert.IsType(t, &brush.ErrOperationRejected{}, err)
	assert.Equal(t, before, b.Bounds())
}

func TestMoveVerticesCommandUndoIsIdentity(t *testing.T) {
	b := cube(t, 64)
	before := b.Bounds()

	cmd := &MoveVerticesCommand{
		Targets: map[*brush.Brush][]mathx.Vec3{b: {{64, 64, 64}}},
		Delta:   mathx.Vec3{-10, 0, 0},
	}
	require.NoError(t, cmd.Do())
	assert.NotEqual(t, before, b.Bounds())

	require.NoError(t, cmd.Undo())
	assert.Equal(t, before, b.Bounds())
}

func TestStackUndoRedo(t *testing.T) {
	b := cube(t, 64)
	before := b.Bounds()
	s := NewStack()

	cmd := &MoveVerticesCommand{
		Targets: map[*brush.Brush][]mathx.Vec3{b: {{64, 64, 64}}},
		Delta:   mathx.Vec3{-10, 0, 0},
	}
	require.NoError(t, s.Submit(cmd))
	moved := b.Bounds()
	assert.NotEqual(t, before, moved)

	require.True(t, s.CanUndo())
	require.NoError(t, s.Undo())
	assert.Equal(t, before, b.Bounds())

	require.True(t, s.CanRedo())
	require.NoError(t, s.Redo())
	assert.Equal(t, moved, b.Bounds())
}

func TestGroupRollsBackOnFailure(t *testing.T) {
	b1 := cube(t, 64)
	b2 := cube(t, 64)
	before1 := b1.Bounds()

	g := NewGroup()
	ok := &MoveVerticesCommand{
		Targets: map[*brush.Brush][]mathx.Vec3{b1: {{64, 64, 64}}},
		Delta:   mathx.Vec3{-10, 0, 0},
	}
	require.NoError(t, g.Execute(ok))
	assert.NotEqual(t, before1, b1.Bounds())

	bad := &MoveVerticesCommand{
		Targets: map[*brush.Brush][]mathx.Vec3{b2: {{64, 64, 64}}},
		Delta:   mathx.Vec3{-200, 0, 0},
	}
	err := g.Execute(bad)
	assert.Error(t, err)

	assert.Equal(t, before1, b1.Bounds(), "rollback must undo the already-applied command")
	assert.True(t, g.Empty())
}

func TestCollateMergesConsecutiveDrags(t *testing.T) {
	b := cube(t, 64)

	s := NewStack()
	first := &MoveVerticesCommand{
		Targets: map[*brush.Brush][]mathx.Vec3{b: {{64, 64, 64}}},
		Delta:   mathx.Vec3{-10, 0, 0},
	}
	require.NoError(t, s.Submit(first))

	second := &MoveVerticesCommand{
		Targets: map[*brush.Brush][]mathx.Vec3{b: {{54, 64, 64}}},
		Delta:   mathx.Vec3{-4, 0, 0},
	}
	require.NoError(t, s.Submit(second))

	require.NoError(t, s.Undo())
	verts, _ := b.Vertices()
	found := false
	for _, v := range verts {
		if mathx.VecEq(v.Position, mathx.Vec3{64, 64, 64}, mathx.SnapEpsilon) {
			found = true
		}
	}
	assert.True(t, found, "a single undo should reverse the whole collated drag")
}

func TestCollateDisabledOutsideCoalesceWindow(t *testing.T) {
	original := config.GetCoalesceWindow()
	config.SetCoalesceWindow(0)
	defer config.SetCoalesceWindow(original)

	b := cube(t, 64)
	s := NewStack()
	first := &MoveVerticesCommand{
		Targets: map[*brush.Brush][]mathx.Vec3{b: {{64, 64, 64}}},
		Delta:   mathx.Vec3{-10, 0, 0},
	}
	require.NoError(t, s.Submit(first))

	time.Sleep(time.Millisecond)

	second := &MoveVerticesCommand{
		Targets: map[*brush.Brush][]mathx.Vec3{b: {{54, 64, 64}}},
		Delta:   mathx.Vec3{-4, 0, 0},
	}
	require.NoError(t, s.Submit(second))

	require.NoError(t, s.Undo())
	verts, _ := b.Vertices()
	found := false
	for _, v := range verts {
		if mathx.VecEq(v.Position, mathx.Vec3{54, 64, 64}, mathx.SnapEpsilon) {
			found = true
		}
	}
	assert.True(t, found, "undo should only reverse the second command when collation is disabled")
	assert.True(t, s.CanUndo(), "the first command should remain on the undo stack")
}
