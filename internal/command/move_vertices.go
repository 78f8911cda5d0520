package command

import (
	"trenchcore/internal/brush"
	"trenchcore/internal/mathx"
)

// MoveVerticesCommand moves a set of vertex positions in each target brush
// by a common delta.
type MoveVerticesCommand struct {
	Targets map[*brush.Brush][]mathx.Vec3
	Delta   mathx.Vec3
	Notify  *ChangeNotifier

	snapshots map[*brush.Brush]*brush.Brush
	results   map[*brush.Brush][]mathx.Vec3
	done      bool
}

// Do verifies every target brush accepts the move before mutating any of
// them: if any rejects, the whole command fails atomically and no brush is
// touched.
func (c *MoveVerticesCommand) Do() error {
	c.Notify.notifyWill()
	defer c.Notify.notifyDid()

	for b, positions := range c.Targets {
		if err := b.CanMoveVertices(positions, c.Delta); err != nil {
			return err
		}
	}

	brushes := make([]*brush.Brush, 0, len(c.Targets))
	for b := range c.Targets {
		brushes = append(brushes, b)
	}
	c.snapshots = snapshotAll(brushes)
	c.results = make(map[*brush.Brush][]mathx.Vec3, len(c.Targets))

	for b, positions := range c.Targets {
		newPositions, err := b.MoveVertices(positions, c.Delta)
		if err != nil {
			// A precondition passed but the commit itself failed (should not
			// normally happen since CanMoveVertices runs the same algorithm);
			// restore whatever has already been applied and fail atomically.
			restoreAll(c.snapshots)
			return err
		}
		c.results[b] = newPositions
	}

	c.done = true
	return nil
}

// Undo restores every target brush from its snapshot.
func (c *MoveVerticesCommand) Undo() error {
	if !c.done {
		return nil
	}
	c.Notify.notifyWill()
	restoreAll(c.snapshots)
	c.done = false
	c.Notify.notifyDid()
	return nil
}

// Collate merges other into c when both move the same brush set and
// other's starting positions are exactly this command's resulting
// positions — i.e. a continuous drag.
func (c *MoveVerticesCommand) Collate(other Command) bool {
	o, ok := other.(*MoveVerticesCommand)
	if !ok || !c.done {
		return false
	}
	if len(o.Targets) != len(c.Targets) {
		return false
	}
	for b, startPositions := range o.Targets {
		resultPositions, ok := c.results[b]
		if !ok || !samePositionSet(startPositions, resultPositions) {
			return false
		}
	}

	mergedDelta := c.Delta.Add(o.Delta)
	preSnapshots := c.snapshots
	originalTargets := c.Targets

	c.Delta = mergedDelta
	restoreAll(preSnapshots)
	c.snapshots = preSnapshots
	c.results = make(map[*brush.Brush][]mathx.Vec3, len(originalTargets))
	for b, positions := range originalTargets {
		newPositions, err := b.MoveVertices(positions, mergedDelta)
		if err != nil {
			restoreAll(preSnapshots)
			return false
		}
		c.results[b] = newPositions
	}
	return true
}

func samePositionSet(a, b []mathx.Vec3) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, pa := range a {
		found := false
		for i, pb := range b {
			if used[i] {
				continue
			}
			if mathx.VecEq(pa, pb, mathx.SnapEpsilon) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
