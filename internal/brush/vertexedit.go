package brush

import "trenchcore/internal/mathx"

// rebuiltDefs recomputes one PlaneDef per current face after moving every
// vertex in selected by delta, refitting each face's plane from its (now
// possibly merged) defining points — mirroring how a map-format face's
// plane is always derived from three of its points.
// A face whose loop collapses below 3 distinct points, or whose points stay
// collinear, vanishes (it contributes no plane) rather than erroring: a
// vertex move can legitimately remove a face by merging it away.
func rebuiltDefs(b *Brush, selected []mathx.Vec3, delta mathx.Vec3) []PlaneDef {
	moved := func(p mathx.Vec3) mathx.Vec3 {
		for _, s := range selected {
			if mathx.VecEq(p, s, mathx.SnapEpsilon) {
				return p.Add(delta)
			}
		}
		return p
	}

	var defs []PlaneDef
	for _, f := range b.faces {
		var loop []mathx.Vec3
		for _, p := range f.Loop {
			loop = appendDedup(loop, moved(p))
		}
		for len(loop) > 1 && mathx.VecEq(loop[0], loop[len(loop)-1], mathx.SnapEpsilon) {
			loop = loop[:len(loop)-1]
		}
		if len(loop) < 3 {
			continue
		}
		p1, p2, p3, ok := findTriangle(loop)
		if !ok {
			continue
		}
		plane, ok := mathx.NewPlaneFromPoints(p1, p2, p3)
		if !ok {
			continue
		}
		defs = append(defs, PlaneDef{Plane: plane, Texture: f.Texture})
	}
	return defs
}

// findTriangle returns the first three non-collinear points in loop order.
func findTriangle(loop []mathx.Vec3) (p1, p2, p3 mathx.Vec3, ok bool) {
	n := len(loop)
	for i := 2; i < n; i++ {
		if _, planeOK := mathx.NewPlaneFromPoints(loop[0], loop[1], loop[i]); planeOK {
			return loop[0], loop[1], loop[i], true
		}
	}
	return mathx.Vec3{}, mathx.Vec3{}, mathx.Vec3{}, false
}

// CanMoveVertices reports whether moving every position in selected by
// delta yields a valid brush with no other (non-selected) vertex
// displaced. It mutates nothing. Each affected face's plane is refitted
// through the first three non-collinear points of its moved loop and no
// face is split, so a move that leaves a face non-planar displaces another
// vertex and is rejected (for example, moving a single corner of a box).
func (b *Brush) CanMoveVertices(selected []mathx.Vec3, delta mathx.Vec3) error {
	_, _, err := b.tryMoveVertices(selected, delta)
	return err
}

// MoveVertices commits the move, returning the resulting positions of the
// moved vertices (which may differ from selected[i]+delta if vertices
// merged). The brush's internal state is replaced only on success; on
// failure it is left bit-identical to its pre-call state.
func (b *Brush) MoveVertices(selected []mathx.Vec3, delta mathx.Vec3) ([]mathx.Vec3, error) {
	newBrush, positions, err := b.tryMoveVertices(selected, delta)
	if err != nil {
		return nil, err
	}
	b.faces = newBrush.faces
	b.boundsValid = false
	return positions, nil
}

func (b *Brush) tryMoveVertices(selected []mathx.Vec3, delta mathx.Vec3) (*Brush, []mathx.Vec3, error) {
	defs := rebuiltDefs(b, selected, delta)
	if len(defs) < 4 {
		return nil, nil, &ErrOperationRejected{Reason: "move would leave fewer than 4 faces"}
	}

	newBrush, err := NewBrushFromFaces(b.worldBounds, defs)
	if err != nil {
		return nil, nil, &ErrOperationRejected{Reason: err.Error()}
	}

	origVerts, _ := b.Vertices()
	newVerts, _ := newBrush.Vertices()
	isSelected := func(p mathx.Vec3) bool {
		for _, s := range selected {
			if mathx.VecEq(p, s, mathx.SnapEpsilon) {
				return true
			}
		}
		return false
	}
	hasVertexNear := func(verts []Vertex, p mathx.Vec3) bool {
		for _, v := range verts {
			if mathx.VecEq(v.Position, p, mathx.SnapEpsilon) {
				return true
			}
		}
		return false
	}
	for _, v := range origVerts {
		if isSelected(v.Position) {
			continue
		}
		if !hasVertexNear(newVerts, v.Position) {
			return nil, nil, &ErrOperationRejected{Reason: "move would displace a non-selected vertex"}
		}
	}

	positions := make([]mathx.Vec3, len(selected))
	for i, s := range selected {
		target := s.Add(delta)
		best := target
		for _, v := range newVerts {
			if mathx.VecEq(v.Position, target, mathx.SnapEpsilon) {
				best = v.Position
				break
			}
		}
		positions[i] = best
	}

	return newBrush, positions, nil
}
