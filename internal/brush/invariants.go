package brush

import "trenchcore/internal/mathx"

// CheckInvariants verifies the universal brush invariants: every face has
// at least 3 vertices, every edge borders exactly two faces, every vertex
// lies on its face's plane, and the brush has at least 4 faces and a
// nonzero volume. It is meant for debug builds and tests; a violation is
// reported as
// *ErrGeometryInvariantViolated rather than panicking, so callers can
// choose how to escalate it.
func (b *Brush) CheckInvariants() error {
	if len(b.faces) < 4 {
		return &ErrGeometryInvariantViolated{Invariant: "brush has fewer than 4 faces"}
	}

	_, edges := b.Vertices()
	for _, e := range edges {
		if e.Left < 0 || e.Right < 0 {
			return &ErrGeometryInvariantViolated{Invariant: "edge does not have exactly two adjacent faces"}
		}
	}

	for _, f := range b.faces {
		if len(f.Loop) < 3 {
			return &ErrGeometryInvariantViolated{Invariant: "face has fewer than 3 vertices"}
		}
		for _, v := range f.Loop {
			d := f.Plane.SignedDistance(v)
			if d > mathx.Epsilon || d < -mathx.Epsilon {
				return &ErrGeometryInvariantViolated{Invariant: "face vertex is not coplanar with its plane"}
			}
		}
	}

	if !b.Bounds().HasVolume() {
		return &ErrGeometryInvariantViolated{Invariant: "brush has no volume"}
	}

	return nil
}
