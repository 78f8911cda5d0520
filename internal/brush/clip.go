package brush

import (
	"errors"

	"trenchcore/internal/mathx"
)

// clipPolygon clips a convex polygon loop against the half-space behind
// plane (points with signed distance > Epsilon are dropped), returning
// the clipped loop and the 0 or 2 new points introduced where the polygon
// boundary crosses the plane, ordered (exit, entry): the point where the
// walk leaves the kept side first, the point where it re-enters second.
func clipPolygon(loop []mathx.Vec3, plane mathx.Plane) (out, newPts []mathx.Vec3) {
	n := len(loop)
	if n == 0 {
		return nil, nil
	}
	isIn := func(v mathx.Vec3) bool {
		return plane.SignedDistance(v) <= mathx.Epsilon
	}
	for i := 0; i < n; i++ {
		cur := loop[i]
		next := loop[(i+1)%n]
		curIn := isIn(cur)
		nextIn := isIn(next)
		if curIn {
			out = appendDedup(out, cur)
		}
		if curIn != nextIn {
			if x, ok := plane.IntersectWithEdge(cur, next); ok {
				out = appendDedup(out, x)
				if curIn {
					newPts = append([]mathx.Vec3{x}, newPts...)
				} else {
					newPts = append(newPts, x)
				}
			}
		}
	}
	// A fully-inside loop whose last point equals the first after the
	// wraparound check can leave a trailing duplicate; trim it.
	for len(out) > 1 && mathx.VecEq(out[0], out[len(out)-1], mathx.SnapEpsilon) {
		out = out[:len(out)-1]
	}
	return out, newPts
}

func appendDedup(loop []mathx.Vec3, v mathx.Vec3) []mathx.Vec3 {
	if len(loop) > 0 && mathx.VecEq(loop[len(loop)-1], v, mathx.SnapEpsilon) {
		return loop
	}
	return append(loop, v)
}

// clipFaces clips every face in faces against the half-space behind plane,
// discards faces that collapse to fewer than 3 vertices, and — when the
// plane actually crosses the polyhedron — assembles the new cap face from
// the chord each clipped face contributes.
func clipFaces(faces []*Face, plane mathx.Plane, tex TexCoord) ([]*Face, error) {
	var kept []*Face
	var chords [][2]mathx.Vec3

	for _, f := range faces {
		newLoop, newPts := clipPolygon(f.Loop, plane)
		if len(newLoop) >= 3 {
			kept = append(kept, &Face{Plane: f.Plane, Loop: newLoop, Texture: f.Texture})
		}
		if len(newPts) == 2 {
			chords = append(chords, [2]mathx.Vec3{newPts[0], newPts[1]})
		}
	}

	if len(chords) == 0 {
		// Either the plane missed the polyhedron entirely (kept == faces,
		// a redundant plane) or removed it entirely (kept is empty).
		return kept, nil
	}

	capLoop, err := chainChords(chords)
	if err != nil {
		return nil, err
	}
	if len(capLoop) < 3 {
		return kept, nil
	}
	kept = append(kept, &Face{Plane: plane, Loop: orientLoop(capLoop, plane.Normal), Texture: tex})
	return kept, nil
}

// chainChords threads the directed (exit, entry) chords contributed by
// each clipped face into a single closed polygon loop.
func chainChords(chords [][2]mathx.Vec3) ([]mathx.Vec3, error) {
	remaining := make([]bool, len(chords))
	for i := range remaining {
		remaining[i] = true
	}

	loop := []mathx.Vec3{chords[0][0]}
	cur := chords[0][1]
	remaining[0] = false

	for !mathx.VecEq(cur, loop[0], mathx.SnapEpsilon) {
		loop = append(loop, cur)

		found := -1
		for i, c := range chords {
			if remaining[i] && mathx.VecEq(c[0], cur, mathx.SnapEpsilon) {
				found = i
				break
			}
		}
		if found == -1 {
			return nil, errors.New("cannot close cap face: unmatched chord endpoint")
		}
		remaining[found] = false
		cur = chords[found][1]

		if len(loop) > len(chords)+1 {
			return nil, errors.New("cannot close cap face: chord chain did not terminate")
		}
	}

	return loop, nil
}
