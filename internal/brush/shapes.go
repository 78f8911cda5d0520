package brush

import "trenchcore/internal/mathx"

// boxFaces builds the six quad faces of an axis-aligned box, each wound
// clockwise when viewed from outside.
func boxFaces(b mathx.BBox) []*Face {
	min, max := b.Min, b.Max
	corners := func(axis int, value float64, u, v [2]float64) []mathx.Vec3 {
		pt := func(uVal, vVal float64) mathx.Vec3 {
			switch axis {
			case 0:
				return mathx.Vec3{value, uVal, vVal}
			case 1:
				return mathx.Vec3{uVal, value, vVal}
			default:
				return mathx.Vec3{uVal, vVal, value}
			}
		}
		return []mathx.Vec3{
			pt(u[0], v[0]),
			pt(u[1], v[0]),
			pt(u[1], v[1]),
			pt(u[0], v[1]),
		}
	}

	makeFace := func(normal mathx.Vec3, loop []mathx.Vec3) *Face {
		ordered := orientLoop(loop, normal)
		plane, ok := mathx.NewPlaneFromPoints(ordered[0], ordered[1], ordered[2])
		if !ok || plane.Normal.Dot(normal) < 0 {
			// degenerate guard: fall back to the requested normal with the
			// loop's own plane distance.
			plane = mathx.Plane{Normal: normal, Dist: normal.Dot(ordered[0])}
		}
		return &Face{Plane: plane, Loop: ordered}
	}

	uY := [2]float64{min.Y(), max.Y()}
	uZ := [2]float64{min.Z(), max.Z()}
	uX := [2]float64{min.X(), max.X()}

	faces := []*Face{
		makeFace(mathx.Vec3{1, 0, 0}, corners(0, max.X(), uY, uZ)),
		makeFace(mathx.Vec3{-1, 0, 0}, corners(0, min.X(), uY, uZ)),
		makeFace(mathx.Vec3{0, 1, 0}, corners(1, max.Y(), uX, uZ)),
		makeFace(mathx.Vec3{0, -1, 0}, corners(1, min.Y(), uX, uZ)),
		makeFace(mathx.Vec3{0, 0, 1}, corners(2, max.Z(), uX, uY)),
		makeFace(mathx.Vec3{0, 0, -1}, corners(2, min.Z(), uX, uY)),
	}
	return faces
}

// orientLoop returns loop, reversed if necessary so that its winding
// produces a plane normal matching the desired outward normal.
func orientLoop(loop []mathx.Vec3, desired mathx.Vec3) []mathx.Vec3 {
	if len(loop) < 3 {
		return loop
	}
	plane, ok := mathx.NewPlaneFromPoints(loop[0], loop[1], loop[2])
	if ok && plane.Normal.Dot(desired) < 0 {
		reversed := make([]mathx.Vec3, len(loop))
		for i, v := range loop {
			reversed[len(loop)-1-i] = v
		}
		return reversed
	}
	return loop
}
