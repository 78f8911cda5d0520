package brush

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"trenchcore/internal/mathx"
)

// RecomputeTextureAxes re-derives a face's texture axes after its plane
// normal changes. For Standard faces no axes are stored on TexCoord: the
// Valve axis fields are cleared and the rest of tex is returned unchanged;
// rotation and scale are not applied to any axis here. For
// Valve-220 faces the stored axes are rotated by the angle between the old
// and new normal around their common perpendicular, preserving the
// original axes up to that rotation.
func RecomputeTextureAxes(tex TexCoord, oldNormal, newNormal mathx.Vec3) TexCoord {
	if tex.Format == FormatStandard {
		x, y := StandardAxes(newNormal)
		tex.ValveXAxis, tex.ValveYAxis = mathx.Vec3{}, mathx.Vec3{}
		_ = x
		_ = y
		return tex
	}

	rotated := rotateBetween(oldNormal, newNormal)
	tex.ValveXAxis = rotated.Mul4x1(vec4(tex.ValveXAxis)).Vec3()
	tex.ValveYAxis = rotated.Mul4x1(vec4(tex.ValveYAxis)).Vec3()
	return tex
}

// TextureParamsDiffer reports whether the given texture parameters are
// not all identical, for an inspector showing "multiple values" across a
// multi-face selection.
func TextureParamsDiffer(coords []TexCoord) bool {
	if len(coords) < 2 {
		return false
	}
	first := coords[0]
	for _, c := range coords[1:] {
		if c.Name != first.Name ||
			c.XOffset != first.XOffset ||
			c.YOffset != first.YOffset ||
			c.XScale != first.XScale ||
			c.YScale != first.YScale ||
			c.Rotation != first.Rotation {
			return true
		}
	}
	return false
}

func vec4(v mathx.Vec3) mgl64.Vec4 {
	return mgl64.Vec4{v.X(), v.Y(), v.Z(), 0}
}

// rotateBetween returns the rotation matrix taking "from" to "to" (both
// assumed normalized); identity if the vectors already coincide.
func rotateBetween(from, to mathx.Vec3) mathx.Mat4 {
	from = from.Normalize()
	to = to.Normalize()
	cos := clamp(from.Dot(to), -1, 1)
	if cos > 1-1e-12 {
		return mathx.Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	}
	axis := from.Cross(to)
	if axis.Len() < mathx.Epsilon {
		// 180-degree rotation: pick any perpendicular axis.
		axis = arbitraryPerp(from)
	}
	axis = axis.Normalize()
	angle := math.Acos(cos)
	return rotationMatrix(axis, angle)
}

func arbitraryPerp(v mathx.Vec3) mathx.Vec3 {
	if math.Abs(v.X()) < 0.9 {
		return mathx.Vec3{1, 0, 0}.Cross(v)
	}
	return mathx.Vec3{0, 1, 0}.Cross(v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rotationMatrix builds a right-handed rotation of angle radians around a
// normalized axis, Rodrigues' formula, packed into mathx.Mat4's
// column-major layout.
func rotationMatrix(axis mathx.Vec3, angle float64) mathx.Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X(), axis.Y(), axis.Z()

	return mathx.Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}
