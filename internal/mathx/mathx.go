// Package mathx provides the shared 64-bit vector, matrix, plane, ray and
// bounding-box primitives used by the brush kernel, handle manager and
// grid snapping.
package mathx

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is an alias for mgl64's 3-vector; every geometric subsystem in this
// module operates in 64-bit float space.
type Vec3 = mgl64.Vec3

// Mat4 is an alias for mgl64's 4x4 matrix.
type Mat4 = mgl64.Mat4

const (
	// Epsilon governs near-equality comparisons (plane distances, coplanarity).
	Epsilon = 1e-6
	// SnapEpsilon governs vertex merging/deduplication distance.
	SnapEpsilon = 1e-3
)

// Eq reports whether a and b are equal within Epsilon.
func Eq(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Zero reports whether a is zero within Epsilon.
func Zero(a float64) bool {
	return math.Abs(a) <= Epsilon
}

// VecEq reports whether two vectors are equal within the given epsilon.
func VecEq(a, b Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

// LexLess implements the lexicographic ordering used to key handle maps:
// compare X, then Y, then Z, each within SnapEpsilon.
func LexLess(a, b Vec3) bool {
	if !Eq2(a.X(), b.X(), SnapEpsilon) {
		return a.X() < b.X()
	}
	if !Eq2(a.Y(), b.Y(), SnapEpsilon) {
		return a.Y() < b.Y()
	}
	if !Eq2(a.Z(), b.Z(), SnapEpsilon) {
		return a.Z() < b.Z()
	}
	return false
}

// Eq2 reports whether a and b are equal within eps.
func Eq2(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// SnapKey quantizes a position to a snap-epsilon grid so that two positions
// within SnapEpsilon of each other hash to the same map key.
func SnapKey(v Vec3) [3]int64 {
	const scale = 1.0 / SnapEpsilon
	return [3]int64{
		int64(math.Round(v.X() * scale)),
		int64(math.Round(v.Y() * scale)),
		int64(math.Round(v.Z() * scale)),
	}
}

// SortVec3 sorts positions using LexLess, for deterministic iteration order
// (map iteration in Go is randomized, and tie-breaking in picking/rendering
// needs a stable order).
func SortVec3(vs []Vec3) {
	sort.Slice(vs, func(i, j int) bool { return LexLess(vs[i], vs[j]) })
}

// Plane is (normal, distance-from-origin): the set of points p such that
// normal.Dot(p) == dist.
type Plane struct {
	Normal Vec3
	Dist   float64
}

// NewPlaneFromPoints builds the plane through three points, with the normal
// (p3-p1)x(p2-p1): (p1, p2, p3) appear clockwise when viewed from the side
// the normal points to. Returns false if the points are collinear
// (degenerate normal).
func NewPlaneFromPoints(p1, p2, p3 Vec3) (Plane, bool) {
	v1 := p3.Sub(p1)
	v2 := p2.Sub(p1)
	normal := v1.Cross(v2)
	if Zero(normal.Len()) {
		return Plane{}, false
	}
	normal = normal.Normalize()
	return Plane{Normal: normal, Dist: normal.Dot(p1)}, true
}

// SignedDistance returns the signed distance from p to the plane: positive
// on the side the normal points to.
func (p Plane) SignedDistance(v Vec3) float64 {
	return p.Normal.Dot(v) - p.Dist
}

// PointOnPlane projects v onto the plane along the normal.
func (p Plane) PointOnPlane(v Vec3) Vec3 {
	d := p.SignedDistance(v)
	return v.Sub(p.Normal.Mul(d))
}

// Flipped returns the plane with the normal (and thus distance) negated.
func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.Mul(-1), Dist: -p.Dist}
}

// IntersectWithEdge finds the point where the segment (a, b) crosses the
// plane, assuming a and b are on opposite sides. Returns false if the
// segment is parallel to the plane.
func (p Plane) IntersectWithEdge(a, b Vec3) (Vec3, bool) {
	da := p.SignedDistance(a)
	db := p.SignedDistance(b)
	denom := da - db
	if Zero(denom) {
		return Vec3{}, false
	}
	t := da / denom
	return a.Add(b.Sub(a).Mul(t)), true
}

// FirstComponent returns the axis index (0, 1, 2) whose component has the
// largest absolute magnitude in the normal; used for plane-projection
// snapping.
func (p Plane) FirstComponent() int {
	ax, ay, az := math.Abs(p.Normal.X()), math.Abs(p.Normal.Y()), math.Abs(p.Normal.Z())
	switch {
	case ax >= ay && ax >= az:
		return 0
	case ay >= ax && ay >= az:
		return 1
	default:
		return 2
	}
}

// Ray is a half-line starting at Origin going in Direction (assumed
// normalized by the caller where it matters).
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// PointAtDistance returns the point reached by walking the ray for dist units.
func (r Ray) PointAtDistance(dist float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(dist))
}

// IntersectWithPlane returns the distance along the ray at which it crosses
// the plane, or math.NaN() if parallel or behind the origin.
func (r Ray) IntersectWithPlane(p Plane) float64 {
	denom := p.Normal.Dot(r.Direction)
	if Zero(denom) {
		return math.NaN()
	}
	d := (p.Dist - p.Normal.Dot(r.Origin)) / denom
	if d < 0 {
		return math.NaN()
	}
	return d
}

// IntersectWithSphere returns the distance along the ray to the nearest
// intersection with a sphere at center with the given radius, or
// math.NaN() if there is none.
func (r Ray) IntersectWithSphere(center Vec3, radius float64) float64 {
	diff := r.Origin.Sub(center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * diff.Dot(r.Direction)
	c := diff.Dot(diff) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return math.NaN()
	}
	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)
	switch {
	case t1 >= 0:
		return t1
	case t2 >= 0:
		return t2
	default:
		return math.NaN()
	}
}

// BBox is an axis-aligned bounding box with the invariant Min[i] <= Max[i].
type BBox struct {
	Min, Max Vec3
}

// EmptyBBox returns a degenerate bbox suitable as a fold accumulator's
// starting point (first Extend call establishes real bounds).
func EmptyBBox() BBox {
	inf := math.Inf(1)
	return BBox{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// Extend grows the bbox to include v, returning the updated box.
func (b BBox) Extend(v Vec3) BBox {
	return BBox{
		Min: Vec3{math.Min(b.Min.X(), v.X()), math.Min(b.Min.Y(), v.Y()), math.Min(b.Min.Z(), v.Z())},
		Max: Vec3{math.Max(b.Max.X(), v.X()), math.Max(b.Max.Y(), v.Y()), math.Max(b.Max.Z(), v.Z())},
	}
}

// BBoxFromPoints computes the tightest box containing all the given points.
func BBoxFromPoints(pts []Vec3) BBox {
	b := EmptyBBox()
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// Contains reports whether v lies within the box (inclusive).
func (b BBox) Contains(v Vec3) bool {
	return v.X() >= b.Min.X() && v.X() <= b.Max.X() &&
		v.Y() >= b.Min.Y() && v.Y() <= b.Max.Y() &&
		v.Z() >= b.Min.Z() && v.Z() <= b.Max.Z()
}

// Union returns the tightest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return b.Extend(o.Min).Extend(o.Max)
}

// Center returns the midpoint of the box.
func (b BBox) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Volume returns the (non-negative) volume of the box.
func (b BBox) Volume() float64 {
	size := b.Max.Sub(b.Min)
	return size.X() * size.Y() * size.Z()
}

// HasVolume reports whether the box has positive volume greater than Epsilon
// along every axis — the brush-validity check used after clipping.
func (b BBox) HasVolume() bool {
	size := b.Max.Sub(b.Min)
	return size.X() > Epsilon && size.Y() > Epsilon && size.Z() > Epsilon
}
