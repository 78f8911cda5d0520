// Package grid implements power-of-two grid snapping for scalars,
// vectors, planes and lines as plain functions plus a *Grid receiver
// holding the editor-wide settings.
package grid

import (
	"math"

	"trenchcore/internal/mathx"
)

const (
	MinExponent = -3
	MaxExponent = 8
)

// Grid holds the editor-wide grid settings: cell size (as a log2 exponent),
// whether snapping is currently enabled, and whether the grid renders.
// The settings are plain fields with no mutex, scoped to one *Grid
// instance rather than a package-level global, since a document can own
// more than one.
type Grid struct {
	exponent int
	snap     bool
	visible  bool
}

// New returns a Grid with the given exponent (clamped to [MinExponent,
// MaxExponent]), snapping enabled and visible.
func New(exponent int) *Grid {
	return &Grid{exponent: clampExponent(exponent), snap: true, visible: true}
}

func clampExponent(e int) int {
	if e < MinExponent {
		return MinExponent
	}
	if e > MaxExponent {
		return MaxExponent
	}
	return e
}

func (g *Grid) Exponent() int { return g.exponent }

// SetExponent clamps e into range and stores it.
func (g *Grid) SetExponent(e int) { g.exponent = clampExponent(e) }

func (g *Grid) IncExponent() { g.SetExponent(g.exponent + 1) }
func (g *Grid) DecExponent() { g.SetExponent(g.exponent - 1) }

// Size returns the actual cell size, 2^exponent.
func (g *Grid) Size() float64 { return math.Exp2(float64(g.exponent)) }

func (g *Grid) SnapEnabled() bool  { return g.snap }
func (g *Grid) ToggleSnap()        { g.snap = !g.snap }
func (g *Grid) SetSnapEnabled(v bool) { g.snap = v }

func (g *Grid) Visible() bool       { return g.visible }
func (g *Grid) ToggleVisible()      { g.visible = !g.visible }
func (g *Grid) SetVisible(v bool)   { g.visible = v }

type snapDir int

const (
	dirNone snapDir = iota
	dirUp
	dirDown
)

func (g *Grid) snapScalar(f float64, dir snapDir, skip bool) float64 {
	if !g.snap {
		return f
	}
	size := g.Size()
	switch dir {
	case dirUp:
		s := size * math.Ceil(f/size)
		if skip && mathx.Eq(s, f) {
			return s + size
		}
		return s
	case dirDown:
		s := size * math.Floor(f/size)
		if skip && mathx.Eq(s, f) {
			return s - size
		}
		return s
	default:
		return size * math.Round(f/size)
	}
}

// Snap rounds x to the nearest multiple of the grid's cell size.
func (g *Grid) Snap(x float64) float64 { return g.snapScalar(x, dirNone, false) }

// SnapUp rounds x up (away from -inf) to the next grid line; if skip is set
// and x is already on the grid, it steps to the next line instead.
func (g *Grid) SnapUp(x float64, skip bool) float64 { return g.snapScalar(x, dirUp, skip) }

// SnapDown rounds x down (toward -inf) to the previous grid line; if skip
// is set and x is already on the grid, it steps to the previous line.
func (g *Grid) SnapDown(x float64, skip bool) float64 { return g.snapScalar(x, dirDown, skip) }

// Offset returns how far x is from its snapped position.
func (g *Grid) Offset(x float64) float64 {
	if !g.snap {
		return 0
	}
	return x - g.Snap(x)
}

// SnapVec3 snaps each component independently.
func (g *Grid) SnapVec3(p mathx.Vec3) mathx.Vec3 {
	return mathx.Vec3{g.Snap(p.X()), g.Snap(p.Y()), g.Snap(p.Z())}
}

// SnapTowards snaps each component of p up or down according to the sign of
// the matching component of direction d (zero components snap without a
// direction bias).
func (g *Grid) SnapTowards(p, d mathx.Vec3) mathx.Vec3 {
	snapAxis := func(v, dv float64) float64 {
		switch {
		case dv > 0:
			return g.SnapUp(v, false)
		case dv < 0:
			return g.SnapDown(v, false)
		default:
			return g.Snap(v)
		}
	}
	return mathx.Vec3{
		snapAxis(p.X(), d.X()),
		snapAxis(p.Y(), d.Y()),
		snapAxis(p.Z(), d.Z()),
	}
}

// SnapOnPlane snaps the two axes orthogonal to the plane's dominant normal
// component, then solves for the remaining axis from the plane equation so
// the result stays exactly on the plane.
func (g *Grid) SnapOnPlane(p mathx.Vec3, plane mathx.Plane) mathx.Vec3 {
	n := plane.Normal
	switch plane.FirstComponent() {
	case 0:
		y := g.Snap(p.Y())
		z := g.Snap(p.Z())
		x := (plane.Dist - n.Y()*y - n.Z()*z) / n.X()
		return mathx.Vec3{x, y, z}
	case 1:
		x := g.Snap(p.X())
		z := g.Snap(p.Z())
		y := (plane.Dist - n.X()*x - n.Z()*z) / n.Y()
		return mathx.Vec3{x, y, z}
	default:
		x := g.Snap(p.X())
		y := g.Snap(p.Y())
		z := (plane.Dist - n.X()*x - n.Y()*y) / n.Z()
		return mathx.Vec3{x, y, z}
	}
}

// SnapOnLine finds the point on the line (point, direction) closest to p
// such that at least one coordinate along a non-degenerate axis direction
// lands exactly on a grid line.
func (g *Grid) SnapOnLine(p, linePoint, lineDir mathx.Vec3) mathx.Vec3 {
	dir := lineDir.Normalize()
	toP := p.Sub(linePoint)
	proj := toP.Dot(dir)
	pr := linePoint.Add(dir.Mul(proj))

	best := pr
	bestDiff := math.MaxFloat64
	axes := [3]float64{dir.X(), dir.Y(), dir.Z()}
	prAxes := [3]float64{pr.X(), pr.Y(), pr.Z()}
	lpAxes := [3]float64{linePoint.X(), linePoint.Y(), linePoint.Z()}

	for i := 0; i < 3; i++ {
		if axes[i] == 0 {
			continue
		}
		candidates := [2]float64{
			g.SnapDown(prAxes[i], false) - lpAxes[i],
			g.SnapUp(prAxes[i], false) - lpAxes[i],
		}
		for _, v := range candidates {
			s := v / axes[i]
			diff := math.Abs(s - proj)
			if diff < bestDiff {
				bestDiff = diff
				best = linePoint.Add(dir.Mul(s))
			}
		}
	}
	return best
}
