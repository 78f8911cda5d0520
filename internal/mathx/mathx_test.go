package mathx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaneFromPoints(t *testing.T) {
	p, ok := NewPlaneFromPoints(Vec3{0, 0, 0}, Vec3{0, 1, 0}, Vec3{1, 0, 0})
	assert.True(t, ok)
	assert.InDelta(t, 0, p.Dist, Epsilon)
	assert.InDelta(t, 1, p.Normal.Z(), Epsilon)
}

func TestPlaneFromCollinearPoints(t *testing.T) {
	_, ok := NewPlaneFromPoints(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{2, 0, 0})
	assert.False(t, ok)
}

func TestPlaneSignedDistance(t *testing.T) {
	p := Plane{Normal: Vec3{0, 0, 1}, Dist: 5}
	assert.InDelta(t, 3, p.SignedDistance(Vec3{0, 0, 8}), Epsilon)
	assert.InDelta(t, -5, p.SignedDistance(Vec3{0, 0, 0}), Epsilon)
}

func TestPlaneIntersectWithEdge(t *testing.T) {
	p := Plane{Normal: Vec3{0, 0, 1}, Dist: 0}
	v, ok := p.IntersectWithEdge(Vec3{0, 0, -1}, Vec3{0, 0, 1})
	assert.True(t, ok)
	assert.InDelta(t, 0, v.Z(), Epsilon)
}

func TestRayIntersectWithPlane(t *testing.T) {
	r := Ray{Origin: Vec3{0, 0, -5}, Direction: Vec3{0, 0, 1}}
	p := Plane{Normal: Vec3{0, 0, 1}, Dist: 0}
	d := r.IntersectWithPlane(p)
	assert.InDelta(t, 5, d, Epsilon)
}

func TestRayIntersectWithSphereMiss(t *testing.T) {
	r := Ray{Origin: Vec3{10, 10, 0}, Direction: Vec3{1, 0, 0}}
	d := r.IntersectWithSphere(Vec3{0, 0, 0}, 1)
	assert.True(t, math.IsNaN(d))
}

func TestBBoxFromPoints(t *testing.T) {
	b := BBoxFromPoints([]Vec3{{-64, -64, -64}, {64, 64, 64}, {0, 10, -10}})
	assert.Equal(t, Vec3{-64, -64, -64}, b.Min)
	assert.Equal(t, Vec3{64, 64, 64}, b.Max)
	assert.InDelta(t, 2097152.0, b.Volume(), 1e-6)
}

func TestLexLess(t *testing.T) {
	assert.True(t, LexLess(Vec3{0, 0, 0}, Vec3{1, 0, 0}))
	assert.False(t, LexLess(Vec3{1, 0, 0}, Vec3{0, 0, 0}))
	assert.False(t, LexLess(Vec3{0, 0, 0}, Vec3{0, 0, 0}))
}
