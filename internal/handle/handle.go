// Package handle indexes the selectable vertex and edge positions across a
// working set of brushes and answers ray-picking queries against them.
package handle

import (
	"math"

	"trenchcore/internal/brush"
	"trenchcore/internal/mathx"
)

// VertexHandle is one position-keyed entry: every brush that has a vertex
// at (approximately) this position.
type VertexHandle struct {
	Position mathx.Vec3
	Brushes  []*brush.Brush
}

// EdgeHandle is one position-keyed entry, keyed by edge center: every edge
// (from possibly different brushes) whose center falls here.
type EdgeHandle struct {
	Position mathx.Vec3
	Edges    []brush.Edge
}

// Manager holds four position-keyed maps: unselected/selected vertex
// handles and unselected/selected edge handles, each keyed by a
// snap-epsilon bucket so positions within SnapEpsilon of each other
// collide into one entry.
type Manager struct {
	unselectedVertices map[[3]int64]*VertexHandle
	selectedVertices   map[[3]int64]*VertexHandle
	unselectedEdges    map[[3]int64]*EdgeHandle
	selectedEdges      map[[3]int64]*EdgeHandle
	dirty              bool
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{
		unselectedVertices: make(map[[3]int64]*VertexHandle),
		selectedVertices:   make(map[[3]int64]*VertexHandle),
		unselectedEdges:    make(map[[3]int64]*EdgeHandle),
		selectedEdges:      make(map[[3]int64]*EdgeHandle),
	}
}

func key(p mathx.Vec3) [3]int64 { return mathx.SnapKey(p) }

// Dirty reports whether any add/remove/select/deselect has happened since
// the last ClearDirty, gating the render-state cache rebuild.
func (m *Manager) Dirty() bool { return m.dirty }
func (m *Manager) ClearDirty() { m.dirty = false }

// Add indexes every vertex and edge of b into the unselected maps.
func (m *Manager) Add(b *brush.Brush) {
	verts, edges := b.Vertices()
	for _, v := range verts {
		m.addVertex(v.Position, b)
	}
	for _, e := range edges {
		center := e.Start.Add(e.End).Mul(0.5)
		m.addEdge(center, e)
	}
	m.dirty = true
}

// Remove un-indexes every vertex and edge of b from whichever map
// (selected or unselected) currently holds it.
func (m *Manager) Remove(b *brush.Brush) {
	verts, edges := b.Vertices()
	for _, v := range verts {
		m.removeVertexBrush(v.Position, b)
	}
	for _, e := range edges {
		center := e.Start.Add(e.End).Mul(0.5)
		m.removeEdgeEntry(center, e)
	}
	m.dirty = true
}

func (m *Manager) addVertex(pos mathx.Vec3, b *brush.Brush) {
	k := key(pos)
	if _, ok := m.selectedVertices[k]; ok {
		entry := m.selectedVertices[k]
		entry.Brushes = appendUniqueBrush(entry.Brushes, b)
		return
	}
	entry, ok := m.unselectedVertices[k]
	if !ok {
		entry = &VertexHandle{Position: pos}
		m.unselectedVertices[k] = entry
	}
	entry.Brushes = appendUniqueBrush(entry.Brushes, b)
}

func (m *Manager) addEdge(center mathx.Vec3, e brush.Edge) {
	k := key(center)
	if entry, ok := m.selectedEdges[k]; ok {
		entry.Edges = append(entry.Edges, e)
		return
	}
	entry, ok := m.unselectedEdges[k]
	if !ok {
		entry = &EdgeHandle{Position: center}
		m.unselectedEdges[k] = entry
	}
	entry.Edges = append(entry.Edges, e)
}

func appendUniqueBrush(list []*brush.Brush, b *brush.Brush) []*brush.Brush {
	for _, existing := range list {
		if existing == b {
			return list
		}
	}
	return append(list, b)
}

func (m *Manager) removeVertexBrush(pos mathx.Vec3, b *brush.Brush) {
	k := key(pos)
	for _, mp := range [2]map[[3]int64]*VertexHandle{m.unselectedVertices, m.selectedVertices} {
		if entry, ok := mp[k]; ok {
			entry.Brushes = removeBrush(entry.Brushes, b)
			if len(entry.Brushes) == 0 {
				delete(mp, k)
			}
		}
	}
}

func removeBrush(list []*brush.Brush, b *brush.Brush) []*brush.Brush {
	out := list[:0]
	for _, existing := range list {
		if existing != b {
			out = append(out, existing)
		}
	}
	return out
}

func (m *Manager) removeEdgeEntry(center mathx.Vec3, e brush.Edge) {
	k := key(center)
	for _, mp := range [2]map[[3]int64]*EdgeHandle{m.unselectedEdges, m.selectedEdges} {
		if entry, ok := mp[k]; ok {
			filtered := entry.Edges[:0]
			for _, existing := range entry.Edges {
				if existing != e {
					filtered = append(filtered, existing)
				}
			}
			entry.Edges = filtered
			if len(entry.Edges) == 0 {
				delete(mp, k)
			}
		}
	}
}

// SelectVertex moves the vertex handle at pos from unselected to selected.
func (m *Manager) SelectVertex(pos mathx.Vec3) {
	k := key(pos)
	if entry, ok := m.unselectedVertices[k]; ok {
		delete(m.unselectedVertices, k)
		m.selectedVertices[k] = entry
		m.dirty = true
	}
}

// DeselectVertex moves the vertex handle at pos from selected to unselected.
func (m *Manager) DeselectVertex(pos mathx.Vec3) {
	k := key(pos)
	if entry, ok := m.selectedVertices[k]; ok {
		delete(m.selectedVertices, k)
		m.unselectedVertices[k] = entry
		m.dirty = true
	}
}

// SelectEdge moves the edge handle centered at pos from unselected to selected.
func (m *Manager) SelectEdge(pos mathx.Vec3) {
	k := key(pos)
	if entry, ok := m.unselectedEdges[k]; ok {
		delete(m.unselectedEdges, k)
		m.selectedEdges[k] = entry
		m.dirty = true
	}
}

// DeselectEdge moves the edge handle centered at pos from selected to unselected.
func (m *Manager) DeselectEdge(pos mathx.Vec3) {
	k := key(pos)
	if entry, ok := m.selectedEdges[k]; ok {
		delete(m.selectedEdges, k)
		m.unselectedEdges[k] = entry
		m.dirty = true
	}
}

// Selection is an opaque capture of which vertex/edge positions were
// selected, for SaveSelection/RestoreSelection.
type Selection struct {
	vertices []mathx.Vec3
	edges    []mathx.Vec3
}

// SaveSelection captures the currently selected positions.
func (m *Manager) SaveSelection() Selection {
	var s Selection
	for _, entry := range m.selectedVertices {
		s.vertices = append(s.vertices, entry.Position)
	}
	for _, entry := range m.selectedEdges {
		s.edges = append(s.edges, entry.Position)
	}
	return s
}

// RestoreSelection clears the current selection and reselects every
// position in s that still exists, silently skipping positions whose
// handles vanished due to an intervening topology change.
func (m *Manager) RestoreSelection(s Selection) {
	for k, entry := range m.selectedVertices {
		delete(m.selectedVertices, k)
		m.unselectedVertices[k] = entry
	}
	for k, entry := range m.selectedEdges {
		delete(m.selectedEdges, k)
		m.unselectedEdges[k] = entry
	}
	for _, p := range s.vertices {
		m.SelectVertex(p)
	}
	for _, p := range s.edges {
		m.SelectEdge(p)
	}
	m.dirty = true
}

// HandleKind distinguishes what a PickResult hit.
type HandleKind int

const (
	KindNone HandleKind = iota
	KindVertex
	KindEdge
)

// PickResult is the closest handle hit by a Pick call.
type PickResult struct {
	Kind     HandleKind
	Position mathx.Vec3
	Distance float64
}

// baseSphereRadius is the handle's apparent radius at one unit from the
// camera; actual radius scales linearly with distance so handles keep a
// constant on-screen size.
const baseSphereRadius = 0.02

// Pick intersects ray against every indexed vertex and edge-center handle
// within maxDistance of the ray origin, using a screen-space-constant
// sphere radius, and returns the closest hit. Ties break by smaller ray
// distance, then by lexicographically smaller position.
func (m *Manager) Pick(ray mathx.Ray, maxDistance float64) PickResult {
	best := PickResult{Kind: KindNone, Distance: math.Inf(1)}

	tryMap := func(mp map[[3]int64]*VertexHandle, kind HandleKind) {
		for _, entry := range mp {
			m.considerHit(ray, maxDistance, entry.Position, kind, &best)
		}
	}
	tryEdgeMap := func(mp map[[3]int64]*EdgeHandle, kind HandleKind) {
		for _, entry := range mp {
			m.considerHit(ray, maxDistance, entry.Position, kind, &best)
		}
	}

	tryMap(m.unselectedVertices, KindVertex)
	tryMap(m.selectedVertices, KindVertex)
	tryEdgeMap(m.unselectedEdges, KindEdge)
	tryEdgeMap(m.selectedEdges, KindEdge)

	return best
}

func (m *Manager) considerHit(ray mathx.Ray, maxDistance float64, pos mathx.Vec3, kind HandleKind, best *PickResult) {
	camDist := pos.Sub(ray.Origin).Len()
	if camDist > maxDistance {
		return
	}
	radius := baseSphereRadius * camDist
	dist := ray.IntersectWithSphere(pos, radius)
	if math.IsNaN(dist) {
		return
	}
	if dist > best.Distance {
		return
	}
	if dist == best.Distance && best.Kind != KindNone && !mathx.LexLess(pos, best.Position) {
		return
	}
	best.Kind = kind
	best.Position = pos
	best.Distance = dist
}
