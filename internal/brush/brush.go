package brush

import (
	"trenchcore/internal/mathx"
)

// Brush is a convex polyhedron represented as an ordered collection of
// faces; vertices and edges are derived collections computed
// on demand by Vertices.
type Brush struct {
	faces       []*Face
	worldBounds mathx.BBox
	bounds      mathx.BBox
	boundsValid bool
}

// PlaneDef is one input face plane plus the texture parameters the map
// parser attached to it.
type PlaneDef struct {
	Plane   mathx.Plane
	Texture TexCoord
}

// NewBrushFromFaces builds a brush by intersecting the world-bounds box
// with the half-space behind each plane (signed distance <= Epsilon), in
// order.
// It fails with *ErrBrushCreationFailed if the polyhedron becomes empty or
// loses 3D extent at any step, leaving no partial state behind.
func NewBrushFromFaces(worldBounds mathx.BBox, defs []PlaneDef) (*Brush, error) {
	if len(defs) == 0 {
		return nil, &ErrBrushCreationFailed{Reason: "no faces given"}
	}

	faces := boxFaces(worldBounds)

	for i, def := range defs {
		var err error
		faces, err = clipFaces(faces, def.Plane, def.Texture)
		if err != nil {
			return nil, &ErrBrushCreationFailed{Reason: err.Error()}
		}
		if len(faces) == 0 {
			return nil, &ErrBrushCreationFailed{Reason: "polyhedron became empty after face " + itoa(i)}
		}
		bounds := loopBounds(faces)
		if !bounds.HasVolume() {
			return nil, &ErrBrushCreationFailed{Reason: "polyhedron lost 3D extent after face " + itoa(i)}
		}
	}

	b := &Brush{faces: faces, worldBounds: worldBounds}
	b.bounds = loopBounds(faces)
	b.boundsValid = true
	if b.bounds.Volume() <= mathx.Epsilon {
		return nil, &ErrBrushCreationFailed{Reason: "degenerate brush: zero volume"}
	}
	return b, nil
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

func loopBounds(faces []*Face) mathx.BBox {
	b := mathx.EmptyBBox()
	for _, f := range faces {
		for _, v := range f.Loop {
			b = b.Extend(v)
		}
	}
	return b
}

// Faces returns the brush's ordered face list. Callers must not mutate the
// returned slice or its elements; clone the brush to edit speculatively.
func (b *Brush) Faces() []*Face {
	return b.faces
}

// Bounds returns the tightest axis-aligned box containing every vertex of
// the brush.
func (b *Brush) Bounds() mathx.BBox {
	if !b.boundsValid {
		b.bounds = loopBounds(b.faces)
		b.boundsValid = true
	}
	return b.bounds
}

// Volume returns the brush's volume, computed by summing signed tetrahedra
// from an interior reference point (the bounds center) to every face
// triangle — exact for any convex polyhedron.
func (b *Brush) Volume() float64 {
	ref := b.Bounds().Center()
	var vol float64
	for _, f := range b.faces {
		for i := 1; i+1 < len(f.Loop); i++ {
			vol += signedTetraVolume(ref, f.Loop[0], f.Loop[i], f.Loop[i+1])
		}
	}
	if vol < 0 {
		vol = -vol
	}
	return vol
}

func signedTetraVolume(a, b, c, d mathx.Vec3) float64 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	return ab.Cross(ac).Dot(ad) / 6.0
}

// Clone deep-copies the brush, used by speculative edits that must be able
// to discard their scratch copy without touching the original.
func (b *Brush) Clone() *Brush {
	nf := make([]*Face, len(b.faces))
	for i, f := range b.faces {
		loop := make([]mathx.Vec3, len(f.Loop))
		copy(loop, f.Loop)
		nf[i] = &Face{Plane: f.Plane, Loop: loop, Texture: f.Texture}
	}
	return &Brush{faces: nf, worldBounds: b.worldBounds}
}

// Restore replaces the brush's face list with a deep copy of snapshot's,
// used by command undo to put a brush back exactly as a prior Clone
// captured it.
func (b *Brush) Restore(snapshot *Brush) {
	b.faces = snapshot.Clone().faces
	b.worldBounds = snapshot.worldBounds
	b.boundsValid = false
}

// vertexKey returns the snap-epsilon bucket key used to deduplicate
// vertices and match opposite half-edges across faces.
func vertexKey(v mathx.Vec3) [3]int64 {
	return mathx.SnapKey(v)
}

// Vertices returns the brush's deduplicated vertex list along with, for
// each vertex, the indices into the returned edge slice of its incident
// edges.
func (b *Brush) Vertices() ([]Vertex, []Edge) {
	type halfEdge struct {
		start, end  mathx.Vec3
		face        int
	}

	var halves []halfEdge
	for fi, f := range b.faces {
		n := len(f.Loop)
		for i := 0; i < n; i++ {
			halves = append(halves, halfEdge{start: f.Loop[i], end: f.Loop[(i+1)%n], face: fi})
		}
	}

	// Pair opposite half-edges into undirected Edge records.
	used := make([]bool, len(halves))
	var edges []Edge
	index := make(map[[2][3]int64]int)
	for i, h := range halves {
		key := [2][3]int64{vertexKey(h.start), vertexKey(h.end)}
		index[key] = i
	}

	for i, h := range halves {
		if used[i] {
			continue
		}
		oppKey := [2][3]int64{vertexKey(h.end), vertexKey(h.start)}
		j, ok := index[oppKey]
		right := -1
		if ok && !used[j] {
			right = halves[j].face
			used[j] = true
		}
		used[i] = true
		edges = append(edges, Edge{Start: h.start, End: h.end, Left: h.face, Right: right})
	}

	// Deduplicate vertices by snap bucket, recording incident edge indices.
	vidx := make(map[[3]int64]int)
	var verts []Vertex
	addIncident := func(pos mathx.Vec3, edgeIdx int) {
		k := vertexKey(pos)
		vi, ok := vidx[k]
		if !ok {
			vi = len(verts)
			vidx[k] = vi
			verts = append(verts, Vertex{Position: pos})
		}
		verts[vi].Edges = append(verts[vi].Edges, edgeIdx)
	}
	for ei, e := range edges {
		addIncident(e.Start, ei)
		addIncident(e.End, ei)
	}

	return verts, edges
}
