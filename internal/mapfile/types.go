package mapfile

import (
	"trenchcore/internal/brush"
	"trenchcore/internal/mathx"
)

// Entity is one top-level `{ properties brushes }` block.
type Entity struct {
	Properties map[string]string
	Brushes    []*Brush
}

// Brush is the parsed, not-yet-built form of a brush: its ordered face
// definitions as read from the file.
type Brush struct {
	Faces []Face
}

// Face is one parsed `plane textureName textureParams` line.
type Face struct {
	P1, P2, P3 mathx.Vec3
	Texture    string
	Tex        brush.TexCoord
}

// PlaneDef derives the face's plane from its three defining points and
// pairs it with the parsed texture parameters, ready for
// brush.NewBrushFromFaces. ok is false if the three points are collinear.
func (f Face) PlaneDef() (brush.PlaneDef, bool) {
	plane, ok := mathx.NewPlaneFromPoints(f.P1, f.P2, f.P3)
	if !ok {
		return brush.PlaneDef{}, false
	}
	return brush.PlaneDef{Plane: plane, Texture: f.Tex}, true
}

// Build assembles a *brush.Brush from this parsed brush's faces. Faces with
// collinear defining points are skipped (with the caller expected to log a
// warning); a brush degenerating to fewer than 4 faces, or otherwise
// geometrically invalid, is rejected.
func (b *Brush) Build(worldBounds mathx.BBox) (*brush.Brush, []string, error) {
	var warnings []string
	var defs []brush.PlaneDef
	for i, f := range b.Faces {
		def, ok := f.PlaneDef()
		if !ok {
			warnings = append(warnings, "face "+itoa(i)+": collinear defining points, skipped")
			continue
		}
		defs = append(defs, def)
	}
	if len(defs) < 4 {
		return nil, warnings, &brush.ErrBrushCreationFailed{Reason: "fewer than 4 valid faces"}
	}
	built, err := brush.NewBrushFromFaces(worldBounds, defs)
	if err != nil {
		return nil, warnings, err
	}
	return built, warnings, nil
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}
