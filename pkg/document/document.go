// Package document is the composition root that wires brush storage, the
// command stack, the handle manager and the grid into one editing
// session: a single struct holding every subsystem plus a constructor
// that wires them together.
package document

import (
	"trenchcore/internal/brush"
	"trenchcore/internal/command"
	"trenchcore/internal/grid"
	"trenchcore/internal/handle"
	"trenchcore/internal/mapfile"
	"trenchcore/internal/mathx"
	"trenchcore/internal/texture"
)

// Document holds everything one open map needs to be edited: the brush
// set, the selectable-handle index over it, the grid snapping settings,
// the undo/redo history, and the texture lookup handed in by the
// surrounding application.
type Document struct {
	WorldBounds mathx.BBox
	Brushes     []*brush.Brush
	Handles     *handle.Manager
	Grid        *grid.Grid
	Commands    *command.Stack
	Notify      *command.ChangeNotifier
	Textures    texture.Manager
}

// New returns an empty document over worldBounds, the same bounding cube
// every brush is clipped against.
func New(worldBounds mathx.BBox, textures texture.Manager) *Document {
	return &Document{
		WorldBounds: worldBounds,
		Handles:     handle.New(),
		Grid:        grid.New(0),
		Commands:    command.NewStack(),
		Notify:      &command.ChangeNotifier{},
		Textures:    textures,
	}
}

// AddBrush appends b to the document and indexes its vertices/edges.
func (d *Document) AddBrush(b *brush.Brush) {
	d.Brushes = append(d.Brushes, b)
	d.Handles.Add(b)
}

// RemoveBrush drops b from the document and un-indexes it.
func (d *Document) RemoveBrush(b *brush.Brush) {
	for i, existing := range d.Brushes {
		if existing == b {
			d.Brushes = append(d.Brushes[:i], d.Brushes[i+1:]...)
			break
		}
	}
	d.Handles.Remove(b)
}

// NewBrush clips worldBounds against defs and, on success, adds the
// resulting brush to the document.
func (d *Document) NewBrush(defs []brush.PlaneDef) (*brush.Brush, error) {
	b, err := brush.NewBrushFromFaces(d.WorldBounds, defs)
	if err != nil {
		return nil, err
	}
	d.AddBrush(b)
	return b, nil
}

// MoveVertices submits a MoveVerticesCommand through the undo stack and
// re-indexes the moved brushes' handles on success.
func (d *Document) MoveVertices(targets map[*brush.Brush][]mathx.Vec3, delta mathx.Vec3) error {
	cmd := &command.MoveVerticesCommand{Targets: targets, Delta: delta, Notify: d.Notify}
	if err := d.Commands.Submit(cmd); err != nil {
		return err
	}
	d.reindex(targets)
	return nil
}

// Undo reverses the most recent command and rebuilds the handle index,
// since the command may have moved vertices out from under it.
func (d *Document) Undo() error {
	if err := d.Commands.Undo(); err != nil {
		return err
	}
	d.reindexAll()
	return nil
}

// Redo re-applies the most recently undone command.
func (d *Document) Redo() error {
	if err := d.Commands.Redo(); err != nil {
		return err
	}
	d.reindexAll()
	return nil
}

func (d *Document) reindex(targets map[*brush.Brush][]mathx.Vec3) {
	for b := range targets {
		d.Handles.Remove(b)
		d.Handles.Add(b)
	}
}

func (d *Document) reindexAll() {
	d.Handles = handle.New()
	for _, b := range d.Brushes {
		d.Handles.Add(b)
	}
}

// LoadResult is one parsed-and-built entity: its property bag plus the
// brushes that were successfully constructed from its face list.
type LoadResult struct {
	Properties map[string]string
	Brushes    []*brush.Brush
	Warnings   []string
}

// LoadMap parses map-file source and builds a brush for every entity's
// brush list, adding successfully built brushes to the document. Parse
// errors and per-brush build warnings are returned alongside the results
// rather than aborting the load, matching the parser's own per-entity
// recovery.
func (d *Document) LoadMap(data []byte) ([]LoadResult, []error) {
	parser := mapfile.NewParser(data, nil)
	entities, errs := parser.Parse()

	results := make([]LoadResult, 0, len(entities))
	for _, ent := range entities {
		res := LoadResult{Properties: ent.Properties}
		for _, mb := range ent.Brushes {
			b, warnings, err := mb.Build(d.WorldBounds)
			res.Warnings = append(res.Warnings, warnings...)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			d.AddBrush(b)
			res.Brushes = append(res.Brushes, b)
		}
		results = append(results, res)
	}
	return results, errs
}
