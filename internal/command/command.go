// Package command implements the undo/redo command layer over brushes:
// a Command interface with Do/Undo/Collate, deep-copy snapshots for
// rollback, a move-vertices command, a rollback-capable command group,
// and a Stack that is the undo/redo history.
package command

import (
	"trenchcore/internal/brush"
	"trenchcore/internal/notify"
)

// Command is one undoable unit of work. Collate attempts to merge other
// into the receiver (the most recently applied command); it returns true
// if the merge succeeded, in which case other is discarded rather than
// pushed onto the stack.
type Command interface {
	Do() error
	Undo() error
	Collate(other Command) bool
}

// ChangeNotifier fires strictly around a mutation: WillChange before,
// DidChange after, including on failure paths where WillChange has
// already fired.
type ChangeNotifier struct {
	WillChange notify.Notifier0
	DidChange  notify.Notifier0
}

func (n *ChangeNotifier) notifyWill() {
	if n != nil {
		n.WillChange.Notify()
	}
}

func (n *ChangeNotifier) notifyDid() {
	if n != nil {
		n.DidChange.Notify()
	}
}

// snapshotAll clones every brush in brushes, keyed by its live pointer, so
// Undo can restore exactly this state later.
func snapshotAll(brushes []*brush.Brush) map[*brush.Brush]*brush.Brush {
	snap := make(map[*brush.Brush]*brush.Brush, len(brushes))
	for _, b := range brushes {
		snap[b] = b.Clone()
	}
	return snap
}

func restoreAll(snap map[*brush.Brush]*brush.Brush) {
	for b, s := range snap {
		b.Restore(s)
	}
}
