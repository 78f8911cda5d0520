// Package config holds editor-wide settings outside of any one document:
// the command-collation window used by internal/command. A mutex-guarded
// package-level settings struct, the same shape previously used here for
// render distance and FPS cap, now adapted to editing settings: persisted
// preferences live in the external preferences subsystem, leaving
// process-wide editing knobs like this one to the core.
package config

import (
	"sync"
	"time"
)

// EditorSettings holds process-wide editing knobs that are not part of
// any single document.
type EditorSettings struct {
	mu             sync.RWMutex
	coalesceWindow time.Duration
}

var global = &EditorSettings{
	coalesceWindow: 1 * time.Second,
}

// GetCoalesceWindow returns how long after a command is submitted a
// matching follow-up command may still collate into it. Outside
// this window a new drag starts a new undo entry even if the positions
// would otherwise chain.
func GetCoalesceWindow() time.Duration {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.coalesceWindow
}

// SetCoalesceWindow sets the collation window; d <= 0 disables
// collation entirely (every command becomes its own undo entry).
func SetCoalesceWindow(d time.Duration) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.coalesceWindow = d
}
