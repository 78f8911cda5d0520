package brush

import "fmt"

// ErrBrushCreationFailed reports that a plane set collapsed to an empty or
// degenerate polyhedron during clipping.
type ErrBrushCreationFailed struct {
	Reason string
}

func (e *ErrBrushCreationFailed) Error() string {
	return fmt.Sprintf("brush creation failed: %s", e.Reason)
}

// ErrGeometryInvariantViolated signals an internal consistency bug detected
// by a debug-mode check. It is never expected in correct code
// and callers should treat it as fatal.
type ErrGeometryInvariantViolated struct {
	Invariant string
}

func (e *ErrGeometryInvariantViolated) Error() string {
	return fmt.Sprintf("geometry invariant violated: %s", e.Invariant)
}

// ErrOperationRejected reports that a precondition for a proposed edit
// failed (e.g. CanMoveVertices); the caller must surface this to the UI
// without aborting the document.
type ErrOperationRejected struct {
	Reason string
}

func (e *ErrOperationRejected) Error() string {
	return fmt.Sprintf("operation rejected: %s", e.Reason)
}
