package vbo

// ErrOutOfMemory reports an allocation request that could not be
// satisfied. Alloc grows the buffer by doubling until the request fits
// and does not return this error itself. It carries no reference back to
// the Vbo: errors here are pure values.
type ErrOutOfMemory struct {
	Requested int
	Free      int
}

func (e *ErrOutOfMemory) Error() string {
	return "vbo: out of memory: requested " + itoa(e.Requested) + " bytes, " + itoa(e.Free) + " free"
}

// ErrGLError reports a failed GL call during activate/map/unmap. The core
// never calls into GL itself; this exists so callers that do can report a
// failure through the same error taxonomy.
type ErrGLError struct {
	Code int
}

func (e *ErrGLError) Error() string {
	return "vbo: gl error " + itoa(e.Code)
}

// ErrInvalidState is returned when alloc/free/pack is called while the
// buffer is unmapped, or Map/Unmap is called out of turn.
type ErrInvalidState struct {
	Op string
}

func (e *ErrInvalidState) Error() string {
	return "vbo: invalid state for " + e.Op
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
