package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryManagerRegisterAndLookup(t *testing.T) {
	m := NewInMemoryManager()
	m.Register(Info{Name: "brick1_2", Width: 128, Height: 128})
	m.Register(Info{Name: "metal_floor", Width: 64, Height: 64})

	info, ok := m.Texture("brick1_2")
	assert.True(t, ok)
	assert.Equal(t, 128, info.Width)

	_, ok = m.Texture("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"brick1_2", "metal_floor"}, m.Names())
}

func TestInMemoryManagerRegisterReplacesExisting(t *testing.T) {
	m := NewInMemoryManager()
	m.Register(Info{Name: "a", Width: 16, Height: 16})
	m.Register(Info{Name: "a", Width: 32, Height: 32})

	info, ok := m.Texture("a")
	assert.True(t, ok)
	assert.Equal(t, 32, info.Width)
	assert.Equal(t, []string{"a"}, m.Names())
}
