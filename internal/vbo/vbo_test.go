package vbo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocFreeReuse(t *testing.T) {
	v := New(1024)

	a, err := v.Alloc(100)
	require.NoError(t, err)
	b, err := v.Alloc(200)
	require.NoError(t, err)

	require.NoError(t, v.Free(a))

	c, err := v.Alloc(100)
	require.NoError(t, err)
	assert.Equal(t, a.Address(), c.Address(), "allocation should reuse the freed slot")

	assert.Equal(t, 1024-200-100, v.FreeBytes())
	require.NoError(t, v.CheckInvariants())

	_ = b
}

func TestPackRestoresSingleTrailingBlock(t *testing.T) {
	v := New(1024)

	a, err := v.Alloc(100)
	require.NoError(t, err)
	_, err = v.Alloc(200)
	require.NoError(t, err)
	require.NoError(t, v.Free(a))
	_, err = v.Alloc(100)
	require.NoError(t, err)

	require.NoError(t, v.Pack())
	require.NoError(t, v.CheckInvariants())
	assert.Equal(t, 1024-200-100, v.FreeBytes())

	free := 0
	for cur := v.first.next; cur != v.last; cur = cur.next {
		if cur.free {
			free++
		}
	}
	assert.Equal(t, 1, free, "pack should coalesce free space into one trailing block")
}

func TestAllocGrowsBufferWhenExhausted(t *testing.T) {
	v := New(64)
	_, err := v.Alloc(100)
	require.NoError(t, err)
	assert.Equal(t, 128, v.Total())
	require.NoError(t, v.CheckInvariants())
}

func TestFreeCoalescesNeighbors(t *testing.T) {
	v := New(300)
	a, _ := v.Alloc(100)
	b, _ := v.Alloc(100)
	_, _ = v.Alloc(100)

	require.NoError(t, v.Free(a))
	require.NoError(t, v.Free(b))
	require.NoError(t, v.CheckInvariants())
	assert.Equal(t, 200, v.FreeBytes())

	found := false
	for _, fb := range v.freeBlocks {
		if fb.capacity == 200 {
			found = true
		}
	}
	assert.True(t, found, "adjacent frees should coalesce into one 200-byte block")
}

func TestOperationsRequireMapped(t *testing.T) {
	v := New(64)
	require.NoError(t, v.Unmap())

	_, err := v.Alloc(8)
	assert.Error(t, err)

	require.NoError(t, v.Map())
	_, err = v.Alloc(8)
	assert.NoError(t, err)
}

func BenchmarkAllocFree(b *testing.B) {
	v := New(1 << 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blk, err := v.Alloc(64)
		if err != nil {
			b.Fatal(err)
		}
		if err := v.Free(blk); err != nil {
			b.Fatal(err)
		}
	}
}
