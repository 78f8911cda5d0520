// Package vbo implements a buddy-list style block allocator over a single
// linear byte buffer, standing in for a GPU vertex buffer object. It
// never touches an actual GL context; callers own that and report
// failures back through ErrGLError.
package vbo

import "sort"

// Block is a contiguous sub-range of the Vbo's byte buffer. Two sentinel
// blocks (capacity 0) cap the doubly linked list so splice operations never
// need a nil check.
type Block struct {
	address  int
	capacity int
	free     bool
	prev     *Block
	next     *Block
}

func (b *Block) Address() int  { return b.address }
func (b *Block) Capacity() int { return b.capacity }
func (b *Block) Free() bool    { return b.free }

// Vbo is a single linear byte buffer managed as a list of Block ranges plus
// a secondary free-block index sorted by (capacity, address) for fast
// best-fit allocation.
type Vbo struct {
	data       []byte
	total      int
	freeCap    int
	first      *Block
	last       *Block
	freeBlocks []*Block
	mapped     bool
}

// New creates a Vbo with the given initial capacity, already mapped.
func New(total int) *Vbo {
	v := &Vbo{data: make([]byte, total), total: total, mapped: true}
	v.first = &Block{address: 0, capacity: 0}
	v.last = &Block{address: total, capacity: 0}
	body := &Block{address: 0, capacity: total, free: true}
	v.first.next = body
	body.prev = v.first
	body.next = v.last
	v.last.prev = body
	v.freeBlocks = []*Block{body}
	v.freeCap = total
	return v
}

func (v *Vbo) Total() int     { return v.total }
func (v *Vbo) FreeBytes() int { return v.freeCap }
func (v *Vbo) Mapped() bool   { return v.mapped }

// Map transitions the buffer to the allocator-writable state.
func (v *Vbo) Map() error {
	if v.mapped {
		return &ErrInvalidState{Op: "map: already mapped"}
	}
	v.mapped = true
	return nil
}

// Unmap transitions the buffer to the GPU-readable state; alloc/free/pack
// all require mapped.
func (v *Vbo) Unmap() error {
	if !v.mapped {
		return &ErrInvalidState{Op: "unmap: already unmapped"}
	}
	v.mapped = false
	return nil
}

func freeBlockLess(a, b *Block) bool {
	if a.capacity != b.capacity {
		return a.capacity < b.capacity
	}
	return a.address < b.address
}

func (v *Vbo) insertFree(b *Block) {
	i := sort.Search(len(v.freeBlocks), func(i int) bool { return !freeBlockLess(v.freeBlocks[i], b) })
	v.freeBlocks = append(v.freeBlocks, nil)
	copy(v.freeBlocks[i+1:], v.freeBlocks[i:])
	v.freeBlocks[i] = b
}

func (v *Vbo) removeFree(b *Block) {
	i := sort.Search(len(v.freeBlocks), func(i int) bool { return !freeBlockLess(v.freeBlocks[i], b) })
	for i < len(v.freeBlocks) && v.freeBlocks[i] != b {
		i++
	}
	if i == len(v.freeBlocks) {
		return
	}
	v.freeBlocks = append(v.freeBlocks[:i], v.freeBlocks[i+1:]...)
}

// Alloc reserves a contiguous range of at least n bytes, doubling the
// buffer first if no free block is large enough.
func (v *Vbo) Alloc(n int) (*Block, error) {
	if !v.mapped {
		return nil, &ErrInvalidState{Op: "alloc"}
	}
	if n <= 0 {
		return nil, &ErrInvalidState{Op: "alloc: non-positive size"}
	}

	for {
		idx := sort.Search(len(v.freeBlocks), func(i int) bool { return v.freeBlocks[i].capacity >= n })
		if idx < len(v.freeBlocks) {
			block := v.freeBlocks[idx]
			v.removeFree(block)
			if block.capacity > n {
				remainder := &Block{address: block.address + n, capacity: block.capacity - n, free: true}
				remainder.prev = block
				remainder.next = block.next
				block.next.prev = remainder
				block.next = remainder
				block.capacity = n
				v.insertFree(remainder)
			}
			block.free = false
			v.freeCap -= n
			return block, nil
		}

		newTotal := v.total * 2
		if newTotal == 0 {
			newTotal = n
		}
		if err := v.Resize(newTotal); err != nil {
			return nil, err
		}
	}
}

// Free releases block back to the buffer and coalesces it with an
// adjacent free neighbor on either side.
func (v *Vbo) Free(block *Block) error {
	if !v.mapped {
		return &ErrInvalidState{Op: "free"}
	}
	if block.free {
		return &ErrInvalidState{Op: "free: double free"}
	}

	block.free = true
	v.freeCap += block.capacity

	if prev := block.prev; prev != v.first && prev.free {
		v.removeFree(prev)
		prev.capacity += block.capacity
		prev.next = block.next
		block.next.prev = prev
		block = prev
		v.insertFree(block)
	} else {
		v.insertFree(block)
	}

	if next := block.next; next != v.last && next.free {
		v.removeFree(next)
		v.removeFree(block)
		block.capacity += next.capacity
		block.next = next.next
		next.next.prev = block
		v.insertFree(block)
	}

	return nil
}

// Resize grows the buffer to newTotal, preserving every live block's
// address and contents, and extends or creates a trailing free block to
// cover the new space. A newTotal below the current size is rejected with
// ErrInvalidState.
func (v *Vbo) Resize(newTotal int) error {
	if newTotal < v.total {
		return &ErrInvalidState{Op: "resize: shrink not supported"}
	}
	if newTotal == v.total {
		return nil
	}

	grown := newTotal - v.total
	nd := make([]byte, newTotal)
	copy(nd, v.data)
	v.data = nd

	if tail := v.last.prev; tail != v.first && tail.free {
		v.removeFree(tail)
		tail.capacity += grown
		v.insertFree(tail)
	} else {
		newBlock := &Block{address: v.total, capacity: grown, free: true}
		newBlock.prev = v.last.prev
		newBlock.next = v.last
		v.last.prev.next = newBlock
		v.last.prev = newBlock
		v.insertFree(newBlock)
	}

	v.total = newTotal
	v.freeCap += grown
	v.last.address = newTotal
	return nil
}

// Pack compacts the buffer by sliding every live block toward address 0,
// coalescing all free space into a single trailing block, preserving
// allocated contents bit-exactly.
func (v *Vbo) Pack() error {
	if !v.mapped {
		return &ErrInvalidState{Op: "pack"}
	}

	cur := v.first.next
	addr := 0
	for cur != v.last {
		next := cur.next
		if !cur.free {
			if cur.address != addr {
				copy(v.data[addr:addr+cur.capacity], v.data[cur.address:cur.address+cur.capacity])
				cur.address = addr
			}
			addr += cur.capacity
		}
		cur = next
	}

	// Rebuild the list: all live blocks first (in original relative order),
	// then a single trailing free block.
	v.freeBlocks = v.freeBlocks[:0]

	var liveTail *Block = v.first
	cur = v.first.next
	for cur != v.last {
		next := cur.next
		if !cur.free {
			liveTail.next = cur
			cur.prev = liveTail
			liveTail = cur
		}
		cur = next
	}

	trailing := v.total - addr
	tailBlock := &Block{address: addr, capacity: trailing, free: true}
	liveTail.next = tailBlock
	tailBlock.prev = liveTail
	tailBlock.next = v.last
	v.last.prev = tailBlock
	if trailing > 0 {
		v.insertFree(tailBlock)
	}

	return nil
}

// CheckInvariants verifies the block-list and free-index invariants: the
// list covers [0, total) with no gaps or overlaps, the free index exactly
// matches the blocks flagged free, and it stays sorted by
// (capacity, address).
func (v *Vbo) CheckInvariants() error {
	addr := 0
	freeSum := 0
	var freeInList []*Block
	for cur := v.first.next; cur != v.last; cur = cur.next {
		if cur.address != addr {
			return &ErrInvalidState{Op: "invariant: block list has a gap or overlap"}
		}
		addr += cur.capacity
		if cur.free {
			freeSum += cur.capacity
			freeInList = append(freeInList, cur)
		}
	}
	if addr != v.total {
		return &ErrInvalidState{Op: "invariant: block list does not cover [0, total)"}
	}
	if freeSum != v.freeCap {
		return &ErrInvalidState{Op: "invariant: free byte count mismatch"}
	}
	if len(freeInList) != len(v.freeBlocks) {
		return &ErrInvalidState{Op: "invariant: free index size mismatch"}
	}
	for i := 1; i < len(v.freeBlocks); i++ {
		if freeBlockLess(v.freeBlocks[i], v.freeBlocks[i-1]) {
			return &ErrInvalidState{Op: "invariant: free index not sorted"}
		}
	}
	return nil
}
