package vkt

import (
	"fmt"
)

// Allocation is a span of memory handed out by an allocator. Object may be
// set by the owner of the allocation so that pool teardown can destroy the
// resource occupying the span.
type Allocation struct {
	Offset uint64
	Size   uint64
	Object IDestructable
}

func (a *Allocation) String() string {
	return fmt.Sprintf("[%d %d]", a.Offset, a.Size)
}

// IAllocator hands out spans from a fixed amount of device memory. Vulkan
// caps the number of memory allocations an application may make, so resources
// are sub-allocated from larger pools rather than allocated individually.
type IAllocator interface {
	Allocate(size uint64, align uint64) *Allocation
	Free(a *Allocation)
	DestroyContents()
	LogDetails()
}

// PoolAllocator is a first fit allocator over a fixed size span. Allocations
// are kept sorted by offset so free space is found by walking the gaps.
type PoolAllocator struct {
	Size   uint64
	allocs []*Allocation
}

func alignUp(a uint64, align uint64) uint64 {
	if align <= 1 {
		return a
	}
	m := a % align
	if m == 0 {
		return a
	}
	return (a - m) + align
}

// Allocate finds a span of at least size bytes whose offset is a multiple of
// align. It returns nil if the pool cannot fit the request.
func (p *PoolAllocator) Allocate(size uint64, align uint64) *Allocation {
	if len(p.allocs) == 0 {
		if size > p.Size {
			return nil
		}
		na := &Allocation{Offset: 0, Size: size}
		p.allocs = append(p.allocs, na)
		return na
	}

	// Space ahead of the first allocation.
	if p.allocs[0].Offset >= size {
		na := &Allocation{Offset: 0, Size: size}
		p.allocs = append([]*Allocation{na}, p.allocs...)
		return na
	}

	// Gaps between neighbouring allocations.
	for i := 0; i+1 < len(p.allocs); i++ {
		c := p.allocs[i]
		n := p.allocs[i+1]

		l := alignUp(c.Offset+c.Size, align)
		if n.Offset >= l && n.Offset-l >= size {
			na := &Allocation{Offset: l, Size: size}
			p.allocs = append(p.allocs[:i+1], append([]*Allocation{na}, p.allocs[i+1:]...)...)
			return na
		}
	}

	// The tail of the pool.
	last := p.allocs[len(p.allocs)-1]
	l := alignUp(last.Offset+last.Size, align)
	if l <= p.Size && p.Size-l >= size {
		na := &Allocation{Offset: l, Size: size}
		p.allocs = append(p.allocs, na)
		return na
	}

	return nil
}

// Free returns the allocation's span to the pool.
func (p *PoolAllocator) Free(fa *Allocation) {
	for i, a := range p.allocs {
		if a == fa {
			p.allocs = append(p.allocs[:i], p.allocs[i+1:]...)
			return
		}
	}
}

// DestroyContents destroys every object still occupying the pool.
func (p *PoolAllocator) DestroyContents() {
	// Destroying an object normally frees its allocation too, so the list
	// shrinks as we go rather than being ranged over.
	for len(p.allocs) > 0 {
		a := p.allocs[0]
		if a.Object != nil {
			a.Object.Destroy()
		}
		if len(p.allocs) > 0 && p.allocs[0] == a {
			p.Free(a)
		}
	}
}

func (p *PoolAllocator) LogDetails() {
	for _, a := range p.allocs {
		logger.Debugf("allocation %s", a)
	}
}

func (p *PoolAllocator) String() string {
	return fmt.Sprintf("%v", p.allocs)
}
