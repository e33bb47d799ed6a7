package vkt

import (
	"testing"
)

func TestAlignUp(t *testing.T) {
	if alignUp(12, 3) != 12 {
		t.Error("12 is already aligned to 3")
	}
	if alignUp(10, 3) != 12 {
		t.Error("10 should align up to 12")
	}
	if alignUp(7, 1) != 7 {
		t.Error("alignment of 1 should be a no-op")
	}
	if alignUp(5, 0) != 5 {
		t.Error("alignment of 0 should be a no-op")
	}
}

func TestPoolAllocator(t *testing.T) {
	a := PoolAllocator{Size: 1024}

	if ra := a.Allocate(2048, 1); ra != nil {
		t.Error("allocation larger than the pool should fail")
	}

	first := a.Allocate(512, 1)
	if first == nil {
		t.Error("failed to allocate from an empty pool")
	}

	if ra := a.Allocate(768, 1); ra != nil {
		t.Error("allocation should not fit next to the first")
	}

	second := a.Allocate(500, 1)
	if second == nil {
		t.Error("failed to allocate into remaining space")
	}

	if ra := a.Allocate(50, 1); ra != nil {
		t.Error("pool should be nearly exhausted")
	}

	if ra := a.Allocate(5, 1); ra == nil {
		t.Error("small allocation should still fit in the tail")
	}

	if ra := a.Allocate(20, 1); ra != nil {
		t.Error("tail should now be exhausted")
	}

	a.Free(second)
	if ra := a.Allocate(500, 1); ra == nil {
		t.Error("freed span should be reusable")
	}

	a.Free(first)
	if ra := a.Allocate(20, 1); ra == nil {
		t.Error("head span should be reusable after free")
	}
	if ra := a.Allocate(40, 1); ra == nil {
		t.Error("head span should accept a second allocation")
	}
	if ra := a.Allocate(12, 1); ra == nil {
		t.Error("head span should accept a third allocation")
	}
	if ra := a.Allocate(500, 1); ra != nil {
		t.Error("pool should not fit another large allocation")
	}
	if ra := a.Allocate(5, 1); ra == nil {
		t.Error("small allocation should still fit")
	}
}

func TestPoolAllocatorAlignment(t *testing.T) {
	a := PoolAllocator{Size: 1024}

	first := a.Allocate(10, 1)
	if first == nil {
		t.Fatal("failed initial allocation")
	}

	aligned := a.Allocate(16, 256)
	if aligned == nil {
		t.Fatal("failed aligned allocation")
	}
	if aligned.Offset%256 != 0 {
		t.Errorf("allocation offset %d is not 256 byte aligned", aligned.Offset)
	}
}

type destroyCounter struct {
	destroyed int
}

func (d *destroyCounter) Destroy() { d.destroyed++ }

func TestPoolAllocatorDestroyContents(t *testing.T) {
	a := PoolAllocator{Size: 64}
	d := &destroyCounter{}

	one := a.Allocate(16, 1)
	one.Object = d
	two := a.Allocate(16, 1)
	two.Object = d

	a.DestroyContents()

	if d.destroyed != 2 {
		t.Errorf("expected 2 destroyed objects, got %d", d.destroyed)
	}
	if len(a.allocs) != 0 {
		t.Errorf("pool should be empty after DestroyContents, has %d allocations", len(a.allocs))
	}
}
