package vkt

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// BufferResource is a buffer bound to a span of its pool's memory.
type BufferResource struct {
	Buffer
	Allocation   *Allocation
	ResourcePool *BufferResourcePool
}

// Bytes returns the mapped bytes backing this resource. The pool's memory
// must be host visible and mapped.
func (b *BufferResource) Bytes() ([]byte, error) {
	mem := b.ResourcePool.Memory
	if !mem.IsMapped() {
		if _, err := mem.Map(); err != nil {
			return nil, err
		}
	}

	ptr := unsafe.Pointer(uintptr(mem.Ptr) + uintptr(b.Allocation.Offset))
	return unsafe.Slice((*byte)(ptr), b.Allocation.Size), nil
}

// Write copies data into the resource's span of the pool memory.
func (b *BufferResource) Write(data []byte) error {
	if uint64(len(data)) > b.Allocation.Size {
		return fmt.Errorf("data size %d exceeds resource size %d", len(data), b.Allocation.Size)
	}

	bytes, err := b.Bytes()
	if err != nil {
		return err
	}
	copy(bytes, data)

	// Host coherent memory needs no flush; anything else does.
	if b.ResourcePool.MemoryProperties&vk.MemoryPropertyHostCoherentBit == 0 {
		return b.ResourcePool.Device.FlushMappedRanges(b)
	}

	return nil
}

// VKMappedMemoryRange describes this resource's span for flush and
// invalidate calls.
func (b *BufferResource) VKMappedMemoryRange() vk.MappedMemoryRange {
	return vk.MappedMemoryRange{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: b.ResourcePool.Memory.VKDeviceMemory,
		Offset: vk.DeviceSize(b.Allocation.Offset),
		Size:   vk.DeviceSize(b.Allocation.Size),
	}
}

// Free returns the resource's span to the pool and destroys the buffer.
func (b *BufferResource) Free() {
	b.Buffer.Destroy()
	b.ResourcePool.Allocator.Free(b.Allocation)
	b.Allocation = nil
}

// Destroy releases the underlying buffer without returning the span to the
// pool's free list. The pool allocator calls this when draining its
// contents.
func (b *BufferResource) Destroy() {
	b.Buffer.Destroy()
}
