package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// HostBoundBuffer is a standalone buffer backed by its own host visible
// memory allocation. It suits small one off transfers where a pool is not
// worth setting up.
type HostBoundBuffer struct {
	Buffer *Buffer
	Memory *DeviceMemory
}

// CreateHostBoundBuffer creates a buffer and binds it to fresh host visible,
// host coherent memory.
func (d *Device) CreateHostBoundBuffer(size int, usage vk.BufferUsageFlagBits) (*HostBoundBuffer, error) {
	buffer, err := d.CreateBufferWithOptions(uint64(size), usage, vk.SharingModeExclusive)
	if err != nil {
		return nil, err
	}

	memory, err := d.AllocateForBuffer(buffer, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
	if err != nil {
		buffer.Destroy()
		return nil, err
	}

	if err := buffer.Bind(memory, 0); err != nil {
		memory.Destroy()
		buffer.Destroy()
		return nil, err
	}

	return &HostBoundBuffer{Buffer: buffer, Memory: memory}, nil
}

// Write copies data into the buffer's memory.
func (h *HostBoundBuffer) Write(data []byte) error {
	return h.Memory.MapCopyUnmap(data)
}

// Read copies the buffer's memory out into a fresh slice.
func (h *HostBoundBuffer) Read() ([]byte, error) {
	if _, err := h.Memory.Map(); err != nil {
		return nil, err
	}
	defer h.Memory.Unmap()

	src := unsafeBytes(h.Memory.Ptr, h.Buffer.Size)
	out := make([]byte, len(src))
	copy(out, src)

	return out, nil
}

func (h *HostBoundBuffer) Destroy() {
	if h.Buffer != nil {
		h.Buffer.Destroy()
		h.Buffer = nil
	}
	if h.Memory != nil {
		h.Memory.Destroy()
		h.Memory = nil
	}
}
