package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// CommandPool allocates command buffers for a queue family.
type CommandPool struct {
	Device        *Device
	VKCommandPool vk.CommandPool
	QueueFamily   *QueueFamily
}

// CreateCommandPool makes a resettable command pool for the given queue
// family.
func (d *Device) CreateCommandPool(family *QueueFamily) (*CommandPool, error) {
	ci := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: uint32(family.Index),
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}

	var pool vk.CommandPool
	if err := vk.Error(vk.CreateCommandPool(d.VKDevice, &ci, nil, &pool)); err != nil {
		return nil, err
	}

	return &CommandPool{
		Device:        d,
		VKCommandPool: pool,
		QueueFamily:   family,
	}, nil
}

// AllocateBuffer allocates a single command buffer.
func (c *CommandPool) AllocateBuffer(level vk.CommandBufferLevel) (*CommandBuffer, error) {
	buffers, err := c.AllocateBuffers(1, level)
	if err != nil {
		return nil, err
	}
	return buffers[0], nil
}

// AllocateBuffers allocates count command buffers at the given level.
func (c *CommandPool) AllocateBuffers(count int, level vk.CommandBufferLevel) ([]*CommandBuffer, error) {
	ai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.VKCommandPool,
		Level:              level,
		CommandBufferCount: uint32(count),
	}

	vkBuffers := make([]vk.CommandBuffer, count)
	if err := vk.Error(vk.AllocateCommandBuffers(c.Device.VKDevice, &ai, vkBuffers)); err != nil {
		return nil, err
	}

	buffers := make([]*CommandBuffer, count)
	for i, vkb := range vkBuffers {
		buffers[i] = &CommandBuffer{
			Device:          c.Device,
			CommandPool:     c,
			VKCommandBuffer: vkb,
		}
	}

	return buffers, nil
}

// FreeBuffer returns a single command buffer to the pool.
func (c *CommandPool) FreeBuffer(buffer *CommandBuffer) {
	c.FreeBuffers([]*CommandBuffer{buffer})
}

// FreeBuffers returns command buffers to the pool.
func (c *CommandPool) FreeBuffers(buffers []*CommandBuffer) {
	vkBuffers := make([]vk.CommandBuffer, len(buffers))
	for i, b := range buffers {
		vkBuffers[i] = b.VKCommandBuffer
	}
	vk.FreeCommandBuffers(c.Device.VKDevice, c.VKCommandPool, uint32(len(vkBuffers)), vkBuffers)
}

func (c *CommandPool) Destroy() {
	vk.DestroyCommandPool(c.Device.VKDevice, c.VKCommandPool, nil)
}
