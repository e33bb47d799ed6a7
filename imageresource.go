package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// ImageResource is an image bound to a span of its pool's memory.
type ImageResource struct {
	Image
	Allocation   *Allocation
	ResourcePool *ImageResourcePool
}

// Free returns the resource's span to the pool and destroys the image.
func (i *ImageResource) Free() {
	i.Image.Destroy()
	i.ResourcePool.Allocator.Free(i.Allocation)
	i.Allocation = nil
}

// Destroy releases the underlying image without returning the span to the
// pool's free list.
func (i *ImageResource) Destroy() {
	i.Image.Destroy()
}

// TransitionLayout records a layout transition barrier on the given command
// buffer.
func (i *ImageResource) TransitionLayout(cb *CommandBuffer, old, new vk.ImageLayout) error {
	return cb.CmdTransitionImageLayout(&i.Image, old, new)
}
