package vkt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Queue is a device queue which command buffers are submitted to.
type Queue struct {
	Device      *Device
	QueueFamily *QueueFamily
	VKQueue     vk.Queue
}

func (q *Queue) WaitIdle() error {
	return vk.Error(vk.QueueWaitIdle(q.VKQueue))
}

// SubmitWaitIdle submits the command buffers and blocks until the queue has
// drained.
func (q *Queue) SubmitWaitIdle(buffers ...*CommandBuffer) error {
	if err := q.submit(vk.NullFence, buffers); err != nil {
		return err
	}
	return q.WaitIdle()
}

// SubmitWithFence submits the command buffers, signalling fence when the GPU
// has finished with them.
func (q *Queue) SubmitWithFence(fence *Fence, buffers ...*CommandBuffer) error {
	return q.submit(fence.VKFence, buffers)
}

func (q *Queue) submit(fence vk.Fence, buffers []*CommandBuffer) error {
	b := make([]vk.CommandBuffer, len(buffers))
	for i := range buffers {
		b[i] = buffers[i].VKCommandBuffer
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: uint32(len(buffers)),
		PCommandBuffers:    b,
	}

	return vk.Error(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, fence))
}

func (q *Queue) String() string {
	return fmt.Sprintf("{Device: %s QueueFamily: %s}", q.Device, q.QueueFamily)
}
