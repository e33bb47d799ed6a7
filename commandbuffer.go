package vkt

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffer records work for submission to a queue.
type CommandBuffer struct {
	Device          *Device
	CommandPool     *CommandPool
	VKCommandBuffer vk.CommandBuffer
}

func (c *CommandBuffer) Begin() error {
	bi := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &bi))
}

// BeginOneTime starts recording a buffer that will be submitted once and
// then reset or freed.
func (c *CommandBuffer) BeginOneTime() error {
	bi := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &bi))
}

func (c *CommandBuffer) End() error {
	return vk.Error(vk.EndCommandBuffer(c.VKCommandBuffer))
}

func (c *CommandBuffer) Reset() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, 0))
}

func (c *CommandBuffer) CmdBeginRenderPass(renderPass vk.RenderPass, framebuffer vk.Framebuffer, extent vk.Extent2D, clearValues []vk.ClearValue) {
	bi := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  renderPass,
		Framebuffer: framebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: extent,
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(c.VKCommandBuffer, &bi, vk.SubpassContentsInline)
}

func (c *CommandBuffer) CmdEndRenderPass() {
	vk.CmdEndRenderPass(c.VKCommandBuffer)
}

func (c *CommandBuffer) CmdBindGraphicsPipeline(pipeline vk.Pipeline) {
	vk.CmdBindPipeline(c.VKCommandBuffer, vk.PipelineBindPointGraphics, pipeline)
}

func (c *CommandBuffer) CmdBindComputePipeline(pipeline vk.Pipeline) {
	vk.CmdBindPipeline(c.VKCommandBuffer, vk.PipelineBindPointCompute, pipeline)
}

func (c *CommandBuffer) CmdBindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, sets []*DescriptorSet) {
	vkSets := make([]vk.DescriptorSet, len(sets))
	for i, s := range sets {
		vkSets[i] = s.VKDescriptorSet
	}
	vk.CmdBindDescriptorSets(c.VKCommandBuffer, bindPoint, layout.VKPipelineLayout, 0, uint32(len(vkSets)), vkSets, 0, nil)
}

func (c *CommandBuffer) CmdBindVertexBuffer(buffer *Buffer, offset uint64) {
	vk.CmdBindVertexBuffers(c.VKCommandBuffer, 0, 1, []vk.Buffer{buffer.VKBuffer}, []vk.DeviceSize{vk.DeviceSize(offset)})
}

func (c *CommandBuffer) CmdBindIndexBuffer(buffer *Buffer, offset uint64, indexType vk.IndexType) {
	vk.CmdBindIndexBuffer(c.VKCommandBuffer, buffer.VKBuffer, vk.DeviceSize(offset), indexType)
}

func (c *CommandBuffer) CmdDraw(vertexCount, instanceCount, firstVertex, firstInstance int) {
	vk.CmdDraw(c.VKCommandBuffer, uint32(vertexCount), uint32(instanceCount), uint32(firstVertex), uint32(firstInstance))
}

func (c *CommandBuffer) CmdDrawIndexed(indexCount int) {
	vk.CmdDrawIndexed(c.VKCommandBuffer, uint32(indexCount), 1, 0, 0, 0)
}

func (c *CommandBuffer) CmdDispatch(x, y, z int) {
	vk.CmdDispatch(c.VKCommandBuffer, uint32(x), uint32(y), uint32(z))
}

// CmdCopyBuffer records a whole range copy between two buffers.
func (c *CommandBuffer) CmdCopyBuffer(src, dst *Buffer, size uint64) {
	region := vk.BufferCopy{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      vk.DeviceSize(size),
	}
	vk.CmdCopyBuffer(c.VKCommandBuffer, src.VKBuffer, dst.VKBuffer, 1, []vk.BufferCopy{region})
}

// CmdCopyBufferFromStagedResource records a copy from a staging resource
// into the device local resource that mirrors it.
func (c *CommandBuffer) CmdCopyBufferFromStagedResource(staging, dst *BufferResource) {
	size := staging.Buffer.Size
	if dst.Buffer.Size < size {
		size = dst.Buffer.Size
	}
	region := vk.BufferCopy{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      vk.DeviceSize(size),
	}
	vk.CmdCopyBuffer(c.VKCommandBuffer, staging.Buffer.VKBuffer, dst.Buffer.VKBuffer, 1, []vk.BufferCopy{region})
}

// CmdClearColorImage records a clear of the whole image to the given color.
// The image must be in the transfer destination layout.
func (c *CommandBuffer) CmdClearColorImage(image *Image, r, g, b, a float32) {
	var clear vk.ClearValue
	clear.SetColor([]float32{r, g, b, a})
	color := *(*vk.ClearColorValue)(unsafe.Pointer(&clear))

	subresource := vk.ImageSubresourceRange{
		AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
		LevelCount: 1,
		LayerCount: 1,
	}
	vk.CmdClearColorImage(c.VKCommandBuffer, image.VKImage, vk.ImageLayoutTransferDstOptimal,
		&color, 1, []vk.ImageSubresourceRange{subresource})
}

func wholeImageCopyRegion(image *Image) vk.BufferImageCopy {
	return vk.BufferImageCopy{
		BufferOffset:      0,
		BufferRowLength:   0,
		BufferImageHeight: 0,
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			MipLevel:   0,
			LayerCount: 1,
		},
		ImageOffset: vk.Offset3D{X: 0, Y: 0, Z: 0},
		ImageExtent: vk.Extent3D{
			Width:  image.Extent.Width,
			Height: image.Extent.Height,
			Depth:  1,
		},
	}
}

// CmdCopyBufferToImage records a tightly packed copy covering the whole
// image. The image must be in the transfer destination layout.
func (c *CommandBuffer) CmdCopyBufferToImage(buffer *Buffer, image *Image) {
	region := wholeImageCopyRegion(image)
	vk.CmdCopyBufferToImage(c.VKCommandBuffer, buffer.VKBuffer, image.VKImage,
		vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{region})
}

// CmdCopyImageToBuffer records a tightly packed copy of the whole image into
// the buffer. The image must be in the transfer source layout.
func (c *CommandBuffer) CmdCopyImageToBuffer(image *Image, buffer *Buffer) {
	region := wholeImageCopyRegion(image)
	vk.CmdCopyImageToBuffer(c.VKCommandBuffer, image.VKImage,
		vk.ImageLayoutTransferSrcOptimal, buffer.VKBuffer, 1, []vk.BufferImageCopy{region})
}

// transitionScope carries the stage and access masks for one supported
// image layout transition.
type transitionScope struct {
	SrcAccess vk.AccessFlags
	DstAccess vk.AccessFlags
	SrcStage  vk.PipelineStageFlags
	DstStage  vk.PipelineStageFlags
}

func transitionScopeFor(oldLayout, newLayout vk.ImageLayout) (transitionScope, error) {
	switch {
	case oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutTransferDstOptimal:
		return transitionScope{
			DstAccess: vk.AccessFlags(vk.AccessTransferWriteBit),
			SrcStage:  vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
			DstStage:  vk.PipelineStageFlags(vk.PipelineStageTransferBit),
		}, nil
	case oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutGeneral:
		return transitionScope{
			DstAccess: vk.AccessFlags(vk.AccessShaderWriteBit),
			SrcStage:  vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
			DstStage:  vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
		}, nil
	case oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutTransferDstOptimal:
		// Orders two transfer writes to the same image, e.g. a clear
		// followed by a buffer upload.
		return transitionScope{
			SrcAccess: vk.AccessFlags(vk.AccessTransferWriteBit),
			DstAccess: vk.AccessFlags(vk.AccessTransferWriteBit),
			SrcStage:  vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			DstStage:  vk.PipelineStageFlags(vk.PipelineStageTransferBit),
		}, nil
	case oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutTransferSrcOptimal:
		return transitionScope{
			SrcAccess: vk.AccessFlags(vk.AccessTransferWriteBit),
			DstAccess: vk.AccessFlags(vk.AccessTransferReadBit),
			SrcStage:  vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			DstStage:  vk.PipelineStageFlags(vk.PipelineStageTransferBit),
		}, nil
	case oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutShaderReadOnlyOptimal:
		return transitionScope{
			SrcAccess: vk.AccessFlags(vk.AccessTransferWriteBit),
			DstAccess: vk.AccessFlags(vk.AccessShaderReadBit),
			SrcStage:  vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			DstStage:  vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
		}, nil
	}
	return transitionScope{}, fmt.Errorf("unsupported layout transition %v -> %v", oldLayout, newLayout)
}

// CmdTransitionImageLayout records a pipeline barrier transitioning the
// whole image between the supported layout pairs.
func (c *CommandBuffer) CmdTransitionImageLayout(image *Image, oldLayout, newLayout vk.ImageLayout) error {
	scope, err := transitionScopeFor(oldLayout, newLayout)
	if err != nil {
		return err
	}

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       scope.SrcAccess,
		DstAccessMask:       scope.DstAccess,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               image.VKImage,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	vk.CmdPipelineBarrier(c.VKCommandBuffer, scope.SrcStage, scope.DstStage, 0,
		0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})

	return nil
}
