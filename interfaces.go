package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// IDestructable is anything owning native Vulkan objects that must be
// explicitly released.
type IDestructable interface {
	Destroy()
}

// BufferObject is a source of raw bytes destined for a GPU buffer.
type BufferObject interface {
	Bytes() []byte
}

// IndexSource supplies index data along with its index width.
type IndexSource interface {
	BufferObject
	IndexType() vk.IndexType
}

// VertexDescriptor describes how vertex data is laid out in memory so a
// graphics pipeline can consume it.
type VertexDescriptor interface {
	GetBindingDescription() vk.VertexInputBindingDescription
	GetAttributeDescriptions() []vk.VertexInputAttributeDescription
}

// VertexSource supplies vertex data along with its layout description.
type VertexSource interface {
	BufferObject
	VertexDescriptor
}

// IGraphicsPipelineConfig generates pipeline create info on demand. The
// graphics app keeps configs rather than pipelines so pipelines can be
// recreated when the swapchain extent changes.
type IGraphicsPipelineConfig interface {
	VKGraphicsPipelineCreateInfo(extent vk.Extent2D) (vk.GraphicsPipelineCreateInfo, error)
	Destroy()
}

// MappedMemoryRanger exposes the mapped memory range backing a resource, for
// use with Device.FlushMappedRanges.
type MappedMemoryRanger interface {
	VKMappedMemoryRange() vk.MappedMemoryRange
}
