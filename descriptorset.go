package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSet collects pending binding writes and flushes them to the
// device in one call.
type DescriptorSet struct {
	Device          *Device
	Pool            *DescriptorPool
	Layout          *DescriptorSetLayout
	VKDescriptorSet vk.DescriptorSet

	pendingWrites []vk.WriteDescriptorSet
}

// AddBuffer queues a buffer write for the given binding. The descriptor
// type comes from the set's layout.
func (s *DescriptorSet) AddBuffer(binding int, buffer *Buffer) {
	s.pendingWrites = append(s.pendingWrites, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          s.VKDescriptorSet,
		DstBinding:      uint32(binding),
		DescriptorCount: 1,
		DescriptorType:  s.Layout.Bindings[binding].DescriptorType,
		PBufferInfo:     []vk.DescriptorBufferInfo{buffer.DSInfo(0)},
	})
}

// AddCombinedImageSampler queues an image sampler write for the given
// binding.
func (s *DescriptorSet) AddCombinedImageSampler(binding int, view *ImageView, sampler vk.Sampler, layout vk.ImageLayout) {
	s.pendingWrites = append(s.pendingWrites, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          s.VKDescriptorSet,
		DstBinding:      uint32(binding),
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		PImageInfo: []vk.DescriptorImageInfo{{
			Sampler:     sampler,
			ImageView:   view.VKImageView,
			ImageLayout: layout,
		}},
	})
}

// Write flushes the queued binding writes to the device.
func (s *DescriptorSet) Write() {
	if len(s.pendingWrites) == 0 {
		return
	}
	vk.UpdateDescriptorSets(s.Device.VKDevice, uint32(len(s.pendingWrites)), s.pendingWrites, 0, nil)
	s.pendingWrites = nil
}
