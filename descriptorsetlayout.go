package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSetLayout describes the bindings a descriptor set will carry.
type DescriptorSetLayout struct {
	Device                *Device
	VKDescriptorSetLayout vk.DescriptorSetLayout
	Bindings              []vk.DescriptorSetLayoutBinding
}

// CreateDescriptorSetLayout builds a layout from binding descriptions.
// Binding numbers are assigned in slice order.
func (d *Device) CreateDescriptorSetLayout(bindings []vk.DescriptorSetLayoutBinding) (*DescriptorSetLayout, error) {
	for i := range bindings {
		bindings[i].Binding = uint32(i)
	}

	ci := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}

	var layout vk.DescriptorSetLayout
	if err := vk.Error(vk.CreateDescriptorSetLayout(d.VKDevice, &ci, nil, &layout)); err != nil {
		return nil, err
	}

	return &DescriptorSetLayout{
		Device:                d,
		VKDescriptorSetLayout: layout,
		Bindings:              bindings,
	}, nil
}

// StorageBufferBinding describes a single storage buffer visible to the
// given stages.
func StorageBufferBinding(stages vk.ShaderStageFlagBits) vk.DescriptorSetLayoutBinding {
	return vk.DescriptorSetLayoutBinding{
		DescriptorType:  vk.DescriptorTypeStorageBuffer,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(stages),
	}
}

// UniformBufferBinding describes a single uniform buffer visible to the
// given stages.
func UniformBufferBinding(stages vk.ShaderStageFlagBits) vk.DescriptorSetLayoutBinding {
	return vk.DescriptorSetLayoutBinding{
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(stages),
	}
}

// CombinedImageSamplerBinding describes a single combined image sampler
// visible to the given stages.
func CombinedImageSamplerBinding(stages vk.ShaderStageFlagBits) vk.DescriptorSetLayoutBinding {
	return vk.DescriptorSetLayoutBinding{
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(stages),
	}
}

func (l *DescriptorSetLayout) Destroy() {
	vk.DestroyDescriptorSetLayout(l.Device.VKDevice, l.VKDescriptorSetLayout, nil)
}
