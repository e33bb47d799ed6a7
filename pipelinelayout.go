package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// PipelineLayout binds descriptor set layouts to a pipeline.
type PipelineLayout struct {
	Device           *Device
	VKPipelineLayout vk.PipelineLayout
}

func (d *Device) CreatePipelineLayout(layouts ...*DescriptorSetLayout) (*PipelineLayout, error) {
	vkLayouts := make([]vk.DescriptorSetLayout, len(layouts))
	for i, l := range layouts {
		vkLayouts[i] = l.VKDescriptorSetLayout
	}

	ci := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(vkLayouts)),
		PSetLayouts:    vkLayouts,
	}

	var layout vk.PipelineLayout
	if err := vk.Error(vk.CreatePipelineLayout(d.VKDevice, &ci, nil, &layout)); err != nil {
		return nil, err
	}

	return &PipelineLayout{Device: d, VKPipelineLayout: layout}, nil
}

func (p *PipelineLayout) Destroy() {
	vk.DestroyPipelineLayout(p.Device.VKDevice, p.VKPipelineLayout, nil)
}
