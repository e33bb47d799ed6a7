package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorPool allocates descriptor sets.
type DescriptorPool struct {
	Device           *Device
	VKDescriptorPool vk.DescriptorPool
}

// CreateDescriptorPool makes a pool with room for maxSets sets drawn from
// the given descriptor counts.
func (d *Device) CreateDescriptorPool(maxSets int, sizes []vk.DescriptorPoolSize) (*DescriptorPool, error) {
	ci := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       uint32(maxSets),
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    sizes,
	}

	var pool vk.DescriptorPool
	if err := vk.Error(vk.CreateDescriptorPool(d.VKDevice, &ci, nil, &pool)); err != nil {
		return nil, err
	}

	return &DescriptorPool{
		Device:           d,
		VKDescriptorPool: pool,
	}, nil
}

// Allocate makes a descriptor set with the given layout.
func (p *DescriptorPool) Allocate(layout *DescriptorSetLayout) (*DescriptorSet, error) {
	ai := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     p.VKDescriptorPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout.VKDescriptorSetLayout},
	}

	var set vk.DescriptorSet
	if err := vk.Error(vk.AllocateDescriptorSets(p.Device.VKDevice, &ai, &set)); err != nil {
		return nil, err
	}

	return &DescriptorSet{
		Device:          p.Device,
		Pool:            p,
		Layout:          layout,
		VKDescriptorSet: set,
	}, nil
}

func (p *DescriptorPool) Destroy() {
	vk.DestroyDescriptorPool(p.Device.VKDevice, p.VKDescriptorPool, nil)
}
