package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// Sampler wraps a native sampler.
type Sampler struct {
	Device    *Device
	VKSampler vk.Sampler
}

// CreateSampler creates a linear filtering repeat addressing sampler, the
// common choice for sampled textures.
func (d *Device) CreateSampler() (*Sampler, error) {
	var sampler vk.Sampler
	err := vk.Error(vk.CreateSampler(d.VKDevice, &vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               vk.FilterLinear,
		MinFilter:               vk.FilterLinear,
		MipmapMode:              vk.SamplerMipmapModeLinear,
		AddressModeU:            vk.SamplerAddressModeRepeat,
		AddressModeV:            vk.SamplerAddressModeRepeat,
		AddressModeW:            vk.SamplerAddressModeRepeat,
		AnisotropyEnable:        vk.False,
		MaxAnisotropy:           1,
		CompareOp:               vk.CompareOpAlways,
		BorderColor:             vk.BorderColorIntOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
	}, nil, &sampler))
	if err != nil {
		return nil, err
	}

	return &Sampler{Device: d, VKSampler: sampler}, nil
}

func (s *Sampler) Destroy() {
	vk.DestroySampler(s.Device.VKDevice, s.VKSampler, nil)
}
