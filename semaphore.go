package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// Semaphore orders work between queue submissions.
type Semaphore struct {
	Device      *Device
	VKSemaphore vk.Semaphore
}

func (d *Device) CreateSemaphore() (*Semaphore, error) {
	ci := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	var sem vk.Semaphore
	if err := vk.Error(vk.CreateSemaphore(d.VKDevice, &ci, nil, &sem)); err != nil {
		return nil, err
	}

	return &Semaphore{Device: d, VKSemaphore: sem}, nil
}

func (s *Semaphore) Destroy() {
	vk.DestroySemaphore(s.Device.VKDevice, s.VKSemaphore, nil)
}
