package vkt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Device is a logical device, the target of most Vulkan operations.
type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device
}

func (d *Device) Destroy() {
	vk.DestroyDevice(d.VKDevice, nil)
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s }", d.PhysicalDevice)
}

func (d *Device) WaitIdle() error {
	return vk.Error(vk.DeviceWaitIdle(d.VKDevice))
}

// GetQueue fetches the first queue of the given family.
func (d *Device) GetQueue(qf *QueueFamily) *Queue {
	var vkq vk.Queue
	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)
	return &Queue{Device: d, QueueFamily: qf, VKQueue: vkq}
}

type AllocationRequirements struct {
	Size           int
	MemoryTypeBits uint32
}

// AllocateForBuffer allocates device memory sized and typed for the buffer.
func (d *Device) AllocateForBuffer(b *Buffer, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	ar := b.AllocationRequirements()
	return d.Allocate(ar.Size, ar.MemoryTypeBits, memoryProperties)
}

// Allocate allocates device memory from a memory type matching the
// requested properties.
func (d *Device) Allocate(sizeInBytes int, memoryTypeBits uint32, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	allocateInfo := vk.MemoryAllocateInfo{
		SType:          vk.StructureTypeMemoryAllocateInfo,
		AllocationSize: vk.DeviceSize(sizeInBytes),
	}

	var err error
	allocateInfo.MemoryTypeIndex, err = d.PhysicalDevice.FindMemoryType(memoryTypeBits, memoryProperties)
	if err != nil {
		return nil, err
	}

	var deviceMemory vk.DeviceMemory
	if err := vk.Error(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &deviceMemory)); err != nil {
		return nil, err
	}

	return &DeviceMemory{
		Device:         d,
		VKDeviceMemory: deviceMemory,
		Size:           uint64(sizeInBytes),
	}, nil
}

// FlushMappedRanges flushes the mapped ranges of the given resources so
// writes become visible to the device. Unnecessary for host coherent memory.
func (d *Device) FlushMappedRanges(resources ...MappedMemoryRanger) error {
	ranges := make([]vk.MappedMemoryRange, len(resources))
	for i, r := range resources {
		ranges[i] = r.VKMappedMemoryRange()
	}
	return vk.Error(vk.FlushMappedMemoryRanges(d.VKDevice, uint32(len(ranges)), ranges))
}
