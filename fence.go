package vkt

import (
	"math"
	"time"

	vk "github.com/vulkan-go/vulkan"
)

// NoTimeout makes fence waits block until the fence signals.
const NoTimeout = time.Duration(-1)

// Fence signals from the device to the host.
type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

// CreateFence makes an unsignaled fence.
func (d *Device) CreateFence() (*Fence, error) {
	return d.CreateFenceWithOptions(false)
}

// CreateFenceWithOptions makes a fence, optionally already signaled.
func (d *Device) CreateFenceWithOptions(signaled bool) (*Fence, error) {
	ci := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		ci.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}

	var fence vk.Fence
	if err := vk.Error(vk.CreateFence(d.VKDevice, &ci, nil, &fence)); err != nil {
		return nil, err
	}

	return &Fence{Device: d, VKFence: fence}, nil
}

// Wait blocks until the fence signals or the timeout expires. A negative
// timeout waits forever.
func (f *Fence) Wait(timeout time.Duration) error {
	return f.Device.WaitForFences(true, timeout, f)
}

func (f *Fence) Reset() error {
	return vk.Error(vk.ResetFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}))
}

func (f *Fence) Destroy() {
	vk.DestroyFence(f.Device.VKDevice, f.VKFence, nil)
}

// WaitForFences blocks until the fences signal, or all of them when
// waitForAll is set. A negative timeout waits forever.
func (d *Device) WaitForFences(waitForAll bool, timeout time.Duration, fences ...*Fence) error {
	vkFences := make([]vk.Fence, len(fences))
	for i, f := range fences {
		vkFences[i] = f.VKFence
	}

	waitAll := vk.Bool32(vk.False)
	if waitForAll {
		waitAll = vk.Bool32(vk.True)
	}

	nanos := uint64(math.MaxUint64)
	if timeout >= 0 {
		nanos = uint64(timeout.Nanoseconds())
	}

	return vk.Error(vk.WaitForFences(d.VKDevice, uint32(len(vkFences)), vkFences, waitAll, nanos))
}
