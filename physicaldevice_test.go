package vkt

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestMemoryTypeSliceCounts(t *testing.T) {
	types := MemoryTypeSlice{
		{PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)},
		{PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)},
		{PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)},
		{PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)},
	}

	if got := types.NumDeviceLocal(); got != 2 {
		t.Errorf("expected 2 device local types, got %d", got)
	}
	if got := types.NumHostVisible(); got != 3 {
		t.Errorf("expected 3 host visible types, got %d", got)
	}
	if got := types.NumHostCoherent(); got != 2 {
		t.Errorf("expected 2 host coherent types, got %d", got)
	}
	if got := types.NumHostVisibleAndCoherent(); got != 2 {
		t.Errorf("expected 2 host visible and coherent types, got %d", got)
	}
}
