package vkt

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func family(index int, flags vk.QueueFlagBits) *QueueFamily {
	return &QueueFamily{
		Index: index,
		VKQueueFamilyProperties: vk.QueueFamilyProperties{
			QueueFlags: vk.QueueFlags(flags),
		},
	}
}

func TestQueueFamilyFlags(t *testing.T) {
	q := family(0, vk.QueueGraphicsBit|vk.QueueComputeBit)
	if !q.IsGraphics() {
		t.Error("expected graphics capability")
	}
	if !q.IsCompute() {
		t.Error("expected compute capability")
	}
	if !q.IsTransfer() {
		t.Error("graphics/compute families are implicitly transfer capable")
	}
}

func TestQueueFamilyFilters(t *testing.T) {
	families := QueueFamilySlice{
		family(0, vk.QueueGraphicsBit|vk.QueueComputeBit),
		family(1, vk.QueueComputeBit),
		family(2, vk.QueueTransferBit),
	}

	compute := families.FilterCompute()
	if len(compute) != 2 {
		t.Errorf("expected 2 compute families, got %d", len(compute))
	}

	graphics := families.FilterGraphics()
	if len(graphics) != 1 || graphics[0].Index != 0 {
		t.Errorf("expected family 0 to be the only graphics family, got %v", graphics)
	}

	transfer := families.FilterTransfer()
	if len(transfer) != 3 {
		t.Errorf("expected all 3 families to accept transfer work, got %d", len(transfer))
	}
}
