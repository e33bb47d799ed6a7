package vkt

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestTransitionScopeTransferWriteOrdering(t *testing.T) {
	// Two consecutive transfer writes to the same image need an explicit
	// barrier, otherwise their order is undefined.
	scope, err := transitionScopeFor(vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutTransferDstOptimal)
	if err != nil {
		t.Fatalf("transfer write to transfer write should be supported: %v", err)
	}
	if scope.SrcAccess != vk.AccessFlags(vk.AccessTransferWriteBit) {
		t.Error("source access should cover the prior transfer write")
	}
	if scope.DstAccess != vk.AccessFlags(vk.AccessTransferWriteBit) {
		t.Error("destination access should cover the following transfer write")
	}
	if scope.SrcStage != vk.PipelineStageFlags(vk.PipelineStageTransferBit) ||
		scope.DstStage != vk.PipelineStageFlags(vk.PipelineStageTransferBit) {
		t.Error("both sides of the barrier should be the transfer stage")
	}
}

func TestTransitionScopeReadback(t *testing.T) {
	scope, err := transitionScopeFor(vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutTransferSrcOptimal)
	if err != nil {
		t.Fatalf("readback transition should be supported: %v", err)
	}
	if scope.DstAccess != vk.AccessFlags(vk.AccessTransferReadBit) {
		t.Error("destination access should be a transfer read")
	}
}

func TestTransitionScopeUnsupported(t *testing.T) {
	if _, err := transitionScopeFor(vk.ImageLayoutPresentSrc, vk.ImageLayoutGeneral); err == nil {
		t.Error("unsupported transitions should return an error")
	}
}
