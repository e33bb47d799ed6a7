package vkt

import (
	"errors"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestDeviceLocalPoolRequiresStagingPool(t *testing.T) {
	rm := &ResourceManager{
		bufferPools: make(map[string]*BufferResourcePool),
		imagePools:  make(map[string]*ImageResourcePool),
	}
	pool := &BufferResourcePool{
		Name:             "mesh",
		MemoryProperties: vk.MemoryPropertyDeviceLocalBit,
		NeedsStaging:     true,
		ResourceManager:  rm,
	}

	_, err := pool.AllocateBuffer(64, vk.BufferUsageVertexBufferBit)
	if !errors.Is(err, errStagingPoolRequired) {
		t.Fatalf("expected staging pool error, got %v", err)
	}
}

func TestStagingPoolLookup(t *testing.T) {
	rm := &ResourceManager{
		bufferPools: make(map[string]*BufferResourcePool),
		imagePools:  make(map[string]*ImageResourcePool),
	}

	if rm.HasStagingPool() {
		t.Error("fresh resource manager should have no staging pool")
	}
	if rm.GetStagingPool() != nil {
		t.Error("missing staging pool should look up as nil")
	}

	staging := &BufferResourcePool{Name: StagingPoolName, ResourceManager: rm}
	rm.bufferPools[StagingPoolName] = staging

	if !rm.HasStagingPool() {
		t.Error("staging pool should be found by its conventional name")
	}
	if rm.GetStagingPool() != staging {
		t.Error("staging pool lookup returned the wrong pool")
	}
}

func TestBufferResourceMappedRange(t *testing.T) {
	mem := &DeviceMemory{Size: 1024}
	pool := &BufferResourcePool{Name: "host", Memory: mem}
	res := &BufferResource{
		Allocation:   &Allocation{Offset: 256, Size: 128},
		ResourcePool: pool,
	}

	r := res.VKMappedMemoryRange()
	if r.Offset != 256 || r.Size != 128 {
		t.Errorf("mapped range should cover the resource's span, got offset %d size %d", r.Offset, r.Size)
	}
}
