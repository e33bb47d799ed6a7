package vkt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// StagingPoolName is the name of the conventional pool used to stage data
// into device local memory.
const StagingPoolName = "staging"

var (
	errInsufficientPoolSpace = fmt.Errorf("insufficient space in resource pool")
	errStagingPoolRequired   = fmt.Errorf("device local pool requires the %q pool to exist", StagingPoolName)
)

// BufferResourcePool carves buffers out of a single device memory allocation.
type BufferResourcePool struct {
	Device           *Device
	Name             string
	Usage            vk.BufferUsageFlagBits
	Sharing          vk.SharingMode
	MemoryProperties vk.MemoryPropertyFlagBits
	Size             uint64
	Allocator        IAllocator
	Memory           *DeviceMemory
	NeedsStaging     bool
	ResourceManager  *ResourceManager
}

// AllocateBuffer creates a buffer of the given size and binds it to a span of
// the pool's memory.
func (p *BufferResourcePool) AllocateBuffer(size uint64, usage vk.BufferUsageFlagBits) (*BufferResource, error) {
	if p.NeedsStaging {
		// Device local memory cannot be mapped, so writes reach these
		// buffers only through a staged copy.
		if !p.ResourceManager.HasStagingPool() {
			return nil, errStagingPoolRequired
		}
		usage |= vk.BufferUsageTransferDstBit
	}

	buffer, err := p.Device.CreateBufferWithOptions(size, usage, p.Sharing)
	if err != nil {
		return nil, err
	}

	mr := buffer.VKMemoryRequirements()
	mr.Deref()

	allocation := p.Allocator.Allocate(uint64(mr.Size), uint64(mr.Alignment))
	if allocation == nil {
		buffer.Destroy()
		return nil, errInsufficientPoolSpace
	}

	if err := buffer.Bind(p.Memory, allocation.Offset); err != nil {
		p.Allocator.Free(allocation)
		buffer.Destroy()
		return nil, err
	}

	ret := &BufferResource{
		Allocation:   allocation,
		ResourcePool: p,
	}
	ret.Buffer = *buffer

	allocation.Object = ret

	return ret, nil
}

// AllocateFor allocates a buffer sized and typed for the given data source.
func (p *BufferResourcePool) AllocateFor(src BufferObject) (*BufferResource, error) {
	switch src.(type) {
	case VertexSource:
		return p.AllocateBuffer(uint64(len(src.Bytes())), vk.BufferUsageVertexBufferBit)
	case IndexSource:
		return p.AllocateBuffer(uint64(len(src.Bytes())), vk.BufferUsageIndexBufferBit)
	default:
		return nil, fmt.Errorf("unknown buffer object type %T", src)
	}
}

func (p *BufferResourcePool) LogDetails() {
	logger.Debugf("buffer pool %q size %d usage %s", p.Name, p.Size, usageToString(p.Usage))
	p.Allocator.LogDetails()
}

func (p *BufferResourcePool) Destroy() {
	if p.Allocator != nil {
		p.Allocator.DestroyContents()
		p.Allocator = nil
	}
	if p.Memory != nil {
		p.Memory.Destroy()
		p.Memory = nil
	}
	delete(p.ResourceManager.bufferPools, p.Name)
}

// ImageResourcePool carves images out of a single device memory allocation.
type ImageResourcePool struct {
	Device           *Device
	Name             string
	Usage            vk.ImageUsageFlagBits
	Sharing          vk.SharingMode
	MemoryProperties vk.MemoryPropertyFlagBits
	Size             uint64
	Allocator        IAllocator
	Memory           *DeviceMemory
	NeedsStaging     bool
	ResourceManager  *ResourceManager
}

// AllocateImage creates an image and binds it to a span of the pool's memory.
func (p *ImageResourcePool) AllocateImage(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlagBits) (*ImageResource, error) {
	if p.NeedsStaging {
		usage |= vk.ImageUsageTransferDstBit
	}

	img, err := p.Device.CreateImageWithOptions(extent, format, tiling, usage)
	if err != nil {
		return nil, err
	}

	mr := img.VKMemoryRequirements()
	mr.Deref()

	allocation := p.Allocator.Allocate(uint64(mr.Size), uint64(mr.Alignment))
	if allocation == nil {
		img.Destroy()
		return nil, errInsufficientPoolSpace
	}

	if err := vk.Error(vk.BindImageMemory(p.Device.VKDevice, img.VKImage, p.Memory.VKDeviceMemory, vk.DeviceSize(allocation.Offset))); err != nil {
		p.Allocator.Free(allocation)
		img.Destroy()
		return nil, err
	}

	ret := &ImageResource{
		Allocation:   allocation,
		ResourcePool: p,
	}
	ret.Image = *img
	ret.Image.Size = uint64(mr.Size)

	allocation.Object = ret

	return ret, nil
}

func (p *ImageResourcePool) LogDetails() {
	logger.Debugf("image pool %q size %d", p.Name, p.Size)
	p.Allocator.LogDetails()
}

func (p *ImageResourcePool) Destroy() {
	if p.Allocator != nil {
		p.Allocator.DestroyContents()
		p.Allocator = nil
	}
	if p.Memory != nil {
		p.Memory.Destroy()
		p.Memory = nil
	}
	delete(p.ResourceManager.imagePools, p.Name)
}

// ResourceManager tracks named buffer and image pools for a device.
type ResourceManager struct {
	Device      *Device
	bufferPools map[string]*BufferResourcePool
	imagePools  map[string]*ImageResourcePool
}

func (d *Device) CreateResourceManager() *ResourceManager {
	return &ResourceManager{
		Device:      d,
		bufferPools: make(map[string]*BufferResourcePool),
		imagePools:  make(map[string]*ImageResourcePool),
	}
}

func (r *ResourceManager) GetStagingPool() *BufferResourcePool {
	return r.bufferPools[StagingPoolName]
}

func (r *ResourceManager) HasStagingPool() bool {
	return r.bufferPools[StagingPoolName] != nil
}

// AllocateStagingPool creates the conventional host visible pool used to
// stage data into device local resources.
func (r *ResourceManager) AllocateStagingPool(size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(StagingPoolName, size,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit,
		vk.BufferUsageTransferSrcBit, vk.SharingModeExclusive)
}

// AllocateBufferPoolWithOptions allocates device memory for a named buffer
// pool. Device local pools are flagged as needing staging.
func (r *ResourceManager) AllocateBufferPoolWithOptions(name string, size uint64, mprops vk.MemoryPropertyFlagBits, usage vk.BufferUsageFlagBits, sharing vk.SharingMode) (*BufferResourcePool, error) {
	needsStaging := mprops&vk.MemoryPropertyDeviceLocalBit != 0

	p := &BufferResourcePool{
		Device:           r.Device,
		Name:             name,
		Usage:            usage,
		Sharing:          sharing,
		MemoryProperties: mprops,
		Size:             size,
		Allocator:        &PoolAllocator{Size: size},
		NeedsStaging:     needsStaging,
		ResourceManager:  r,
	}

	if needsStaging {
		usage |= vk.BufferUsageTransferDstBit
	}

	// A throwaway buffer determines which memory types this pool's
	// buffers will require.
	probe, err := r.Device.CreateBufferWithOptions(size, usage, sharing)
	if err != nil {
		return nil, err
	}
	defer probe.Destroy()

	mr := probe.VKMemoryRequirements()
	mr.Deref()

	memory, err := r.Device.Allocate(int(size), mr.MemoryTypeBits, vk.MemoryPropertyFlags(mprops))
	if err != nil {
		return nil, err
	}
	p.Memory = memory

	r.bufferPools[name] = p

	return p, nil
}

// AllocateDeviceTexturePool creates a device local pool for sampled textures.
func (r *ResourceManager) AllocateDeviceTexturePool(name string, size uint64) (*ImageResourcePool, error) {
	return r.AllocateImagePoolWithOptions(name, size, vk.MemoryPropertyDeviceLocalBit,
		vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit, vk.SharingModeExclusive)
}

// AllocateImagePoolWithOptions allocates device memory for a named image
// pool.
func (r *ResourceManager) AllocateImagePoolWithOptions(name string, size uint64, mprops vk.MemoryPropertyFlagBits, usage vk.ImageUsageFlagBits, sharing vk.SharingMode) (*ImageResourcePool, error) {
	needsStaging := mprops&vk.MemoryPropertyDeviceLocalBit != 0

	p := &ImageResourcePool{
		Device:           r.Device,
		Name:             name,
		Usage:            usage,
		Sharing:          sharing,
		MemoryProperties: mprops,
		Size:             size,
		Allocator:        &PoolAllocator{Size: size},
		NeedsStaging:     needsStaging,
		ResourceManager:  r,
	}

	if needsStaging {
		usage |= vk.ImageUsageTransferDstBit
	}

	// As with buffer pools, probe an image to learn the memory type bits.
	probe, err := r.Device.CreateImageWithOptions(vk.Extent2D{Width: 16, Height: 16}, vk.FormatR8g8b8a8Unorm, vk.ImageTilingOptimal, usage)
	if err != nil {
		return nil, err
	}
	defer probe.Destroy()

	mr := probe.VKMemoryRequirements()
	mr.Deref()

	memory, err := r.Device.Allocate(int(size), mr.MemoryTypeBits, vk.MemoryPropertyFlags(mprops))
	if err != nil {
		return nil, err
	}
	p.Memory = memory

	r.imagePools[name] = p

	return p, nil
}

func (r *ResourceManager) BufferPool(name string) *BufferResourcePool {
	return r.bufferPools[name]
}

func (r *ResourceManager) ImagePool(name string) *ImageResourcePool {
	return r.imagePools[name]
}

func (r *ResourceManager) LogDetails() {
	for _, pool := range r.bufferPools {
		pool.LogDetails()
	}
	for _, pool := range r.imagePools {
		pool.LogDetails()
	}
}

func (r *ResourceManager) Destroy() {
	for _, p := range r.bufferPools {
		p.Destroy()
	}
	for _, p := range r.imagePools {
		p.Destroy()
	}
}
