package vkt

import (
	"fmt"
	"math"

	vk "github.com/vulkan-go/vulkan"
)

// Swapchain owns the presentable images for a surface.
type Swapchain struct {
	Device      *Device
	VKSwapchain vk.Swapchain
	Format      vk.Format
	ColorSpace  vk.ColorSpace
	Extent      vk.Extent2D
	Images      []vk.Image
	ImageViews  []*ImageView
}

// SwapchainOptions selects the surface format and present mode. The zero
// value falls back to the first supported format and FIFO.
type SwapchainOptions struct {
	PreferredFormat vk.Format

	// PreferredPresentModes are tried in order; the first one the surface
	// supports wins. FIFO is used when empty or none match.
	PreferredPresentModes []vk.PresentMode
}

// CreateSwapchain builds a swapchain for the surface, reusing oldSwapchain
// when recreating after a resize.
func (d *Device) CreateSwapchain(pdev *PhysicalDevice, surface vk.Surface, extent vk.Extent2D, opts SwapchainOptions, oldSwapchain *Swapchain) (*Swapchain, error) {
	caps, err := pdev.GetSurfaceCapabilities(surface)
	if err != nil {
		return nil, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	formats, err := pdev.GetSurfaceFormats(surface)
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("surface reports no formats")
	}

	format := formats[0]
	format.Deref()
	if opts.PreferredFormat != vk.FormatUndefined {
		for _, f := range formats {
			f.Deref()
			if f.Format == opts.PreferredFormat {
				format = f
				break
			}
		}
	}

	// FIFO is the only mode every implementation must support.
	presentMode := vk.PresentModeFifo
	modes, err := pdev.GetSurfacePresentModes(surface)
	if err != nil {
		return nil, err
	}
preference:
	for _, want := range opts.PreferredPresentModes {
		for _, m := range modes {
			if m == want {
				presentMode = m
				break preference
			}
		}
	}

	imageCount := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && imageCount > caps.MaxImageCount {
		imageCount = caps.MaxImageCount
	}

	if caps.CurrentExtent.Width != math.MaxUint32 {
		extent = caps.CurrentExtent
	} else {
		extent.Width = clampUint32(extent.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width)
		extent.Height = clampUint32(extent.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height)
	}

	ci := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    imageCount,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      presentMode,
		Clipped:          vk.True,
	}
	if oldSwapchain != nil {
		ci.OldSwapchain = oldSwapchain.VKSwapchain
	}

	var swapchain vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(d.VKDevice, &ci, nil, &swapchain)); err != nil {
		return nil, err
	}

	s := &Swapchain{
		Device:      d,
		VKSwapchain: swapchain,
		Format:      format.Format,
		ColorSpace:  format.ColorSpace,
		Extent:      extent,
	}

	var count uint32
	vk.GetSwapchainImages(d.VKDevice, swapchain, &count, nil)
	s.Images = make([]vk.Image, count)
	if err := vk.Error(vk.GetSwapchainImages(d.VKDevice, swapchain, &count, s.Images)); err != nil {
		s.Destroy()
		return nil, err
	}

	for _, img := range s.Images {
		wrapped := &Image{Device: d, VKImage: img, VKFormat: s.Format, Extent: extent}
		view, err := wrapped.CreateImageView()
		if err != nil {
			s.Destroy()
			return nil, err
		}
		s.ImageViews = append(s.ImageViews, view)
	}

	return s, nil
}

// AcquireNextImage gets the next presentable image index, signaling the
// semaphore when the image is ready.
func (s *Swapchain) AcquireNextImage(timeout uint64, semaphore *Semaphore) (int, vk.Result) {
	var index uint32
	result := vk.AcquireNextImage(s.Device.VKDevice, s.VKSwapchain, timeout, semaphore.VKSemaphore, vk.NullFence, &index)
	return int(index), result
}

// Present queues the image for presentation, waiting on the semaphore.
func (s *Swapchain) Present(queue *Queue, imageIndex int, wait *Semaphore) vk.Result {
	pi := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{wait.VKSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{s.VKSwapchain},
		PImageIndices:      []uint32{uint32(imageIndex)},
	}
	return vk.QueuePresent(queue.VKQueue, &pi)
}

func (s *Swapchain) Destroy() {
	for _, v := range s.ImageViews {
		v.Destroy()
	}
	s.ImageViews = nil
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
