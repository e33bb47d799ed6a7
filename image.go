package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// Image is an unbound Vulkan image.
type Image struct {
	Device   *Device
	VKImage  vk.Image
	VKFormat vk.Format
	Extent   vk.Extent2D
	Size     uint64
}

// CreateImage creates an optimally tiled RGBA image suitable as a transfer
// source and destination.
func (d *Device) CreateImage(extent vk.Extent2D, format vk.Format) (*Image, error) {
	return d.CreateImageWithOptions(extent, format, vk.ImageTilingOptimal,
		vk.ImageUsageTransferSrcBit|vk.ImageUsageTransferDstBit)
}

func (d *Device) CreateImageWithOptions(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlagBits) (*Image, error) {
	imageInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Extent: vk.Extent3D{
			Width:  extent.Width,
			Height: extent.Height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Format:        format,
		Tiling:        tiling,
		InitialLayout: vk.ImageLayoutUndefined,
		Usage:         vk.ImageUsageFlags(usage),
		Samples:       vk.SampleCount1Bit,
		SharingMode:   vk.SharingModeExclusive,
	}

	var image vk.Image
	if err := vk.Error(vk.CreateImage(d.VKDevice, &imageInfo, nil, &image)); err != nil {
		return nil, err
	}

	return &Image{
		Device:   d,
		VKImage:  image,
		VKFormat: format,
		Extent:   extent,
	}, nil
}

func (i *Image) VKMemoryRequirements() vk.MemoryRequirements {
	var memRequirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(i.Device.VKDevice, i.VKImage, &memRequirements)
	return memRequirements
}

func (i *Image) Destroy() {
	vk.DestroyImage(i.Device.VKDevice, i.VKImage, nil)
}
