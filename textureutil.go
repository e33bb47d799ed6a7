package vkt

import (
	"image"

	vk "github.com/vulkan-go/vulkan"
)

// StageTexture uploads the pixels of src into a new device local sampled
// texture in this pool, routing the bytes through the staging pool and
// leaving the image in the shader read only layout.
func (p *ImageResourcePool) StageTexture(src *image.NRGBA, cb *CommandBuffer, queue *Queue) (*ImageResource, error) {
	staging := p.ResourceManager.GetStagingPool()
	if staging == nil {
		return nil, errStagingPoolRequired
	}

	b := src.Bounds()
	extent := vk.Extent2D{Width: uint32(b.Dx()), Height: uint32(b.Dy())}

	img, err := p.AllocateImage(extent, vk.FormatR8g8b8a8Unorm, vk.ImageTilingOptimal,
		vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit)
	if err != nil {
		return nil, err
	}

	staged, err := staging.AllocateBuffer(uint64(len(src.Pix)), vk.BufferUsageTransferSrcBit)
	if err != nil {
		img.Free()
		return nil, err
	}
	defer staged.Free()

	if err := staged.Write(src.Pix); err != nil {
		img.Free()
		return nil, err
	}

	if err := p.recordUpload(cb, staged, img); err != nil {
		img.Free()
		return nil, err
	}

	if err := queue.SubmitWaitIdle(cb); err != nil {
		img.Free()
		return nil, err
	}

	return img, nil
}

func (p *ImageResourcePool) recordUpload(cb *CommandBuffer, staged *BufferResource, img *ImageResource) error {
	if err := cb.BeginOneTime(); err != nil {
		return err
	}
	if err := cb.CmdTransitionImageLayout(&img.Image, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		return err
	}
	cb.CmdCopyBufferToImage(&staged.Buffer, &img.Image)
	if err := cb.CmdTransitionImageLayout(&img.Image, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal); err != nil {
		return err
	}
	return cb.End()
}
