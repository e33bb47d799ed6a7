package vkt

import (
	"fmt"
	"image"
	"image/png"
	"os"

	vk "github.com/vulkan-go/vulkan"
)

// RGBAImage builds an image from tightly packed 8 bit RGBA pixels, as read
// back from a FormatR8g8b8a8Unorm image or a pixel buffer.
func RGBAImage(pixels []byte, extent vk.Extent2D) (*image.NRGBA, error) {
	expected := int(extent.Width) * int(extent.Height) * 4
	if len(pixels) < expected {
		return nil, fmt.Errorf("pixel data is %d bytes, extent %dx%d needs %d", len(pixels), extent.Width, extent.Height, expected)
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(extent.Width), int(extent.Height)))
	copy(img.Pix, pixels[:expected])

	return img, nil
}

// RGBAImageFromFloats builds an image from tightly packed float RGBA pixels
// in the 0..1 range, as written by a compute shader into a storage buffer.
func RGBAImageFromFloats(pixels []float32, extent vk.Extent2D) (*image.NRGBA, error) {
	expected := int(extent.Width) * int(extent.Height) * 4
	if len(pixels) < expected {
		return nil, fmt.Errorf("pixel data is %d floats, extent %dx%d needs %d", len(pixels), extent.Width, extent.Height, expected)
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(extent.Width), int(extent.Height)))
	for i := 0; i < expected; i++ {
		v := pixels[i]
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		img.Pix[i] = uint8(v*255 + 0.5)
	}

	return img, nil
}

// WritePNG encodes the image to a file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return nil
}
