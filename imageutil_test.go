package vkt

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestRGBAImage(t *testing.T) {
	extent := vk.Extent2D{Width: 2, Height: 2}
	pixels := make([]byte, 16)
	pixels[0] = 255 // R of pixel (0,0)
	pixels[3] = 255 // A of pixel (0,0)

	img, err := RGBAImage(pixels, extent)
	if err != nil {
		t.Fatal(err)
	}

	r, _, _, a := img.At(0, 0).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("expected opaque red at (0,0), got r=%#x a=%#x", r, a)
	}
}

func TestRGBAImageShortBuffer(t *testing.T) {
	if _, err := RGBAImage(make([]byte, 4), vk.Extent2D{Width: 2, Height: 2}); err == nil {
		t.Error("expected error for undersized pixel buffer")
	}
}

func TestRGBAImageFromFloats(t *testing.T) {
	extent := vk.Extent2D{Width: 1, Height: 1}
	img, err := RGBAImageFromFloats([]float32{0, 0.5, 1, 2}, extent)
	if err != nil {
		t.Fatal(err)
	}

	if img.Pix[0] != 0 {
		t.Errorf("expected 0.0 to map to 0, got %d", img.Pix[0])
	}
	if img.Pix[1] != 128 {
		t.Errorf("expected 0.5 to round to 128, got %d", img.Pix[1])
	}
	if img.Pix[2] != 255 {
		t.Errorf("expected 1.0 to map to 255, got %d", img.Pix[2])
	}
	if img.Pix[3] != 255 {
		t.Errorf("expected out of range value to clamp to 255, got %d", img.Pix[3])
	}
}
