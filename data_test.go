package vkt

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestIndexSliceUint16(t *testing.T) {
	s := IndexSliceUint16{0, 1, 2, 2, 3, 0}
	if len(s.Bytes()) != 12 {
		t.Errorf("expected 12 bytes, got %d", len(s.Bytes()))
	}
	if s.IndexType() != vk.IndexTypeUint16 {
		t.Error("wrong index type")
	}
}

func TestIndexSliceUint32(t *testing.T) {
	s := IndexSliceUint32{0, 1, 2}
	if len(s.Bytes()) != 12 {
		t.Errorf("expected 12 bytes, got %d", len(s.Bytes()))
	}
	if s.IndexType() != vk.IndexTypeUint32 {
		t.Error("wrong index type")
	}
}
