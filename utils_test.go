package vkt

import (
	"testing"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

func TestSafeString(t *testing.T) {
	if safeString("") != "\x00" {
		t.Error("empty string should become a bare NUL")
	}
	if safeString("abc") != "abc\x00" {
		t.Error("strings should gain a trailing NUL")
	}
	if safeString("abc\x00") != "abc\x00" {
		t.Error("already terminated strings should pass through")
	}
}

func TestToBytes(t *testing.T) {
	data := []uint32{0x04030201, 0x08070605}
	b := ToBytes(unsafe.Pointer(&data[0]), 8)
	if len(b) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(b))
	}
	if b[0] != 0x01 || b[7] != 0x08 {
		t.Error("byte view does not match the backing data")
	}
}

func TestUsageToString(t *testing.T) {
	s := usageToString(vk.BufferUsageVertexBufferBit | vk.BufferUsageIndexBufferBit)
	if s != "IndexBuffer|VertexBuffer" {
		t.Errorf("unexpected usage string %q", s)
	}
	if usageToString(0) != "None" {
		t.Error("zero usage should stringify as None")
	}
}
