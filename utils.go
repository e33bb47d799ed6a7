package vkt

import (
	"strings"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

var end = "\x00"
var endChar byte = '\x00'

// ToBytes converts a pointer and a length in bytes into a byte slice.
func ToBytes(ptr unsafe.Pointer, lenInBytes int) []byte {
	const m = 0x7fffffff
	return (*[m]byte)(ptr)[:lenInBytes]
}

// Vulkan expects NUL terminated strings.
func safeString(s string) string {
	if len(s) == 0 {
		return end
	}
	if s[len(s)-1] != endChar {
		return s + end
	}
	return s
}

func safeStrings(list []string) []string {
	for i := range list {
		list[i] = safeString(list[i])
	}
	return list
}

// unsafeBytes views mapped memory as a byte slice without copying.
func unsafeBytes(ptr unsafe.Pointer, lenInBytes uint64) []byte {
	return unsafe.Slice((*byte)(ptr), lenInBytes)
}

func usageToString(usage vk.BufferUsageFlagBits) string {
	names := []string{}
	if usage&vk.BufferUsageTransferSrcBit != 0 {
		names = append(names, "TransferSrc")
	}
	if usage&vk.BufferUsageTransferDstBit != 0 {
		names = append(names, "TransferDst")
	}
	if usage&vk.BufferUsageUniformBufferBit != 0 {
		names = append(names, "UniformBuffer")
	}
	if usage&vk.BufferUsageStorageBufferBit != 0 {
		names = append(names, "StorageBuffer")
	}
	if usage&vk.BufferUsageIndexBufferBit != 0 {
		names = append(names, "IndexBuffer")
	}
	if usage&vk.BufferUsageVertexBufferBit != 0 {
		names = append(names, "VertexBuffer")
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}
