package vkt

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// IndexSliceUint16 adapts a slice of 16 bit indices to the IndexSource
// interface.
type IndexSliceUint16 []uint16

func (i IndexSliceUint16) Bytes() []byte {
	size := len(i) * int(unsafe.Sizeof(uint16(0)))
	return ToBytes(unsafe.Pointer(&i[0]), size)
}

func (i IndexSliceUint16) IndexType() vk.IndexType {
	return vk.IndexTypeUint16
}

// IndexSliceUint32 adapts a slice of 32 bit indices to the IndexSource
// interface.
type IndexSliceUint32 []uint32

func (i IndexSliceUint32) Bytes() []byte {
	size := len(i) * int(unsafe.Sizeof(uint32(0)))
	return ToBytes(unsafe.Pointer(&i[0]), size)
}

func (i IndexSliceUint32) IndexType() vk.IndexType {
	return vk.IndexTypeUint32
}
