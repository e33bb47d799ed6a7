package vkt

import (
	"fmt"
	"os"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// ShaderModule wraps a SPIR-V shader module.
type ShaderModule struct {
	Device         *Device
	VKShaderModule vk.ShaderModule
}

// LoadShaderModule reads a SPIR-V file from disk and creates a module from
// it.
func (d *Device) LoadShaderModule(path string) (*ShaderModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load shader %s: %w", path, err)
	}
	return d.CreateShaderModule(data)
}

// CreateShaderModule creates a module from SPIR-V bytes. The byte count
// must be a multiple of four.
func (d *Device) CreateShaderModule(data []byte) (*ShaderModule, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V data length %d is not a multiple of 4", len(data))
	}

	ci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(data)),
		PCode:    sliceUint32(data),
	}

	var module vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(d.VKDevice, &ci, nil, &module)); err != nil {
		return nil, err
	}

	return &ShaderModule{Device: d, VKShaderModule: module}, nil
}

// VKPipelineShaderStageCreateInfo describes this module as a stage running
// its "main" entrypoint.
func (s *ShaderModule) VKPipelineShaderStageCreateInfo(stage vk.ShaderStageFlagBits) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: s.VKShaderModule,
		PName:  safeString("main"),
	}
}

func (s *ShaderModule) Destroy() {
	vk.DestroyShaderModule(s.Device.VKDevice, s.VKShaderModule, nil)
}

func sliceUint32(data []byte) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}
