package vkt

import (
	vk "github.com/vulkan-go/vulkan"
)

// PipelineCache wraps a device pipeline cache.
type PipelineCache struct {
	Device          *Device
	VKPipelineCache vk.PipelineCache
}

func (d *Device) CreatePipelineCache() (*PipelineCache, error) {
	ci := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}

	var cache vk.PipelineCache
	if err := vk.Error(vk.CreatePipelineCache(d.VKDevice, &ci, nil, &cache)); err != nil {
		return nil, err
	}

	return &PipelineCache{Device: d, VKPipelineCache: cache}, nil
}

func (p *PipelineCache) Destroy() {
	vk.DestroyPipelineCache(p.Device.VKDevice, p.VKPipelineCache, nil)
}

// ComputePipeline pairs a compute shader with a pipeline layout.
type ComputePipeline struct {
	Device     *Device
	Layout     *PipelineLayout
	VKPipeline vk.Pipeline
}

// CreateComputePipeline builds a pipeline running the shader's "main"
// entrypoint.
func (d *Device) CreateComputePipeline(cache *PipelineCache, layout *PipelineLayout, shader *ShaderModule) (*ComputePipeline, error) {
	ci := []vk.ComputePipelineCreateInfo{{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageComputeBit,
			Module: shader.VKShaderModule,
			PName:  safeString("main"),
		},
		Layout: layout.VKPipelineLayout,
	}}

	var vkCache vk.PipelineCache
	if cache != nil {
		vkCache = cache.VKPipelineCache
	}

	pipelines := make([]vk.Pipeline, len(ci))
	if err := vk.Error(vk.CreateComputePipelines(d.VKDevice, vkCache, uint32(len(ci)), ci, nil, pipelines)); err != nil {
		return nil, err
	}

	return &ComputePipeline{
		Device:     d,
		Layout:     layout,
		VKPipeline: pipelines[0],
	}, nil
}

func (p *ComputePipeline) Destroy() {
	vk.DestroyPipeline(p.Device.VKDevice, p.VKPipeline, nil)
}

// GraphicsPipeline is a compiled graphics pipeline and its layout.
type GraphicsPipeline struct {
	Device     *Device
	Layout     *PipelineLayout
	VKPipeline vk.Pipeline
}

// CreateGraphicsPipeline compiles the pipeline described by the config for
// the given framebuffer extent.
func (d *Device) CreateGraphicsPipeline(cache *PipelineCache, config IGraphicsPipelineConfig, extent vk.Extent2D) (*GraphicsPipeline, error) {
	ci, err := config.VKGraphicsPipelineCreateInfo(extent)
	if err != nil {
		return nil, err
	}

	var vkCache vk.PipelineCache
	if cache != nil {
		vkCache = cache.VKPipelineCache
	}

	pipelines := make([]vk.Pipeline, 1)
	if err := vk.Error(vk.CreateGraphicsPipelines(d.VKDevice, vkCache, 1,
		[]vk.GraphicsPipelineCreateInfo{ci}, nil, pipelines)); err != nil {
		return nil, err
	}

	return &GraphicsPipeline{
		Device:     d,
		VKPipeline: pipelines[0],
	}, nil
}

func (p *GraphicsPipeline) Destroy() {
	vk.DestroyPipeline(p.Device.VKDevice, p.VKPipeline, nil)
}
