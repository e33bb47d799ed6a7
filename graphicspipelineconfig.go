package vkt

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// GraphicsPipelineConfig accumulates graphics pipeline state and produces a
// create info. Zero value defaults give a filled triangle list with no
// culling, no depth test, and no blending.
type GraphicsPipelineConfig struct {
	Device       *Device
	ShaderStages []vk.PipelineShaderStageCreateInfo
	Layout       *PipelineLayout
	RenderPass   vk.RenderPass

	Topology  vk.PrimitiveTopology
	CullMode  vk.CullModeFlagBits
	FrontFace vk.FrontFace

	DepthTest    bool
	BlendEnabled bool

	vertexBindings   []vk.VertexInputBindingDescription
	vertexAttributes []vk.VertexInputAttributeDescription

	ownedShaders []*ShaderModule
}

func (d *Device) CreateGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return &GraphicsPipelineConfig{
		Device:    d,
		Topology:  vk.PrimitiveTopologyTriangleList,
		CullMode:  vk.CullModeNone,
		FrontFace: vk.FrontFaceCounterClockwise,
	}
}

// AddVertexShaderFromDisk loads a SPIR-V vertex shader and adds it as a
// stage. The module is destroyed with the config.
func (g *GraphicsPipelineConfig) AddVertexShaderFromDisk(path string) error {
	return g.addShaderFromDisk(path, vk.ShaderStageVertexBit)
}

// AddFragmentShaderFromDisk loads a SPIR-V fragment shader and adds it as a
// stage. The module is destroyed with the config.
func (g *GraphicsPipelineConfig) AddFragmentShaderFromDisk(path string) error {
	return g.addShaderFromDisk(path, vk.ShaderStageFragmentBit)
}

func (g *GraphicsPipelineConfig) addShaderFromDisk(path string, stage vk.ShaderStageFlagBits) error {
	module, err := g.Device.LoadShaderModule(path)
	if err != nil {
		return err
	}
	g.ownedShaders = append(g.ownedShaders, module)
	g.ShaderStages = append(g.ShaderStages, module.VKPipelineShaderStageCreateInfo(stage))
	return nil
}

// AddVertexDescriptor registers the binding and attribute layout of a
// vertex source.
func (g *GraphicsPipelineConfig) AddVertexDescriptor(desc VertexDescriptor) {
	binding := uint32(len(g.vertexBindings))

	bd := desc.GetBindingDescription()
	bd.Binding = binding
	g.vertexBindings = append(g.vertexBindings, bd)

	for _, ad := range desc.GetAttributeDescriptions() {
		ad.Binding = binding
		g.vertexAttributes = append(g.vertexAttributes, ad)
	}
}

// SetPipelineLayout sets the layout the pipeline binds resources through.
func (g *GraphicsPipelineConfig) SetPipelineLayout(layout *PipelineLayout) {
	g.Layout = layout
}

// VKGraphicsPipelineCreateInfo assembles the pipeline create info for the
// given framebuffer extent.
func (g *GraphicsPipelineConfig) VKGraphicsPipelineCreateInfo(extent vk.Extent2D) (vk.GraphicsPipelineCreateInfo, error) {
	if len(g.ShaderStages) == 0 {
		return vk.GraphicsPipelineCreateInfo{}, fmt.Errorf("graphics pipeline config has no shader stages")
	}
	if g.Layout == nil {
		return vk.GraphicsPipelineCreateInfo{}, fmt.Errorf("graphics pipeline config has no pipeline layout")
	}

	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(g.vertexBindings)),
		PVertexBindingDescriptions:      g.vertexBindings,
		VertexAttributeDescriptionCount: uint32(len(g.vertexAttributes)),
		PVertexAttributeDescriptions:    g.vertexAttributes,
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: g.Topology,
	}

	viewport := vk.Viewport{
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{Extent: extent}
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports:    []vk.Viewport{viewport},
		ScissorCount:  1,
		PScissors:     []vk.Rect2D{scissor},
	}

	rasterizer := vk.PipelineRasterizationStateCreateInfo{
		SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: vk.PolygonModeFill,
		CullMode:    vk.CullModeFlags(g.CullMode),
		FrontFace:   g.FrontFace,
		LineWidth:   1.0,
	}

	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
	}

	blendAttachment := vk.PipelineColorBlendAttachmentState{
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
	}
	if g.BlendEnabled {
		blendAttachment.BlendEnable = vk.True
		blendAttachment.SrcColorBlendFactor = vk.BlendFactorSrcAlpha
		blendAttachment.DstColorBlendFactor = vk.BlendFactorOneMinusSrcAlpha
		blendAttachment.ColorBlendOp = vk.BlendOpAdd
		blendAttachment.SrcAlphaBlendFactor = vk.BlendFactorOne
		blendAttachment.DstAlphaBlendFactor = vk.BlendFactorZero
		blendAttachment.AlphaBlendOp = vk.BlendOpAdd
	}
	blend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{blendAttachment},
	}

	ci := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(g.ShaderStages)),
		PStages:             g.ShaderStages,
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterizer,
		PMultisampleState:   &multisample,
		PColorBlendState:    &blend,
		Layout:              g.Layout.VKPipelineLayout,
		RenderPass:          g.RenderPass,
	}

	if g.DepthTest {
		ci.PDepthStencilState = &vk.PipelineDepthStencilStateCreateInfo{
			SType:            vk.StructureTypePipelineDepthStencilStateCreateInfo,
			DepthTestEnable:  vk.True,
			DepthWriteEnable: vk.True,
			DepthCompareOp:   vk.CompareOpLessOrEqual,
			MaxDepthBounds:   1.0,
		}
	}

	return ci, nil
}

// Destroy releases the shader modules the config loaded.
func (g *GraphicsPipelineConfig) Destroy() {
	for _, s := range g.ownedShaders {
		s.Destroy()
	}
	g.ownedShaders = nil
}
