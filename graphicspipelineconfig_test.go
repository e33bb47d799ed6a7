package vkt

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestGraphicsPipelineConfigDefaults(t *testing.T) {
	d := &Device{}
	config := d.CreateGraphicsPipelineConfig()

	if config.Topology != vk.PrimitiveTopologyTriangleList {
		t.Errorf("expected triangle list topology, got %v", config.Topology)
	}
	if config.CullMode != vk.CullModeNone {
		t.Errorf("expected no culling, got %v", config.CullMode)
	}
	if config.DepthTest {
		t.Error("expected depth test disabled by default")
	}
}

func TestGraphicsPipelineConfigRequiresStages(t *testing.T) {
	config := &GraphicsPipelineConfig{}
	if _, err := config.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 64, Height: 64}); err == nil {
		t.Error("expected error for config without shader stages")
	}
}

func TestGraphicsPipelineConfigRequiresLayout(t *testing.T) {
	config := &GraphicsPipelineConfig{
		ShaderStages: []vk.PipelineShaderStageCreateInfo{{}},
	}
	if _, err := config.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 64, Height: 64}); err == nil {
		t.Error("expected error for config without pipeline layout")
	}
}

type testVertex struct{}

func (testVertex) Bytes() []byte { return nil }

func (testVertex) GetBindingDescription() vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Stride:    8,
		InputRate: vk.VertexInputRateVertex,
	}
}

func (testVertex) GetAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{Location: 0, Format: vk.FormatR32g32Sfloat, Offset: 0},
	}
}

func TestGraphicsPipelineConfigVertexDescriptors(t *testing.T) {
	config := &GraphicsPipelineConfig{}
	config.AddVertexDescriptor(testVertex{})
	config.AddVertexDescriptor(testVertex{})

	if len(config.vertexBindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(config.vertexBindings))
	}
	if config.vertexBindings[1].Binding != 1 {
		t.Errorf("expected second binding index 1, got %d", config.vertexBindings[1].Binding)
	}
	if config.vertexAttributes[1].Binding != 1 {
		t.Errorf("expected second attribute bound to binding 1, got %d", config.vertexAttributes[1].Binding)
	}
}
