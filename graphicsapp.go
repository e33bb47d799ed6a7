package vkt

import (
	"fmt"
	"math"

	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// FramesInFlight is how many frames may be recorded before the CPU waits
// for the GPU to catch up.
var FramesInFlight = 2

// GraphicsApp wires a window, device, swapchain, and per frame sync objects
// into a render loop. Applications register pipeline configs and a command
// buffer callback, then call DrawFrame from their event loop.
type GraphicsApp struct {
	App      *App
	Instance *Instance

	Window    *glfw.Window
	VKSurface vk.Surface

	PhysicalDevice *PhysicalDevice
	Device         *Device

	GraphicsQueue *Queue
	PresentQueue  *Queue

	ResourceManager *ResourceManager
	CommandPool     *CommandPool
	PipelineCache   *PipelineCache

	// SwapchainOptions applies whenever the swapchain is (re)created.
	SwapchainOptions SwapchainOptions

	Swapchain    *Swapchain
	VKRenderPass vk.RenderPass
	Framebuffers []vk.Framebuffer

	DepthImage     *Image
	DepthImageView *ImageView
	depthMemory    *DeviceMemory

	GraphicsPipelineConfigs map[string]IGraphicsPipelineConfig
	GraphicsPipelines       map[string]vk.Pipeline

	commandBuffers []*CommandBuffer

	imageAvailable []*Semaphore
	renderComplete []*Semaphore
	inFlight       []*Fence

	frameIndex   int
	resized      bool
	screenExtent vk.Extent2D

	// ConfigureRenderPass may mutate the render pass description before
	// it is created.
	ConfigureRenderPass func(info *vk.RenderPassCreateInfo)

	// MakeCommandBuffer records the draw commands for one swapchain
	// image. It is called once per frame, after the buffer is reset.
	MakeCommandBuffer func(cb *CommandBuffer, imageIndex int)
}

// NewGraphicsApp creates an app shell with the given name and version.
// Call SetWindow then Init before anything else.
func NewGraphicsApp(name string, version Version) *GraphicsApp {
	return &GraphicsApp{
		App: &App{Name: name, Version: version},
	}
}

func (p *GraphicsApp) EnableDebugging() bool {
	if p.Instance != nil {
		return false
	}
	p.App.EnableDebugging()
	return true
}

// EnableLayer enables the layer if the loader supports it.
func (p *GraphicsApp) EnableLayer(layer string) bool {
	supported, err := SupportedLayers()
	if err != nil {
		return false
	}
	for _, s := range supported {
		if s == layer {
			p.App.EnableLayer(layer)
			return true
		}
	}
	return false
}

// EnableExtension enables the instance extension if the loader supports it.
func (p *GraphicsApp) EnableExtension(extension string) bool {
	supported, err := SupportedExtensions()
	if err != nil {
		return false
	}
	for _, s := range supported {
		if s == extension {
			p.App.EnableExtension(extension)
			return true
		}
	}
	return false
}

// SetWindow attaches the GLFW window and enables the instance extensions it
// needs. Must be called before Init.
func (p *GraphicsApp) SetWindow(window *glfw.Window) error {
	if p.Instance != nil {
		return fmt.Errorf("window must be set before initialization")
	}

	p.Window = window

	for _, ext := range window.GetRequiredInstanceExtensions() {
		if !p.EnableExtension(ext) {
			return fmt.Errorf("required instance extension %q is not supported", ext)
		}
	}

	p.refreshScreenExtent()

	return nil
}

// Init creates the instance, surface, device, queues, command pool, and
// resource manager.
func (p *GraphicsApp) Init() error {
	instance, err := p.App.CreateInstance()
	if err != nil {
		return err
	}
	p.Instance = instance

	if p.Window != nil && p.VKSurface == vk.NullSurface {
		surface, err := p.Window.CreateWindowSurface(instance.VKInstance, nil)
		if err != nil {
			return err
		}
		p.VKSurface = vk.SurfaceFromPointer(surface)
	}

	pdevs, err := instance.PhysicalDevices()
	if err != nil {
		return fmt.Errorf("enumerating physical devices: %w", err)
	}
	if len(pdevs) == 0 {
		return fmt.Errorf("no physical devices found")
	}
	pdev := pdevs[0]

	families, err := pdev.QueueFamilies()
	if err != nil {
		return fmt.Errorf("listing queue families: %w", err)
	}

	gfamilies := families.FilterGraphicsAndPresent(p.VKSurface)
	if len(gfamilies) == 0 {
		return fmt.Errorf("device %v has no graphics capable queue that can present", pdev)
	}

	device, err := pdev.CreateLogicalDeviceWithOptions(gfamilies, &CreateDeviceOptions{
		EnabledExtensions: []string{"VK_KHR_swapchain"},
	})
	if err != nil {
		return fmt.Errorf("creating logical device: %w", err)
	}

	p.PhysicalDevice = pdev
	p.Device = device

	queue := device.GetQueue(gfamilies[0])
	p.GraphicsQueue = queue
	p.PresentQueue = queue

	p.CommandPool, err = device.CreateCommandPool(queue.QueueFamily)
	if err != nil {
		return err
	}

	p.ResourceManager = device.CreateResourceManager()

	logger.Debug("graphics app initialized", "device", pdev.DeviceName)

	return nil
}

// AddGraphicsPipelineConfig registers a pipeline config under a name. The
// compiled pipeline appears in GraphicsPipelines after PrepareToDraw.
func (p *GraphicsApp) AddGraphicsPipelineConfig(name string, config IGraphicsPipelineConfig) {
	if p.GraphicsPipelineConfigs == nil {
		p.GraphicsPipelineConfigs = make(map[string]IGraphicsPipelineConfig)
	}
	p.GraphicsPipelineConfigs[name] = config
}

// CreateGraphicsPipelineConfig makes an empty config bound to the app's
// device.
func (p *GraphicsApp) CreateGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return p.Device.CreateGraphicsPipelineConfig()
}

// GetScreenExtent returns the current framebuffer extent.
func (p *GraphicsApp) GetScreenExtent() vk.Extent2D {
	return p.screenExtent
}

// Resize flags the swapchain for recreation on the next frame. Call from
// the window's framebuffer size callback.
func (p *GraphicsApp) Resize() {
	p.refreshScreenExtent()
	p.resized = true
}

func (p *GraphicsApp) refreshScreenExtent() {
	if p.Window == nil {
		return
	}
	width, height := p.Window.GetFramebufferSize()
	p.screenExtent = vk.Extent2D{Width: uint32(width), Height: uint32(height)}
}

// PrepareToDraw builds the swapchain, render pass, pipelines, framebuffers,
// command buffers, and sync objects. Must be called after Init and after
// MakeCommandBuffer is set.
func (p *GraphicsApp) PrepareToDraw() error {
	if p.MakeCommandBuffer == nil {
		return fmt.Errorf("MakeCommandBuffer callback is not set")
	}

	if err := p.createSwapchainResources(); err != nil {
		return err
	}

	if err := p.createSyncObjects(); err != nil {
		return err
	}

	p.frameIndex = 0

	return nil
}

// createSwapchainResources builds everything that depends on the swapchain
// extent.
func (p *GraphicsApp) createSwapchainResources() error {
	var err error

	p.Swapchain, err = p.Device.CreateSwapchain(p.PhysicalDevice, p.VKSurface, p.screenExtent, p.SwapchainOptions, nil)
	if err != nil {
		return err
	}

	if err := p.createRenderPass(); err != nil {
		return err
	}

	if p.PipelineCache == nil {
		p.PipelineCache, err = p.Device.CreatePipelineCache()
		if err != nil {
			return err
		}
	}

	if err := p.createGraphicsPipelines(); err != nil {
		return err
	}

	if err := p.createDepthImage(); err != nil {
		return err
	}

	if err := p.createFramebuffers(); err != nil {
		return err
	}

	// One command buffer per frame in flight, not per swapchain image. The
	// fence wait at the top of DrawFrame then guarantees the buffer being
	// reset is no longer pending, even when the presentation engine hands
	// back the same image index on consecutive frames.
	p.commandBuffers, err = p.CommandPool.AllocateBuffers(FramesInFlight, vk.CommandBufferLevelPrimary)
	if err != nil {
		return err
	}

	return nil
}

func (p *GraphicsApp) destroySwapchainResources() {
	p.Device.WaitIdle()

	if p.commandBuffers != nil {
		p.CommandPool.FreeBuffers(p.commandBuffers)
		p.commandBuffers = nil
	}

	for _, fb := range p.Framebuffers {
		vk.DestroyFramebuffer(p.Device.VKDevice, fb, nil)
	}
	p.Framebuffers = nil

	p.destroyDepthImage()
	p.destroyGraphicsPipelines()

	vk.DestroyRenderPass(p.Device.VKDevice, p.VKRenderPass, nil)
	p.VKRenderPass = vk.NullRenderPass

	if p.Swapchain != nil {
		p.Swapchain.Destroy()
		p.Swapchain = nil
	}
}

func (p *GraphicsApp) recreateSwapchain() error {
	p.refreshScreenExtent()

	// Skip recreation while minimized.
	if p.screenExtent.Width == 0 || p.screenExtent.Height == 0 {
		return nil
	}

	p.destroySwapchainResources()

	if err := p.createSwapchainResources(); err != nil {
		return err
	}

	p.resized = false

	return nil
}

// DrawFrame records and submits one frame, waiting on the frame's fence so
// at most FramesInFlight frames are ever in flight.
func (p *GraphicsApp) DrawFrame() error {
	frame := p.frameIndex

	if err := p.inFlight[frame].Wait(NoTimeout); err != nil {
		return err
	}

	imageIndex, res := p.Swapchain.AcquireNextImage(math.MaxUint64, p.imageAvailable[frame])
	if res == vk.ErrorOutOfDate {
		return p.recreateSwapchain()
	}
	if res != vk.Success && res != vk.Suboptimal {
		return vk.Error(res)
	}

	if err := p.inFlight[frame].Reset(); err != nil {
		return err
	}

	cb := p.commandBuffers[frame]
	if err := cb.Reset(); err != nil {
		return err
	}
	p.MakeCommandBuffer(cb, imageIndex)

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{p.imageAvailable[frame].VKSemaphore},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{cb.VKCommandBuffer},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{p.renderComplete[frame].VKSemaphore},
	}

	if err := vk.Error(vk.QueueSubmit(p.GraphicsQueue.VKQueue, 1, []vk.SubmitInfo{submitInfo}, p.inFlight[frame].VKFence)); err != nil {
		return err
	}

	res = p.Swapchain.Present(p.PresentQueue, imageIndex, p.renderComplete[frame])
	if res == vk.ErrorOutOfDate || res == vk.Suboptimal || p.resized {
		return p.recreateSwapchain()
	}
	if res != vk.Success {
		return vk.Error(res)
	}

	p.frameIndex = nextFrameIndex(frame)

	return nil
}

// FrameIndex returns the frame in flight slot the next DrawFrame call will
// use, in [0, FramesInFlight). Per frame resources such as uniform buffers
// should be indexed by it.
func (p *GraphicsApp) FrameIndex() int {
	return p.frameIndex
}

func nextFrameIndex(frame int) int {
	return (frame + 1) % FramesInFlight
}

func (p *GraphicsApp) createRenderPass() error {
	info := p.VKRenderPassCreateInfo()

	if p.ConfigureRenderPass != nil {
		p.ConfigureRenderPass(&info)
	}

	var renderPass vk.RenderPass
	if err := vk.Error(vk.CreateRenderPass(p.Device.VKDevice, &info, nil, &renderPass)); err != nil {
		return err
	}
	p.VKRenderPass = renderPass

	return nil
}

// VKRenderPassCreateInfo describes the default render pass: one color
// attachment cleared and presented, one transient depth attachment.
func (p *GraphicsApp) VKRenderPassCreateInfo() vk.RenderPassCreateInfo {
	attachments := []vk.AttachmentDescription{
		{
			Format:         p.Swapchain.Format,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutPresentSrc,
		},
		{
			Format:         vk.FormatD32Sfloat,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpDontCare,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		},
	}

	colorRef := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}
	depthRef := vk.AttachmentReference{
		Attachment: 1,
		Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
	}

	subpasses := []vk.SubpassDescription{{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    1,
		PColorAttachments:       colorRef,
		PDepthStencilAttachment: &depthRef,
	}}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	}

	return vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses:      subpasses,
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
}

func (p *GraphicsApp) createGraphicsPipelines() error {
	if len(p.GraphicsPipelineConfigs) == 0 {
		return nil
	}

	infos := make([]vk.GraphicsPipelineCreateInfo, 0, len(p.GraphicsPipelineConfigs))
	names := make([]string, 0, len(p.GraphicsPipelineConfigs))

	for name, config := range p.GraphicsPipelineConfigs {
		info, err := config.VKGraphicsPipelineCreateInfo(p.Swapchain.Extent)
		if err != nil {
			return fmt.Errorf("pipeline config %q: %w", name, err)
		}
		info.RenderPass = p.VKRenderPass
		infos = append(infos, info)
		names = append(names, name)
	}

	pipelines := make([]vk.Pipeline, len(infos))
	if err := vk.Error(vk.CreateGraphicsPipelines(p.Device.VKDevice, p.PipelineCache.VKPipelineCache,
		uint32(len(infos)), infos, nil, pipelines)); err != nil {
		return err
	}

	p.GraphicsPipelines = make(map[string]vk.Pipeline, len(names))
	for i, name := range names {
		p.GraphicsPipelines[name] = pipelines[i]
	}

	return nil
}

func (p *GraphicsApp) destroyGraphicsPipelines() {
	for _, pipeline := range p.GraphicsPipelines {
		vk.DestroyPipeline(p.Device.VKDevice, pipeline, nil)
	}
	p.GraphicsPipelines = nil
}

func (p *GraphicsApp) createDepthImage() error {
	img, err := p.Device.CreateImageWithOptions(p.Swapchain.Extent, vk.FormatD32Sfloat,
		vk.ImageTilingOptimal, vk.ImageUsageDepthStencilAttachmentBit)
	if err != nil {
		return err
	}

	mr := img.VKMemoryRequirements()
	mr.Deref()

	memory, err := p.Device.Allocate(int(mr.Size), mr.MemoryTypeBits, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		img.Destroy()
		return err
	}

	if err := vk.Error(vk.BindImageMemory(p.Device.VKDevice, img.VKImage, memory.VKDeviceMemory, 0)); err != nil {
		memory.Destroy()
		img.Destroy()
		return err
	}

	view, err := img.CreateImageViewWithAspectMask(vk.ImageAspectFlags(vk.ImageAspectDepthBit))
	if err != nil {
		memory.Destroy()
		img.Destroy()
		return err
	}

	p.DepthImage = img
	p.DepthImageView = view
	p.depthMemory = memory

	return nil
}

func (p *GraphicsApp) destroyDepthImage() {
	if p.DepthImageView != nil {
		p.DepthImageView.Destroy()
		p.DepthImageView = nil
	}
	if p.DepthImage != nil {
		p.DepthImage.Destroy()
		p.DepthImage = nil
	}
	if p.depthMemory != nil {
		p.depthMemory.Destroy()
		p.depthMemory = nil
	}
}

func (p *GraphicsApp) createFramebuffers() error {
	p.Framebuffers = make([]vk.Framebuffer, len(p.Swapchain.ImageViews))
	for i, view := range p.Swapchain.ImageViews {
		attachments := []vk.ImageView{
			view.VKImageView,
			p.DepthImageView.VKImageView,
		}
		ci := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      p.VKRenderPass,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           p.Swapchain.Extent.Width,
			Height:          p.Swapchain.Extent.Height,
			Layers:          1,
		}
		if err := vk.Error(vk.CreateFramebuffer(p.Device.VKDevice, &ci, nil, &p.Framebuffers[i])); err != nil {
			return err
		}
	}
	return nil
}

func (p *GraphicsApp) createSyncObjects() error {
	for i := 0; i < FramesInFlight; i++ {
		imageAvailable, err := p.Device.CreateSemaphore()
		if err != nil {
			return err
		}
		renderComplete, err := p.Device.CreateSemaphore()
		if err != nil {
			return err
		}
		fence, err := p.Device.CreateFenceWithOptions(true)
		if err != nil {
			return err
		}

		p.imageAvailable = append(p.imageAvailable, imageAvailable)
		p.renderComplete = append(p.renderComplete, renderComplete)
		p.inFlight = append(p.inFlight, fence)
	}
	return nil
}

func (p *GraphicsApp) destroySyncObjects() {
	for _, s := range p.imageAvailable {
		s.Destroy()
	}
	for _, s := range p.renderComplete {
		s.Destroy()
	}
	for _, f := range p.inFlight {
		f.Destroy()
	}
	p.imageAvailable = nil
	p.renderComplete = nil
	p.inFlight = nil
}

// Destroy tears everything down in reverse dependency order.
func (p *GraphicsApp) Destroy() {
	if p.Device != nil {
		p.Device.WaitIdle()
	}

	p.destroySwapchainResources()
	p.destroySyncObjects()

	for _, config := range p.GraphicsPipelineConfigs {
		config.Destroy()
	}
	p.GraphicsPipelineConfigs = nil

	if p.PipelineCache != nil {
		p.PipelineCache.Destroy()
		p.PipelineCache = nil
	}

	if p.ResourceManager != nil {
		p.ResourceManager.Destroy()
	}

	if p.CommandPool != nil {
		p.CommandPool.Destroy()
	}

	if p.VKSurface != vk.NullSurface {
		vk.DestroySurface(p.Instance.VKInstance, p.VKSurface, nil)
	}

	if p.Device != nil {
		p.Device.Destroy()
	}

	if p.Instance != nil {
		p.Instance.Destroy()
	}
}
