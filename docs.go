/*
Package vkt is a toolkit layered over the Vulkan API for Go. Vulkan gives
applications close control of the GPU at the cost of a great deal of setup:
device selection, memory management, synchronization, and pipeline
construction are all the application's job. This package wraps the parts of
that setup which nearly every Vulkan program repeats, while keeping the
native handles reachable for anything it does not cover.

The wrapping convention is simple: every object exposes the native Vulkan
structures and handles it owns through fields prefixed with VK, so that an
application which outgrows the helper APIs can drop down to the raw API
without fighting the package.

A compute program typically proceeds:

	1. Create an App, enable layers, create the Instance
	2. Pick a PhysicalDevice and filter its QueueFamilies for compute
	3. Create the logical Device and a ResourceManager
	4. Allocate a host visible buffer pool and buffers within it
	5. Build descriptor set layouts, a pipeline layout, and a ComputePipeline
	6. Record dispatches into a CommandBuffer and submit with a Fence
	7. Wait the fence, then read results back through the mapped pool memory

A windowed graphics program can instead start from GraphicsApp, which owns
the window surface, swapchain, render pass, framebuffers, depth image, and
the per frame synchronization objects, and drives a frames-in-flight render
loop with swapchain recreation on resize.

Beyond the API wrappers the package provides:

GraphicsApp:
	window + swapchain + render loop scaffolding
ResourceManager:
	named buffer and image pools sub-allocated from single device memory
	allocations, with a staging pool convention for device local data
Utility helpers:
	SPIR-V module loading, image readback to PNG, data source interfaces
*/
package vkt
