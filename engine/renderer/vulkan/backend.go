package vulkan

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/metadata"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/shaders"
)

const (
	validationLayerName            = "VK_LAYER_KHRONOS_validation"
	portabilityEnumerationExtName  = "VK_KHR_portability_enumeration"
	physicalDeviceProperties2Name  = "VK_KHR_get_physical_device_properties2"
	instanceCreateEnumeratePortBit = vk.InstanceCreateFlags(0x00000001)

	defaultMaxFramesInFlight uint8 = 2
)

// SurfaceProvider is the window the renderer presents to.
type SurfaceProvider interface {
	GetInstanceProcAddress() unsafe.Pointer
	GetRequiredExtensionNames() []string
	CreateSurface(instance interface{}) (uintptr, error)
}

type Options struct {
	// Validation enables the Khronos validation layer and debug reporting.
	Validation bool
	// VSync keeps the FIFO present mode, one present per display refresh.
	VSync             bool
	MaxFramesInFlight uint8
}

type VulkanRenderer struct {
	provider SurfaceProvider
	options  Options
	context  *VulkanContext

	// Latest size reported by the window. Applied on the next swapchain
	// recreation.
	cachedFramebufferWidth  uint32
	cachedFramebufferHeight uint32
}

func New(provider SurfaceProvider, options Options) *VulkanRenderer {
	if options.MaxFramesInFlight == 0 {
		options.MaxFramesInFlight = defaultMaxFramesInFlight
	}
	return &VulkanRenderer{
		provider: provider,
		options:  options,
		context: &VulkanContext{
			MaxFramesInFlight: options.MaxFramesInFlight,
			VSync:             options.VSync,
		},
	}
}

func (vr *VulkanRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	procAddr := vr.provider.GetInstanceProcAddress()
	if procAddr == nil {
		return errors.New("vkGetInstanceProcAddr is not available")
	}
	vk.SetGetInstanceProcAddr(procAddr)
	if err := vk.Init(); err != nil {
		return fmt.Errorf("failed to initialize vulkan loader: %w", err)
	}

	vr.cachedFramebufferWidth = appWidth
	vr.cachedFramebufferHeight = appHeight
	vr.context.FramebufferWidth = appWidth
	vr.context.FramebufferHeight = appHeight

	if err := vr.createInstance(appName); err != nil {
		return err
	}

	if vr.options.Validation {
		core.LogDebug("Creating Vulkan debugger...")
		debugCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
			PfnCallback: dbgCallbackFunc,
		}
		var dbg vk.DebugReportCallback
		if res := vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, vr.context.Allocator, &dbg); res != vk.Success {
			return vulkanError("vkCreateDebugReportCallbackEXT", res)
		}
		vr.context.debugMessenger = dbg
		core.LogDebug("Vulkan debugger created.")
	}

	core.LogDebug("Creating Vulkan surface...")
	surface, err := vr.provider.CreateSurface(vr.context.Instance)
	if err != nil {
		return fmt.Errorf("failed to create window surface: %w", err)
	}
	vr.context.Surface = vk.SurfaceFromPointer(surface)
	core.LogDebug("Vulkan surface created.")

	if err := DeviceCreate(vr.context); err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}

	sc, err := SwapchainCreate(vr.context, appWidth, appHeight)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc
	vr.context.FramebufferWidth = sc.Extent.Width
	vr.context.FramebufferHeight = sc.Extent.Height

	rp, err := RenderpassCreate(
		vr.context,
		0, 0, float32(sc.Extent.Width), float32(sc.Extent.Height),
		0.0, 0.0, 0.0, 1.0,
	)
	if err != nil {
		return err
	}
	vr.context.MainRenderpass = rp

	if err := regenerateFramebuffers(vr.context); err != nil {
		return err
	}

	if err := vr.createCommandBuffers(); err != nil {
		return err
	}

	if err := vr.createSyncObjects(); err != nil {
		return err
	}

	// Fences here are owned by InFlightFences. None is in use yet.
	vr.context.ImagesInFlight = make([]*VulkanFence, sc.ImageCount)

	core.LogInfo("Vulkan renderer initialized successfully.")
	return nil
}

func (vr *VulkanRenderer) createInstance(appName string) error {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("Hello Triangle"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	// The window reports the surface extensions it needs.
	requiredExtensions := []string{vk.KhrSurfaceExtensionName}
	for _, ext := range vr.provider.GetRequiredExtensionNames() {
		if !slices.Contains(requiredExtensions, ext) {
			requiredExtensions = append(requiredExtensions, ext)
		}
	}

	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions, portabilityEnumerationExtName, physicalDeviceProperties2Name)
		createInfo.Flags |= instanceCreateEnumeratePortBit
	}

	var requiredLayers []string
	if vr.options.Validation {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)
		requiredLayers = []string{validationLayerName}
		if err := checkValidationLayers(requiredLayers); err != nil {
			return err
		}
	}

	core.LogDebug("Required extensions: %v", requiredExtensions)
	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)
	createInfo.EnabledLayerCount = uint32(len(requiredLayers))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(requiredLayers)

	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
		return vulkanError("vkCreateInstance", res)
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		return err
	}
	core.LogInfo("Vulkan Instance created.")
	return nil
}

func checkValidationLayers(required []string) error {
	core.LogInfo("Validation layers enabled. Enumerating...")

	var count uint32
	if res := vk.EnumerateInstanceLayerProperties(&count, nil); res != vk.Success {
		return vulkanError("vkEnumerateInstanceLayerProperties", res)
	}
	available := make([]vk.LayerProperties, count)
	if res := vk.EnumerateInstanceLayerProperties(&count, available); res != vk.Success {
		return vulkanError("vkEnumerateInstanceLayerProperties", res)
	}

	names := make([]string, 0, len(available))
	for i := range available {
		available[i].Deref()
		names = append(names, CString(available[i].LayerName[:]))
	}
	for _, layer := range required {
		if !slices.Contains(names, layer) {
			return fmt.Errorf("required validation layer is missing: %s", layer)
		}
	}
	core.LogInfo("All required validation layers are present.")
	return nil
}

func (vr *VulkanRenderer) createSyncObjects() error {
	frames := int(vr.context.MaxFramesInFlight)
	vr.context.ImageAvailableSemaphores = make([]vk.Semaphore, frames)
	vr.context.QueueCompleteSemaphores = make([]vk.Semaphore, frames)
	vr.context.InFlightFences = make([]*VulkanFence, frames)

	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	for i := 0; i < frames; i++ {
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.ImageAvailableSemaphores[i]); res != vk.Success {
			return vulkanError("vkCreateSemaphore", res)
		}
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.QueueCompleteSemaphores[i]); res != vk.Success {
			return vulkanError("vkCreateSemaphore", res)
		}
		// Signaled so the first wait on each frame returns immediately.
		f, err := NewFence(vr.context, true)
		if err != nil {
			return err
		}
		vr.context.InFlightFences[i] = f
	}
	return nil
}

func (vr *VulkanRenderer) createCommandBuffers() error {
	pool := vr.context.Device.GraphicsCommandPool
	for _, cb := range vr.context.GraphicsCommandBuffers {
		if cb != nil {
			cb.Free(vr.context, pool)
		}
	}
	vr.context.GraphicsCommandBuffers = make([]*VulkanCommandBuffer, vr.context.MaxFramesInFlight)
	for i := range vr.context.GraphicsCommandBuffers {
		cb, err := NewVulkanCommandBuffer(vr.context, pool, true)
		if err != nil {
			return err
		}
		vr.context.GraphicsCommandBuffers[i] = cb
	}
	core.LogDebug("Vulkan command buffers created.")
	return nil
}

// Shutdown destroys everything in the opposite order of creation. It is
// safe to call after a partial Initialize.
func (vr *VulkanRenderer) Shutdown() error {
	ctx := vr.context
	if ctx.Device != nil && ctx.Device.LogicalDevice != nil {
		vk.DeviceWaitIdle(ctx.Device.LogicalDevice)

		for i := range ctx.ImageAvailableSemaphores {
			if ctx.ImageAvailableSemaphores[i] != vk.NullSemaphore {
				vk.DestroySemaphore(ctx.Device.LogicalDevice, ctx.ImageAvailableSemaphores[i], ctx.Allocator)
				ctx.ImageAvailableSemaphores[i] = vk.NullSemaphore
			}
		}
		for i := range ctx.QueueCompleteSemaphores {
			if ctx.QueueCompleteSemaphores[i] != vk.NullSemaphore {
				vk.DestroySemaphore(ctx.Device.LogicalDevice, ctx.QueueCompleteSemaphores[i], ctx.Allocator)
				ctx.QueueCompleteSemaphores[i] = vk.NullSemaphore
			}
		}
		for _, f := range ctx.InFlightFences {
			if f != nil {
				f.FenceDestroy(ctx)
			}
		}
		ctx.ImageAvailableSemaphores = nil
		ctx.QueueCompleteSemaphores = nil
		ctx.InFlightFences = nil
		ctx.ImagesInFlight = nil

		for _, cb := range ctx.GraphicsCommandBuffers {
			if cb != nil {
				cb.Free(ctx, ctx.Device.GraphicsCommandPool)
			}
		}
		ctx.GraphicsCommandBuffers = nil

		// Framebuffers go with the swapchain views, so the render pass can
		// only be destroyed once they are gone.
		if ctx.Swapchain != nil {
			ctx.Swapchain.SwapchainDestroy(ctx)
			ctx.Swapchain = nil
		}
		if ctx.MainRenderpass != nil {
			ctx.MainRenderpass.RenderpassDestroy(ctx)
			ctx.MainRenderpass = nil
		}

		core.LogDebug("Destroying Vulkan device...")
		DeviceDestroy(ctx)
	}

	if ctx.Instance != nil {
		if ctx.Surface != vk.NullSurface {
			core.LogDebug("Destroying Vulkan surface...")
			vk.DestroySurface(ctx.Instance, ctx.Surface, ctx.Allocator)
			ctx.Surface = vk.NullSurface
		}
		if ctx.debugMessenger != vk.NullDebugReportCallback {
			core.LogDebug("Destroying Vulkan debugger...")
			vk.DestroyDebugReportCallback(ctx.Instance, ctx.debugMessenger, ctx.Allocator)
			ctx.debugMessenger = vk.NullDebugReportCallback
		}
		core.LogDebug("Destroying Vulkan instance...")
		vk.DestroyInstance(ctx.Instance, ctx.Allocator)
		ctx.Instance = nil
	}
	return nil
}

// Resized records the new framebuffer size. The swapchain is recreated at
// the start of the next frame.
func (vr *VulkanRenderer) Resized(width, height uint32) error {
	vr.cachedFramebufferWidth = width
	vr.cachedFramebufferHeight = height
	vr.context.FramebufferSizeGeneration++

	core.LogDebug("Vulkan renderer backend->resized: w/h/gen: %d/%d/%d", width, height, vr.context.FramebufferSizeGeneration)
	return nil
}

func (vr *VulkanRenderer) BeginFrame(packet *metadata.RenderPacket) error {
	ctx := vr.context
	if ctx.Swapchain == nil {
		return core.ErrNotInitialized
	}
	if ctx.RecreatingSwapchain {
		return core.ErrSwapchainBooting
	}

	// A new size means a new swapchain before anything can be drawn.
	if ctx.FramebufferSizeGeneration != ctx.FramebufferSizeLastGeneration {
		if err := vr.recreateSwapchain(); err != nil {
			return err
		}
		return core.ErrSwapchainBooting
	}

	// Wait for the last submission that used this frame's resources.
	if err := ctx.InFlightFences[ctx.CurrentFrame].FenceWait(ctx, math.MaxUint64); err != nil {
		return err
	}

	imageIndex, err := ctx.Swapchain.SwapchainAcquireNextImageIndex(ctx, math.MaxUint64, ctx.ImageAvailableSemaphores[ctx.CurrentFrame], vk.NullFence)
	if err != nil {
		if errors.Is(err, core.ErrSwapchainBooting) {
			ctx.FramebufferSizeGeneration++
		}
		return err
	}
	ctx.ImageIndex = imageIndex

	// Make sure a previous frame is not still using this image.
	if f := ctx.ImagesInFlight[imageIndex]; f != nil && f != ctx.InFlightFences[ctx.CurrentFrame] {
		if err := f.FenceWait(ctx, math.MaxUint64); err != nil {
			return err
		}
	}
	ctx.ImagesInFlight[imageIndex] = ctx.InFlightFences[ctx.CurrentFrame]

	commandBuffer := ctx.GraphicsCommandBuffers[ctx.CurrentFrame]
	if err := commandBuffer.Reset(); err != nil {
		return err
	}
	if err := commandBuffer.Begin(false, false, false); err != nil {
		return err
	}

	viewport := vk.Viewport{
		X:        0.0,
		Y:        0.0,
		Width:    float32(ctx.FramebufferWidth),
		Height:   float32(ctx.FramebufferHeight),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: vk.Extent2D{Width: ctx.FramebufferWidth, Height: ctx.FramebufferHeight},
	}
	vk.CmdSetViewport(commandBuffer.Handle, 0, 1, []vk.Viewport{viewport})
	vk.CmdSetScissor(commandBuffer.Handle, 0, 1, []vk.Rect2D{scissor})

	rp := ctx.MainRenderpass
	rp.W = float32(ctx.FramebufferWidth)
	rp.H = float32(ctx.FramebufferHeight)
	if packet != nil {
		c := packet.ClearColor
		rp.SetClearColor(c.X, c.Y, c.Z, c.W)
	}
	rp.RenderpassBegin(commandBuffer, ctx.Swapchain.Framebuffers[imageIndex].Handle)
	return nil
}

func (vr *VulkanRenderer) UsePipeline(pipeline *metadata.Pipeline) error {
	vp, ok := pipeline.InternalData.(*VulkanPipeline)
	if !ok || vp == nil {
		return fmt.Errorf("pipeline '%s' has no vulkan data: %w", pipeline.Name, core.ErrNotInitialized)
	}
	vp.Bind(vr.context.GraphicsCommandBuffers[vr.context.CurrentFrame], vk.PipelineBindPointGraphics)
	return nil
}

func (vr *VulkanRenderer) DrawGeometry(data metadata.GeometryRenderData) error {
	if data.Geometry == nil {
		return errors.New("draw called with nil geometry")
	}
	buffer, ok := data.Geometry.InternalData.(*VulkanBuffer)
	if !ok || buffer == nil {
		return fmt.Errorf("geometry '%s' was not uploaded: %w", data.Geometry.Name, core.ErrNotInitialized)
	}
	commandBuffer := vr.context.GraphicsCommandBuffers[vr.context.CurrentFrame]
	buffer.BindVertex(commandBuffer, 0)
	vk.CmdDraw(commandBuffer.Handle, data.Geometry.VertexCount, 1, 0, 0)
	return nil
}

// EndFrame submits the recorded commands and then queues the image for
// presentation once rendering completes.
func (vr *VulkanRenderer) EndFrame(deltaTime float64) error {
	ctx := vr.context
	commandBuffer := ctx.GraphicsCommandBuffers[ctx.CurrentFrame]

	ctx.MainRenderpass.RenderpassEnd(commandBuffer)
	if err := commandBuffer.End(); err != nil {
		return err
	}

	fence := ctx.InFlightFences[ctx.CurrentFrame]
	if err := fence.FenceReset(ctx); err != nil {
		return err
	}

	// Color writes wait until the acquired image is available.
	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{ctx.ImageAvailableSemaphores[ctx.CurrentFrame]},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{commandBuffer.Handle},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{ctx.QueueCompleteSemaphores[ctx.CurrentFrame]},
	}
	if res := vk.QueueSubmit(ctx.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, fence.Handle); res != vk.Success {
		return vulkanError("vkQueueSubmit", res)
	}
	commandBuffer.UpdateSubmitted()

	stale, err := ctx.Swapchain.SwapchainPresent(ctx, ctx.Device.PresentQueue, ctx.QueueCompleteSemaphores[ctx.CurrentFrame], ctx.ImageIndex)
	if err != nil {
		return err
	}
	if stale {
		// Out of date or suboptimal: rebuild before the next frame.
		ctx.FramebufferSizeGeneration++
	}

	ctx.CurrentFrame = (ctx.CurrentFrame + 1) % uint32(ctx.MaxFramesInFlight)
	return nil
}

func (vr *VulkanRenderer) CreateGeometry(geometry *metadata.Geometry) error {
	if vr.context.Device == nil {
		return core.ErrNotInitialized
	}
	buffer, err := NewHostVisibleBuffer(vr.context, geometry.Size(), vk.BufferUsageVertexBufferBit)
	if err != nil {
		return fmt.Errorf("geometry '%s': %w", geometry.Name, err)
	}
	if err := buffer.LoadData(vr.context, 0, geometry.VertexData); err != nil {
		buffer.Destroy(vr.context)
		return fmt.Errorf("geometry '%s': %w", geometry.Name, err)
	}
	geometry.InternalData = buffer
	core.LogDebug("Uploaded geometry '%s' (%d vertices, %d bytes).", geometry.Name, geometry.VertexCount, geometry.Size())
	return nil
}

func (vr *VulkanRenderer) DestroyGeometry(geometry *metadata.Geometry) {
	buffer, ok := geometry.InternalData.(*VulkanBuffer)
	if !ok || buffer == nil || vr.context.Device == nil {
		return
	}
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)
	buffer.Destroy(vr.context)
	geometry.InternalData = nil
}

func (vr *VulkanRenderer) CreatePipeline(pipeline *metadata.Pipeline, module *shaders.Module) error {
	ctx := vr.context
	if ctx.Device == nil || ctx.MainRenderpass == nil {
		return core.ErrNotInitialized
	}

	vertexEntry := pipeline.Shader.VertexEntryPoint
	if vertexEntry == "" {
		vertexEntry = shaders.VertexEntryPoint
	}
	fragmentEntry := pipeline.Shader.FragmentEntryPoint
	if fragmentEntry == "" {
		fragmentEntry = shaders.FragmentEntryPoint
	}

	shader, err := NewShaderModule(ctx, module,
		shaderEntryPoint{Stage: vk.ShaderStageVertexBit, Name: vertexEntry},
		shaderEntryPoint{Stage: vk.ShaderStageFragmentBit, Name: fragmentEntry},
	)
	if err != nil {
		return err
	}
	// The pipeline keeps what it needs from the module.
	defer shader.Destroy(ctx)

	vp, err := NewGraphicsPipeline(ctx, &VulkanPipelineConfig{
		Renderpass: ctx.MainRenderpass,
		Stride:     metadata.Vertex3DSize,
		Attributes: positionAttributes(),
		Stages:     shader.Stages,
		Viewport: vk.Viewport{
			Width:    float32(ctx.FramebufferWidth),
			Height:   float32(ctx.FramebufferHeight),
			MaxDepth: 1.0,
		},
		Scissor: vk.Rect2D{
			Extent: vk.Extent2D{Width: ctx.FramebufferWidth, Height: ctx.FramebufferHeight},
		},
		CullMode: pipeline.CullMode,
	})
	if err != nil {
		return fmt.Errorf("pipeline '%s': %w", pipeline.Name, err)
	}
	pipeline.InternalData = vp
	return nil
}

func (vr *VulkanRenderer) DestroyPipeline(pipeline *metadata.Pipeline) {
	vp, ok := pipeline.InternalData.(*VulkanPipeline)
	if !ok || vp == nil || vr.context.Device == nil {
		return
	}
	// A frame in flight may still reference it.
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)
	vp.Destroy(vr.context)
	pipeline.InternalData = nil
}

func (vr *VulkanRenderer) recreateSwapchain() error {
	ctx := vr.context
	// A minimized window has nothing to draw to. Keep the generation
	// mismatch so this is retried once the window has a size again.
	if vr.cachedFramebufferWidth == 0 || vr.cachedFramebufferHeight == 0 {
		core.LogDebug("recreateSwapchain called when window is < 1 in a dimension. Booting.")
		return nil
	}

	ctx.RecreatingSwapchain = true
	defer func() { ctx.RecreatingSwapchain = false }()

	if res := vk.DeviceWaitIdle(ctx.Device.LogicalDevice); !VulkanResultIsSuccess(res) {
		return vulkanError("vkDeviceWaitIdle", res)
	}

	sc, err := ctx.Swapchain.SwapchainRecreate(ctx, vr.cachedFramebufferWidth, vr.cachedFramebufferHeight)
	if err != nil {
		return fmt.Errorf("failed to recreate swapchain: %w", err)
	}
	ctx.Swapchain = sc
	ctx.FramebufferWidth = sc.Extent.Width
	ctx.FramebufferHeight = sc.Extent.Height
	ctx.MainRenderpass.X = 0
	ctx.MainRenderpass.Y = 0
	ctx.MainRenderpass.W = float32(sc.Extent.Width)
	ctx.MainRenderpass.H = float32(sc.Extent.Height)

	if err := regenerateFramebuffers(ctx); err != nil {
		return err
	}
	ctx.ImagesInFlight = make([]*VulkanFence, sc.ImageCount)
	ctx.FramebufferSizeLastGeneration = ctx.FramebufferSizeGeneration

	core.LogDebug("Swapchain recreated at %dx%d.", sc.Extent.Width, sc.Extent.Height)
	return nil
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("ERROR: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("PERFORMANCE WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogDebug("INFORMATION: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
