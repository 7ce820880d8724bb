package vulkan

import (
	"fmt"
	"math"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/hellotriangle/engine/core"
	emath "github.com/spaghettifunk/hellotriangle/engine/math"
)

type VulkanSwapchain struct {
	ImageFormat vk.SurfaceFormat
	Extent      vk.Extent2D
	PresentMode vk.PresentMode
	Handle      vk.Swapchain
	ImageCount  uint32
	Images      []vk.Image
	Views       []vk.ImageView

	// framebuffers used for on-screen rendering, one per image.
	Framebuffers []*VulkanFramebuffer
}

type VulkanSwapchainSupportInfo struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

// DeviceQuerySwapchainSupport reads the surface capabilities, formats and
// present modes of device.
func DeviceQuerySwapchainSupport(device vk.PhysicalDevice, surface vk.Surface) (VulkanSwapchainSupportInfo, error) {
	support := VulkanSwapchainSupportInfo{}

	if res := vk.GetPhysicalDeviceSurfaceCapabilities(device, surface, &support.Capabilities); res != vk.Success {
		return support, vulkanError("vkGetPhysicalDeviceSurfaceCapabilitiesKHR", res)
	}
	support.Capabilities.Deref()
	support.Capabilities.CurrentExtent.Deref()
	support.Capabilities.MinImageExtent.Deref()
	support.Capabilities.MaxImageExtent.Deref()

	var formatCount uint32
	if res := vk.GetPhysicalDeviceSurfaceFormats(device, surface, &formatCount, nil); res != vk.Success {
		return support, vulkanError("vkGetPhysicalDeviceSurfaceFormatsKHR", res)
	}
	if formatCount != 0 {
		support.Formats = make([]vk.SurfaceFormat, formatCount)
		if res := vk.GetPhysicalDeviceSurfaceFormats(device, surface, &formatCount, support.Formats); res != vk.Success {
			return support, vulkanError("vkGetPhysicalDeviceSurfaceFormatsKHR", res)
		}
		for i := range support.Formats {
			support.Formats[i].Deref()
		}
	}

	var presentModeCount uint32
	if res := vk.GetPhysicalDeviceSurfacePresentModes(device, surface, &presentModeCount, nil); res != vk.Success {
		return support, vulkanError("vkGetPhysicalDeviceSurfacePresentModesKHR", res)
	}
	if presentModeCount != 0 {
		support.PresentModes = make([]vk.PresentMode, presentModeCount)
		if res := vk.GetPhysicalDeviceSurfacePresentModes(device, surface, &presentModeCount, support.PresentModes); res != vk.Success {
			return support, vulkanError("vkGetPhysicalDeviceSurfacePresentModesKHR", res)
		}
	}
	return support, nil
}

// Linear 8-bit formats, in order of preference. A linear target keeps the
// clear color bytes as given, with no gamma encoding on store.
var unormSurfaceFormats = []vk.Format{
	vk.FormatB8g8r8a8Unorm,
	vk.FormatR8g8b8a8Unorm,
	vk.FormatA8b8g8r8UnormPack32,
}

// chooseSurfaceFormat prefers B8G8R8A8_UNORM with sRGB non-linear color
// space, then any other linear 8-bit format, and falls back to the first
// reported format with a warning.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	// A single undefined entry means the surface has no preference.
	if len(formats) == 0 || (len(formats) == 1 && formats[0].Format == vk.FormatUndefined) {
		return vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	}
	for _, want := range unormSurfaceFormats {
		for _, format := range formats {
			if format.Format == want && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
				return format
			}
		}
	}
	core.LogWarn("Surface offers no linear 8-bit format, using format %d. Colors may be gamma encoded.", formats[0].Format)
	return formats[0]
}

// choosePresentMode returns FIFO, which is always available and paces
// presentation to the display refresh. Without vsync MAILBOX is used when
// the surface offers it, then IMMEDIATE.
func choosePresentMode(modes []vk.PresentMode, vsync bool) vk.PresentMode {
	if vsync {
		return vk.PresentModeFifo
	}
	fallback := vk.PresentModeFifo
	for _, mode := range modes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
		if mode == vk.PresentModeImmediate {
			fallback = mode
		}
	}
	return fallback
}

// chooseExtent uses the surface's current extent when it is fixed, else the
// framebuffer size clamped to the allowed range.
func chooseExtent(capabilities vk.SurfaceCapabilities, width, height uint32) vk.Extent2D {
	if capabilities.CurrentExtent.Width != math.MaxUint32 {
		return capabilities.CurrentExtent
	}
	min := capabilities.MinImageExtent
	max := capabilities.MaxImageExtent
	return vk.Extent2D{
		Width:  emath.Clamp(width, min.Width, max.Width),
		Height: emath.Clamp(height, min.Height, max.Height),
	}
}

func chooseImageCount(capabilities vk.SurfaceCapabilities) uint32 {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && imageCount > capabilities.MaxImageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

func SwapchainCreate(context *VulkanContext, width, height uint32) (*VulkanSwapchain, error) {
	return createSwapchain(context, width, height, vk.NullSwapchain)
}

// SwapchainRecreate builds a replacement swapchain for the new size. The
// caller re-creates the framebuffers against the returned swapchain.
func (vs *VulkanSwapchain) SwapchainRecreate(context *VulkanContext, width, height uint32) (*VulkanSwapchain, error) {
	vk.DeviceWaitIdle(context.Device.LogicalDevice)
	old := vs.Handle
	vs.destroyViews(context)

	swapchain, err := createSwapchain(context, width, height, old)
	if old != vk.NullSwapchain {
		vk.DestroySwapchain(context.Device.LogicalDevice, old, context.Allocator)
		vs.Handle = vk.NullSwapchain
	}
	if err != nil {
		return nil, err
	}
	return swapchain, nil
}

func (vs *VulkanSwapchain) SwapchainDestroy(context *VulkanContext) {
	vk.DeviceWaitIdle(context.Device.LogicalDevice)
	vs.destroyViews(context)
	if vs.Handle != vk.NullSwapchain {
		vk.DestroySwapchain(context.Device.LogicalDevice, vs.Handle, context.Allocator)
		vs.Handle = vk.NullSwapchain
	}
}

// SwapchainAcquireNextImageIndex returns the index of the next presentable
// image. An out-of-date swapchain yields core.ErrSwapchainBooting.
func (vs *VulkanSwapchain) SwapchainAcquireNextImageIndex(context *VulkanContext, timeoutNS uint64, imageAvailableSemaphore vk.Semaphore, fence vk.Fence) (uint32, error) {
	var imageIndex uint32
	result := vk.AcquireNextImage(context.Device.LogicalDevice, vs.Handle, timeoutNS, imageAvailableSemaphore, fence, &imageIndex)
	switch result {
	case vk.Success, vk.Suboptimal:
		return imageIndex, nil
	case vk.ErrorOutOfDate:
		return 0, core.ErrSwapchainBooting
	default:
		return 0, vulkanError("vkAcquireNextImageKHR", result)
	}
}

// SwapchainPresent queues the image for presentation once
// renderCompleteSemaphore signals. It reports whether the swapchain needs to
// be recreated.
func (vs *VulkanSwapchain) SwapchainPresent(context *VulkanContext, presentQueue vk.Queue, renderCompleteSemaphore vk.Semaphore, presentImageIndex uint32) (bool, error) {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{renderCompleteSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{vs.Handle},
		PImageIndices:      []uint32{presentImageIndex},
	}

	result := vk.QueuePresent(presentQueue, &presentInfo)
	switch result {
	case vk.Success:
		return false, nil
	case vk.ErrorOutOfDate, vk.Suboptimal:
		return true, nil
	default:
		return false, vulkanError("vkQueuePresentKHR", result)
	}
}

func createSwapchain(context *VulkanContext, width, height uint32, old vk.Swapchain) (*VulkanSwapchain, error) {
	// Capabilities change with the window, so query them again.
	support, err := DeviceQuerySwapchainSupport(context.Device.PhysicalDevice, context.Surface)
	if err != nil {
		return nil, err
	}
	context.Device.SwapchainSupport = support

	swapchain := &VulkanSwapchain{
		ImageFormat: chooseSurfaceFormat(support.Formats),
		PresentMode: choosePresentMode(support.PresentModes, context.VSync),
		Extent:      chooseExtent(support.Capabilities, width, height),
	}

	swapchainCreateInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          context.Surface,
		MinImageCount:    chooseImageCount(support.Capabilities),
		ImageFormat:      swapchain.ImageFormat.Format,
		ImageColorSpace:  swapchain.ImageFormat.ColorSpace,
		ImageExtent:      swapchain.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     support.Capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      swapchain.PresentMode,
		Clipped:          vk.True,
		OldSwapchain:     old,
	}

	if context.Device.GraphicsQueueIndex != context.Device.PresentQueueIndex {
		swapchainCreateInfo.ImageSharingMode = vk.SharingModeConcurrent
		swapchainCreateInfo.QueueFamilyIndexCount = 2
		swapchainCreateInfo.PQueueFamilyIndices = []uint32{
			uint32(context.Device.GraphicsQueueIndex),
			uint32(context.Device.PresentQueueIndex),
		}
	} else {
		swapchainCreateInfo.ImageSharingMode = vk.SharingModeExclusive
	}

	var handle vk.Swapchain
	if res := vk.CreateSwapchain(context.Device.LogicalDevice, &swapchainCreateInfo, context.Allocator, &handle); res != vk.Success {
		return nil, vulkanError("vkCreateSwapchainKHR", res)
	}
	swapchain.Handle = handle

	if err := swapchain.createImages(context); err != nil {
		swapchain.destroyViews(context)
		vk.DestroySwapchain(context.Device.LogicalDevice, handle, context.Allocator)
		return nil, err
	}

	// Start with a zero frame index.
	context.CurrentFrame = 0

	core.LogInfo("Swapchain created: %dx%d, %d images, present mode %d.", swapchain.Extent.Width, swapchain.Extent.Height, swapchain.ImageCount, swapchain.PresentMode)
	return swapchain, nil
}

// createImages fetches the swapchain images and creates a view for each.
// Views created before a failure stay in Views for the caller to destroy.
func (vs *VulkanSwapchain) createImages(context *VulkanContext) error {
	handle := vs.Handle
	if res := vk.GetSwapchainImages(context.Device.LogicalDevice, handle, &vs.ImageCount, nil); res != vk.Success {
		return vulkanError("vkGetSwapchainImagesKHR", res)
	}
	vs.Images = make([]vk.Image, vs.ImageCount)
	if res := vk.GetSwapchainImages(context.Device.LogicalDevice, handle, &vs.ImageCount, vs.Images); res != vk.Success {
		return vulkanError("vkGetSwapchainImagesKHR", res)
	}

	vs.Views = make([]vk.ImageView, vs.ImageCount)
	for i := range vs.Images {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    vs.Images[i],
			ViewType: vk.ImageViewType2d,
			Format:   vs.ImageFormat.Format,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}
		var view vk.ImageView
		if res := vk.CreateImageView(context.Device.LogicalDevice, &viewInfo, context.Allocator, &view); res != vk.Success {
			return fmt.Errorf("image view %d: %w", i, vulkanError("vkCreateImageView", res))
		}
		vs.Views[i] = view
	}
	return nil
}

// Only the views are destroyed. The images are owned by the swapchain.
func (vs *VulkanSwapchain) destroyViews(context *VulkanContext) {
	for _, fb := range vs.Framebuffers {
		fb.Destroy(context)
	}
	vs.Framebuffers = nil
	for i := range vs.Views {
		if vs.Views[i] != nil {
			vk.DestroyImageView(context.Device.LogicalDevice, vs.Views[i], context.Allocator)
		}
	}
	vs.Views = nil
	vs.Images = nil
	vs.ImageCount = 0
}
