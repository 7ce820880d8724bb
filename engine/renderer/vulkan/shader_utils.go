package vulkan

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/shaders"
)

// VulkanShader is one SPIR-V module with a stage per entry point.
type VulkanShader struct {
	Handle vk.ShaderModule
	Stages []vk.PipelineShaderStageCreateInfo
}

type shaderEntryPoint struct {
	Stage vk.ShaderStageFlagBits
	Name  string
}

// NewShaderModule creates the shader module from compiled SPIR-V and a stage
// create info for each entry point.
func NewShaderModule(context *VulkanContext, module *shaders.Module, entryPoints ...shaderEntryPoint) (*VulkanShader, error) {
	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(module.Size()),
		PCode:    module.Words(),
	}

	var handle vk.ShaderModule
	if res := vk.CreateShaderModule(context.Device.LogicalDevice, &createInfo, context.Allocator, &handle); res != vk.Success {
		return nil, vulkanError("vkCreateShaderModule", res)
	}

	shader := &VulkanShader{Handle: handle}
	for _, ep := range entryPoints {
		shader.Stages = append(shader.Stages, vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  ep.Stage,
			Module: handle,
			PName:  VulkanSafeString(ep.Name),
		})
	}
	return shader, nil
}

// Destroy releases the module. Pipelines built from it stay valid.
func (s *VulkanShader) Destroy(context *VulkanContext) {
	if s.Handle != nil {
		vk.DestroyShaderModule(context.Device.LogicalDevice, s.Handle, context.Allocator)
		s.Handle = nil
	}
	s.Stages = nil
}
