package metadata

import (
	"github.com/spaghettifunk/hellotriangle/engine/math"
)

// RenderPacket holds everything the renderer needs to draw one frame.
type RenderPacket struct {
	DeltaTime  float64
	ClearColor math.Vec4
	Geometries []GeometryRenderData
}

type RendererType uint8

const (
	Vulkan RendererType = iota
	DirectX
	Metal
	OpenGL
)

// ShaderConfig names a shader module and the entry points used by a pipeline.
type ShaderConfig struct {
	Name               string
	Source             string
	VertexEntryPoint   string
	FragmentEntryPoint string
}

type FaceCullMode int

const (
	FaceCullModeNone FaceCullMode = iota
	FaceCullModeFront
	FaceCullModeBack
	FaceCullModeFrontAndBack
)

// Pipeline is the backend-agnostic handle to a compiled graphics pipeline.
type Pipeline struct {
	Name         string
	Shader       ShaderConfig
	CullMode     FaceCullMode
	InternalData interface{}
}
