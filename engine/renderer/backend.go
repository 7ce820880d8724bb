package renderer

import (
	"github.com/spaghettifunk/hellotriangle/engine/renderer/metadata"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/shaders"
)

// RendererBackend is implemented by each graphics API. Calls are made from
// the main loop only.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	// BeginFrame acquires the next drawable and begins the render pass,
	// clearing to packet.ClearColor. It returns core.ErrSwapchainBooting
	// when no drawable is available this frame.
	BeginFrame(packet *metadata.RenderPacket) error
	UsePipeline(pipeline *metadata.Pipeline) error
	DrawGeometry(data metadata.GeometryRenderData) error
	// EndFrame ends the pass, submits the recorded work and presents.
	EndFrame(deltaTime float64) error
	CreateGeometry(geometry *metadata.Geometry) error
	DestroyGeometry(geometry *metadata.Geometry)
	CreatePipeline(pipeline *metadata.Pipeline, module *shaders.Module) error
	DestroyPipeline(pipeline *metadata.Pipeline)
}
