package renderer

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/metadata"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/shaders"
)

type Renderer struct {
	backend     RendererBackend
	pipeline    *metadata.Pipeline
	frameNumber uint64
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{
		backend: backend,
	}
}

// Initialize brings up the backend and builds the pipeline for shader.
func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32, shader metadata.ShaderConfig) error {
	if err := r.backend.Initialize(appName, appWidth, appHeight); err != nil {
		return fmt.Errorf("renderer backend initialize: %w", err)
	}
	p, err := r.createPipeline(shader)
	if err != nil {
		return err
	}
	r.pipeline = p
	core.LogInfo("Renderer initialized.")
	return nil
}

func (r *Renderer) Shutdown() error {
	if r.pipeline != nil {
		r.backend.DestroyPipeline(r.pipeline)
		r.pipeline = nil
	}
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) CreateGeometry(geometry *metadata.Geometry) error {
	if geometry.VertexCount == 0 {
		return fmt.Errorf("geometry '%s' has no vertices", geometry.Name)
	}
	return r.backend.CreateGeometry(geometry)
}

func (r *Renderer) DestroyGeometry(geometry *metadata.Geometry) {
	r.backend.DestroyGeometry(geometry)
}

// DrawFrame records and presents one frame. A frame without an available
// drawable is skipped and reported as success.
func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	if r.pipeline == nil {
		return core.ErrNotInitialized
	}
	if err := r.backend.BeginFrame(packet); err != nil {
		if errors.Is(err, core.ErrSwapchainBooting) {
			core.LogDebug("No drawable available, skipping frame.")
			return nil
		}
		core.LogError("%s", err)
		return err
	}
	if err := r.backend.UsePipeline(r.pipeline); err != nil {
		return err
	}
	for _, g := range packet.Geometries {
		if err := r.backend.DrawGeometry(g); err != nil {
			return err
		}
	}
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	r.frameNumber++
	return nil
}

// ReloadShader rebuilds the pipeline from new WGSL source. The current
// pipeline stays in use if compilation or creation fails.
func (r *Renderer) ReloadShader(source string) error {
	if r.pipeline == nil {
		return core.ErrNotInitialized
	}
	shader := r.pipeline.Shader
	shader.Source = source
	p, err := r.createPipeline(shader)
	if err != nil {
		return err
	}
	r.backend.DestroyPipeline(r.pipeline)
	r.pipeline = p
	core.LogInfo("Pipeline '%s' reloaded.", p.Name)
	return nil
}

func (r *Renderer) FrameNumber() uint64 {
	return r.frameNumber
}

func (r *Renderer) createPipeline(shader metadata.ShaderConfig) (*metadata.Pipeline, error) {
	module, err := shaders.Compile(shader.Name, shader.Source, shader.VertexEntryPoint, shader.FragmentEntryPoint)
	if err != nil {
		return nil, err
	}
	p := &metadata.Pipeline{
		Name:     shader.Name,
		Shader:   shader,
		CullMode: metadata.FaceCullModeNone,
	}
	if err := r.backend.CreatePipeline(p, module); err != nil {
		return nil, fmt.Errorf("creating pipeline '%s': %w", shader.Name, err)
	}
	return p, nil
}
