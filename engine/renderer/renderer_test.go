package renderer

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/metadata"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls         []string
	beginErr      error
	endErr        error
	pipelineErr   error
	pipelines     []*metadata.Pipeline
	destroyed     []*metadata.Pipeline
	lastPacket    *metadata.RenderPacket
	boundPipeline *metadata.Pipeline
}

func (f *fakeBackend) Initialize(string, uint32, uint32) error {
	f.calls = append(f.calls, "initialize")
	return nil
}

func (f *fakeBackend) Shutdown() error {
	f.calls = append(f.calls, "shutdown")
	return nil
}

func (f *fakeBackend) Resized(uint32, uint32) error {
	f.calls = append(f.calls, "resized")
	return nil
}

func (f *fakeBackend) BeginFrame(packet *metadata.RenderPacket) error {
	f.calls = append(f.calls, "begin")
	f.lastPacket = packet
	return f.beginErr
}

func (f *fakeBackend) UsePipeline(p *metadata.Pipeline) error {
	f.calls = append(f.calls, "pipeline")
	f.boundPipeline = p
	return nil
}

func (f *fakeBackend) DrawGeometry(metadata.GeometryRenderData) error {
	f.calls = append(f.calls, "draw")
	return nil
}

func (f *fakeBackend) EndFrame(float64) error {
	f.calls = append(f.calls, "end")
	return f.endErr
}

func (f *fakeBackend) CreateGeometry(*metadata.Geometry) error {
	f.calls = append(f.calls, "create-geometry")
	return nil
}

func (f *fakeBackend) DestroyGeometry(*metadata.Geometry) {
	f.calls = append(f.calls, "destroy-geometry")
}

func (f *fakeBackend) CreatePipeline(p *metadata.Pipeline, m *shaders.Module) error {
	if f.pipelineErr != nil {
		return f.pipelineErr
	}
	f.pipelines = append(f.pipelines, p)
	p.InternalData = m
	return nil
}

func (f *fakeBackend) DestroyPipeline(p *metadata.Pipeline) {
	f.destroyed = append(f.destroyed, p)
}

func basicShader() metadata.ShaderConfig {
	return metadata.ShaderConfig{
		Name:               "basic",
		Source:             shaders.BasicSource(),
		VertexEntryPoint:   shaders.VertexEntryPoint,
		FragmentEntryPoint: shaders.FragmentEntryPoint,
	}
}

func newInitialized(t *testing.T) (*Renderer, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	r := New(fb)
	require.NoError(t, r.Initialize("test", 640, 480, basicShader()))
	fb.calls = nil
	return r, fb
}

func TestDrawFrameRunsSequenceOnce(t *testing.T) {
	r, fb := newInitialized(t)
	g := metadata.NewGeometry(metadata.GeometryConfig{Name: "tri", Vertices: metadata.VerticesFromFloats([]float32{0, 0.5, 0, -0.5, -0.5, 0, 0.5, -0.5, 0})})
	packet := &metadata.RenderPacket{DeltaTime: 0.016, Geometries: []metadata.GeometryRenderData{{Geometry: g}}}

	require.NoError(t, r.DrawFrame(packet))
	assert.Equal(t, []string{"begin", "pipeline", "draw", "end"}, fb.calls)
	assert.Same(t, packet, fb.lastPacket)
	assert.Same(t, fb.pipelines[0], fb.boundPipeline)
	assert.Equal(t, uint64(1), r.FrameNumber())

	fb.calls = nil
	require.NoError(t, r.DrawFrame(packet))
	assert.Equal(t, []string{"begin", "pipeline", "draw", "end"}, fb.calls)
	assert.Equal(t, uint64(2), r.FrameNumber())
}

func TestDrawFrameSkipsWithoutDrawable(t *testing.T) {
	r, fb := newInitialized(t)
	fb.beginErr = core.ErrSwapchainBooting

	require.NoError(t, r.DrawFrame(&metadata.RenderPacket{}))
	assert.Equal(t, []string{"begin"}, fb.calls)
	assert.Zero(t, r.FrameNumber())
}

func TestDrawFrameReturnsBackendErrors(t *testing.T) {
	r, fb := newInitialized(t)
	fb.endErr = errors.New("device lost")

	err := r.DrawFrame(&metadata.RenderPacket{})
	assert.EqualError(t, err, "device lost")

	fb.endErr = nil
	fb.beginErr = errors.New("fence wait")
	assert.Error(t, r.DrawFrame(&metadata.RenderPacket{}))
}

func TestDrawFrameBeforeInitialize(t *testing.T) {
	r := New(&fakeBackend{})
	assert.ErrorIs(t, r.DrawFrame(&metadata.RenderPacket{}), core.ErrNotInitialized)
	assert.ErrorIs(t, r.ReloadShader(shaders.BasicSource()), core.ErrNotInitialized)
}

func TestInitializeFailsOnBadShader(t *testing.T) {
	r := New(&fakeBackend{})
	shader := basicShader()
	shader.VertexEntryPoint = "vertex_main"
	err := r.Initialize("test", 640, 480, shader)
	assert.ErrorIs(t, err, core.ErrShaderCompile)
}

func TestInitializeFailsOnPipelineCreation(t *testing.T) {
	r := New(&fakeBackend{pipelineErr: errors.New("no pipeline")})
	assert.Error(t, r.Initialize("test", 640, 480, basicShader()))
}

func TestReloadShaderSwapsPipeline(t *testing.T) {
	r, fb := newInitialized(t)
	old := fb.pipelines[0]

	require.NoError(t, r.ReloadShader(shaders.BasicSource()))
	require.Len(t, fb.pipelines, 2)
	assert.Equal(t, []*metadata.Pipeline{old}, fb.destroyed)

	require.NoError(t, r.DrawFrame(&metadata.RenderPacket{}))
	assert.Same(t, fb.pipelines[1], fb.boundPipeline)
}

func TestReloadShaderKeepsPipelineOnFailure(t *testing.T) {
	r, fb := newInitialized(t)

	err := r.ReloadShader("not wgsl at all")
	assert.ErrorIs(t, err, core.ErrShaderCompile)
	assert.Empty(t, fb.destroyed)

	require.NoError(t, r.DrawFrame(&metadata.RenderPacket{}))
	assert.Same(t, fb.pipelines[0], fb.boundPipeline)
}

func TestCreateGeometryRejectsEmpty(t *testing.T) {
	r, fb := newInitialized(t)
	assert.Error(t, r.CreateGeometry(metadata.NewGeometry(metadata.GeometryConfig{Name: "empty"})))
	assert.Empty(t, fb.calls)
}

func TestShutdownDestroysPipeline(t *testing.T) {
	r, fb := newInitialized(t)
	require.NoError(t, r.Shutdown())
	assert.Len(t, fb.destroyed, 1)
	assert.Equal(t, []string{"shutdown"}, fb.calls)
}
