package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unsafe"

	"github.com/spaghettifunk/hellotriangle/engine/config"
	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/metadata"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	width, height uint32
	frames        int
	pumped        int
	// onPump runs before each poll with the poll number, starting at 1.
	onPump   func(n int)
	started  bool
	shutdown bool
}

func (w *fakeWindow) GetInstanceProcAddress() unsafe.Pointer     { return nil }
func (w *fakeWindow) GetRequiredExtensionNames() []string        { return nil }
func (w *fakeWindow) CreateSurface(interface{}) (uintptr, error) { return 0, nil }
func (w *fakeWindow) GetFramebufferSize() (uint32, uint32)       { return w.width, w.height }
func (w *fakeWindow) Sleep(time.Duration)                        {}
func (w *fakeWindow) Startup(string, uint32, uint32, uint32, uint32) error {
	w.started = true
	return nil
}
func (w *fakeWindow) Shutdown() error { w.shutdown = true; return nil }

func (w *fakeWindow) PumpMessages() bool {
	w.pumped++
	if w.onPump != nil {
		w.onPump(w.pumped)
	}
	return w.pumped <= w.frames
}

type fakeBackend struct {
	begins, draws, ends int
	resized             [][2]uint32
	pipelines           int
	destroyedPipelines  int
	geometries          []*metadata.Geometry
	beginErr            error
	shutdown            bool
	lastPacket          *metadata.RenderPacket
}

func (f *fakeBackend) Initialize(string, uint32, uint32) error { return nil }
func (f *fakeBackend) Shutdown() error                         { f.shutdown = true; return nil }

func (f *fakeBackend) Resized(w, h uint32) error {
	f.resized = append(f.resized, [2]uint32{w, h})
	return nil
}

func (f *fakeBackend) BeginFrame(p *metadata.RenderPacket) error {
	f.begins++
	f.lastPacket = p
	return f.beginErr
}

func (f *fakeBackend) UsePipeline(*metadata.Pipeline) error { return nil }

func (f *fakeBackend) DrawGeometry(metadata.GeometryRenderData) error {
	f.draws++
	return nil
}

func (f *fakeBackend) EndFrame(float64) error {
	f.ends++
	return nil
}

func (f *fakeBackend) CreateGeometry(g *metadata.Geometry) error {
	f.geometries = append(f.geometries, g)
	return nil
}

func (f *fakeBackend) DestroyGeometry(*metadata.Geometry) {}

func (f *fakeBackend) CreatePipeline(*metadata.Pipeline, *shaders.Module) error {
	f.pipelines++
	return nil
}

func (f *fakeBackend) DestroyPipeline(*metadata.Pipeline) {
	f.destroyedPipelines++
}

type gameProbe struct {
	updates, renders, shutdowns int
	resizes                     [][2]uint32
	geometry                    *metadata.Geometry
}

func newTestGame(t *testing.T, assetsDir string, watch bool) (*Game, *gameProbe) {
	t.Helper()
	cfg := config.Default()
	cfg.Assets.Dir = assetsDir
	cfg.Assets.Watch = watch
	appConfig, err := NewApplicationConfig(cfg)
	require.NoError(t, err)

	probe := &gameProbe{}
	g := &Game{ApplicationConfig: appConfig}
	g.FnInitialize = func() error {
		probe.geometry = metadata.NewGeometry(metadata.GeometryConfig{
			Name:     "tri",
			Vertices: metadata.VerticesFromFloats([]float32{0, 0.5, 0, -0.5, -0.5, 0, 0.5, -0.5, 0}),
		})
		return g.Renderer.CreateGeometry(probe.geometry)
	}
	g.FnUpdate = func(float64) error { probe.updates++; return nil }
	g.FnRender = func(p *metadata.RenderPacket, _ float64) error {
		probe.renders++
		p.Geometries = append(p.Geometries, metadata.GeometryRenderData{Geometry: probe.geometry})
		return nil
	}
	g.FnOnResize = func(w, h uint32) error {
		probe.resizes = append(probe.resizes, [2]uint32{w, h})
		return nil
	}
	g.FnShutdown = func() error { probe.shutdowns++; return nil }
	return g, probe
}

func startEngine(t *testing.T, window *fakeWindow, backend *fakeBackend, assetsDir string, watch bool) (*Engine, *gameProbe) {
	t.Helper()
	g, probe := newTestGame(t, assetsDir, watch)
	e := newEngine(g, window, backend)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { _ = e.Shutdown() })
	return e, probe
}

func TestEngineLifecycle(t *testing.T) {
	window := &fakeWindow{width: 800, height: 600, frames: 3}
	backend := &fakeBackend{}
	e, probe := startEngine(t, window, backend, t.TempDir(), false)

	assert.True(t, window.started)
	assert.Equal(t, EngineStageInitialized, e.Stage())
	assert.Equal(t, 1, backend.pipelines)
	require.Len(t, backend.geometries, 1)
	assert.Equal(t, [][2]uint32{{800, 600}}, probe.resizes)

	require.NoError(t, e.Run())

	assert.Equal(t, 3, probe.updates)
	assert.Equal(t, 3, probe.renders)
	assert.Equal(t, 3, backend.begins)
	assert.Equal(t, 3, backend.draws)
	assert.Equal(t, 3, backend.ends)
	require.NotNil(t, backend.lastPacket)
	require.Len(t, backend.lastPacket.Geometries, 1)
	assert.Same(t, probe.geometry, backend.lastPacket.Geometries[0].Geometry)

	require.NoError(t, e.Shutdown())
	assert.Equal(t, EngineStageShutdown, e.Stage())
	assert.Equal(t, 1, probe.shutdowns)
	assert.True(t, backend.shutdown)
	assert.True(t, window.shutdown)
	assert.Equal(t, 1, backend.destroyedPipelines)

	// Idempotent.
	require.NoError(t, e.Shutdown())
	assert.Equal(t, 1, probe.shutdowns)
}

func TestEngineRunBeforeInitialize(t *testing.T) {
	g, _ := newTestGame(t, t.TempDir(), false)
	e := newEngine(g, &fakeWindow{}, &fakeBackend{})
	assert.ErrorIs(t, e.Run(), core.ErrNotInitialized)
}

func TestEngineEscapeQuits(t *testing.T) {
	window := &fakeWindow{width: 800, height: 600, frames: 100}
	backend := &fakeBackend{}
	window.onPump = func(n int) {
		if n == 2 {
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_ESCAPE}})
		}
	}
	e, _ := startEngine(t, window, backend, t.TempDir(), false)

	require.NoError(t, e.Run())
	// The frame polled alongside the quit still completes.
	assert.Equal(t, 2, backend.begins)
	assert.Equal(t, 2, window.pumped)
}

func TestEngineRequestQuitBeforeRun(t *testing.T) {
	window := &fakeWindow{width: 800, height: 600, frames: 100}
	backend := &fakeBackend{}
	e, _ := startEngine(t, window, backend, t.TempDir(), false)

	e.RequestQuit()
	require.NoError(t, e.Run())
	assert.Zero(t, backend.begins)
	assert.Zero(t, window.pumped)
}

func TestEngineSuspendsWhileMinimized(t *testing.T) {
	window := &fakeWindow{width: 800, height: 600, frames: 4}
	backend := &fakeBackend{}
	window.onPump = func(n int) {
		switch n {
		case 1:
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{WindowWidth: 0, WindowHeight: 0}})
		case 3:
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{WindowWidth: 1024, WindowHeight: 768}})
		}
	}
	e, probe := startEngine(t, window, backend, t.TempDir(), false)

	require.NoError(t, e.Run())
	// Polls 1 and 2 are minimized; 3 and 4 draw.
	assert.Equal(t, 2, backend.begins)
	assert.Equal(t, [][2]uint32{{0, 0}, {1024, 768}}, backend.resized)
	assert.Equal(t, [][2]uint32{{800, 600}, {1024, 768}}, probe.resizes)
	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(1024), w)
	assert.Equal(t, uint32(768), h)
}

func TestEngineSkipsFrameWithoutDrawable(t *testing.T) {
	window := &fakeWindow{width: 800, height: 600, frames: 2}
	backend := &fakeBackend{beginErr: core.ErrSwapchainBooting}
	e, probe := startEngine(t, window, backend, t.TempDir(), false)

	require.NoError(t, e.Run())
	assert.Equal(t, 2, probe.renders)
	assert.Equal(t, 2, backend.begins)
	assert.Zero(t, backend.ends)
}

func TestEngineFrameErrorStopsLoop(t *testing.T) {
	window := &fakeWindow{width: 800, height: 600, frames: 5}
	boom := errors.New("device lost")
	backend := &fakeBackend{beginErr: boom}
	e, _ := startEngine(t, window, backend, t.TempDir(), false)

	err := e.Run()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, backend.begins)
}

func TestEngineHotReloadsShader(t *testing.T) {
	dir := t.TempDir()
	shaderPath := filepath.Join(dir, "shaders", "basic.wgsl")
	require.NoError(t, os.MkdirAll(filepath.Dir(shaderPath), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "old"), 0o755))
	require.NoError(t, os.WriteFile(shaderPath, []byte(shaders.BasicSource()), 0o644))

	backend := &fakeBackend{}
	e, _ := startEngine(t, &fakeWindow{width: 800, height: 600}, backend, dir, true)
	require.Equal(t, 1, backend.pipelines)

	// A same-named shader outside the shaders directory is not the override.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old", "basic.wgsl"), []byte(shaders.BasicSource()), 0o644))
	time.Sleep(200 * time.Millisecond)
	e.processReloads()
	assert.Equal(t, 1, backend.pipelines)

	// A broken edit keeps the current pipeline.
	require.NoError(t, os.WriteFile(shaderPath, []byte("not wgsl"), 0o644))
	time.Sleep(200 * time.Millisecond)
	e.processReloads()
	assert.Equal(t, 1, backend.pipelines)
	assert.Zero(t, backend.destroyedPipelines)

	require.NoError(t, os.WriteFile(shaderPath, []byte(shaders.BasicSource()+"\n// edited\n"), 0o644))
	require.Eventually(t, func() bool {
		e.processReloads()
		return backend.pipelines >= 2
	}, 5*time.Second, 20*time.Millisecond)
	// Every successful reload replaces exactly one pipeline.
	assert.Equal(t, backend.pipelines-1, backend.destroyedPipelines)

	// Removing the override goes back to the embedded shader.
	time.Sleep(200 * time.Millisecond)
	e.processReloads()
	edited := backend.pipelines
	require.NoError(t, os.Remove(shaderPath))
	require.Eventually(t, func() bool {
		e.processReloads()
		return backend.pipelines > edited
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, backend.pipelines-1, backend.destroyedPipelines)
}

func TestNewApplicationConfigRejectsBadLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"
	_, err := NewApplicationConfig(cfg)
	assert.Error(t, err)
}
