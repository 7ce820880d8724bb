package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/hellotriangle/engine/assets"
	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/platform"
	"github.com/spaghettifunk/hellotriangle/engine/renderer"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/metadata"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/shaders"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/vulkan"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine has released every resource
	EngineStageShutdown
)

// How long a suspended (minimized) loop waits between polls.
const suspendedPollInterval = 50 * time.Millisecond

// Window is the platform surface the engine runs in.
type Window interface {
	vulkan.SurfaceProvider
	Startup(applicationName string, x, y, width, height uint32) error
	Shutdown() error
	PumpMessages() bool
	GetFramebufferSize() (uint32, uint32)
	Sleep(d time.Duration)
}

type eventRegistration struct {
	code core.SystemEventCode
	id   uint64
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    atomic.Bool
	isSuspended  bool
	window       Window
	renderer     *renderer.Renderer
	assetManager *assets.AssetManager
	width        uint32
	height       uint32
	clock        *core.Clock
	metrics      *core.Metrics
	lastTime     float64
	events       []eventRegistration
}

// New builds an engine that renders g in a GLFW window through Vulkan.
func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, errors.New("game and its application config are required")
	}
	p := platform.New()
	backend := vulkan.New(p, vulkan.Options{
		Validation:        g.ApplicationConfig.Validation,
		VSync:             g.ApplicationConfig.VSync,
		MaxFramesInFlight: g.ApplicationConfig.MaxFramesInFlight,
	})
	return newEngine(g, p, backend), nil
}

func newEngine(g *Game, window Window, backend renderer.RendererBackend) *Engine {
	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		window:       window,
		renderer:     renderer.New(backend),
		assetManager: assets.NewAssetManager(g.ApplicationConfig.AssetsDir),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
	}
	e.isRunning.Store(true)
	return e
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine already initialized (stage %d)", e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	cfg := e.gameInstance.ApplicationConfig

	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	for _, r := range []struct {
		code core.SystemEventCode
		fn   core.FnOnEvent
	}{
		{core.EVENT_CODE_APPLICATION_QUIT, e.onEvent},
		{core.EVENT_CODE_KEY_PRESSED, e.onKey},
		{core.EVENT_CODE_KEY_RELEASED, e.onKey},
		{core.EVENT_CODE_RESIZED, e.onResized},
	} {
		id, err := core.EventRegister(r.code, r.fn)
		if err != nil {
			return err
		}
		e.events = append(e.events, eventRegistration{code: r.code, id: id})
	}

	if err := e.window.Startup(cfg.Name, cfg.StartPosX, cfg.StartPosY, cfg.StartWidth, cfg.StartHeight); err != nil {
		return err
	}
	// High-DPI displays report more pixels than the requested window size.
	e.width, e.height = e.window.GetFramebufferSize()

	if err := e.assetManager.Initialize(cfg.WatchAssets); err != nil {
		return err
	}
	core.LogDebug("Indexed %d asset(s) under '%s'.", len(e.assetManager.Assets()), cfg.AssetsDir)

	source, err := e.assetManager.ShaderSource(assets.BasicShaderName)
	if err != nil {
		return err
	}
	shader := metadata.ShaderConfig{
		Name:               assets.BasicShaderName,
		Source:             source,
		VertexEntryPoint:   shaders.VertexEntryPoint,
		FragmentEntryPoint: shaders.FragmentEntryPoint,
	}
	if err := e.renderer.Initialize(cfg.Name, e.width, e.height, shader); err != nil {
		return err
	}

	e.gameInstance.Renderer = e.renderer
	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}
	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// RequestQuit stops the run loop before the next frame. It may be called
// from any goroutine.
func (e *Engine) RequestQuit() {
	e.isRunning.Store(false)
}

// Run draws one frame per display refresh until the window closes or a quit
// is requested. A frame error stops the loop and is returned.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var runningTime float64

	for e.isRunning.Load() {
		if !e.window.PumpMessages() {
			e.isRunning.Store(false)
			break
		}

		e.processReloads()

		if e.isSuspended {
			e.window.Sleep(suspendedPollInterval)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			return fmt.Errorf("game update: %w", err)
		}

		packet := &metadata.RenderPacket{DeltaTime: delta}
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			return fmt.Errorf("game render: %w", err)
		}

		if err := e.renderer.DrawFrame(packet); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		e.metrics.Update(delta)
		runningTime += delta
		if runningTime >= 1.0 {
			fps, frameTime := e.metrics.Frame()
			core.LogDebug("FPS: %.1f, frame time: %.3fms", fps, frameTime)
			runningTime = 0
		}

		e.lastTime = currentTime
	}
	return nil
}

// processReloads rebuilds the pipeline for shader files that changed on
// disk. A failed reload keeps the current pipeline.
func (e *Engine) processReloads() {
	for _, path := range e.assetManager.Reloads() {
		name, ok := e.assetManager.OverriddenShader(path)
		if !ok || name != assets.BasicShaderName {
			continue
		}
		source, err := e.assetManager.ShaderSource(name)
		if err != nil {
			core.LogError("Shader reload of %s failed: %s", path, err)
			continue
		}
		if err := e.renderer.ReloadShader(source); err != nil {
			core.LogError("Shader reload of %s failed, keeping previous pipeline: %s", path, err)
			continue
		}
		core.LogInfo("Reloaded shader from %s.", path)
	}
}

// Shutdown releases everything Initialize created, in reverse order. It
// reports the first error but keeps going.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.clock.Stop()

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	errs = append(errs, e.renderer.Shutdown())
	errs = append(errs, e.assetManager.Close())

	for _, r := range e.events {
		core.EventUnregister(r.code, r.id)
	}
	e.events = nil
	if err := core.EventSystemShutdown(); err != nil && !errors.Is(err, core.ErrNotInitialized) {
		errs = append(errs, err)
	}

	errs = append(errs, e.window.Shutdown())
	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}

// GetFramebufferSize returns the width and height (in this order) of the
// application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	if context.Type == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED && ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		// Block anything else from processing this.
		return true
	}
	core.LogDebug("key %d event %d", ke.KeyCode, context.Type)
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width, height := se.WindowWidth, se.WindowHeight
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height
	core.LogDebug("Window resize: %d, %d", width, height)

	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError("%s", err)
	}

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError("%s", err)
	}
	return true
}
