// Package triangle is the hello-triangle application: one static triangle
// on a solid clear color.
package triangle

import (
	"fmt"

	"github.com/spaghettifunk/hellotriangle/engine"
	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/math"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/metadata"
)

// TriangleVertices are three x, y, z positions in normalized device
// coordinates with Y up.
var TriangleVertices = [9]float32{
	0.0, 0.5, 0.0,
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
}

// ClearColor is the green the drawable is cleared to each frame.
var ClearColor = math.NewVec4(0.0, 104.0/255.0, 55.0/255.0, 1.0)

const geometryName = "triangle"

type TriangleGame struct {
	*engine.Game
}

type gameState struct {
	geometry *metadata.Geometry
	width    uint32
	height   uint32
	frames   uint64
}

func NewTriangleGame(appConfig *engine.ApplicationConfig) *TriangleGame {
	tg := &TriangleGame{
		Game: &engine.Game{
			ApplicationConfig: appConfig,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TriangleGame) state() *gameState {
	return g.State.(*gameState)
}

// Geometry is the uploaded triangle, nil before Initialize.
func (g *TriangleGame) Geometry() *metadata.Geometry {
	return g.state().geometry
}

// Initialize uploads the triangle vertices once.
func (g *TriangleGame) Initialize() error {
	core.LogInfo("Initializing %s...", g.ApplicationConfig.Name)
	if g.Renderer == nil {
		return fmt.Errorf("triangle: %w", core.ErrNotInitialized)
	}

	geometry := metadata.NewGeometry(metadata.GeometryConfig{
		Name:     geometryName,
		Vertices: metadata.VerticesFromFloats(TriangleVertices[:]),
	})
	if err := g.Renderer.CreateGeometry(geometry); err != nil {
		return err
	}
	g.state().geometry = geometry
	return nil
}

func (g *TriangleGame) Update(deltaTime float64) error {
	g.state().frames++
	return nil
}

// Render asks for the triangle on the clear color. The scene never changes.
func (g *TriangleGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	st := g.state()
	if st.geometry == nil {
		return fmt.Errorf("triangle: render before initialize: %w", core.ErrNotInitialized)
	}
	packet.ClearColor = ClearColor
	packet.Geometries = append(packet.Geometries, metadata.GeometryRenderData{Geometry: st.geometry})
	return nil
}

func (g *TriangleGame) OnResize(width uint32, height uint32) error {
	st := g.state()
	st.width = width
	st.height = height
	return nil
}

func (g *TriangleGame) Shutdown() error {
	st := g.state()
	if st.geometry != nil && g.Renderer != nil {
		g.Renderer.DestroyGeometry(st.geometry)
		st.geometry = nil
	}
	core.LogInfo("%s drew %d frames.", g.ApplicationConfig.Name, st.frames)
	return nil
}
