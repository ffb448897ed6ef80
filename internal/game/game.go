// Package game owns the window and the frame loop: input, Logic, physics,
// then rendering, with an optional raygui debug overlay.
package game

import (
	"fmt"
	"log"
	"os"
	"time"

	"aspect3d/internal/components"
	"aspect3d/internal/config"
	"aspect3d/internal/engine"
	"aspect3d/internal/input"
	"aspect3d/internal/render"
	"aspect3d/internal/resource"
	"aspect3d/internal/scene"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rotisserie/eris"
)

type Game struct {
	Config     config.Config
	World      *engine.World
	Sim        *Sim
	Behaviours *components.Behaviours

	scene    *scene.Scene
	watcher  *scene.Watcher
	models   *resource.Models
	renderer *render.Raylib
	input    input.Source
	overlay  bool

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
	stats    render.Stats
	contacts int
}

func New(cfg config.Config) *Game {
	w := engine.NewWorld()
	components.Register(w)
	g := &Game{
		Config:     cfg,
		World:      w,
		Sim:        NewSim(w, cfg.Sim),
		Behaviours: components.DefaultBehaviours(),
		overlay:    cfg.Debug.Overlay,
	}
	g.Sim.OnContact.AddListener(func(Contact) { g.contacts++ })
	return g
}

// Run opens the window and loops until it is closed. Only scene and window
// set-up failures are returned; broken invariants panic with
// *engine.FatalError.
func (g *Game) Run() error {
	win := g.Config.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(win.TargetFPS)
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)

	g.models = resource.NewModels()
	defer g.models.Clear()
	g.renderer = render.NewRaylib(g.models, g.Config.Render.VertexShader, g.Config.Render.FragmentShader)
	defer g.renderer.Unload()
	g.input = input.NewRaylib()

	if err := g.loadScene(); err != nil {
		return err
	}
	defer g.shutdown()

	log.Printf("Game: running %s with %d entities", g.scene.Path, g.World.EntityCount())
	for !rl.WindowShouldClose() {
		g.Update(rl.GetFrameTime())
		g.Draw()
	}
	return nil
}

func (g *Game) loadScene() error {
	s, err := scene.Load(g.World, g.Config.Scene.Path, g.Behaviours)
	if err != nil {
		return err
	}
	g.scene = s
	g.attachFlyCamera()

	if g.Config.Scene.Watch {
		g.watcher, err = scene.Watch(s.Path)
		if err != nil {
			return eris.Wrap(err, "scene hot reload")
		}
		g.watcher.OnReload.AddListener(func(*scene.Scene) { g.attachFlyCamera() })
	}
	return nil
}

func (g *Game) attachFlyCamera() {
	if !g.Config.Scene.FlyCamera {
		return
	}
	id, ok := render.MainCamera(g.World)
	if !ok {
		return
	}
	if _, has := engine.TrySibling[components.Logic](g.World, id); has {
		return
	}
	input.NewFlyCamera().Attach(g.World, id.Entity)
}

func (g *Game) shutdown() {
	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.Config.Debug.DumpOnExit {
		if err := g.World.Dump(os.Stdout); err != nil {
			log.Printf("Game: dump failed: %v", err)
		}
	}
	g.World.Close()
}

func (g *Game) Update(dt float32) {
	start := time.Now()

	if g.watcher != nil {
		g.scene = g.watcher.Poll(g.World, g.scene, g.Behaviours)
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.overlay = !g.overlay
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.Sim.Paused = !g.Sim.Paused
	}

	input.Dispatch(g.World, g.input.Poll())
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !g.overUI() {
		g.poke()
	}
	g.contacts = 0
	g.Sim.Update(dt)

	g.updateMs = float64(time.Since(start).Microseconds()) / 1000.0
}

// poke pushes the body under the mouse cursor away from the camera.
func (g *Game) poke() {
	id, ok := render.MainCamera(g.World)
	if !ok {
		return
	}
	cam := engine.Resolve[components.Camera](g.World, id)
	view := cam.Raylib(g.World, engine.Sibling[components.Transform](g.World, id))
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), view)
	if hit, ok := g.Sim.Poke(ray.Position, ray.Direction, pokeStrength); ok {
		log.Printf("Game: poked %s at %.2f", hit.Body, hit.Distance)
	}
}

const pokeStrength = 5

func (g *Game) overUI() bool {
	return g.overlay && rl.CheckCollisionPointRec(rl.GetMousePosition(), overlayRect)
}

var overlayRect = rl.Rectangle{X: 10, Y: 10, Width: 260, Height: 190}

func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	start := time.Now()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	stats, ok := render.Frame(g.World, g.renderer, aspect)
	g.stats = stats
	g.drawMs = float64(time.Since(start).Microseconds()) / 1000.0
	if !ok {
		rl.DrawText("no camera in scene", 10, 10, 20, rl.Red)
	}

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	rl.DrawFPS(10, int32(rl.GetScreenHeight())-30)
	if !g.overlay {
		return
	}

	rl.DrawRectangleRec(overlayRect, rl.Fade(rl.Black, 0.6))
	rl.DrawText("WASD/QE move, right drag to look", 20, 20, 10, rl.LightGray)
	rl.DrawText("Click to push, F1 overlay, P pause", 20, 34, 10, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Entities: %d", g.World.EntityCount()), 20, 52, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Drawn %d, culled %d, lights %d", g.stats.Bodies, g.stats.Culled, g.stats.Lights), 20, 70, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Contacts: %d", g.contacts), 20, 88, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Update %.2f ms, draw %.2f ms", g.updateMs, g.drawMs), 20, 106, 16, rl.Lime)

	g.Sim.Paused = gui.CheckBox(rl.Rectangle{X: 20, Y: 128, Width: 16, Height: 16}, "Paused", g.Sim.Paused)
	g.Sim.TimeScale = gui.Slider(rl.Rectangle{X: 90, Y: 150, Width: 120, Height: 16}, "Time scale",
		fmt.Sprintf("%.2f", g.Sim.TimeScale), g.Sim.TimeScale, 0, 2)
	if gui.Button(rl.Rectangle{X: 20, Y: 172, Width: 100, Height: 20}, "Dump world") {
		if err := g.World.Dump(os.Stdout); err != nil {
			log.Printf("Game: dump failed: %v", err)
		}
	}
}
