package scene

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"aspect3d/internal/components"
	"aspect3d/internal/dd"
	"aspect3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demo = `
entities:
  _crate:
    body: {mesh: cube, color: Orange, size: [1, 1, 1]}
    rigid_body: {mass: 2, shape: {box: [0.5, 0.5, 0.5]}}
  floor:
    transform: {position: [0, -1, 0], scale: [20, 1, 20]}
    body: {mesh: plane}
  crate_1:
    inherit: _crate
    parent: floor
    transform: {position: [0, 2, 0]}
  spinner:
    transform: {position: [3, 0, 0]}
    logic: {behaviour: Rotator, speed: 45}
  eye:
    transform: {position: [0, 2, 10]}
    camera: {fov: 60}
`

func newWorld() *engine.World {
	w := engine.NewWorld()
	components.Register(w)
	return w
}

func build(t *testing.T, w *engine.World, src string) (*Scene, error) {
	t.Helper()
	d, err := dd.Parse("test", []byte(src))
	require.NoError(t, err)
	return Build(w, d, components.DefaultBehaviours())
}

func TestBuildScene(t *testing.T) {
	w := newWorld()
	s, err := build(t, w, demo)
	require.NoError(t, err)

	assert.Equal(t, []string{"floor", "crate_1", "spinner", "eye"}, s.Names, "templates are skipped")
	assert.Equal(t, 4, w.EntityCount())

	crate, ok := s.Entity("crate_1")
	require.True(t, ok)
	body := engine.MustGet[components.Body](w, crate)
	assert.Equal(t, components.MeshCube, body.Mesh)
	assert.Equal(t, rl.Orange, body.Color)
	rb := engine.MustGet[components.RigidBody](w, crate)
	assert.Equal(t, float32(2), rb.Mass)

	// parented to the floor
	tr := engine.MustGet[components.Transform](w, crate)
	require.True(t, tr.Parent.Valid())
	assert.Equal(t, s.Entities["floor"], tr.Parent.Entity)

	logic := engine.MustGet[components.Logic](w, s.Entities["spinner"])
	assert.Equal(t, "Rotator", logic.Behaviour)
	assert.NotNil(t, logic.Update)

	cam := engine.MustGet[components.Camera](w, s.Entities["eye"])
	assert.Equal(t, float32(60), cam.FOV)
}

func TestBuildEveryEntityHasTransform(t *testing.T) {
	w := newWorld()
	s, err := build(t, w, "entities:\n  empty: {}\n")
	require.NoError(t, err)
	tr := engine.MustGet[components.Transform](w, s.Entities["empty"])
	assert.Equal(t, rl.Vector3{X: 1, Y: 1, Z: 1}, tr.Scale)
}

func TestBuildErrorsLeaveNothing(t *testing.T) {
	cases := map[string]string{
		"missing entities":  "things: {}\n",
		"unknown aspect":    "entities:\n  a: {wings: {span: 2}}\n",
		"scalar aspect":     "entities:\n  a: {body: cube}\n",
		"missing mesh":      "entities:\n  ok: {}\n  a: {body: {color: Red}}\n",
		"unknown parent":    "entities:\n  a: {parent: nobody}\n",
		"parent cycle":      "entities:\n  a: {parent: b}\n  b: {parent: a}\n",
		"own parent":        "entities:\n  a: {parent: a}\n",
		"unknown behaviour": "entities:\n  a: {logic: {behaviour: Dance}}\n",
		"scalar copies":     "entities:\n  a: {copies: 3}\n",
		"zero copies":       "entities:\n  b: {copies: {count: 2}}\n  a: {copies: {count: 0}}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			w := newWorld()
			_, err := build(t, w, src)
			require.Error(t, err)
			assert.Equal(t, 0, w.EntityCount())
		})
	}
}

const orbiters = `
entities:
  hub:
    transform: {position: [0, 5, 0]}
  moon:
    parent: hub
    transform: {position: [1, 0, 0]}
    logic: {behaviour: Orbiter, radius: 2, speed: 0}
    copies: {count: 3, step: [10, 0, 0]}
`

func TestBuildCopies(t *testing.T) {
	w := newWorld()
	s, err := build(t, w, orbiters)
	require.NoError(t, err)
	assert.Equal(t, []string{"hub", "moon", "moon#1", "moon#2"}, s.Names)
	assert.Equal(t, 4, w.EntityCount())

	for i, name := range []string{"moon", "moon#1", "moon#2"} {
		tr := engine.MustGet[components.Transform](w, s.Entities[name])
		assert.Equal(t, float32(1+10*i), tr.Position.X, name)
		assert.Equal(t, s.Entities["hub"], tr.Parent.Entity, "%s shares the parent", name)
		assert.InDelta(t, 5, tr.WorldPosition(w).Y, 1e-4, name)
	}

	// each copy orbits its own starting point
	components.RunLogic(w, 0.1)
	for i, name := range []string{"moon", "moon#1", "moon#2"} {
		tr := engine.MustGet[components.Transform](w, s.Entities[name])
		assert.InDelta(t, float32(3+10*i), tr.Position.X, 1e-4, name)
	}

	Unload(w, s)
	assert.Equal(t, 0, w.EntityCount())
}

func TestBuildErrorNamesEntity(t *testing.T) {
	_, err := build(t, newWorld(), "entities:\n  barrel: {body: {color: Red}}\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `entity "barrel"`)
	assert.Contains(t, err.Error(), "mesh")
}

func writeScene(t *testing.T, path, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
}

func TestLoadAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	writeScene(t, path, demo)

	w := newWorld()
	reg := components.DefaultBehaviours()
	s, err := Load(w, path, reg)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path)
	oldFloor := s.Entities["floor"]

	writeScene(t, path, "entities:\n  floor: {body: {mesh: plane}}\n")
	next, err := Reload(w, s, reg)
	require.NoError(t, err)
	assert.Equal(t, 1, w.EntityCount())
	assert.False(t, w.Alive(oldFloor))
	assert.True(t, w.Alive(next.Entities["floor"]))

	// a broken file keeps the live scene
	writeScene(t, path, "entities:\n  floor: {body: {mesh: teapot}}\n")
	_, err = Reload(w, next, reg)
	require.Error(t, err)
	assert.True(t, w.Alive(next.Entities["floor"]))
	assert.Equal(t, 1, w.EntityCount())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(newWorld(), filepath.Join(t.TempDir(), "nope.yaml"), components.DefaultBehaviours())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load scene")
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	writeScene(t, path, demo)

	w := newWorld()
	reg := components.DefaultBehaviours()
	s, err := Load(w, path, reg)
	require.NoError(t, err)

	watcher, err := Watch(path)
	require.NoError(t, err)
	defer watcher.Close()

	var reloaded *Scene
	watcher.OnReload.AddListener(func(next *Scene) { reloaded = next })

	assert.Same(t, s, watcher.Poll(w, s, reg), "no change yet")

	writeScene(t, path, "entities:\n  solo: {}\n")
	require.Eventually(t, func() bool { return len(watcher.Changed()) > 0 }, 5*time.Second, 10*time.Millisecond)

	next := watcher.Poll(w, s, reg)
	require.NotSame(t, s, next)
	assert.Same(t, next, reloaded)
	assert.Equal(t, []string{"solo"}, next.Names)
	assert.Equal(t, 1, w.EntityCount())
}
