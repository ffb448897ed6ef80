// Package scene builds entities from a data dictionary. A scene file looks
// like:
//
//	entities:
//	  _crate:
//	    body: {mesh: cube, color: Orange}
//	  crate_1:
//	    inherit: _crate
//	    transform: {position: [0, 1, 0]}
//	    rigid_body: {mass: 2, shape: {box: [0.5, 0.5, 0.5]}}
//
// Every entity gets a Transform. Names starting with an underscore are
// templates for inheritance and are not built.
//
// An entity with copies: {count: 4, step: [2, 0, 0]} is built once and
// then cloned until there are count of them, each step further along than
// the last. Clones are named crate_1#1, crate_1#2 and so on.
package scene

import (
	"fmt"
	"log"
	"strings"

	"aspect3d/internal/components"
	"aspect3d/internal/dd"
	"aspect3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rotisserie/eris"
)

// Scene is the set of entities one file produced.
type Scene struct {
	Path     string
	Names    []string
	Entities map[string]engine.EntityID
}

// Entity returns the entity built from the named dictionary.
func (s *Scene) Entity(name string) (engine.EntityID, bool) {
	e, ok := s.Entities[name]
	return e, ok
}

type aspectReader func(w *engine.World, e engine.EntityID, d *dd.Dict, reg *components.Behaviours) error

func reader[T any](read func(*dd.Dict, *T) error) aspectReader {
	return func(w *engine.World, e engine.EntityID, d *dd.Dict, _ *components.Behaviours) error {
		v, _ := engine.Add[T](w, e)
		return read(d, v)
	}
}

var readers = map[string]aspectReader{
	"body":              reader(components.ReadBody),
	"rigid_body":        reader(components.ReadRigidBody),
	"camera":            reader(components.ReadCamera),
	"directional_light": reader(components.ReadDirectionalLight),
	"point_light":       reader(components.ReadPointLight),
	"text":              reader(components.ReadText),
	"logic": func(w *engine.World, e engine.EntityID, d *dd.Dict, reg *components.Behaviours) error {
		l, _ := engine.Add[components.Logic](w, e)
		return components.ReadLogic(d, reg, l)
	},
}

// keys handled by the loader itself
var entityKeys = map[string]bool{"transform": true, "parent": true, "copies": true}

// Load reads path and builds it into w.
func Load(w *engine.World, path string, reg *components.Behaviours) (*Scene, error) {
	d, err := dd.Load(path)
	if err != nil {
		return nil, eris.Wrap(err, "load scene")
	}
	s, err := Build(w, d, reg)
	if err != nil {
		return nil, eris.Wrapf(err, "build scene %s", path)
	}
	s.Path = path
	log.Printf("Scene: loaded %d entities from %s", len(s.Names), path)
	return s, nil
}

// Build creates the entities described by d's "entities" dictionary. On
// error nothing it created is left in w.
func Build(w *engine.World, d *dd.Dict, reg *components.Behaviours) (*Scene, error) {
	entities, ok := d.Sub("entities")
	if !ok {
		return nil, eris.Errorf("%s: missing entities", d.Name())
	}

	s := &Scene{Entities: map[string]engine.EntityID{}}
	fail := func(err error) (*Scene, error) {
		Unload(w, s)
		return nil, err
	}

	var defs []dd.Entry
	for _, child := range entities.Children() {
		if strings.HasPrefix(child.Key, "_") {
			continue
		}
		if err := buildEntity(w, s, child, reg); err != nil {
			return fail(eris.Wrapf(err, "entity %q", child.Key))
		}
		defs = append(defs, child)
	}

	// parents may be declared after their children
	if err := linkParents(w, s, defs); err != nil {
		return fail(err)
	}
	for _, def := range defs {
		if err := buildCopies(w, s, def); err != nil {
			return fail(eris.Wrapf(err, "entity %q", def.Key))
		}
	}
	return s, nil
}

func buildEntity(w *engine.World, s *Scene, def dd.Entry, reg *components.Behaviours) error {
	e := w.NewEntity()
	s.Entities[def.Key] = e
	s.Names = append(s.Names, def.Key)

	t, _ := engine.Add[components.Transform](w, e)
	if td, ok := def.Dict.Sub("transform"); ok {
		if err := components.ReadTransform(td, t); err != nil {
			return err
		}
	}

	for _, key := range def.Dict.Keys() {
		if entityKeys[key] {
			continue
		}
		read, ok := readers[key]
		if !ok {
			return eris.Errorf("unknown aspect %q", key)
		}
		sub, ok := def.Dict.Sub(key)
		if !ok {
			return eris.Errorf("%q is not a dictionary", key)
		}
		if err := read(w, e, sub, reg); err != nil {
			return err
		}
	}
	return nil
}

func linkParents(w *engine.World, s *Scene, defs []dd.Entry) error {
	parents := map[string]string{}
	for _, def := range defs {
		if !def.Dict.Has("parent") {
			continue
		}
		var parent string
		if err := def.Dict.Require("parent", dd.KindString, &parent); err != nil {
			return err
		}
		if _, ok := s.Entities[parent]; !ok {
			return eris.Errorf("entity %q: unknown parent %q", def.Key, parent)
		}
		parents[def.Key] = parent
	}

	for child := range parents {
		seen := map[string]bool{child: true}
		for p, ok := parents[child]; ok; p, ok = parents[p] {
			if seen[p] {
				return eris.Errorf("entity %q: parent cycle through %q", child, p)
			}
			seen[p] = true
		}
	}

	transform, _ := engine.TypeOf[components.Transform](w)
	for child, parent := range parents {
		pid, _ := w.AspectOf(s.Entities[parent], transform)
		engine.MustGet[components.Transform](w, s.Entities[child]).Parent = pid
	}
	return nil
}

// buildCopies clones an already built and linked entity. Clones share the
// original's parent; its children are not copied.
func buildCopies(w *engine.World, s *Scene, def dd.Entry) error {
	if !def.Dict.Has("copies") {
		return nil
	}
	cd, ok := def.Dict.Sub("copies")
	if !ok {
		return eris.New("copies is not a dictionary")
	}
	var count int
	if err := cd.Require("count", dd.KindInt, &count); err != nil {
		return err
	}
	if count < 1 {
		return eris.Errorf("%s: count must be at least 1, got %d", cd.Name(), count)
	}
	step := cd.Vec3("step", rl.Vector3{})

	src := s.Entities[def.Key]
	for i := 1; i < count; i++ {
		e := w.CloneEntity(src)
		engine.MustGet[components.Transform](w, e).Move(rl.Vector3Scale(step, float32(i)))
		name := fmt.Sprintf("%s#%d", def.Key, i)
		s.Entities[name] = e
		s.Names = append(s.Names, name)
	}
	return nil
}

// Unload destroys every entity of s that is still alive.
func Unload(w *engine.World, s *Scene) {
	for _, name := range s.Names {
		if e := s.Entities[name]; w.Alive(e) {
			w.DestroyEntity(e)
		}
	}
}

// Reload builds the file at s.Path again. The old entities are only
// destroyed once the new ones built; on error s is left untouched.
func Reload(w *engine.World, s *Scene, reg *components.Behaviours) (*Scene, error) {
	next, err := Load(w, s.Path, reg)
	if err != nil {
		return nil, err
	}
	Unload(w, s)
	return next, nil
}
