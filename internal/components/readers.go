package components

import (
	"aspect3d/internal/dd"
	"aspect3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rotisserie/eris"
)

// The readers fill an aspect from a scene dictionary. A missing or
// wrong-typed required key fails the read; optional keys keep the aspect's
// initialised value.

// ReadTransform requires "position". A "rotation" list of three column
// vectors puts the transform in matrix mode; otherwise "euler" applies.
func ReadTransform(d *dd.Dict, t *Transform) error {
	if err := d.Require("position", dd.KindVec3, &t.Position); err != nil {
		return err
	}
	t.Scale = d.Vec3("scale", t.Scale)
	t.Center = d.Vec3("center", t.Center)

	if d.Has("rotation") {
		var cols []any
		if err := d.Require("rotation", dd.KindList, &cols); err != nil {
			return err
		}
		if len(cols) != 3 {
			return eris.Errorf("%s: rotation needs 3 columns, got %d", d.Name(), len(cols))
		}
		var m geom.Mat3
		for i, c := range cols {
			v, ok := dd.AsVec3(c)
			if !ok {
				return eris.Errorf("%s: rotation column %d is not a vec3", d.Name(), i)
			}
			m[i] = v
		}
		t.UseMatrix()
		t.SetRotationMatrix(m)
		return nil
	}
	t.UseEuler(d.Vec3("euler", t.Euler))
	return nil
}

// ReadBody requires "mesh"; a model mesh also requires "model".
func ReadBody(d *dd.Dict, b *Body) error {
	var mesh string
	if err := d.Require("mesh", dd.KindString, &mesh); err != nil {
		return err
	}
	mt, ok := ParseMeshType(mesh)
	if !ok {
		return eris.Errorf("%s: unknown mesh %q", d.Name(), mesh)
	}
	b.Mesh = mt
	if mt == MeshModel {
		if err := d.Require("model", dd.KindString, &b.Model); err != nil {
			return err
		}
	}
	b.Color = d.Color("color", b.Color)
	b.Size = d.Vec3("size", b.Size)
	b.Hidden = d.Bool("hidden", b.Hidden)
	return nil
}

// ReadRigidBody requires "mass" (0 for immovable) and a "shape" dictionary:
// either {box: [hx, hy, hz]} or {points: [[x, y, z], ...]}.
func ReadRigidBody(d *dd.Dict, rb *RigidBody) error {
	var mass float32
	if err := d.Require("mass", dd.KindFloat, &mass); err != nil {
		return err
	}
	rb.SetMass(mass)

	var shape *dd.Dict
	if err := d.Require("shape", dd.KindDict, &shape); err != nil {
		return err
	}
	switch {
	case shape.Has("box"):
		var half rl.Vector3
		if err := shape.Require("box", dd.KindVec3, &half); err != nil {
			return err
		}
		rb.Shape = geom.Box(half)
		rb.SetBoxInertia(half)
	case shape.Has("points"):
		var raw []any
		if err := shape.Require("points", dd.KindList, &raw); err != nil {
			return err
		}
		if len(raw) == 0 {
			return eris.Errorf("%s: empty point cloud", shape.Name())
		}
		pts := make([]rl.Vector3, len(raw))
		for i, p := range raw {
			v, ok := dd.AsVec3(p)
			if !ok {
				return eris.Errorf("%s: point %d is not a vec3", shape.Name(), i)
			}
			pts[i] = v
		}
		poly := geom.Polytope{Points: pts}
		rb.Shape = poly
		rb.SetBoxInertia(rl.Vector3Scale(poly.Bounds().Size(), 0.5))
	default:
		return eris.Errorf("%s: shape needs box or points", shape.Name())
	}

	rb.SetVelocity(d.Vec3("velocity", rl.Vector3Zero()))
	rb.AngularVelocity = d.Vec3("angular_velocity", rb.AngularVelocity)
	rb.CenterOfMass = d.Vec3("center_of_mass", rb.CenterOfMass)
	return nil
}

func ReadCamera(d *dd.Dict, c *Camera) error {
	c.FOV = d.Float("fov", c.FOV)
	c.Near = d.Float("near", c.Near)
	c.Far = d.Float("far", c.Far)
	c.IsMain = d.Bool("main", c.IsMain)
	if d.Bool("orthographic", false) {
		c.Projection = rl.CameraOrthographic
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return eris.Errorf("%s: bad clip range %g..%g", d.Name(), c.Near, c.Far)
	}
	return nil
}

func ReadDirectionalLight(d *dd.Dict, l *DirectionalLight) error {
	l.Color = d.Color("color", l.Color)
	l.Intensity = d.Float("intensity", l.Intensity)
	l.AmbientColor = d.Color("ambient", l.AmbientColor)
	return nil
}

func ReadPointLight(d *dd.Dict, l *PointLight) error {
	l.Color = d.Color("color", l.Color)
	l.Intensity = d.Float("intensity", l.Intensity)
	l.Radius = d.Float("radius", l.Radius)
	return nil
}

// ReadText requires "value".
func ReadText(d *dd.Dict, t *Text) error {
	if err := d.Require("value", dd.KindString, &t.Value); err != nil {
		return err
	}
	t.FontSize = int32(d.Int("font_size", int(t.FontSize)))
	t.Color = d.Color("color", t.Color)
	return nil
}

// ReadLogic requires "behaviour" and builds it from reg. The remaining keys
// are the behaviour's properties.
func ReadLogic(d *dd.Dict, reg *Behaviours, l *Logic) error {
	if err := d.Require("behaviour", dd.KindString, &l.Behaviour); err != nil {
		return err
	}
	name := l.Behaviour
	rebuild := func() (UpdateFunc, error) { return reg.Build(name, d) }
	fn, err := rebuild()
	if err != nil {
		return eris.Wrapf(err, "%s", d.Name())
	}
	l.Update, l.rebuild = fn, rebuild
	l.Props = map[string]any{}
	for _, k := range d.Keys() {
		if k == "behaviour" {
			continue
		}
		v, _ := d.Value(k)
		l.Props[k] = v
	}
	return nil
}
