package render

import (
	"fmt"
	"log"
	"os"

	"aspect3d/internal/components"
	"aspect3d/internal/resource"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type queuedText struct {
	text *components.Text
	at   rl.Vector3
}

// Raylib draws bodies as raylib models. Primitive meshes are generated on
// first use; model bodies are loaded from disk through the model cache. It
// needs an open window.
type Raylib struct {
	Shader    rl.Shader
	hasShader bool

	primitives *resource.Cache[rl.Model]
	prims      map[components.MeshType]resource.Handle
	models     *resource.Models
	handles    map[string]resource.Handle
	failed     map[string]bool

	camera rl.Camera3D
	texts  []queuedText
}

// NewRaylib loads the lighting shader from vsPath and fsPath when both
// exist; without it bodies are drawn flat.
func NewRaylib(models *resource.Models, vsPath, fsPath string) *Raylib {
	r := &Raylib{
		primitives: resource.NewCache(rl.UnloadModel),
		prims:      map[components.MeshType]resource.Handle{},
		models:     models,
		handles:    map[string]resource.Handle{},
		failed:     map[string]bool{},
	}
	if fileExists(vsPath) && fileExists(fsPath) {
		r.Shader = rl.LoadShader(vsPath, fsPath)
		r.hasShader = true
	} else if vsPath != "" || fsPath != "" {
		log.Printf("Render: shader %s / %s not found, drawing unlit", vsPath, fsPath)
	}
	return r
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func (r *Raylib) BeginFrame(v *View) {
	r.camera = v.Camera
	r.texts = r.texts[:0]
	if r.hasShader {
		r.setUniforms(v)
	}
	rl.BeginMode3D(v.Camera)
}

func (r *Raylib) setUniforms(v *View) {
	set := func(name string, value []float32, kind rl.ShaderUniformDataType) {
		rl.SetShaderValue(r.Shader, rl.GetShaderLocation(r.Shader, name), value, kind)
	}
	p := v.Camera.Position
	set("viewPos", []float32{p.X, p.Y, p.Z}, rl.ShaderUniformVec3)
	for _, l := range v.Directional {
		set("lightDir", []float32{l.Direction.X, l.Direction.Y, l.Direction.Z}, rl.ShaderUniformVec3)
		set("lightColor", l.Color, rl.ShaderUniformVec4)
		set("ambient", l.Ambient, rl.ShaderUniformVec4)
	}
	set("pointLightCount", []float32{float32(len(v.Points))}, rl.ShaderUniformFloat)
	for i, l := range v.Points {
		set(fmt.Sprintf("pointLights[%d].position", i), []float32{l.Position.X, l.Position.Y, l.Position.Z}, rl.ShaderUniformVec3)
		set(fmt.Sprintf("pointLights[%d].color", i), l.Color, rl.ShaderUniformVec4)
		set(fmt.Sprintf("pointLights[%d].radius", i), []float32{l.Radius * l.Intensity}, rl.ShaderUniformFloat)
	}
}

// RenderBody draws body with transform. The view-projection is already
// bound through the camera given to BeginFrame.
func (r *Raylib) RenderBody(_ rl.Matrix, body *components.Body, transform rl.Matrix) {
	model, ok := r.model(body)
	if !ok {
		return
	}
	s := body.Size
	model.Transform = rl.MatrixMultiply(rl.MatrixScale(s.X, s.Y, s.Z), transform)
	if r.hasShader {
		model.Materials.Shader = r.Shader
	}
	rl.DrawModel(*model, rl.Vector3Zero(), 1.0, body.Color)
}

func (r *Raylib) model(body *components.Body) (*rl.Model, bool) {
	if body.Mesh != components.MeshModel {
		h, ok := r.prims[body.Mesh]
		if !ok {
			var err error
			h, err = r.primitives.Load(body.Mesh.String(), func(string) (rl.Model, error) {
				return rl.LoadModelFromMesh(primitiveMesh(body.Mesh)), nil
			})
			if err != nil {
				return nil, false
			}
			r.prims[body.Mesh] = h
		}
		return r.primitives.MustResolve(h), true
	}

	if r.failed[body.Model] {
		return nil, false
	}
	h, ok := r.handles[body.Model]
	if !ok {
		var err error
		h, err = r.models.Load(body.Model)
		if err != nil {
			log.Printf("Render: %v", err)
			r.failed[body.Model] = true
			return nil, false
		}
		r.handles[body.Model] = h
	}
	return r.models.MustResolve(h), true
}

// Unit-sized meshes; Body.Size scales them.
func primitiveMesh(t components.MeshType) rl.Mesh {
	switch t {
	case components.MeshSphere:
		return rl.GenMeshSphere(0.5, 16, 16)
	case components.MeshPlane:
		return rl.GenMeshPlane(1, 1, 1, 1)
	}
	return rl.GenMeshCube(1, 1, 1)
}

// RenderText queues a label; labels are drawn in screen space after the 3D
// pass.
func (r *Raylib) RenderText(text *components.Text, at rl.Vector3) {
	r.texts = append(r.texts, queuedText{text: text, at: at})
}

func (r *Raylib) EndFrame() {
	rl.EndMode3D()
	for _, q := range r.texts {
		p := rl.GetWorldToScreen(q.at, r.camera)
		width := rl.MeasureText(q.text.Value, q.text.FontSize)
		rl.DrawText(q.text.Value, int32(p.X)-width/2, int32(p.Y), q.text.FontSize, q.text.Color)
	}
}

// Unload frees the shader and drops this renderer's references to loaded
// models.
func (r *Raylib) Unload() {
	if r.hasShader {
		rl.UnloadShader(r.Shader)
	}
	r.primitives.Clear()
	r.prims = map[components.MeshType]resource.Handle{}
	for _, h := range r.handles {
		r.models.Release(h)
	}
	r.handles = map[string]resource.Handle{}
}
