package resource

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rotisserie/eris"
)

// Models caches raylib models by file path. A window must be open.
type Models struct {
	*Cache[rl.Model]
}

func NewModels() *Models {
	return &Models{Cache: NewCache(rl.UnloadModel)}
}

// Load loads path once and shares the result.
func (m *Models) Load(path string) (Handle, error) {
	return m.Cache.Load(path, loadModelFile)
}

func loadModelFile(path string) (rl.Model, error) {
	if _, err := os.Stat(path); err != nil {
		return rl.Model{}, eris.Wrap(err, "stat model")
	}
	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		return rl.Model{}, eris.Errorf("model %s has no meshes", path)
	}
	return model, nil
}
