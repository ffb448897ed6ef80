// Package components defines the engine's aspect types, registers them with
// a World and reads them from scene dictionaries.
package components

import (
	"aspect3d/internal/engine"
)

// Register adds every aspect type to w. Body uses a flat store; the rest
// use the default indirected store.
func Register(w *engine.World) {
	engine.Register(w, "Transform", engine.Hooks[Transform]{Init: initTransform, Serialize: serializeTransform, Capacity: 256})
	w.RegisterManager("Body", engine.NewFlatStore(engine.Hooks[Body]{Init: initBody, Serialize: serializeBody}, 64))
	engine.Register(w, "RigidBody", engine.Hooks[RigidBody]{Serialize: serializeRigidBody, Capacity: 128})
	engine.Register(w, "Logic", engine.Hooks[Logic]{Serialize: serializeLogic, Clone: cloneLogic})
	engine.Register(w, "Input", engine.Hooks[Input]{Serialize: serializeInput, Clone: cloneInput})
	engine.Register(w, "Camera", engine.Hooks[Camera]{Init: initCamera, Serialize: serializeCamera})
	engine.Register(w, "DirectionalLight", engine.Hooks[DirectionalLight]{Init: initDirectionalLight, Serialize: serializeDirectionalLight})
	engine.Register(w, "PointLight", engine.Hooks[PointLight]{Init: initPointLight, Serialize: serializePointLight})
	engine.Register(w, "Text", engine.Hooks[Text]{Init: initText, Serialize: serializeText})
}
