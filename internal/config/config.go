// Package config holds the engine settings read from a TOML file.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/rotisserie/eris"
)

type Window struct {
	Width     int32  `toml:"width"`
	Height    int32  `toml:"height"`
	Title     string `toml:"title"`
	TargetFPS int32  `toml:"target_fps"`
}

type Sim struct {
	// FixedStep is the physics tick in seconds. 0 steps once per frame
	// with the frame time.
	FixedStep float32 `toml:"fixed_step"`
	// MaxSteps caps the ticks run in one frame after a stall.
	MaxSteps         int  `toml:"max_steps"`
	GJKMaxIterations int  `toml:"gjk_max_iterations"`
	Collisions       bool `toml:"collisions"`
}

type Scene struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
	// FlyCamera attaches a fly controller to the main camera.
	FlyCamera bool `toml:"fly_camera"`
}

type Render struct {
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
}

type Debug struct {
	Overlay    bool `toml:"overlay"`
	DumpOnExit bool `toml:"dump_on_exit"`
}

type Config struct {
	Window Window `toml:"window"`
	Sim    Sim    `toml:"sim"`
	Scene  Scene  `toml:"scene"`
	Render Render `toml:"render"`
	Debug  Debug  `toml:"debug"`
}

func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "aspect3d", TargetFPS: 60},
		Sim:    Sim{FixedStep: 1.0 / 120, MaxSteps: 8, Collisions: true},
		Scene:  Scene{Path: "assets/scenes/demo.yaml", FlyCamera: true},
		Render: Render{
			VertexShader:   "assets/shaders/lighting.vs",
			FragmentShader: "assets/shaders/lighting.fs",
		},
		Debug: Debug{Overlay: true},
	}
}

// Load reads path over the defaults. A missing file yields the defaults; a
// malformed or invalid one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, eris.Wrap(err, "read config")
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, eris.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, eris.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return eris.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Sim.FixedStep < 0 {
		return eris.Errorf("negative sim.fixed_step %g", c.Sim.FixedStep)
	}
	if c.Sim.FixedStep > 0 && c.Sim.MaxSteps <= 0 {
		return eris.New("sim.max_steps must be positive with a fixed step")
	}
	if c.Sim.GJKMaxIterations < 0 {
		return eris.Errorf("negative sim.gjk_max_iterations %d", c.Sim.GJKMaxIterations)
	}
	return nil
}

// Save writes c as TOML.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "encode config")
	}
	return eris.Wrap(os.WriteFile(path, data, 0o644), "write config")
}
