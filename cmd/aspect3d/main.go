package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"aspect3d/internal/config"
	"aspect3d/internal/engine"
	"aspect3d/internal/game"

	"github.com/rotisserie/eris"
)

func main() {
	configPath := flag.String("config", "aspect3d.toml", "engine config file")
	scenePath := flag.String("scene", "", "scene file, overrides the config")
	watch := flag.Bool("watch", false, "reload the scene when its file changes")
	flag.Parse()

	// Paths given on the command line are relative to where we were started.
	if err := absolutize(flag.CommandLine, "config", "scene"); err != nil {
		log.Fatal(eris.ToString(err, true))
	}

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	defer engine.RecoverFatal(func(err *engine.FatalError) {
		log.Printf("Fatal: %v", err)
		os.Exit(1)
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(eris.ToString(err, true))
	}
	if *scenePath != "" {
		cfg.Scene.Path = *scenePath
	}
	if *watch {
		cfg.Scene.Watch = true
	}

	if err := game.New(cfg).Run(); err != nil {
		log.Fatal(eris.ToString(err, true))
	}
}

// absolutize rewrites the named flags that were set on the command line to
// absolute paths. Unset flags keep their defaults.
func absolutize(fs *flag.FlagSet, names ...string) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil || !slices.Contains(names, f.Name) || f.Value.String() == "" {
			return
		}
		abs, absErr := filepath.Abs(f.Value.String())
		if absErr != nil {
			err = eris.Wrapf(absErr, "-%s", f.Name)
			return
		}
		err = f.Value.Set(abs)
	})
	return err
}
