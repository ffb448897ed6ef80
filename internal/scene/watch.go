package scene

import (
	"log"
	"path/filepath"

	"aspect3d/internal/components"
	"aspect3d/internal/engine"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"
)

// Watcher reloads a scene when its file changes. The fsnotify goroutine
// only signals; the world is touched by Poll, on the caller's goroutine.
type Watcher struct {
	// OnReload fires after a successful reload with the new scene.
	OnReload engine.EventWithArg[*Scene]

	path    string
	fs      *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
}

// Watch starts watching path. The directory is watched rather than the
// file so editors that replace the file are seen too.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, eris.Wrap(err, "watch scene")
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, eris.Wrap(err, "watch scene")
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, eris.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	w := &Watcher{
		path:    abs,
		fs:      fs,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("Scene: watch error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Changed is signalled, at most once per burst, when the file changes.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

// Poll reloads current if the file changed since the last call and returns
// the scene now live. A failed reload is logged and keeps current.
func (w *Watcher) Poll(world *engine.World, current *Scene, reg *components.Behaviours) *Scene {
	select {
	case <-w.changed:
	default:
		return current
	}
	next, err := Reload(world, current, reg)
	if err != nil {
		log.Printf("Scene: reload failed, keeping previous scene: %v", err)
		return current
	}
	w.OnReload.Invoke(next)
	return next
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
