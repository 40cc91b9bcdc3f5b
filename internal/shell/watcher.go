package shell

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cinder-app/cinder/internal/config"
)

const settingsDebounce = 200 * time.Millisecond

// settingsWatcher watches settings.yaml for external edits and posts a
// debounced SettingsFileChanged event so the running UI picks them up.
type settingsWatcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

func watchSettings(post func(Event)) (*settingsWatcher, error) {
	dir, err := config.GlobalDir()
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &settingsWatcher{
		fsw:  fsw,
		done: make(chan struct{}),
	}
	go w.run(post)
	return w, nil
}

func (w *settingsWatcher) run(post func(Event)) {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != config.SettingsFileName {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.debounce(func() { post(SettingsFileChanged{}) })

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("settings watcher: %v", err)

		case <-w.done:
			return
		}
	}
}

// debounce coalesces the burst of write events an editor save produces.
func (w *settingsWatcher) debounce(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(settingsDebounce, fn)
}

func (w *settingsWatcher) Close() {
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.fsw.Close()
}
