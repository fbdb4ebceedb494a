package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"sharefm/logger"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 2 * time.Second

// Watcher observes the library tree and triggers a scan after filesystem
// changes settle. Directories created under the root are added to the watch
// as they appear.
type Watcher struct {
	root     string
	fw       *fsnotify.Watcher
	trigger  func()
	debounce time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewWatcher creates a Watcher that calls trigger after changes under root.
func NewWatcher(root string, trigger func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		root:     root,
		fw:       fw,
		trigger:  trigger,
		debounce: watchDebounce,
		done:     make(chan struct{}),
	}, nil
}

// Start registers the root and its subdirectories and begins watching.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.fw.Add(path); err != nil {
				logger.Warn("could not watch directory", logger.String("path", path), logger.ErrorField(err))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop()
	logger.Info("watching library for changes", logger.String("root", w.root))
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.fw.Add(ev.Name)
				}
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("library watch error", logger.ErrorField(err))
		case <-timer.C:
			w.trigger()
		case <-w.done:
			return
		}
	}
}

// Stop ends watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.fw.Close()
	w.wg.Wait()
}
