package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watcher recompiles a program file whenever it changes on disk
type watcher struct {
	watcher *fsnotify.Watcher
	path    string
	reload  func(source string) error

	mu      sync.Mutex
	pending *time.Timer
	reloads int
}

func newWatcher(path string, reload func(source string) error) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return &watcher{watcher: fsw, path: abs, reload: reload}, nil
}

// Start watches the directory holding the program file, so editors that
// replace the file on save are still seen.
func (w *watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.eventLoop(ctx)
	return nil
}

func (w *watcher) eventLoop(ctx context.Context) {
	// Wait for rapid changes to settle
	const debounce = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.pending != nil {
				w.pending.Stop()
			}
			w.mu.Unlock()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			w.mu.Lock()
			if w.pending == nil {
				w.pending = time.AfterFunc(debounce, w.handleChange)
			} else {
				w.pending.Reset(debounce)
			}
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

// handleChange keeps the running program when the new one fails to compile
func (w *watcher) handleChange() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		log.Printf("failed to read %s: %v", w.path, err)
		return
	}
	if err := w.reload(string(data)); err != nil {
		log.Printf("program not reloaded: %v", err)
		return
	}

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	log.Printf("program reloaded: %s", w.path)
}

// Reloads returns how many times the program was swapped
func (w *watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

// Close stops the watcher
func (w *watcher) Close() error {
	return w.watcher.Close()
}
