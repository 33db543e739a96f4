package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"sw-rasterizer/internal/scene"

	"github.com/fsnotify/fsnotify"
)

// watchScene reloads path whenever it is written or replaced and hands the
// parsed scene to out, dropping a pending one the game has not picked up.
// Parse errors are logged and the previous scene stays on screen.
func watchScene(path string, out chan *scene.Scene, logger *slog.Logger) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				s, err := scene.Load(path)
				if err != nil {
					logger.Error("scene reload", slog.Any("err", err))
					continue
				}
				select {
				case <-out:
				default:
				}
				out <- s
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("scene watcher", slog.Any("err", err))
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
