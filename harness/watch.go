// watch.go — profile-file watch mode.
//
// Board bring-up iterates on target profiles; watch mode re-runs the suite
// on every save instead of making the operator re-launch. Events are
// debounced because editors tend to emit write bursts.

package harness

import (
	"path/filepath"
	"time"

	"main/control"
	"main/debug"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 250 * time.Millisecond

// WatchProfiles blocks, invoking rerun after each settled change to path.
// Returns when a stop has been requested or the watcher dies.
func WatchProfiles(path string, rerun func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory: editors replace files by rename, which drops a
	// watch placed on the file itself.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(path)

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	poll := time.NewTicker(500 * time.Millisecond)
	defer poll.Stop()
	for {
		select {
		case <-poll.C:
			if control.Stopping() {
				return nil
			}
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			debug.DropMessage("WATCH", "profile change detected, re-running")
			rerun()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			debug.DropError("WATCH", err)
		}
	}
}
