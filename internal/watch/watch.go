// Package watch reruns a render whenever its input files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"wireframe-renderer/internal/logging"
)

// Func does one round of work and returns the paths to watch until the
// next round. A path naming a directory matches any file inside it.
type Func func() []string

const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watch calls fn once, then again every time one of the watched paths
// changes. Bursts of events within debounce of each other trigger a single
// call. Parent directories are watched rather than the files themselves so
// that editors which replace files on save are still seen. Watch returns
// nil when ctx is done.
func Watch(ctx context.Context, debounce time.Duration, log *slog.Logger, fn Func) error {
	log = logging.OrNop(log)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	s := &state{w: w, log: log, dirs: map[string]bool{}}
	s.update(fn())

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&changeOps != 0 && s.matches(ev.Name) {
				log.Debug("watch: change", "path", ev.Name, "op", ev.Op.String())
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch: watcher error", "err", err)
		case <-timer.C:
			s.update(fn())
		}
	}
}

type state struct {
	w     *fsnotify.Watcher
	log   *slog.Logger
	dirs  map[string]bool // directories registered with w
	files map[string]bool
	trees map[string]bool // watched directories whose whole content counts
}

func (s *state) update(paths []string) {
	s.files = map[string]bool{}
	s.trees = map[string]bool{}
	want := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			s.log.Warn("watch: bad path", "path", p, "err", err)
			continue
		}
		if fi, err := os.Stat(abs); err == nil && fi.IsDir() {
			s.trees[abs] = true
			want[abs] = true
			continue
		}
		s.files[abs] = true
		want[filepath.Dir(abs)] = true
	}

	for d := range s.dirs {
		if !want[d] {
			_ = s.w.Remove(d)
			delete(s.dirs, d)
		}
	}
	for d := range want {
		if s.dirs[d] {
			continue
		}
		if err := s.w.Add(d); err != nil {
			s.log.Warn("watch: cannot watch", "dir", d, "err", err)
			continue
		}
		s.dirs[d] = true
	}
}

func (s *state) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return s.files[abs] || s.trees[filepath.Dir(abs)]
}
