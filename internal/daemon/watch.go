package daemon

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watch signals changes to the SQLite file or its WAL and journal. If the
// watcher cannot start or breaks, it falls back to polling.
func (d *Daemon) watch(ctx context.Context, changes chan<- struct{}) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		d.log.Warn("File watcher unavailable, polling instead", "error", err)
		d.poll(ctx, changes)
		return
	}
	defer w.Close()

	dir := filepath.Dir(d.cfg.WatchPath)
	if err := w.Add(dir); err != nil {
		d.log.Warn("Failed to watch database directory, polling instead", "dir", dir, "error", err)
		d.poll(ctx, changes)
		return
	}
	d.log.Debug("Watching database", "path", d.cfg.WatchPath)

	base := filepath.Base(d.cfg.WatchPath)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				d.poll(ctx, changes)
				return
			}
			if isDatabaseFile(filepath.Base(ev.Name), base) && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				d.signal(changes)
			}
		case err, ok := <-w.Errors:
			if !ok {
				d.poll(ctx, changes)
				return
			}
			// Overflow means events were lost; reload once to catch up.
			d.log.Debug("File watcher error", "error", err)
			d.signal(changes)
		}
	}
}

func isDatabaseFile(name, base string) bool {
	if strings.EqualFold(name, base) {
		return true
	}
	for _, suffix := range []string{"-wal", "-journal"} {
		if strings.EqualFold(name, base+suffix) {
			return true
		}
	}
	return false
}
