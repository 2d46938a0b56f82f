package systemd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to service unit files in a directory. Bursts of
// file events are coalesced into a single pending notification.
type Watcher struct {
	fw      *fsnotify.Watcher
	changes chan struct{}
	logger  *log.Logger
}

// WatchUnitDir starts watching dir for *.service changes.
func WatchUnitDir(dir string, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if logger == nil {
		logger = log.Default()
	}
	w := &Watcher{
		fw:      fw,
		changes: make(chan struct{}, 1),
		logger:  logger,
	}
	go w.loop()
	return w, nil
}

// Changes is closed when the watcher is closed.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops the watcher.
func (w *Watcher) Close() error { return w.fw.Close() }

func (w *Watcher) loop() {
	defer close(w.changes)
	events, errs := w.fw.Events, w.fw.Errors
	for events != nil || errs != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !relevant(ev) {
				continue
			}
			w.logger.Debug("Unit file changed", "file", ev.Name, "op", ev.Op.String())
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.logger.Warn("Unit directory watch error", "error", err)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !isServiceUnit(filepath.Base(ev.Name)) {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
