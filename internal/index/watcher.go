package index

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/starford/smartchef/internal/storage"
)

// Event kinds passed to EventCallback.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

const reconcileDelay = 200 * time.Millisecond

// EventCallback is called after a watcher-driven index change.
// kind is one of EventCreated, EventUpdated, EventDeleted.
type EventCallback func(kind string, filename string)

// Watch starts an fsnotify watcher on the recipes directory and processes
// file change events until ctx is cancelled. It calls cb (if non-nil) after
// each successful index mutation.
//
// The directory is flat, so only its top level is watched. Rename events
// trigger a debounced reconciliation pass that removes stale entries.
func Watch(ctx context.Context, db *DB, store storage.Provider, logger *slog.Logger, cb EventCallback) error {
	root := store.Root()
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("index: create recipes dir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return fmt.Errorf("index: watch %s: %w", root, err)
	}

	logger.Info("watcher: started", slog.String("root", root))

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(reconcileDelay)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(reconcileDelay)
		}
	}

	notify := func(kind, name string) {
		if cb != nil {
			cb(kind, name)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(db, store, logger, notify)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			name := filepath.Base(ev.Name)
			if filepath.Dir(ev.Name) != root || !strings.HasSuffix(name, storage.Ext) {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := store.Read(name)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("file", name), slog.String("error", readErr.Error()))
					continue
				}
				// Saves are atomic renames that can produce several events
				// for the same content.
				if cs, _ := db.GetChecksum(name); cs == storage.Checksum(data) {
					continue
				}
				kind := EventUpdated
				if ev.Op&fsnotify.Create != 0 {
					kind = EventCreated
				}
				if idxErr := indexFile(db, name, data); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("file", name), slog.String("error", idxErr.Error()))
					continue
				}
				logger.Debug("watcher: indexed", slog.String("file", name), slog.String("op", kind))
				notify(kind, name)

			case ev.Op&fsnotify.Remove != 0:
				if delErr := db.Delete(name); delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("file", name), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: deleted", slog.String("file", name))
				notify(EventDeleted, name)

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify reports Rename on the old name only; the new name
				// arrives as a Create if it stays in the directory.
				if delErr := db.Delete(name); delErr != nil {
					logger.Warn("watcher: rename delete failed", slog.String("file", name), slog.String("error", delErr.Error()))
				} else {
					notify(EventDeleted, name)
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcile removes index entries without a file on disk and indexes files
// whose checksum differs from the index.
func reconcile(db *DB, store storage.Provider, logger *slog.Logger, notify func(kind, name string)) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	metas, err := store.List()
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Name] = struct{}{}
	}

	for name := range checksums {
		if _, ok := disk[name]; !ok {
			if delErr := db.Delete(name); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("file", name))
				notify(EventDeleted, name)
			}
		}
	}

	for name := range disk {
		data, readErr := store.Read(name)
		if readErr != nil {
			continue
		}
		prev, known := checksums[name]
		if prev == storage.Checksum(data) {
			continue
		}
		if idxErr := indexFile(db, name, data); idxErr == nil {
			logger.Debug("reconcile: indexed", slog.String("file", name))
			kind := EventCreated
			if known {
				kind = EventUpdated
			}
			notify(kind, name)
		}
	}
}
