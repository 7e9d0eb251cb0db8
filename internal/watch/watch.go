// Package watch analyzes leaf images as they appear in a drop folder.
package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leafscan/leafscan/internal/sample"
)

// DefaultSettle is how long a new file's size must hold steady before it
// is considered fully written.
const DefaultSettle = 500 * time.Millisecond

// Watcher hands newly created image files in Dir to Handle, one at a
// time, once each file has settled.
type Watcher struct {
	Dir    string
	Settle time.Duration
	Handle func(ctx context.Context, path string)
}

// Run watches Dir until ctx is cancelled. Files still being copied in are
// settled first; non-image files are ignored.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.Dir); err != nil {
		return fmt.Errorf("watch: %s: %w", w.Dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) || !sample.IsImage(ev.Name) {
				continue
			}
			if err := w.settle(ctx, ev.Name); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				continue // file vanished before it settled
			}
			w.Handle(ctx, ev.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

// settle polls the file size until it is non-empty and stops changing.
func (w *Watcher) settle(ctx context.Context, path string) error {
	interval := w.Settle
	if interval <= 0 {
		interval = DefaultSettle
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last int64 = -1
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if info.Size() > 0 && info.Size() == last {
				return nil
			}
			last = info.Size()
		}
	}
}
