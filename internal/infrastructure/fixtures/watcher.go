package fixtures

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openbom/bomsight/pkg/logger"
)

// Watcher watches the fixture directory and invokes the rebuild callback
// after a quiet period, so a burst of writes from one fixture refresh
// produces a single rebuild.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func(ctx context.Context)
	log      logger.Logger
}

// NewWatcher creates a Watcher over the fixture directory.
func NewWatcher(dir string, debounce time.Duration, onChange func(ctx context.Context), log logger.Logger) *Watcher {
	return &Watcher{dir: dir, debounce: debounce, onChange: onChange, log: log}
}

// Run watches until the context is cancelled. It blocks; run it in its own
// goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	w.log.Info(ctx, "fixture watcher started", logger.Fields{"dir": w.dir})

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug(ctx, "fixture change detected", logger.Fields{
				"file": event.Name,
				"op":   event.Op.String(),
			})
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					<-timerC
				}
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.onChange(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(ctx, "fixture watcher error", logger.Fields{"error": err.Error()})
		}
	}
}

// relevant filters out events that cannot change the loaded population.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".json") {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
}
