package spool

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/action-ledger/sdk-go/ledger"
)

const (
	// debounceDefault batches a burst of queued files into one flush pass.
	debounceDefault = 200 * time.Millisecond

	// retryDefault re-attempts a flush even without new files, since a
	// transport failure leaves the queue untouched and produces no fs event.
	retryDefault = 30 * time.Second
)

// Watcher flushes the spool whenever new files arrive, and periodically
// retries while the service is unreachable. A single flusher goroutine does
// all submission work: spool order must reach the service in order, so there
// is no worker pool here.
type Watcher struct {
	spool    *Spool
	client   *ledger.Client
	logger   *zap.Logger
	debounce time.Duration
	retry    time.Duration
}

// NewWatcher creates a watcher for the given spool. A nil logger disables
// logging.
func NewWatcher(s *Spool, client *ledger.Client, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		spool:    s,
		client:   client,
		logger:   logger,
		debounce: debounceDefault,
		retry:    retryDefault,
	}
}

// Run watches the spool directory. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.spool.Dir()); err != nil {
		return err
	}

	// Single debounce timer, reset on each event. Initialized as stopped;
	// the first event starts it.
	debounceTimer := time.NewTimer(w.debounce)
	debounceTimer.Stop()
	defer debounceTimer.Stop()

	retryTicker := time.NewTicker(w.retry)
	defer retryTicker.Stop()

	// Drain whatever queued up before the watcher started.
	w.flush(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-debounceTimer.C:
			w.flush(ctx)

		case <-retryTicker.C:
			w.flush(ctx)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !debounceTimer.Stop() {
				select {
				case <-debounceTimer.C:
				default:
				}
			}
			debounceTimer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("spool watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) flush(ctx context.Context) {
	stats, err := w.spool.Flush(ctx, w.client)
	if err != nil {
		w.logger.Warn("spool flush incomplete",
			zap.Int("submitted", stats.Submitted),
			zap.Int("remaining", stats.Remaining),
			zap.Error(err),
		)
		return
	}
	if stats.Submitted > 0 || stats.Quarantined > 0 {
		w.logger.Info("spool flushed",
			zap.Int("submitted", stats.Submitted),
			zap.Int("quarantined", stats.Quarantined),
		)
	}
}
