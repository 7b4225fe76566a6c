package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"framevault/internal/metrics"
)

// ErrNotChecked is reported until the first ping completes.
var ErrNotChecked = errors.New("record store not checked yet")

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreWatcher pings the record store in the background and remembers the
// result, so readiness probes do not each cost a store round trip.
type StoreWatcher struct {
	store    Pinger
	interval time.Duration
	timeout  time.Duration

	mu      sync.RWMutex
	lastErr error
}

// NewStoreWatcher creates a watcher that pings store every interval, giving
// each ping at most timeout.
func NewStoreWatcher(store Pinger, interval, timeout time.Duration) *StoreWatcher {
	return &StoreWatcher{
		store:    store,
		interval: interval,
		timeout:  timeout,
		lastErr:  ErrNotChecked,
	}
}

// Start begins the background ping loop. It returns when ctx is done.
func (w *StoreWatcher) Start(ctx context.Context) {
	slog.Info("store watcher started", "interval", w.interval)

	// Run immediately on start
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("store watcher stopped")
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check pings the store once and records the outcome.
func (w *StoreWatcher) Check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	err := w.store.Ping(pingCtx)
	if ctx.Err() != nil {
		return
	}

	w.mu.Lock()
	changed := (err == nil) != (w.lastErr == nil)
	w.lastErr = err
	w.mu.Unlock()

	if err != nil {
		metrics.StoreUp.Set(0)
		if changed {
			slog.Warn("record store unreachable", "error", err)
		}
		return
	}
	metrics.StoreUp.Set(1)
	if changed {
		slog.Info("record store reachable")
	}
}

// Ping returns the result of the most recent check.
func (w *StoreWatcher) Ping(context.Context) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}
