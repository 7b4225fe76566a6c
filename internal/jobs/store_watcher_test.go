package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"framevault/internal/metrics"
)

type fakeStore struct {
	calls atomic.Int32

	mu  sync.Mutex
	err error
}

func (f *fakeStore) Ping(context.Context) error {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeStore) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func TestStoreWatcherCheck(t *testing.T) {
	store := &fakeStore{}
	w := NewStoreWatcher(store, time.Hour, time.Second)

	if err := w.Ping(context.Background()); !errors.Is(err, ErrNotChecked) {
		t.Fatalf("Ping() before check = %v, want ErrNotChecked", err)
	}

	w.Check(context.Background())
	if err := w.Ping(context.Background()); err != nil {
		t.Errorf("Ping() after healthy check = %v, want nil", err)
	}
	if got := testutil.ToFloat64(metrics.StoreUp); got != 1 {
		t.Errorf("StoreUp = %v, want 1", got)
	}

	down := errors.New("connection refused")
	store.fail(down)
	w.Check(context.Background())
	if err := w.Ping(context.Background()); !errors.Is(err, down) {
		t.Errorf("Ping() after failed check = %v, want %v", err, down)
	}
	if got := testutil.ToFloat64(metrics.StoreUp); got != 0 {
		t.Errorf("StoreUp = %v, want 0", got)
	}
}

func TestStoreWatcherCanceledCheckKeepsLastResult(t *testing.T) {
	store := &fakeStore{}
	w := NewStoreWatcher(store, time.Hour, time.Second)
	w.Check(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store.fail(context.Canceled)
	w.Check(ctx)

	if err := w.Ping(context.Background()); err != nil {
		t.Errorf("Ping() = %v, want the last completed result (nil)", err)
	}
}

func TestStoreWatcherStartStops(t *testing.T) {
	store := &fakeStore{}
	w := NewStoreWatcher(store, 10*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for store.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("watcher did not ping repeatedly")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}
