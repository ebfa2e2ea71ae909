// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// stubSource serves deterministic rows with ID = startIndex + offset + 1.
type stubSource struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (s *stubSource) FetchRows(ctx context.Context, start, count int) ([]Row, error) {
	s.calls.Add(1)
	if s.fail.Load() {
		return nil, errors.New("source unavailable")
	}
	out := make([]Row, count)
	for i := range out {
		id := start + i + 1
		out[i] = Row{ID: id, Name: fmt.Sprintf("User %d", id), Email: fmt.Sprintf("user%d@example.com", id)}
	}
	return out, nil
}

// testLoop is a single-threaded stand-in for the UI event queue. Completions
// posted by the scheduler are held until the test drains them, which keeps
// every store mutation on the test goroutine.
type testLoop struct {
	ch chan func()
}

func newTestLoop() *testLoop {
	return &testLoop{ch: make(chan func(), 16)}
}

func (l *testLoop) post(fn func()) { l.ch <- fn }

// drain runs one posted completion, failing the test on timeout.
func (l *testLoop) drain(t *testing.T) {
	t.Helper()
	select {
	case fn := <-l.ch:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a posted completion")
	}
}

func (l *testLoop) empty() bool { return len(l.ch) == 0 }

func newTestScheduler(total int) (*Scheduler, *Store, *stubSource, *testLoop) {
	store := NewStore(total)
	src := &stubSource{}
	loop := newTestLoop()
	sc := NewScheduler(context.Background(), store, src, loop.post)
	return sc, store, src, loop
}

func TestScheduler_RequestBatchFillsStore(t *testing.T) {
	sc, store, _, loop := newTestScheduler(1000)

	if err := sc.RequestBatch(100, 50); err != nil {
		t.Fatalf("RequestBatch: %v", err)
	}
	if !sc.InFlight() {
		t.Error("InFlight = false, want true while outstanding")
	}

	loop.drain(t)

	if sc.InFlight() {
		t.Error("InFlight = true after completion, want false")
	}
	for i := 0; i < 50; i++ {
		r, ok := store.Get(100 + i)
		if !ok {
			t.Fatalf("Get(%d) is a hole after completion", 100+i)
		}
		if r.ID != 100+i+1 {
			t.Errorf("Get(%d).ID = %d, want %d", 100+i, r.ID, 100+i+1)
		}
	}
}

func TestScheduler_SingleFlight(t *testing.T) {
	sc, _, src, loop := newTestScheduler(1000)

	_ = sc.RequestBatch(0, 100)
	// Dropped silently while the first request is outstanding.
	if err := sc.RequestBatch(200, 100); err != nil {
		t.Fatalf("second RequestBatch: %v, want nil (silent drop)", err)
	}

	loop.drain(t)

	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1", got)
	}
	if !loop.empty() {
		t.Error("a dropped request must not queue a completion")
	}
}

func TestScheduler_OutOfRange(t *testing.T) {
	sc, _, src, _ := newTestScheduler(100)

	if err := sc.RequestBatch(100, 10); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("RequestBatch(100, 10) = %v, want ErrOutOfRange", err)
	}
	if err := sc.RequestBatch(-1, 10); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("RequestBatch(-1, 10) = %v, want ErrOutOfRange", err)
	}
	if src.calls.Load() != 0 {
		t.Error("out-of-range requests must not reach the source")
	}
	if sc.InFlight() {
		t.Error("out-of-range request must not set the in-flight gate")
	}
}

func TestScheduler_HasMoreMonotonic(t *testing.T) {
	sc, _, _, loop := newTestScheduler(100)

	if !sc.HasMore() {
		t.Fatal("HasMore = false on a fresh scheduler")
	}

	_ = sc.RequestBatch(0, 60)
	loop.drain(t)
	if !sc.HasMore() {
		t.Error("HasMore flipped before the dataset was covered")
	}

	_ = sc.RequestBatch(60, 40)
	loop.drain(t)
	if sc.HasMore() {
		t.Error("HasMore = true after the final range, want false")
	}
}

func TestScheduler_CountClampedToDataset(t *testing.T) {
	sc, store, _, loop := newTestScheduler(100)

	_ = sc.RequestBatch(90, 50)
	loop.drain(t)

	if store.LoadedCount() != 10 {
		t.Errorf("LoadedCount = %d, want 10 (count clamped to N)", store.LoadedCount())
	}
	if sc.HasMore() {
		t.Error("HasMore should be false once the tail batch lands")
	}
}

func TestScheduler_FetchFailureClearsGate(t *testing.T) {
	sc, store, src, loop := newTestScheduler(100)
	src.fail.Store(true)

	var gotErr error
	sc.OnError = func(err error) { gotErr = err }

	_ = sc.RequestBatch(0, 50)
	loop.drain(t)

	if sc.InFlight() {
		t.Error("failed fetch must clear the in-flight gate")
	}
	if store.LoadedCount() != 0 {
		t.Error("failed fetch must leave the range as holes")
	}
	var ferr *FetchError
	if !errors.As(gotErr, &ferr) {
		t.Fatalf("OnError got %v, want *FetchError", gotErr)
	}

	// The gate is open again: a retry succeeds.
	src.fail.Store(false)
	_ = sc.RequestBatch(0, 50)
	loop.drain(t)
	if store.LoadedCount() != 50 {
		t.Errorf("LoadedCount after retry = %d, want 50", store.LoadedCount())
	}
}

func TestScheduler_MaybePrefetchThreshold(t *testing.T) {
	// N=10000, batch 200, threshold 20, [0,200) loaded.
	sc, store, src, loop := newTestScheduler(10000)
	store.PutRange(0, rows(0, 200))

	// Row 170: boundary 200 is 30 rows away, outside the lookahead.
	sc.MaybePrefetch(170, 200, 20)
	if src.calls.Load() != 0 {
		t.Fatal("prefetch at row 170 should not fire (30 > 20)")
	}

	// Row 185: boundary 200 is 15 rows away, inside the lookahead.
	sc.MaybePrefetch(185, 200, 20)
	if !sc.InFlight() {
		t.Fatal("prefetch at row 185 should fire (15 <= 20)")
	}
	loop.drain(t)

	if !store.Has(200) || !store.Has(399) {
		t.Error("prefetch should have filled [200,400)")
	}
}

func TestScheduler_MaybePrefetchSkipsFilledBoundary(t *testing.T) {
	sc, store, src, _ := newTestScheduler(10000)
	store.PutRange(0, rows(0, 400)) // boundary slot 200 already filled

	sc.MaybePrefetch(185, 200, 20)
	if src.calls.Load() != 0 {
		t.Error("prefetch must not fire when the boundary slot is filled")
	}
}

func TestScheduler_MaybePrefetchRespectsGateAndEnd(t *testing.T) {
	sc, store, src, loop := newTestScheduler(400)
	store.PutRange(0, rows(0, 200))

	_ = sc.RequestBatch(200, 200)
	sc.MaybePrefetch(199, 200, 20)
	loop.drain(t)
	if src.calls.Load() != 1 {
		t.Error("prefetch must not fire while a request is in flight")
	}

	// Dataset fully covered now; the next boundary is past N.
	sc.MaybePrefetch(399, 200, 20)
	if src.calls.Load() != 1 {
		t.Error("prefetch must not fire past the end of the dataset")
	}
}
