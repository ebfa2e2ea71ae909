// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/fetch.go
// Summary: Batch fetch scheduler. Enforces the single in-flight rule, asks
// the batch source just-in-time based on scroll position, and merges results
// into the sparse store on the UI thread.

package grid

import (
	"context"
	"log"
)

// Source is the backing data source. FetchRows returns exactly count rows
// starting at startIndex, or an error. Calls may be slow; the scheduler
// invokes them off the UI thread.
type Source interface {
	FetchRows(ctx context.Context, startIndex, count int) ([]Row, error)
}

// Scheduler issues batch requests against a Source and merges completions
// into a Store. At most one request is ever outstanding; requests made while
// one is in flight are silently dropped. Completions are marshalled back to
// the UI thread through the post function, so the store is only ever touched
// from that thread.
type Scheduler struct {
	ctx      context.Context
	store    *Store
	src      Source
	post     func(func())
	inFlight bool
	hasMore  bool

	// OnUpdate fires on the UI thread after a completed batch is merged.
	OnUpdate func()
	// OnError fires on the UI thread when a fetch fails. Optional; failures
	// are always logged.
	OnError func(error)
}

// NewScheduler creates a scheduler writing into store. post must execute its
// argument on the UI thread; tests may run it synchronously.
func NewScheduler(ctx context.Context, store *Store, src Source, post func(func())) *Scheduler {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Scheduler{
		ctx:     ctx,
		store:   store,
		src:     src,
		post:    post,
		hasMore: store.Len() > 0,
	}
}

// InFlight reports whether a batch request is outstanding.
func (sc *Scheduler) InFlight() bool { return sc.inFlight }

// HasMore reports whether unfetched ranges remain. Monotonic: once false it
// never turns true again.
func (sc *Scheduler) HasMore() bool { return sc.hasMore }

// RequestBatch asks the source for count rows starting at startIndex. A
// request made while another is in flight is dropped without error; callers
// must not assume it was queued. Requests starting beyond the dataset are
// rejected immediately with ErrOutOfRange and no source call.
func (sc *Scheduler) RequestBatch(startIndex, count int) error {
	if startIndex < 0 || startIndex >= sc.store.Len() {
		return ErrOutOfRange
	}
	if sc.inFlight {
		return nil
	}
	if rest := sc.store.Len() - startIndex; count > rest {
		count = rest
	}
	if count <= 0 {
		return nil
	}

	sc.inFlight = true
	go func() {
		rows, err := sc.src.FetchRows(sc.ctx, startIndex, count)
		sc.post(func() { sc.complete(startIndex, count, rows, err) })
	}()
	return nil
}

// complete runs on the UI thread. A failed fetch leaves the range as holes
// but clears the gate so prefetching can recover; a stale completion after
// the user scrolled away still writes its rows, which is harmless and warms
// the store for later.
func (sc *Scheduler) complete(startIndex, count int, rows []Row, err error) {
	sc.inFlight = false
	if err != nil {
		ferr := &FetchError{Start: startIndex, Count: count, cause: err}
		log.Printf("grid: %v", ferr)
		if sc.OnError != nil {
			sc.OnError(ferr)
		}
		return
	}
	sc.store.PutRange(startIndex, rows)
	if startIndex+count >= sc.store.Len() {
		sc.hasMore = false
	}
	if sc.OnUpdate != nil {
		sc.OnUpdate()
	}
}

// MaybePrefetch requests the next batch boundary strictly after the batch
// containing currentRow, once the lookahead window reaches it. The threshold
// makes the boundary load before the user visually hits unfilled rows. Fires
// only when the boundary slot is still a hole, more data exists, and nothing
// is in flight.
func (sc *Scheduler) MaybePrefetch(currentRow, batchSize, threshold int) {
	if batchSize <= 0 || currentRow < 0 {
		return
	}
	next := currentRow/batchSize*batchSize + batchSize
	if next >= sc.store.Len() {
		return
	}
	if next-currentRow > threshold {
		return
	}
	if sc.store.Has(next) {
		return
	}
	if !sc.hasMore || sc.inFlight {
		return
	}
	_ = sc.RequestBatch(next, batchSize)
}
