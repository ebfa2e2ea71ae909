// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/engine.go
// Summary: Engine façade tying store, scheduler, filter/sort state and
// window math together behind the operations a frontend drives: scroll,
// filter, sort, snapshot. Single-threaded; the only suspension point is the
// batch source call, whose completion arrives via the scheduler's post hook.

package grid

import "context"

// Config holds the startup constants of the windowed engine.
type Config struct {
	// TotalRows is the fixed dataset size N.
	TotalRows int
	// RowHeight is the height of one row in layout units (1 for terminal
	// cells).
	RowHeight int
	// BatchSize is the number of rows per fetch.
	BatchSize int
	// PrefetchThreshold is the lookahead distance, in rows, at which the
	// next batch boundary is requested.
	PrefetchThreshold int
	// Overscan is the extra rows rendered beyond the viewport to avoid
	// flicker at scroll edges.
	Overscan int
}

// Frame is one reconciled render snapshot handed to a row renderer.
type Frame struct {
	Entries   []Entry
	Window    Window
	Filtering bool
	// Total is the addressable row count of the active mode.
	Total    int
	Loaded   int
	InFlight bool
	HasMore  bool
	Sort     SortState
}

// Engine is the windowed data engine. All methods must be called from the
// same goroutine (the UI thread); fetch completions are marshalled onto it
// by the post function given at construction.
type Engine struct {
	cfg            Config
	store          *Store
	sched          *Scheduler
	state          State
	offset         int
	viewportHeight int
	inv            func()
}

// NewEngine creates an engine over src. post must run its argument on the
// caller's thread; the tcell frontend posts through the event queue, tests
// run it synchronously.
func NewEngine(ctx context.Context, cfg Config, src Source, post func(func())) *Engine {
	if cfg.RowHeight < 1 {
		cfg.RowHeight = 1
	}
	store := NewStore(cfg.TotalRows)
	e := &Engine{cfg: cfg, store: store}
	e.sched = NewScheduler(ctx, store, src, post)
	e.sched.OnUpdate = func() { e.invalidate() }
	e.sched.OnError = func(error) { e.invalidate() }
	return e
}

// SetInvalidator installs the callback fired whenever engine state changed
// in a way that needs a redraw.
func (e *Engine) SetInvalidator(fn func()) { e.inv = fn }

func (e *Engine) invalidate() {
	if e.inv != nil {
		e.inv()
	}
}

// Start issues the initial batch request. The dataset becomes progressively
// available: the first batch loads immediately and scrolling prefetches the
// rest chunk by chunk.
func (e *Engine) Start() {
	_ = e.sched.RequestBatch(0, e.cfg.BatchSize)
}

// Scheduler exposes the fetch scheduler, mainly for tests and status display.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Store exposes the sparse row store.
func (e *Engine) Store() *Store { return e.store }

// SetViewportHeight updates the viewport geometry on resize.
func (e *Engine) SetViewportHeight(h int) {
	if h < 0 {
		h = 0
	}
	if h == e.viewportHeight {
		return
	}
	e.viewportHeight = h
	e.clampOffset()
	e.invalidate()
}

// ScrollOffset returns the current offset in layout units.
func (e *Engine) ScrollOffset() int { return e.offset }

// ScrollRows scrolls by delta rows (positive = down) and prefetches when the
// active view supports it.
func (e *Engine) ScrollRows(delta int) {
	e.scrollTo(e.offset + delta*e.cfg.RowHeight)
}

// ScrollToTop jumps to the first row.
func (e *Engine) ScrollToTop() { e.scrollTo(0) }

// ScrollToBottom jumps to the last renderable page.
func (e *Engine) ScrollToBottom() {
	e.scrollTo(e.maxOffset())
}

func (e *Engine) maxOffset() int {
	total := BuildView(e.store, e.state).TotalRows()
	m := total*e.cfg.RowHeight - e.viewportHeight
	if m < 0 {
		m = 0
	}
	return m
}

func (e *Engine) clampOffset() {
	if e.offset < 0 {
		e.offset = 0
	}
	if m := e.maxOffset(); e.offset > m {
		e.offset = m
	}
}

func (e *Engine) scrollTo(offset int) {
	old := e.offset
	e.offset = offset
	e.clampOffset()
	if view := BuildView(e.store, e.state); view.Prefetchable() {
		// Lookahead is measured from the current scroll row.
		e.sched.MaybePrefetch(e.offset/e.cfg.RowHeight, e.cfg.BatchSize, e.cfg.PrefetchThreshold)
	}
	if e.offset != old {
		e.invalidate()
	}
}

// FilterText returns the current filter text.
func (e *Engine) FilterText() string { return e.state.FilterText }

// SetFilter replaces the filter text. The normal and filtering views have
// unrelated index spaces, so every filter mutation resets the scroll offset
// to 0; carrying a raw offset across the switch would land on an unrelated
// row.
func (e *Engine) SetFilter(text string) {
	if text == e.state.FilterText {
		return
	}
	e.state.FilterText = text
	e.offset = 0
	e.invalidate()
}

// Sort returns the active sort state.
func (e *Engine) Sort() SortState { return e.state.Sort }

// ToggleSort applies a header click and re-sorts the entire sparse store in
// place, compacting loaded rows to the front with holes pushed to the tail.
// After this, absolute index no longer corresponds to original fetch
// position; a later batch request for an already-covered range may
// re-request rows that are present. That trade-off is deliberate and kept:
// the filtered view re-sorts its own compact copy and is unaffected, and
// normal-mode users rely on visual ordering once sorted.
func (e *Engine) ToggleSort(col Column) {
	e.state.Sort.Toggle(col)
	loaded := e.store.Loaded()
	SortRows(loaded, e.state.Sort)
	e.store.Reorder(loaded, true)
	e.invalidate()
}

// Snapshot reconciles the current state into one renderable frame.
func (e *Engine) Snapshot() Frame {
	view := BuildView(e.store, e.state)
	total := view.TotalRows()
	win := ComputeWindow(e.offset, e.cfg.RowHeight, e.viewportHeight, total, e.cfg.Overscan)
	return Frame{
		Entries:   view.Entries(win),
		Window:    win,
		Filtering: e.state.Filtering(),
		Total:     total,
		Loaded:    e.store.LoadedCount(),
		InFlight:  e.sched.InFlight(),
		HasMore:   e.sched.HasMore(),
		Sort:      e.state.Sort,
	}
}
