// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/view.go
// Summary: View mode reconciler. Derives, per render, either the raw sparse
// window (normal mode) or a compact filtered+sorted list (filtering mode).
// Each mode is a distinct type carrying its own addressing rule so the two
// index spaces can never be confused by an incidental branch.

package grid

// EntryKind discriminates renderable entries.
type EntryKind int

const (
	// KindRow is a loaded row.
	KindRow EntryKind = iota
	// KindHole is an unloaded slot; renderers must show a distinct
	// placeholder, never a blank row.
	KindHole
	// KindNoResults is the single entry shown when a filter matches nothing.
	KindNoResults
)

// Entry is one renderable line handed to the row renderer. Index is in the
// address space of the view that produced it.
type Entry struct {
	Index int
	Kind  EntryKind
	Row   Row
}

// View exposes the total addressable row count for the active mode and
// resolves a window into concrete entries.
type View interface {
	// TotalRows is the count fed to the window calculator. Its meaning is
	// mode-dependent: dataset size N in normal mode, match count when
	// filtering.
	TotalRows() int
	// Entries resolves the window's index range into renderable entries.
	Entries(win Window) []Entry
	// Prefetchable reports whether scrolling this view should trigger
	// batch prefetch. Only the normal view reads the sparse store by
	// absolute index, so only it prefetches.
	Prefetchable() bool
}

// NormalView addresses the sparse store by absolute index. Window position i
// is store slot i: a filled row renders as a row, a hole as a placeholder.
type NormalView struct {
	store *Store
}

func (v *NormalView) TotalRows() int { return v.store.Len() }

func (v *NormalView) Prefetchable() bool { return true }

func (v *NormalView) Entries(win Window) []Entry {
	out := make([]Entry, 0, win.End-win.Start)
	for i := win.Start; i < win.End; i++ {
		if r, ok := v.store.Get(i); ok {
			out = append(out, Entry{Index: i, Kind: KindRow, Row: r})
		} else {
			out = append(out, Entry{Index: i, Kind: KindHole})
		}
	}
	return out
}

// FilterView addresses a compact, hole-free sequence positionally. Window
// position i is rows[i]; the sparse store's absolute indices play no part.
type FilterView struct {
	rows []Row
}

func (v *FilterView) TotalRows() int { return len(v.rows) }

// Prefetchable is false: filtering only ever searches already-loaded data,
// so fetching more rows cannot change the visible result.
func (v *FilterView) Prefetchable() bool { return false }

func (v *FilterView) Entries(win Window) []Entry {
	if len(v.rows) == 0 {
		// Exactly one explicit no-results entry; window math stays
		// consistent because TotalRows is 0 and both spacers collapse.
		return []Entry{{Index: 0, Kind: KindNoResults}}
	}
	out := make([]Entry, 0, win.End-win.Start)
	for i := win.Start; i < win.End && i < len(v.rows); i++ {
		out = append(out, Entry{Index: i, Kind: KindRow, Row: v.rows[i]})
	}
	return out
}

// BuildView reconciles the store against the filter/sort state. Filtering
// mode builds its compact list fresh on every call: loaded rows only (holes
// are invisible to filtering), matched case-insensitively, then sorted.
func BuildView(store *Store, st State) View {
	if !st.Filtering() {
		return &NormalView{store: store}
	}
	var kept []Row
	for _, r := range store.Loaded() {
		if st.Matches(r) {
			kept = append(kept, r)
		}
	}
	SortRows(kept, st.Sort)
	return &FilterView{rows: kept}
}
