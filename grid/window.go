// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/window.go
// Summary: Pure viewport window math. Maps a scroll offset plus viewport
// geometry to the half-open index range that should be rendered, and the
// spacer heights reserving scrollbar space for everything outside it.

package grid

// Window is the renderable slice of the active index space.
// Invariant: 0 <= Start <= End <= the totalRows it was computed against.
type Window struct {
	Start        int
	End          int
	SpacerTop    int
	SpacerBottom int
}

// ComputeWindow derives the visible window for a scroll offset.
// visibleCount is ceil(viewportHeight/rowHeight) plus overscan rows of
// buffer; Start is clamped so the window never scrolls past the last
// renderable page, even when totalRows is 0.
func ComputeWindow(scrollOffset, rowHeight, viewportHeight, totalRows, overscan int) Window {
	if rowHeight < 1 {
		rowHeight = 1
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	if totalRows < 0 {
		totalRows = 0
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	visible := (viewportHeight+rowHeight-1)/rowHeight + overscan

	start := scrollOffset / rowHeight
	if maxStart := totalRows - visible; start > maxStart {
		start = maxStart
	}
	if start < 0 {
		start = 0
	}

	end := start + visible
	if end > totalRows {
		end = totalRows
	}

	return Window{
		Start:        start,
		End:          end,
		SpacerTop:    start * rowHeight,
		SpacerBottom: (totalRows - end) * rowHeight,
	}
}
