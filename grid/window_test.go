// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import "testing"

func TestComputeWindow_Basic(t *testing.T) {
	// 10 visible rows + 5 overscan over 1000 rows.
	win := ComputeWindow(0, 1, 10, 1000, 5)

	if win.Start != 0 {
		t.Errorf("Start = %d, want 0", win.Start)
	}
	if win.End != 15 {
		t.Errorf("End = %d, want 15", win.End)
	}
	if win.SpacerTop != 0 {
		t.Errorf("SpacerTop = %d, want 0", win.SpacerTop)
	}
	if win.SpacerBottom != 985 {
		t.Errorf("SpacerBottom = %d, want 985", win.SpacerBottom)
	}
}

func TestComputeWindow_MidScroll(t *testing.T) {
	win := ComputeWindow(100, 1, 10, 1000, 5)

	if win.Start != 100 {
		t.Errorf("Start = %d, want 100", win.Start)
	}
	if win.End != 115 {
		t.Errorf("End = %d, want 115", win.End)
	}
	if win.SpacerTop != 100 {
		t.Errorf("SpacerTop = %d, want 100", win.SpacerTop)
	}
	if win.SpacerBottom != 885 {
		t.Errorf("SpacerBottom = %d, want 885", win.SpacerBottom)
	}
}

func TestComputeWindow_RowHeightCeil(t *testing.T) {
	// viewport 25 units, rows of 10: ceil(25/10)=3 visible + 2 overscan.
	win := ComputeWindow(37, 10, 25, 100, 2)

	if win.Start != 3 {
		t.Errorf("Start = %d, want 3 (floor 37/10)", win.Start)
	}
	if win.End != 8 {
		t.Errorf("End = %d, want 8", win.End)
	}
	if win.SpacerTop != 30 {
		t.Errorf("SpacerTop = %d, want 30", win.SpacerTop)
	}
	if win.SpacerBottom != 920 {
		t.Errorf("SpacerBottom = %d, want 920", win.SpacerBottom)
	}
}

func TestComputeWindow_ClampsAtEnd(t *testing.T) {
	// Scrolled way past the end: window pins to the last renderable page.
	win := ComputeWindow(5000, 1, 10, 100, 5)

	if win.Start != 85 {
		t.Errorf("Start = %d, want 85 (100 - 15)", win.Start)
	}
	if win.End != 100 {
		t.Errorf("End = %d, want 100", win.End)
	}
	if win.SpacerBottom != 0 {
		t.Errorf("SpacerBottom = %d, want 0", win.SpacerBottom)
	}
}

func TestComputeWindow_InvariantHolds(t *testing.T) {
	// 0 <= Start <= End <= totalRows for a sweep of offsets and sizes.
	for _, total := range []int{0, 1, 7, 100, 10000} {
		for offset := -10; offset < total+50; offset += 7 {
			win := ComputeWindow(offset, 1, 10, total, 5)
			if win.Start < 0 || win.Start > win.End || win.End > total {
				t.Fatalf("invariant violated: offset=%d total=%d window=%+v", offset, total, win)
			}
			if win.SpacerTop < 0 || win.SpacerBottom < 0 {
				t.Fatalf("negative spacer: offset=%d total=%d window=%+v", offset, total, win)
			}
		}
	}
}

func TestComputeWindow_ZeroTotal(t *testing.T) {
	win := ComputeWindow(50, 1, 10, 0, 5)

	if win.Start != 0 || win.End != 0 {
		t.Errorf("window = [%d,%d), want [0,0)", win.Start, win.End)
	}
	if win.SpacerTop != 0 || win.SpacerBottom != 0 {
		t.Errorf("spacers = %d/%d, want 0/0", win.SpacerTop, win.SpacerBottom)
	}
}
