// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newBuffer(w, h int) [][]Cell {
	buf := make([][]Cell, h)
	for y := range buf {
		buf[y] = make([]Cell, w)
		for x := range buf[y] {
			buf[y][x] = Cell{Ch: ' '}
		}
	}
	return buf
}

func bufferLine(buf [][]Cell, y int) string {
	out := make([]rune, len(buf[y]))
	for x, c := range buf[y] {
		out[x] = c.Ch
	}
	return string(out)
}

func TestPainter_SetCellClipped(t *testing.T) {
	buf := newBuffer(10, 5)
	p := NewPainter(buf, Rect{X: 2, Y: 1, W: 4, H: 2})

	p.SetCell(2, 1, 'A', tcell.StyleDefault) // inside
	p.SetCell(0, 0, 'B', tcell.StyleDefault) // outside clip
	p.SetCell(6, 1, 'C', tcell.StyleDefault) // right of clip

	if buf[1][2].Ch != 'A' {
		t.Error("in-clip write lost")
	}
	if buf[0][0].Ch == 'B' || buf[1][6].Ch == 'C' {
		t.Error("out-of-clip write leaked through")
	}
}

func TestPainter_WithClipIntersects(t *testing.T) {
	buf := newBuffer(10, 5)
	p := NewPainter(buf, Rect{X: 0, Y: 0, W: 10, H: 5})
	q := p.WithClip(Rect{X: 4, Y: 0, W: 10, H: 2})

	q.Fill(Rect{X: 0, Y: 0, W: 10, H: 5}, '#', tcell.StyleDefault)

	if bufferLine(buf, 0) != "    ######" {
		t.Errorf("line 0 = %q", bufferLine(buf, 0))
	}
	if bufferLine(buf, 2) != "          " {
		t.Errorf("line 2 = %q, want untouched", bufferLine(buf, 2))
	}
}

func TestPainter_DrawTextTruncates(t *testing.T) {
	buf := newBuffer(10, 1)
	p := NewPainter(buf, Rect{X: 0, Y: 0, W: 10, H: 1})

	p.DrawText(0, 0, "hello world", 5, tcell.StyleDefault)
	if got := bufferLine(buf, 0); got != "hello     " {
		t.Errorf("line = %q, want %q", got, "hello     ")
	}
}

func TestPainter_DrawTextPadded(t *testing.T) {
	buf := newBuffer(10, 1)
	for x := range buf[0] {
		buf[0][x].Ch = '#'
	}
	p := NewPainter(buf, Rect{X: 0, Y: 0, W: 10, H: 1})

	p.DrawTextPadded(0, 0, "ab", 6, tcell.StyleDefault)
	if got := bufferLine(buf, 0); got != "ab    ####" {
		t.Errorf("line = %q, want %q", got, "ab    ####")
	}
}

func TestPainter_WideRunes(t *testing.T) {
	buf := newBuffer(10, 1)
	p := NewPainter(buf, Rect{X: 0, Y: 0, W: 10, H: 1})

	// '日' is two cells wide; only one fits in a 3-cell field after 'a'.
	p.DrawText(0, 0, "a日本", 3, tcell.StyleDefault)
	if buf[0][0].Ch != 'a' || buf[0][1].Ch != '日' {
		t.Errorf("line = %q", bufferLine(buf, 0))
	}
	if buf[0][3].Ch == '本' {
		t.Error("second wide rune should not fit in the field")
	}
}
