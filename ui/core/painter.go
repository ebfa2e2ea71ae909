// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/core/painter.go
// Summary: Clipped cell painter over a shared framebuffer. Widgets draw
// through a Painter so they can never scribble outside their region.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell of the composed frame.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Painter draws into a cell buffer, discarding writes outside its clip.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter creates a painter over buf restricted to clip.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	return &Painter{buf: buf, clip: clip}
}

// WithClip returns a painter whose clip is the intersection with r.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// SetCell writes a single cell if it falls inside the clip.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	if y < 0 || y >= len(p.buf) || x < 0 || x >= len(p.buf[y]) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// Fill floods a rectangle with one rune.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}

// DrawText draws s starting at (x, y), truncated to maxWidth display cells.
// Wide runes occupy their full width; the spare cell after a wide rune is
// blanked so stale content cannot show through.
func (p *Painter) DrawText(x, y int, s string, maxWidth int, style tcell.Style) {
	cx := x
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if cx+w > x+maxWidth {
			break
		}
		p.SetCell(cx, y, ch, style)
		for i := 1; i < w; i++ {
			p.SetCell(cx+i, y, ' ', style)
		}
		cx += w
	}
}

// DrawTextPadded draws s left-aligned in a field of width cells, padding the
// remainder with spaces.
func (p *Painter) DrawTextPadded(x, y int, s string, width int, style tcell.Style) {
	p.DrawText(x, y, s, width, style)
	used := runewidth.StringWidth(s)
	if used > width {
		used = width
	}
	for cx := x + used; cx < x+width; cx++ {
		p.SetCell(cx, y, ' ', style)
	}
}
