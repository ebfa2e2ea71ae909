// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/filterbox.go
// Summary: Single-line filter input. Edits fire OnChange with the full text
// so the owner can push it into the data engine.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"texeltable/ui/core"
)

// FilterBox is a one-line text input with a fixed label.
type FilterBox struct {
	core.BaseWidget
	Label      string
	Style      tcell.Style
	CaretStyle tcell.Style
	OnChange   func(text string)

	text  []rune
	caret int
	inv   func(core.Rect)
}

// NewFilterBox creates a filter input at the given position and width.
func NewFilterBox(x, y, w int, style tcell.Style) *FilterBox {
	fb := &FilterBox{
		Label:      "Filter: ",
		Style:      style,
		CaretStyle: style.Reverse(true),
	}
	fb.SetPosition(x, y)
	fb.Resize(w, 1)
	fb.SetFocusable(true)
	return fb
}

// SetInvalidator allows the UI manager to inject a dirty-region invalidator.
func (fb *FilterBox) SetInvalidator(fn func(core.Rect)) { fb.inv = fn }

func (fb *FilterBox) invalidate() {
	if fb.inv != nil {
		fb.inv(fb.Rect)
	}
}

// Text returns the current input text.
func (fb *FilterBox) Text() string { return string(fb.text) }

// SetText replaces the input text without firing OnChange.
func (fb *FilterBox) SetText(s string) {
	fb.text = []rune(s)
	fb.caret = len(fb.text)
	fb.invalidate()
}

func (fb *FilterBox) changed() {
	fb.invalidate()
	if fb.OnChange != nil {
		fb.OnChange(string(fb.text))
	}
}

// HandleKey edits the input. Esc clears it.
func (fb *FilterBox) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		fb.text = append(fb.text[:fb.caret], append([]rune{ev.Rune()}, fb.text[fb.caret:]...)...)
		fb.caret++
		fb.changed()
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if fb.caret > 0 {
			fb.text = append(fb.text[:fb.caret-1], fb.text[fb.caret:]...)
			fb.caret--
			fb.changed()
		}
		return true
	case tcell.KeyDelete:
		if fb.caret < len(fb.text) {
			fb.text = append(fb.text[:fb.caret], fb.text[fb.caret+1:]...)
			fb.changed()
		}
		return true
	case tcell.KeyLeft:
		if fb.caret > 0 {
			fb.caret--
			fb.invalidate()
		}
		return true
	case tcell.KeyRight:
		if fb.caret < len(fb.text) {
			fb.caret++
			fb.invalidate()
		}
		return true
	case tcell.KeyHome:
		fb.caret = 0
		fb.invalidate()
		return true
	case tcell.KeyEnd:
		fb.caret = len(fb.text)
		fb.invalidate()
		return true
	case tcell.KeyCtrlU:
		if len(fb.text) > 0 {
			fb.text = nil
			fb.caret = 0
			fb.changed()
		}
		return true
	case tcell.KeyEscape:
		if len(fb.text) > 0 {
			fb.text = nil
			fb.caret = 0
			fb.changed()
			return true
		}
	}
	return false
}

// Draw renders the label, text and caret.
func (fb *FilterBox) Draw(p *core.Painter) {
	r := fb.Rect
	p.Fill(r, ' ', fb.Style)
	p.DrawText(r.X, r.Y, fb.Label, r.W, fb.Style)

	tx := r.X + len(fb.Label)
	avail := r.W - len(fb.Label)
	if avail <= 0 {
		return
	}
	p.DrawText(tx, r.Y, string(fb.text), avail, fb.Style)

	if fb.IsFocused() && fb.caret <= avail-1 {
		ch := ' '
		if fb.caret < len(fb.text) {
			ch = fb.text[fb.caret]
		}
		p.SetCell(tx+fb.caret, r.Y, ch, fb.CaretStyle)
	}
}
