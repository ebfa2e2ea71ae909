// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/core/manager.go
// Summary: Owns the widget tree, routes key and mouse input, tracks focus,
// and composes the widgets into a cell framebuffer for the screen driver.

package core

import "github.com/gdamore/tcell/v2"

// Manager composes a flat widget list into a framebuffer. The frontend is
// single-threaded: input routing, invalidation and rendering all happen on
// the event-loop goroutine.
type Manager struct {
	W, H    int
	widgets []Widget
	bgStyle tcell.Style
	focused Widget
	buf     [][]Cell
	dirty   bool
}

// NewManager creates an empty manager with the given background style.
func NewManager(bg tcell.Style) *Manager {
	return &Manager{bgStyle: bg, dirty: true}
}

// AddWidget appends a widget; later widgets draw on top.
func (m *Manager) AddWidget(w Widget) {
	m.widgets = append(m.widgets, w)
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(m.Invalidate)
	}
	m.dirty = true
}

// Resize updates the surface dimensions and invalidates everything.
func (m *Manager) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	m.W, m.H = w, h
	m.buf = nil
	m.dirty = true
}

// Focus moves focus to w if it is focusable.
func (m *Manager) Focus(w Widget) {
	if w == nil || !w.Focusable() || m.focused == w {
		return
	}
	if m.focused != nil {
		m.focused.Blur()
	}
	m.focused = w
	m.focused.Focus()
	m.dirty = true
}

// Focused returns the widget holding focus, if any.
func (m *Manager) Focused() Widget { return m.focused }

// Invalidate marks a region dirty. Composition is cheap at terminal sizes,
// so any invalidation schedules a full recompose.
func (m *Manager) Invalidate(Rect) { m.dirty = true }

// Dirty reports whether a recompose is pending.
func (m *Manager) Dirty() bool { return m.dirty }

// HandleKey routes a key to the focused widget, falling back to Tab focus
// cycling between root widgets.
func (m *Manager) HandleKey(ev *tcell.EventKey) bool {
	if m.focused != nil && m.focused.HandleKey(ev) {
		m.dirty = true
		return true
	}
	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		m.cycleFocus(ev.Key() == tcell.KeyTab)
		return true
	}
	return false
}

func (m *Manager) cycleFocus(forward bool) {
	n := len(m.widgets)
	if n == 0 {
		return
	}
	cur := -1
	for i, w := range m.widgets {
		if w == m.focused {
			cur = i
			break
		}
	}
	for off := 1; off <= n; off++ {
		var idx int
		if forward {
			idx = (cur + off) % n
		} else {
			idx = (cur - off + n*2) % n
		}
		if m.widgets[idx].Focusable() {
			m.Focus(m.widgets[idx])
			return
		}
	}
}

// HandleMouse routes a mouse event to the widget under the cursor. A press
// also moves focus there.
func (m *Manager) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	for i := len(m.widgets) - 1; i >= 0; i-- {
		w := m.widgets[i]
		if !w.HitTest(x, y) {
			continue
		}
		if ev.Buttons()&tcell.Button1 != 0 {
			m.Focus(w)
		}
		if mw, ok := w.(MouseAware); ok && mw.HandleMouse(ev) {
			m.dirty = true
			return true
		}
		return false
	}
	return false
}

func (m *Manager) ensureBuffer() {
	if m.buf != nil && len(m.buf) == m.H && (m.H == 0 || len(m.buf[0]) == m.W) {
		return
	}
	m.buf = make([][]Cell, m.H)
	for y := 0; y < m.H; y++ {
		row := make([]Cell, m.W)
		for x := 0; x < m.W; x++ {
			row[x] = Cell{Ch: ' ', Style: m.bgStyle}
		}
		m.buf[y] = row
	}
}

// Render recomposes the frame if dirty and returns the framebuffer.
func (m *Manager) Render() [][]Cell {
	m.ensureBuffer()
	if !m.dirty {
		return m.buf
	}
	m.dirty = false

	full := Rect{X: 0, Y: 0, W: m.W, H: m.H}
	p := NewPainter(m.buf, full)
	p.Fill(full, ' ', m.bgStyle)
	for _, w := range m.widgets {
		w.Draw(p)
	}
	return m.buf
}
