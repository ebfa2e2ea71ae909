// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/table.go
// Summary: Virtualized table widget. Renders the data engine's reconciled
// frame: sortable column headers, loaded rows, skeleton placeholders for
// holes, the no-results entry, scroll indicators and a status line.

package widgets

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"texeltable/grid"
	"texeltable/ui/core"
)

// Scroll indicator glyphs, shown at the right edge of the body when content
// continues beyond the viewport.
const (
	indicatorUp   = '▲'
	indicatorDown = '▼'
)

const noResultsText = "no matching rows"

// column describes one rendered column.
type column struct {
	title string
	key   grid.Column
	x     int
	w     int
}

// Table renders a grid.Engine frame. Layout per widget row: one header
// line, the scrolling body, one status line.
type Table struct {
	core.BaseWidget
	Style       tcell.Style
	HeaderStyle tcell.Style
	HoleStyle   tcell.Style
	StatusStyle tcell.Style

	engine *grid.Engine
}

// NewTable creates a table over engine.
func NewTable(engine *grid.Engine, x, y, w, h int, style tcell.Style) *Table {
	t := &Table{
		Style:       style,
		HeaderStyle: style.Bold(true).Reverse(true),
		HoleStyle:   style.Dim(true),
		StatusStyle: style.Dim(true),
		engine:      engine,
	}
	t.SetPosition(x, y)
	t.SetFocusable(true)
	t.Resize(w, h)
	return t
}

// bodyHeight is the row viewport: widget height minus header and status.
func (t *Table) bodyHeight() int {
	h := t.Rect.H - 2
	if h < 0 {
		h = 0
	}
	return h
}

// Resize updates widget geometry and pushes the new viewport height into
// the engine.
func (t *Table) Resize(w, h int) {
	t.BaseWidget.Resize(w, h)
	t.engine.SetViewportHeight(t.bodyHeight())
}

// columns splits the widget width: fixed id column, the rest shared between
// name and email.
func (t *Table) columns() []column {
	idW := 8
	rest := t.Rect.W - idW
	if rest < 0 {
		rest = 0
	}
	nameW := rest / 2
	emailW := rest - nameW
	x := t.Rect.X
	return []column{
		{title: "id", key: grid.ColumnID, x: x, w: idW},
		{title: "name", key: grid.ColumnName, x: x + idW, w: nameW},
		{title: "email", key: grid.ColumnEmail, x: x + idW + nameW, w: emailW},
	}
}

// HandleKey maps scrolling keys onto engine offsets.
func (t *Table) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		t.engine.ScrollRows(-1)
		return true
	case tcell.KeyDown:
		t.engine.ScrollRows(1)
		return true
	case tcell.KeyPgUp:
		t.engine.ScrollRows(-t.bodyHeight())
		return true
	case tcell.KeyPgDn:
		t.engine.ScrollRows(t.bodyHeight())
		return true
	case tcell.KeyHome:
		t.engine.ScrollToTop()
		return true
	case tcell.KeyEnd:
		t.engine.ScrollToBottom()
		return true
	}
	return false
}

// HandleMouse scrolls on wheel events and toggles sort on header clicks.
func (t *Table) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !t.HitTest(x, y) {
		return false
	}

	switch ev.Buttons() {
	case tcell.WheelUp:
		t.engine.ScrollRows(-3)
		return true
	case tcell.WheelDown:
		t.engine.ScrollRows(3)
		return true
	}

	if ev.Buttons()&tcell.Button1 != 0 && y == t.Rect.Y {
		for _, c := range t.columns() {
			if x >= c.x && x < c.x+c.w {
				t.engine.ToggleSort(c.key)
				return true
			}
		}
	}
	return false
}

// Draw renders the header, the reconciled body and the status line.
func (t *Table) Draw(p *core.Painter) {
	r := t.Rect
	if r.Empty() {
		return
	}
	p.Fill(r, ' ', t.Style)

	frame := t.engine.Snapshot()
	cols := t.columns()

	t.drawHeader(p, cols, frame)
	t.drawBody(p, cols, frame)
	t.drawStatus(p, frame)
	t.drawIndicators(p, frame)
}

func (t *Table) drawHeader(p *core.Painter, cols []column, frame grid.Frame) {
	y := t.Rect.Y
	p.Fill(core.Rect{X: t.Rect.X, Y: y, W: t.Rect.W, H: 1}, ' ', t.HeaderStyle)
	for _, c := range cols {
		title := c.title
		if frame.Sort.Key == c.key {
			if frame.Sort.Dir == grid.Asc {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		p.DrawText(c.x+1, y, title, c.w-1, t.HeaderStyle)
	}
}

func (t *Table) drawBody(p *core.Painter, cols []column, frame grid.Frame) {
	bodyY := t.Rect.Y + 1
	bodyH := t.bodyHeight()
	scrollRow := t.engine.ScrollOffset()

	if frame.Filtering && frame.Total == 0 {
		// The reconciler yields exactly one explicit no-results entry.
		p.DrawText(t.Rect.X+1, bodyY, noResultsText, t.Rect.W-1, t.HoleStyle)
		return
	}

	for line := 0; line < bodyH; line++ {
		idx := scrollRow + line
		if idx >= frame.Total {
			break
		}
		pos := idx - frame.Window.Start
		if pos < 0 || pos >= len(frame.Entries) {
			continue
		}
		t.drawEntry(p, cols, bodyY+line, frame.Entries[pos])
	}
}

func (t *Table) drawEntry(p *core.Painter, cols []column, y int, e grid.Entry) {
	switch e.Kind {
	case grid.KindRow:
		for _, c := range cols {
			var text string
			switch c.key {
			case grid.ColumnID:
				text = strconv.Itoa(e.Row.ID)
			case grid.ColumnName:
				text = e.Row.Name
			default:
				text = e.Row.Email
			}
			p.DrawTextPadded(c.x+1, y, text, c.w-1, t.Style)
		}
	case grid.KindHole:
		// Skeleton placeholder: visually distinct from any real row.
		for _, c := range cols {
			for x := c.x + 1; x < c.x+c.w-1; x++ {
				p.SetCell(x, y, '░', t.HoleStyle)
			}
		}
	case grid.KindNoResults:
		p.DrawText(t.Rect.X+1, y, noResultsText, t.Rect.W-1, t.HoleStyle)
	}
}

func (t *Table) drawStatus(p *core.Painter, frame grid.Frame) {
	y := t.Rect.Y + t.Rect.H - 1
	status := fmt.Sprintf("%s/%s rows loaded",
		humanize.Comma(int64(frame.Loaded)), humanize.Comma(int64(t.engine.Store().Len())))
	if frame.Filtering {
		status += fmt.Sprintf(" · %s matches", humanize.Comma(int64(frame.Total)))
	}
	status += fmt.Sprintf(" · sort %s", frame.Sort.Key)
	if frame.InFlight {
		status += " · fetching…"
	}
	p.DrawTextPadded(t.Rect.X+1, y, status, t.Rect.W-1, t.StatusStyle)
}

func (t *Table) drawIndicators(p *core.Painter, frame grid.Frame) {
	x := t.Rect.X + t.Rect.W - 1
	bodyY := t.Rect.Y + 1
	bodyH := t.bodyHeight()
	scrollRow := t.engine.ScrollOffset()

	if scrollRow > 0 {
		p.SetCell(x, bodyY, indicatorUp, t.StatusStyle)
	}
	if scrollRow+bodyH < frame.Total {
		p.SetCell(x, bodyY+bodyH-1, indicatorDown, t.StatusStyle)
	}
}
