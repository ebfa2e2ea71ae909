// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeltable/main.go
// Summary: Terminal viewer for very large datasets. Wires a batch source,
// the windowed data engine and the table UI into a tcell event loop.
// Usage: texeltable [-config file] [-source sim|sqlite] [-db file] [-rows n]

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"texeltable/config"
	"texeltable/grid"
	"texeltable/source"
	"texeltable/ui/core"
	"texeltable/ui/widgets"
)

// callbackEvent carries a fetch completion into the tcell event queue so it
// runs on the UI goroutine.
type callbackEvent struct {
	tcell.EventTime
	fn func()
}

func newCallbackEvent(fn func()) *callbackEvent {
	ev := &callbackEvent{fn: fn}
	ev.SetEventNow()
	return ev
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texeltable", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to JSON config file")
	srcKind := fs.String("source", "", "Batch source: sim or sqlite")
	dbPath := fs.String("db", "", "SQLite database path (sqlite source)")
	rows := fs.Int("rows", 0, "Dataset size N (sim source)")
	delay := fs.Int("delay", -1, "Simulated fetch delay in milliseconds")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg := config.Load(*cfgPath)
	if *srcKind != "" {
		cfg.Source = *srcKind
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}
	if *rows > 0 {
		cfg.TotalRows = *rows
	}
	if *delay >= 0 {
		cfg.FetchDelayMs = *delay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("texeltable must run on a terminal")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var src grid.Source
	total := cfg.TotalRows
	switch cfg.Source {
	case "sqlite":
		db, err := source.OpenSQLite(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		// The dataset size is whatever the database holds.
		n, err := db.Count(ctx)
		if err != nil {
			return err
		}
		src, total = db, n
	default:
		src = source.NewSimulated(time.Duration(cfg.FetchDelayMs) * time.Millisecond)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	style := tcell.StyleDefault
	manager := core.NewManager(style)

	engine := grid.NewEngine(ctx, grid.Config{
		TotalRows:         total,
		RowHeight:         cfg.RowHeight,
		BatchSize:         cfg.BatchSize,
		PrefetchThreshold: cfg.PrefetchThreshold,
		Overscan:          cfg.Overscan,
	}, src, func(fn func()) {
		screen.PostEventWait(newCallbackEvent(fn))
	})

	w, h := screen.Size()
	filter := widgets.NewFilterBox(0, 0, w, style)
	table := widgets.NewTable(engine, 0, 1, w, h-1, style)
	filter.OnChange = engine.SetFilter
	engine.SetInvalidator(func() {
		manager.Invalidate(core.Rect{X: 0, Y: 0, W: manager.W, H: manager.H})
	})

	manager.Resize(w, h)
	manager.AddWidget(filter)
	manager.AddWidget(table)
	manager.Focus(table)

	engine.Start()

	layout := func(w, h int) {
		filter.SetPosition(0, 0)
		filter.Resize(w, 1)
		table.SetPosition(0, 1)
		table.Resize(w, h-1)
		manager.Resize(w, h)
	}

	for {
		if manager.Dirty() {
			blit(screen, manager.Render())
			screen.Show()
		}

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			layout(w, h)
			screen.Sync()
		case *tcell.EventKey:
			if manager.HandleKey(ev) {
				continue
			}
			switch {
			case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyEscape:
				return nil
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyRune && ev.Rune() == '/':
				manager.Focus(filter)
			}
		case *tcell.EventMouse:
			manager.HandleMouse(ev)
		case *callbackEvent:
			ev.fn()
		}
	}
}

// blit copies the composed framebuffer to the terminal.
func blit(screen tcell.Screen, buf [][]core.Cell) {
	for y, row := range buf {
		for x, c := range row {
			screen.SetContent(x, y, c.Ch, nil, c.Style)
		}
	}
}
