// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeltable-seed/main.go
// Summary: Creates and populates the demo SQLite database for the sqlite
// batch source.
// Usage: texeltable-seed [-db file] [-rows n]

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"texeltable/source"
)

func main() {
	fs := flag.NewFlagSet("texeltable-seed", flag.ExitOnError)
	dbPath := fs.String("db", "texeltable.db", "SQLite database path")
	rows := fs.Int("rows", 10000, "Number of rows to generate")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if *rows < 0 {
		log.Fatalf("rows must be >= 0, got %d", *rows)
	}

	if err := source.Seed(context.Background(), *dbPath, *rows); err != nil {
		log.Fatalf("seed %s: %v", *dbPath, err)
	}
	fmt.Printf("seeded %d rows into %s\n", *rows, *dbPath)
}
