// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Startup configuration for the table viewer. JSON file merged over
// built-in defaults; a missing or broken file falls back to defaults with a
// logged warning.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Config holds the startup constants of the viewer.
type Config struct {
	// TotalRows is the fixed dataset size N.
	TotalRows int `json:"total_rows"`
	// BatchSize is the number of rows per fetch.
	BatchSize int `json:"batch_size"`
	// PrefetchThreshold is the lookahead, in rows, at which the next batch
	// boundary is requested.
	PrefetchThreshold int `json:"prefetch_threshold"`
	// Overscan is the extra rows computed beyond the viewport.
	Overscan int `json:"overscan"`
	// RowHeight is the height of one row in layout units.
	RowHeight int `json:"row_height"`
	// FetchDelayMs is the simulated source's response delay.
	FetchDelayMs int `json:"fetch_delay_ms"`
	// Source selects the backend: "sim" or "sqlite".
	Source string `json:"source"`
	// Database is the SQLite file path for the sqlite source.
	Database string `json:"database"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TotalRows:         10000,
		BatchSize:         200,
		PrefetchThreshold: 20,
		Overscan:          5,
		RowHeight:         1,
		FetchDelayMs:      300,
		Source:            "sim",
		Database:          "texeltable.db",
	}
}

// Load reads the config file at path over the defaults. An empty path or a
// missing file returns defaults silently; a malformed file logs and returns
// defaults.
func Load(path string) Config {
	cfg := Default()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Config: failed to read %s: %v", path, err)
		}
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Config: failed to parse %s: %v, using defaults", path, err)
		return Default()
	}
	return cfg
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.TotalRows < 0 {
		return fmt.Errorf("config: total_rows must be >= 0, got %d", c.TotalRows)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("config: batch_size must be > 0, got %d", c.BatchSize)
	}
	if c.RowHeight <= 0 {
		return fmt.Errorf("config: row_height must be > 0, got %d", c.RowHeight)
	}
	if c.PrefetchThreshold < 0 {
		return fmt.Errorf("config: prefetch_threshold must be >= 0, got %d", c.PrefetchThreshold)
	}
	if c.Overscan < 0 {
		return fmt.Errorf("config: overscan must be >= 0, got %d", c.Overscan)
	}
	switch c.Source {
	case "sim", "sqlite":
	default:
		return fmt.Errorf("config: unknown source %q", c.Source)
	}
	return nil
}
