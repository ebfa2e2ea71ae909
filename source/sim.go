// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/sim.go
// Summary: Simulated batch source. Stands in for a slow remote backend by
// serving deterministic rows after a fixed delay.

package source

import (
	"context"
	"fmt"
	"time"

	"texeltable/grid"
)

// Simulated serves generated rows after Delay. Row identity is deterministic:
// the row at absolute index i has ID i+1, name "User <id>" and email
// "user<id>@example.com".
type Simulated struct {
	Delay time.Duration
}

// NewSimulated creates a simulated source with the given response delay.
func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{Delay: delay}
}

// FetchRows returns count generated rows starting at startIndex once the
// simulated delay elapses, or earlier if the context is cancelled.
func (s *Simulated) FetchRows(ctx context.Context, startIndex, count int) ([]grid.Row, error) {
	if startIndex < 0 || count < 0 {
		return nil, fmt.Errorf("source: invalid range [%d,%d)", startIndex, startIndex+count)
	}
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	rows := make([]grid.Row, count)
	for i := range rows {
		id := startIndex + i + 1
		rows[i] = grid.Row{
			ID:    id,
			Name:  fmt.Sprintf("User %d", id),
			Email: fmt.Sprintf("user%d@example.com", id),
		}
	}
	return rows, nil
}
