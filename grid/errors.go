// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/errors.go
// Summary: Error values for the windowed data engine.

package grid

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a batch request starts at or beyond the
// dataset size. This is a programmer error; no source call is made.
var ErrOutOfRange = errors.New("grid: batch request out of range")

// FetchError wraps a batch source failure. A failed fetch clears the
// in-flight gate so a later request can retry; the affected range stays
// holes.
//
// The underlying source error is available via errors.Unwrap.
type FetchError struct {
	Start int
	Count int
	cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("grid: fetch of [%d,%d) failed: %v", e.Start, e.Start+e.Count, e.cause)
}

func (e *FetchError) Unwrap() error { return e.cause }
