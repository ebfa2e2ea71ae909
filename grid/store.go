// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/store.go
// Summary: Sparse row store addressed by absolute position, with explicit holes.
// Rows arrive out of band in batches; unfilled slots stay distinguishable from
// loaded rows so the renderer can show placeholders.

package grid

// Row is a single dataset record. Rows are produced only by a batch source
// and are never mutated after creation.
type Row struct {
	ID    int
	Name  string
	Email string
}

// Store holds up to N rows addressed by absolute index 0..N-1. A nil slot is
// a hole. Slots only transition hole -> filled via PutRange; Reorder is the
// one operation allowed to relocate or clear filled slots.
type Store struct {
	slots  []*Row
	loaded int
}

// NewStore creates an empty store for a dataset of total rows.
func NewStore(total int) *Store {
	if total < 0 {
		total = 0
	}
	return &Store{slots: make([]*Row, total)}
}

// Len returns the fixed dataset size N.
func (s *Store) Len() int { return len(s.slots) }

// Get returns the row at the absolute index and whether the slot is filled.
// Indexing outside [0, N) is a caller bug and panics like any slice access.
func (s *Store) Get(index int) (Row, bool) {
	r := s.slots[index]
	if r == nil {
		return Row{}, false
	}
	return *r, true
}

// Has reports whether the slot at index is filled.
func (s *Store) Has(index int) bool {
	return index >= 0 && index < len(s.slots) && s.slots[index] != nil
}

// PutRange writes rows[i] to startIndex+i, overwriting existing slots.
// Writes past the end of the store are discarded. Calling twice with the
// same data is idempotent.
func (s *Store) PutRange(startIndex int, rows []Row) {
	for i := range rows {
		idx := startIndex + i
		if idx < 0 || idx >= len(s.slots) {
			continue
		}
		if s.slots[idx] == nil {
			s.loaded++
		}
		r := rows[i]
		s.slots[idx] = &r
	}
}

// LoadedCount returns the number of filled slots. Maintained incrementally.
func (s *Store) LoadedCount() int { return s.loaded }

// Loaded returns all filled rows in index order, holes skipped.
func (s *Store) Loaded() []Row {
	out := make([]Row, 0, s.loaded)
	for _, r := range s.slots {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// Reorder replaces the store contents by writing rows back starting at index
// 0. When compact is true, every trailing slot beyond the written sequence is
// cleared to a hole; this is how a full re-sort pushes holes to the tail.
// When compact is false, trailing slots are left untouched.
func (s *Store) Reorder(rows []Row, compact bool) {
	n := len(rows)
	if n > len(s.slots) {
		n = len(s.slots)
	}
	for i := 0; i < n; i++ {
		if s.slots[i] == nil {
			s.loaded++
		}
		r := rows[i]
		s.slots[i] = &r
	}
	if compact {
		for i := n; i < len(s.slots); i++ {
			if s.slots[i] != nil {
				s.loaded--
				s.slots[i] = nil
			}
		}
	}
}
