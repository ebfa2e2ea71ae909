// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/state.go
// Summary: Sort and filter value state plus the row comparison and matching
// rules. Pure data consumed by the view reconciler; mutated only by explicit
// user actions (filter input, header click).

package grid

import (
	"sort"
	"strings"
)

// Column identifies a sortable row column.
type Column int

const (
	ColumnID Column = iota
	ColumnName
	ColumnEmail
)

// String returns the column's display name.
func (c Column) String() string {
	switch c {
	case ColumnID:
		return "id"
	case ColumnName:
		return "name"
	case ColumnEmail:
		return "email"
	}
	return "unknown"
}

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// SortState is the active sort key and direction.
type SortState struct {
	Key Column
	Dir Direction
}

// Toggle applies a header click: clicking the active column flips the
// direction, clicking a new column selects it ascending.
func (s *SortState) Toggle(col Column) {
	if s.Key == col {
		if s.Dir == Asc {
			s.Dir = Desc
		} else {
			s.Dir = Asc
		}
		return
	}
	s.Key = col
	s.Dir = Asc
}

// State is the full filter/sort value state.
type State struct {
	FilterText string
	Sort       SortState
}

// Filtering reports whether the trimmed filter text is non-empty, i.e.
// whether the view is in filtering mode. The two modes address rows in
// unrelated index spaces, so this is a true mode switch for callers.
func (s State) Filtering() bool {
	return strings.TrimSpace(s.FilterText) != ""
}

// Matches reports whether the row's name or email contains the trimmed
// filter text, case-insensitively. An empty filter matches everything.
func (s State) Matches(r Row) bool {
	needle := strings.ToLower(strings.TrimSpace(s.FilterText))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Email), needle)
}

// less orders two rows by key, ascending. ID compares numerically; name and
// email compare as case-sensitive byte-wise strings, locale-independent.
func less(a, b Row, key Column) bool {
	switch key {
	case ColumnID:
		return a.ID < b.ID
	case ColumnName:
		return a.Name < b.Name
	default:
		return a.Email < b.Email
	}
}

// SortRows sorts rows in place by the given state. The sort is stable so
// equal keys keep their relative order across repeated toggles.
func SortRows(rows []Row, st SortState) {
	sort.SliceStable(rows, func(i, j int) bool {
		if st.Dir == Desc {
			return less(rows[j], rows[i], st.Key)
		}
		return less(rows[i], rows[j], st.Key)
	})
}
