// Package schema implements the Header/Schema Mapper (C2): a flexible,
// case-insensitive mapping from input column headers to logical fields, with
// fallback columns and deterministic ambiguity resolution.
package schema

import "strings"

// FieldSpec describes how to locate one logical field in a header row: an
// ordered list of accepted substrings (first exact match wins, then first
// substring match) and a fallback column index used when no header matches.
type FieldSpec struct {
	Field    string
	Patterns []string
	Fallback int // -1 if there is no fallback
}

// Mapping is the resolved logical-field -> column-index table for one sheet.
type Mapping struct {
	columns map[string]int
}

// NotMapped is returned by Column for fields that could not be located and
// have no fallback.
const NotMapped = -1

// Column returns the resolved column index for a logical field, or
// NotMapped if it could not be located.
func (m Mapping) Column(field string) int {
	if idx, ok := m.columns[field]; ok {
		return idx
	}
	return NotMapped
}

// BuildMapping scans a header row against specs and produces a Mapping.
// Exact (case-insensitive, trimmed) matches against a pattern win over
// substring matches; among equal-quality matches, the earlier pattern wins,
// and for the same pattern the first column in scan order wins, making
// resolution deterministic.
func BuildMapping(header []string, specs []FieldSpec) Mapping {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	m := Mapping{columns: make(map[string]int, len(specs))}

	for _, spec := range specs {
		col := findColumn(normalized, spec.Patterns)
		if col == NotMapped {
			col = spec.Fallback
		}
		if col != NotMapped {
			m.columns[spec.Field] = col
		}
	}

	return m
}

func findColumn(normalized []string, patterns []string) int {
	// First pass: exact match, in pattern priority order then scan order.
	for _, pattern := range patterns {
		for colIdx, cell := range normalized {
			if cell == pattern {
				return colIdx
			}
		}
	}
	// Second pass: substring match, in pattern priority order then scan order.
	for _, pattern := range patterns {
		for colIdx, cell := range normalized {
			if cell != "" && strings.Contains(cell, pattern) {
				return colIdx
			}
		}
	}
	return NotMapped
}

// CellAt safely reads a row's value at idx, returning "" when the row is too
// short or idx is NotMapped.
func CellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
