/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ledger

import (
	"context"
	"fmt"
	"strings"
)

// ensureRows guarantees one row per analyte name, matched against the
// existing column-A values case-insensitively with surrounding
// whitespace ignored. All missing names are appended as [name, ""] rows
// in one call, in request order. Returns the names actually added.
func (r *Reconciler) ensureRows(ctx context.Context, ledgerID, sheet string, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	existing, err := r.store.ReadRange(ctx, ledgerID, sheet, "A:A")
	if err != nil {
		return nil, fmt.Errorf("reading analyte rows: %w", err)
	}

	seen := make(map[string]bool, len(existing))
	for _, row := range existing {
		if len(row) > 0 {
			seen[normalizeName(row[0])] = true
		}
	}

	var (
		added   []string
		missing [][]string
	)

	for _, name := range names {
		key := normalizeName(name)
		if seen[key] {
			continue
		}

		seen[key] = true
		added = append(added, name)
		missing = append(missing, []string{name, ""})
	}

	if len(missing) == 0 {
		return nil, nil
	}

	if err := r.store.AppendRows(ctx, ledgerID, sheet, "A:B", missing); err != nil {
		return nil, fmt.Errorf("appending %d analyte rows: %w", len(missing), err)
	}

	return added, nil
}

// normalizeName is the row-matching key: analyte names differing only in
// case or surrounding whitespace share one row.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
