/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ledger

import (
	"context"
	"fmt"
)

// Header labels of the two fixed leading columns on every patient sheet.
const (
	AnalyteHeader   = "Показатель"
	ReferenceHeader = "Референс"
)

// Grid size for newly provisioned sheets. Enough for years of sample
// dates; the store grows rows on append anyway.
const (
	sheetRows = 2000
	sheetCols = 50
)

// ensureSheet creates the patient sheet and its header row when the
// ledger has no sheet with that exact title. Reports whether a sheet was
// created; a header write failure after a successful create still
// reports true so callers know the sheet exists.
func (r *Reconciler) ensureSheet(ctx context.Context, ledgerID, title string) (bool, error) {
	titles, err := r.store.ListSheetTitles(ctx, ledgerID)
	if err != nil {
		return false, fmt.Errorf("listing sheets: %w", err)
	}

	for _, t := range titles {
		if t == title {
			return false, nil
		}
	}

	if err := r.store.CreateSheet(ctx, ledgerID, title, sheetRows, sheetCols); err != nil {
		return false, fmt.Errorf("creating sheet %q: %w", title, err)
	}

	header := [][]string{{AnalyteHeader, ReferenceHeader}}
	if err := r.store.WriteRange(ctx, ledgerID, title, "A1:B1", header); err != nil {
		return true, fmt.Errorf("writing header of sheet %q: %w", title, err)
	}

	return true, nil
}
