/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ledger

import (
	"context"
	"fmt"
)

// resolveColumn returns the column letter holding the given sample date
// in the header row, writing the date into the next free header cell
// when absent. Dates are compared by exact string match, so the column
// count stays stable across repeated documents for the same date.
// Reports whether a new column was claimed.
func (r *Reconciler) resolveColumn(ctx context.Context, ledgerID, sheet, date string) (string, bool, error) {
	header, err := r.store.ReadRange(ctx, ledgerID, sheet, "1:1")
	if err != nil {
		return "", false, fmt.Errorf("reading header row: %w", err)
	}

	var cells []string
	if len(header) > 0 {
		cells = header[0]
	}

	for i, cell := range cells {
		if cell == date {
			return ColumnLetter(i + 1), false, nil
		}
	}

	col := ColumnLetter(len(cells) + 1)
	if err := r.store.WriteRange(ctx, ledgerID, sheet, col+"1", [][]string{{date}}); err != nil {
		return "", false, fmt.Errorf("claiming header column %s for %q: %w", col, date, err)
	}

	return col, true, nil
}
