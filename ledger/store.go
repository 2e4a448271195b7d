/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ledger

import "context"

// Store is the minimal tabular-store surface the reconciler needs. All
// calls hit a remote ledger and may block; implementations carry their
// own auth and retry policy. Errors must include enough context (ledger
// id, sheet, range) to diagnose a failed call without the caller adding
// it back.
type Store interface {
	// ListSheetTitles returns the titles of all sheets in the ledger.
	ListSheetTitles(ctx context.Context, ledgerID string) ([]string, error)

	// CreateSheet adds an empty sheet with the given grid size.
	CreateSheet(ctx context.Context, ledgerID, title string, rows, cols int64) error

	// ReadRange returns the cell matrix for an A1-style range. Trailing
	// empty rows and columns are omitted, matching remote semantics.
	ReadRange(ctx context.Context, ledgerID, sheetTitle, rangeSpec string) ([][]string, error)

	// WriteRange writes a cell matrix anchored at the range's first cell.
	WriteRange(ctx context.Context, ledgerID, sheetTitle, rangeSpec string, values [][]string) error

	// AppendRows appends rows after the last non-empty row of the table
	// region addressed by columnSpec.
	AppendRows(ctx context.Context, ledgerID, sheetTitle, columnSpec string, rows [][]string) error

	// BatchWrite applies all writes in one request.
	BatchWrite(ctx context.Context, ledgerID string, writes []RangeWrite) error
}

// RangeWrite is one write in a batch: a cell matrix anchored at a range
// within a named sheet.
type RangeWrite struct {
	SheetTitle string
	RangeSpec  string
	Values     [][]string
}
