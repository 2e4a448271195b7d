/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package ledger reconciles extracted lab records onto per-patient
// sheets in an external tabular store. Each patient gets one sheet,
// analyte names map to rows exactly once under case-insensitive
// matching, sample dates map to header columns exactly once under exact
// matching, and values land at the intersections. Rows and columns are
// append-only; the reconciler never reorders or deletes anything.
//
// Store access is batched to a small constant number of round trips per
// document regardless of analyte count. The store offers no transactions
// across those calls, so the reconciler tracks which sub-steps committed
// and reports them alongside any failure instead of rolling back.
package ledger

import (
	"context"
	"fmt"

	"github.com/humaidq/labwave/report"
)

// Reconciler applies extracted records to a ledger through a Store.
type Reconciler struct {
	store Store
}

// NewReconciler returns a reconciler backed by the given store.
func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// ApplyResult reports what one Apply call committed. When Apply also
// returns an error the zero-valued fields mark the sub-steps that never
// ran; nothing already committed is rolled back.
type ApplyResult struct {
	// SheetTitle is the patient sheet the record mapped to.
	SheetTitle string
	// SheetCreated reports whether the sheet was provisioned this call.
	SheetCreated bool
	// AddedRows lists analyte names appended as new rows, in order.
	AddedRows []string
	// Column is the letter of the sample-date column.
	Column string
	// ColumnCreated reports whether the date claimed a new column.
	ColumnCreated bool
	// CellsWritten counts value cells successfully written.
	CellsWritten int
	// Failed lists cells that could not be written after the batch
	// degraded to per-cell writes.
	Failed []CellWriteError
}

// Apply reconciles one extracted record: the patient sheet and its
// header exist afterwards, every analyte has exactly one row, the sample
// date has exactly one column, and each value sits at its intersection.
// A record with no analytes still provisions the sheet and date column.
//
// Store failures abort the remaining steps and surface with the
// partially filled result. A batch rejection alone does not fail the
// apply; the error is ErrPartialWrite when only some cells committed.
func (r *Reconciler) Apply(ctx context.Context, ledgerID string, rec *report.Record) (*ApplyResult, error) {
	sheet := rec.PatientName
	res := &ApplyResult{SheetTitle: sheet}

	created, err := r.ensureSheet(ctx, ledgerID, sheet)
	res.SheetCreated = created
	if err != nil {
		return res, &StepError{Step: StepSheet, Err: err}
	}

	names := make([]string, 0, len(rec.Analytes))
	for _, a := range rec.Analytes {
		names = append(names, a.Name)
	}

	added, err := r.ensureRows(ctx, ledgerID, sheet, names)
	res.AddedRows = added
	if err != nil {
		return res, &StepError{Step: StepRows, Err: err}
	}

	column, columnCreated, err := r.resolveColumn(ctx, ledgerID, sheet, rec.SampleDate)
	res.Column = column
	res.ColumnCreated = columnCreated
	if err != nil {
		return res, &StepError{Step: StepColumn, Err: err}
	}

	written, failed, err := r.upsertValues(ctx, ledgerID, sheet, column, rec.Analytes)
	res.CellsWritten = written
	res.Failed = failed
	if err != nil {
		return res, &StepError{Step: StepValues, Err: err}
	}

	if len(failed) > 0 {
		return res, fmt.Errorf("%w: %d of %d", ErrPartialWrite, len(failed), len(rec.Analytes))
	}

	return res, nil
}
