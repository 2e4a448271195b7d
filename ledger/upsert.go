/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ledger

import (
	"context"
	"fmt"

	"github.com/humaidq/labwave/report"
)

// upsertValues writes every analyte value into the intersection of its
// row and the resolved date column. Column A is re-read immediately
// before writing so rows appended by a concurrent writer since
// reconciliation are honored rather than duplicated. Names still missing
// a row are appended inline in one call, then all cell writes flush as
// one batch. When the batch is rejected the writes degrade to per-cell
// calls so sibling analytes still commit; per-cell failures come back in
// the CellWriteError slice.
func (r *Reconciler) upsertValues(ctx context.Context, ledgerID, sheet, column string, analytes []report.Analyte) (int, []CellWriteError, error) {
	if len(analytes) == 0 {
		return 0, nil, nil
	}

	colA, err := r.store.ReadRange(ctx, ledgerID, sheet, "A:A")
	if err != nil {
		return 0, nil, fmt.Errorf("reading analyte rows before write: %w", err)
	}

	rowByName := make(map[string]int, len(colA))
	for i, row := range colA {
		if len(row) == 0 {
			continue
		}

		key := normalizeName(row[0])
		if _, ok := rowByName[key]; !ok {
			rowByName[key] = i + 1
		}
	}

	var stragglers [][]string
	nextRow := len(colA) + 1

	for _, a := range analytes {
		key := normalizeName(a.Name)
		if _, ok := rowByName[key]; ok {
			continue
		}

		rowByName[key] = nextRow
		nextRow++
		stragglers = append(stragglers, []string{a.Name, ""})
	}

	if len(stragglers) > 0 {
		if err := r.store.AppendRows(ctx, ledgerID, sheet, "A:B", stragglers); err != nil {
			return 0, nil, fmt.Errorf("appending %d late analyte rows: %w", len(stragglers), err)
		}
	}

	writes := make([]RangeWrite, 0, len(analytes))
	for _, a := range analytes {
		cell := fmt.Sprintf("%s%d", column, rowByName[normalizeName(a.Name)])
		writes = append(writes, RangeWrite{
			SheetTitle: sheet,
			RangeSpec:  cell,
			Values:     [][]string{{a.Value}},
		})
	}

	if err := r.store.BatchWrite(ctx, ledgerID, writes); err == nil {
		return len(writes), nil, nil
	}

	return r.writeCellsIndividually(ctx, ledgerID, analytes, writes)
}

// writeCellsIndividually is the degraded path after a rejected batch:
// one write per cell, collecting failures instead of stopping at the
// first. When not a single cell commits the store itself is down and the
// first error propagates.
func (r *Reconciler) writeCellsIndividually(ctx context.Context, ledgerID string, analytes []report.Analyte, writes []RangeWrite) (int, []CellWriteError, error) {
	var (
		written int
		failed  []CellWriteError
	)

	for i, w := range writes {
		err := r.store.WriteRange(ctx, ledgerID, w.SheetTitle, w.RangeSpec, w.Values)
		if err == nil {
			written++
			continue
		}

		failed = append(failed, CellWriteError{
			Analyte: analytes[i].Name,
			Cell:    w.RangeSpec,
			Err:     err,
		})
	}

	if written == 0 && len(failed) > 0 {
		return 0, failed, fmt.Errorf("writing values: %w", failed[0].Err)
	}

	return written, failed, nil
}
