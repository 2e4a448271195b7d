// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/humaidq/labwave/report"
)

const testLedgerID = "ledger-1"

func bloodRecord() *report.Record {
	return &report.Record{
		PatientName: "Иванов Петр Сергеевич",
		SampleDate:  "05.08.2025",
		Analytes: []report.Analyte{
			{Name: "Гемоглобин", Value: "155", Reference: "135–169"},
			{Name: "Глюкоза", Value: "5.4", Reference: "3,5–6,1"},
		},
	}
}

func TestApplyProvisionsSheetForNewPatient(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	rec := bloodRecord()

	res, err := NewReconciler(store).Apply(context.Background(), testLedgerID, rec)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !res.SheetCreated || res.SheetTitle != rec.PatientName {
		t.Fatalf("sheet provisioning: %+v", res)
	}

	if !reflect.DeepEqual(res.AddedRows, []string{"Гемоглобин", "Глюкоза"}) {
		t.Fatalf("added rows %q", res.AddedRows)
	}

	if res.Column != "C" || !res.ColumnCreated {
		t.Fatalf("column resolution: %+v", res)
	}

	if res.CellsWritten != 2 || len(res.Failed) != 0 {
		t.Fatalf("cell writes: %+v", res)
	}

	sheet := rec.PatientName
	cells := map[string]string{
		"A1": AnalyteHeader,
		"B1": ReferenceHeader,
		"C1": "05.08.2025",
		"A2": "Гемоглобин",
		"A3": "Глюкоза",
		"C2": "155",
		"C3": "5.4",
	}

	for ref, want := range cells {
		if got := store.cell(t, sheet, ref); got != want {
			t.Fatalf("cell %s = %q, want %q", ref, got, want)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := NewReconciler(store)
	ctx := context.Background()

	if _, err := r.Apply(ctx, testLedgerID, bloodRecord()); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}

	res, err := r.Apply(ctx, testLedgerID, bloodRecord())
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}

	if res.SheetCreated || res.ColumnCreated || len(res.AddedRows) != 0 {
		t.Fatalf("second apply must not grow the sheet: %+v", res)
	}

	if res.Column != "C" {
		t.Fatalf("column moved to %s", res.Column)
	}

	sheet := store.sheets[bloodRecord().PatientName]
	if sheet.lastRow() != 3 {
		t.Fatalf("row count grew to %d", sheet.lastRow())
	}

	if sheet.lastColInRow(1) != 3 {
		t.Fatalf("header grew to %d columns", sheet.lastColInRow(1))
	}
}

func TestApplyCaseInsensitiveRowMatch(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := NewReconciler(store)
	ctx := context.Background()

	first := &report.Record{
		PatientName: "Пациент",
		SampleDate:  "05.08.2025",
		Analytes:    []report.Analyte{{Name: "Глюкоза", Value: "5.1"}},
	}
	if _, err := r.Apply(ctx, testLedgerID, first); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}

	second := &report.Record{
		PatientName: "Пациент",
		SampleDate:  "06.08.2025",
		Analytes:    []report.Analyte{{Name: "глюкоза", Value: "5.8"}},
	}

	res, err := r.Apply(ctx, testLedgerID, second)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}

	if len(res.AddedRows) != 0 {
		t.Fatalf("case-variant name must reuse the row, added %q", res.AddedRows)
	}

	if res.Column != "D" || !res.ColumnCreated {
		t.Fatalf("new date column: %+v", res)
	}

	if got := store.cell(t, "Пациент", "A2"); got != "Глюкоза" {
		t.Fatalf("row name rewritten to %q", got)
	}

	if got := store.cell(t, "Пациент", "D2"); got != "5.8" {
		t.Fatalf("D2 = %q, want %q", got, "5.8")
	}

	if store.sheets["Пациент"].lastRow() != 2 {
		t.Fatalf("duplicate row created: %d rows", store.sheets["Пациент"].lastRow())
	}
}

func TestApplyNewDateGrowsHeader(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	ctx := context.Background()

	// Sheet with date columns already at C, D and E.
	if err := store.CreateSheet(ctx, testLedgerID, "Пациент", 100, 26); err != nil {
		t.Fatalf("CreateSheet failed: %v", err)
	}

	header := [][]string{{AnalyteHeader, ReferenceHeader, "01.06.2025", "02.06.2025", "03.06.2025"}}
	if err := store.WriteRange(ctx, testLedgerID, "Пациент", "A1:E1", header); err != nil {
		t.Fatalf("seeding header failed: %v", err)
	}

	rec := &report.Record{
		PatientName: "Пациент",
		SampleDate:  "04.06.2025",
		Analytes:    []report.Analyte{{Name: "СОЭ", Value: "12"}},
	}

	res, err := NewReconciler(store).Apply(ctx, testLedgerID, rec)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if res.Column != "F" || !res.ColumnCreated {
		t.Fatalf("expected new column F, got %+v", res)
	}

	if got := store.cell(t, "Пациент", "F1"); got != "04.06.2025" {
		t.Fatalf("F1 = %q", got)
	}

	if got := store.cell(t, "Пациент", "F2"); got != "12" {
		t.Fatalf("F2 = %q", got)
	}
}

func TestApplyExistingDateReusesColumn(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := NewReconciler(store)
	ctx := context.Background()

	if _, err := r.Apply(ctx, testLedgerID, bloodRecord()); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}

	update := &report.Record{
		PatientName: bloodRecord().PatientName,
		SampleDate:  "05.08.2025",
		Analytes:    []report.Analyte{{Name: "Гемоглобин", Value: "149"}},
	}

	res, err := r.Apply(ctx, testLedgerID, update)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}

	if res.Column != "C" || res.ColumnCreated {
		t.Fatalf("expected reuse of column C: %+v", res)
	}

	if got := store.cell(t, update.PatientName, "C2"); got != "149" {
		t.Fatalf("C2 = %q, want overwritten value", got)
	}
}

func TestApplyEmptyRecordStillProvisions(t *testing.T) {
	t.Parallel()

	store := newFakeStore()

	rec := &report.Record{PatientName: "Пациент", SampleDate: "05.08.2025"}

	res, err := NewReconciler(store).Apply(context.Background(), testLedgerID, rec)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !res.SheetCreated || !res.ColumnCreated || res.CellsWritten != 0 {
		t.Fatalf("empty record provisioning: %+v", res)
	}

	if got := store.cell(t, "Пациент", "C1"); got != "05.08.2025" {
		t.Fatalf("C1 = %q", got)
	}

	if store.appends != 0 {
		t.Fatalf("empty record appended rows: %d calls", store.appends)
	}
}

func TestApplyRoundTripsIndependentOfAnalyteCount(t *testing.T) {
	t.Parallel()

	small := bloodRecord()

	big := &report.Record{
		PatientName: small.PatientName,
		SampleDate:  small.SampleDate,
	}
	for i := range 12 {
		big.Analytes = append(big.Analytes, report.Analyte{
			Name:  fmt.Sprintf("Аналит %d", i+1),
			Value: fmt.Sprintf("%d", i+1),
		})
	}

	smallStore := newFakeStore()
	if _, err := NewReconciler(smallStore).Apply(context.Background(), testLedgerID, small); err != nil {
		t.Fatalf("small Apply failed: %v", err)
	}

	bigStore := newFakeStore()
	if _, err := NewReconciler(bigStore).Apply(context.Background(), testLedgerID, big); err != nil {
		t.Fatalf("big Apply failed: %v", err)
	}

	counts := func(f *fakeStore) [6]int {
		return [6]int{f.lists, f.creates, f.reads, f.writes, f.appends, f.batches}
	}

	if counts(smallStore) != counts(bigStore) {
		t.Fatalf("round trips depend on analyte count: %v vs %v", counts(smallStore), counts(bigStore))
	}
}

func TestApplyPartialWriteFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failBatch = true
	store.failCells = map[string]bool{"C3": true}

	res, err := NewReconciler(store).Apply(context.Background(), testLedgerID, bloodRecord())
	if !errors.Is(err, ErrPartialWrite) {
		t.Fatalf("expected ErrPartialWrite, got %v", err)
	}

	if res.CellsWritten != 1 || len(res.Failed) != 1 {
		t.Fatalf("partial result: %+v", res)
	}

	fail := res.Failed[0]
	if fail.Analyte != "Глюкоза" || fail.Cell != "C3" {
		t.Fatalf("failure context: %+v", fail)
	}

	if !errors.Is(fail, errFakeUnavailable) {
		t.Fatalf("failure cause lost: %v", fail)
	}

	// The sibling write committed.
	if got := store.cell(t, bloodRecord().PatientName, "C2"); got != "155" {
		t.Fatalf("C2 = %q", got)
	}
}

func TestApplyBatchRejectionDegradesToCellWrites(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failBatch = true

	res, err := NewReconciler(store).Apply(context.Background(), testLedgerID, bloodRecord())
	if err != nil {
		t.Fatalf("Apply failed despite per-cell fallback: %v", err)
	}

	if res.CellsWritten != 2 || len(res.Failed) != 0 {
		t.Fatalf("fallback result: %+v", res)
	}

	if got := store.cell(t, bloodRecord().PatientName, "C3"); got != "5.4" {
		t.Fatalf("C3 = %q", got)
	}
}

func TestApplyAllCellWritesFailing(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failBatch = true
	store.failCells = map[string]bool{"C2": true, "C3": true}

	res, err := NewReconciler(store).Apply(context.Background(), testLedgerID, bloodRecord())
	if err == nil || errors.Is(err, ErrPartialWrite) {
		t.Fatalf("expected a store error, got %v", err)
	}

	if !errors.Is(err, errFakeUnavailable) {
		t.Fatalf("store cause lost: %v", err)
	}

	if got := FailedStep(err); got != StepValues {
		t.Fatalf("FailedStep = %q, want %q", got, StepValues)
	}

	if res.CellsWritten != 0 {
		t.Fatalf("no cell should commit: %+v", res)
	}
}

func TestFailedStepNonApplyError(t *testing.T) {
	t.Parallel()

	if got := FailedStep(errFakeUnavailable); got != "" {
		t.Fatalf("FailedStep = %q, want empty", got)
	}
}

func TestApplyReportsCommittedStepsOnFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failReads = map[string]bool{"1:1": true}

	res, err := NewReconciler(store).Apply(context.Background(), testLedgerID, bloodRecord())
	if !errors.Is(err, errFakeUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}

	if got := FailedStep(err); got != StepColumn {
		t.Fatalf("FailedStep = %q, want %q", got, StepColumn)
	}

	// The sheet and rows committed before the header read failed, and the
	// result says so; nothing is rolled back.
	if !res.SheetCreated || len(res.AddedRows) != 2 {
		t.Fatalf("committed steps lost: %+v", res)
	}

	if res.Column != "" || res.CellsWritten != 0 {
		t.Fatalf("unreached steps reported as committed: %+v", res)
	}
}

func TestUpsertAppendsRowForUnreconciledName(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	ctx := context.Background()

	if err := store.CreateSheet(ctx, testLedgerID, "Пациент", 100, 26); err != nil {
		t.Fatalf("CreateSheet failed: %v", err)
	}

	header := [][]string{{AnalyteHeader, ReferenceHeader, "05.08.2025"}}
	if err := store.WriteRange(ctx, testLedgerID, "Пациент", "A1:C1", header); err != nil {
		t.Fatalf("seeding header failed: %v", err)
	}

	r := NewReconciler(store)

	analytes := []report.Analyte{{Name: "Иммуноглобулин", Value: "12"}}

	written, failed, err := r.upsertValues(ctx, testLedgerID, "Пациент", "C", analytes)
	if err != nil {
		t.Fatalf("upsertValues failed: %v", err)
	}

	if written != 1 || len(failed) != 0 {
		t.Fatalf("upsert outcome: written=%d failed=%v", written, failed)
	}

	if got := store.cell(t, "Пациент", "A2"); got != "Иммуноглобулин" {
		t.Fatalf("A2 = %q, want appended row", got)
	}

	if got := store.cell(t, "Пациент", "C2"); got != "12" {
		t.Fatalf("C2 = %q", got)
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	ctx := context.Background()

	if _, err := NewReconciler(store).Apply(ctx, testLedgerID, bloodRecord()); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	got, err := store.ReadRange(ctx, testLedgerID, bloodRecord().PatientName, "C2")
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}

	if len(got) != 1 || len(got[0]) != 1 || got[0][0] != "155" {
		t.Fatalf("read back %v, want the upserted value", got)
	}
}
