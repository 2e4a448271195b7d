// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
)

var errFakeUnavailable = errors.New("store unavailable")

type cellKey struct{ row, col int }

// fakeSheet is a sparse grid addressed by 1-based row and column.
type fakeSheet struct {
	cells map[cellKey]string
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{cells: make(map[cellKey]string)}
}

func (s *fakeSheet) set(row, col int, v string) {
	s.cells[cellKey{row: row, col: col}] = v
}

func (s *fakeSheet) get(row, col int) string {
	return s.cells[cellKey{row: row, col: col}]
}

func (s *fakeSheet) lastRow() int {
	last := 0
	for k, v := range s.cells {
		if v != "" && k.row > last {
			last = k.row
		}
	}

	return last
}

func (s *fakeSheet) lastRowInColumn(col int) int {
	last := 0
	for k, v := range s.cells {
		if k.col == col && v != "" && k.row > last {
			last = k.row
		}
	}

	return last
}

func (s *fakeSheet) lastColInRow(row int) int {
	last := 0
	for k, v := range s.cells {
		if k.row == row && v != "" && k.col > last {
			last = k.col
		}
	}

	return last
}

// fakeStore implements Store in memory with per-operation call counts
// and injectable failures.
type fakeStore struct {
	sheets map[string]*fakeSheet
	titles []string

	lists   int
	creates int
	reads   int
	writes  int
	appends int
	batches int

	failBatch bool
	failCells map[string]bool
	failReads map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{sheets: make(map[string]*fakeSheet)}
}

func (f *fakeStore) ListSheetTitles(_ context.Context, _ string) ([]string, error) {
	f.lists++

	return append([]string(nil), f.titles...), nil
}

func (f *fakeStore) CreateSheet(_ context.Context, _, title string, _, _ int64) error {
	f.creates++

	if _, ok := f.sheets[title]; ok {
		return fmt.Errorf("sheet %q already exists", title)
	}

	f.sheets[title] = newFakeSheet()
	f.titles = append(f.titles, title)

	return nil
}

func (f *fakeStore) sheet(title string) (*fakeSheet, error) {
	s, ok := f.sheets[title]
	if !ok {
		return nil, fmt.Errorf("no sheet %q", title)
	}

	return s, nil
}

func (f *fakeStore) ReadRange(_ context.Context, _, sheetTitle, rangeSpec string) ([][]string, error) {
	f.reads++

	if f.failReads[rangeSpec] {
		return nil, errFakeUnavailable
	}

	s, err := f.sheet(sheetTitle)
	if err != nil {
		return nil, err
	}

	switch rangeSpec {
	case "A:A":
		last := s.lastRowInColumn(1)
		out := make([][]string, 0, last)
		for row := 1; row <= last; row++ {
			out = append(out, []string{s.get(row, 1)})
		}

		return out, nil
	case "1:1":
		last := s.lastColInRow(1)
		if last == 0 {
			return nil, nil
		}

		cells := make([]string, 0, last)
		for col := 1; col <= last; col++ {
			cells = append(cells, s.get(1, col))
		}

		return [][]string{cells}, nil
	default:
		row, col, err := parseCellRef(strings.SplitN(rangeSpec, ":", 2)[0])
		if err != nil {
			return nil, err
		}

		return [][]string{{s.get(row, col)}}, nil
	}
}

func (f *fakeStore) WriteRange(_ context.Context, _, sheetTitle, rangeSpec string, values [][]string) error {
	f.writes++

	if f.failCells[rangeSpec] {
		return errFakeUnavailable
	}

	return f.applyWrite(sheetTitle, rangeSpec, values)
}

func (f *fakeStore) AppendRows(_ context.Context, _, sheetTitle, _ string, rows [][]string) error {
	f.appends++

	s, err := f.sheet(sheetTitle)
	if err != nil {
		return err
	}

	next := s.lastRow() + 1
	for i, row := range rows {
		for j, v := range row {
			s.set(next+i, j+1, v)
		}
	}

	return nil
}

func (f *fakeStore) BatchWrite(_ context.Context, _ string, writes []RangeWrite) error {
	f.batches++

	if f.failBatch {
		return errFakeUnavailable
	}

	for _, w := range writes {
		if err := f.applyWrite(w.SheetTitle, w.RangeSpec, w.Values); err != nil {
			return err
		}
	}

	return nil
}

func (f *fakeStore) applyWrite(sheetTitle, rangeSpec string, values [][]string) error {
	s, err := f.sheet(sheetTitle)
	if err != nil {
		return err
	}

	row, col, err := parseCellRef(strings.SplitN(rangeSpec, ":", 2)[0])
	if err != nil {
		return err
	}

	for i, vr := range values {
		for j, v := range vr {
			s.set(row+i, col+j, v)
		}
	}

	return nil
}

// cell returns the value at an A1-style reference for assertions.
func (f *fakeStore) cell(t *testing.T, sheetTitle, ref string) string {
	t.Helper()

	s, err := f.sheet(sheetTitle)
	if err != nil {
		t.Fatalf("cell %s: %v", ref, err)
	}

	row, col, err := parseCellRef(ref)
	if err != nil {
		t.Fatalf("cell %s: %v", ref, err)
	}

	return s.get(row, col)
}

// parseCellRef converts an A1-style cell like "C2" into 1-based row and
// column numbers.
func parseCellRef(ref string) (row, col int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A') + 1
		i++
	}

	if i == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("bad cell ref %q", ref)
	}

	row, err = strconv.Atoi(ref[i:])
	if err != nil {
		return 0, 0, fmt.Errorf("bad cell ref %q", ref)
	}

	return row, col, nil
}
