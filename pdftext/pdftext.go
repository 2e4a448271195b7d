/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package pdftext renders the pages of a PDF document as plain text with
// line structure preserved. Positioned text runs are grouped into rows
// by their Y coordinate and joined left to right, inserting spaces where
// the horizontal gap between runs indicates a word boundary. Lab report
// parsing depends on values and reference ranges staying on one line
// with their analyte name, which a raw glyph-stream dump does not
// guarantee.
package pdftext

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"
)

const (
	// rowTolerance is the Y distance in points within which two text
	// runs count as the same printed line.
	rowTolerance = 3.0

	// wordGapFactor scales the font size into the horizontal gap that
	// separates two words rather than two glyphs of one word.
	wordGapFactor = 0.3

	// fallbackGap is the word gap when a run reports no font size.
	fallbackGap = 3.0
)

// Extract returns one text per page of the document. Pages without
// extractable text yield empty strings; the error is non-nil only when
// the bytes cannot be opened as a PDF at all. The underlying parser
// panics on some malformed inputs, so those are recovered into the same
// error.
func Extract(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: parser panic: %v", ErrExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)

	for n := 1; n <= total; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		pages = append(pages, pageText(page))
	}

	return pages, nil
}

// pageText reconstructs a page's lines from positioned runs, falling
// back to the library's raw text stream when no positions are present.
func pageText(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) > 0 {
		return assembleLines(content.Text)
	}

	plain, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}

	return plain
}

// assembleLines groups runs into rows by Y, orders each row by X, and
// joins rows top to bottom. Page coordinates grow upward, so a higher Y
// is an earlier line.
func assembleLines(texts []pdf.Text) string {
	rows := groupRows(texts)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].y > rows[j].y
	})

	var out bytes.Buffer

	for i, row := range rows {
		if i > 0 {
			out.WriteByte('\n')
		}

		out.WriteString(joinRow(row.runs))
	}

	return out.String()
}

type textRow struct {
	y    float64
	runs []pdf.Text
}

func groupRows(texts []pdf.Text) []textRow {
	var rows []textRow

	for _, t := range texts {
		if t.S == "" {
			continue
		}

		placed := false
		for i := range rows {
			if t.Y >= rows[i].y-rowTolerance && t.Y <= rows[i].y+rowTolerance {
				rows[i].runs = append(rows[i].runs, t)
				placed = true
				break
			}
		}

		if !placed {
			rows = append(rows, textRow{y: t.Y, runs: []pdf.Text{t}})
		}
	}

	return rows
}

// joinRow orders a row's runs left to right and concatenates them,
// inserting a space wherever the gap from the previous run's right edge
// exceeds the word-boundary threshold for the current font size.
func joinRow(runs []pdf.Text) string {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].X < runs[j].X
	})

	var (
		out     bytes.Buffer
		lastEnd float64
	)

	for i, t := range runs {
		if i > 0 {
			threshold := wordGapFactor * t.FontSize
			if t.FontSize == 0 {
				threshold = fallbackGap
			}

			if t.X-lastEnd > threshold {
				out.WriteByte(' ')
			}
		}

		out.WriteString(t.S)
		lastEnd = t.X + t.W
	}

	return out.String()
}
