/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package report turns the raw page texts of a medical lab report into a
// structured record: patient identity, sample date, and the list of named
// measurements with their printed reference ranges. Extraction is
// heuristic; each concern (identity, date, analytes) is recovered by an
// ordered cascade of pattern strategies where the first match wins.
package report

import (
	"strings"
	"time"
)

// Analyte is one named measurement: the literal extracted spelling of the
// name, the value as printed with a decimal comma normalized to a period,
// and the normalized reference range (empty when none was printed).
// Values are opaque display strings, never arithmetic operands.
type Analyte struct {
	Name      string
	Value     string
	Reference string
}

// Record is the structured result of parsing one document.
type Record struct {
	PatientName string
	SampleDate  string // canonical DD.MM.YYYY
	Analytes    []Analyte
}

// Find returns the analyte with the given name, if present.
func (r *Record) Find(name string) (Analyte, bool) {
	for _, a := range r.Analytes {
		if a.Name == name {
			return a, true
		}
	}

	return Analyte{}, false
}

// Parse extracts a structured record from per-page report text. It fails
// only when no page yields any text; a document in which no analyte line
// is recognized still parses, with an empty analyte list.
func Parse(pages []string) (*Record, error) {
	return parse(pages, time.Now())
}

func parse(pages []string, now time.Time) (*Record, error) {
	lines, err := Normalize(pages)
	if err != nil {
		return nil, err
	}

	joined := strings.Join(lines, "\n")

	return &Record{
		PatientName: extractPatientName(lines, joined),
		SampleDate:  extractSampleDate(joined, now),
		Analytes:    matchAnalytes(lines, joined),
	}, nil
}
