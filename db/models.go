/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus represents the outcome of one processed report document.
type ReportStatus string

// ReportStatus values represent supported report_log outcomes.
const (
	ReportStatusOK          ReportStatus = "ok"
	ReportStatusParseFailed ReportStatus = "parse_failed"
	ReportStatusStoreFailed ReportStatus = "store_failed"
	ReportStatusPartial     ReportStatus = "partial"
)

// ReportStatusLabel returns a human-readable label for a report status.
func ReportStatusLabel(status ReportStatus) string {
	switch status {
	case ReportStatusOK:
		return "OK"
	case ReportStatusParseFailed:
		return "Parse failed"
	case ReportStatusStoreFailed:
		return "Store failed"
	case ReportStatusPartial:
		return "Partial"
	default:
		return string(status)
	}
}

// LedgerLink maps a chat JID to the spreadsheet that receives its reports.
type LedgerLink struct {
	ID            uuid.UUID `db:"id"`
	JID           string    `db:"jid"`
	SpreadsheetID string    `db:"spreadsheet_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ReportLog records one processed report document.
type ReportLog struct {
	ID            uuid.UUID    `db:"id"`
	JID           string       `db:"jid"`
	PatientName   string       `db:"patient_name"`
	SampleDate    string       `db:"sample_date"`
	AnalyteCount  int          `db:"analyte_count"`
	SpreadsheetID string       `db:"spreadsheet_id"`
	Status        ReportStatus `db:"status"`
	ErrorDetail   string       `db:"error_detail"`
	CreatedAt     time.Time    `db:"created_at"`
}
