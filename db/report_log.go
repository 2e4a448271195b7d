/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
)

// CreateReportLogInput carries the fields for a new report_log row.
type CreateReportLogInput struct {
	JID           string
	PatientName   string
	SampleDate    string
	AnalyteCount  int
	SpreadsheetID string
	Status        ReportStatus
	ErrorDetail   string
}

// CreateReportLog records one processed report document.
func CreateReportLog(ctx context.Context, input CreateReportLogInput) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	query := `
		INSERT INTO report_log (jid, patient_name, sample_date, analyte_count, spreadsheet_id, status, error_detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pool.Exec(ctx, query,
		input.JID,
		input.PatientName,
		input.SampleDate,
		input.AnalyteCount,
		input.SpreadsheetID,
		input.Status,
		input.ErrorDetail,
	)
	if err != nil {
		return fmt.Errorf("failed to create report log: %w", err)
	}

	return nil
}

// ListRecentReportLogs fetches the most recent report log entries.
func ListRecentReportLogs(ctx context.Context, limit int) ([]ReportLog, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, jid, patient_name, sample_date, analyte_count, spreadsheet_id, status, error_detail, created_at
		FROM report_log
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query report logs: %w", err)
	}
	defer rows.Close()

	var logs []ReportLog

	for rows.Next() {
		var entry ReportLog

		err := rows.Scan(
			&entry.ID,
			&entry.JID,
			&entry.PatientName,
			&entry.SampleDate,
			&entry.AnalyteCount,
			&entry.SpreadsheetID,
			&entry.Status,
			&entry.ErrorDetail,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report log: %w", err)
		}

		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report logs: %w", err)
	}

	return logs, nil
}
