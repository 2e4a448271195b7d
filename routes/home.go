/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/template"

	"github.com/humaidq/labwave/db"
	"github.com/humaidq/labwave/whatsapp"
)

const dashboardReportLimit = 20

// linkRow is one requester-to-spreadsheet link prepared for display.
type linkRow struct {
	Phone         string
	SpreadsheetID string
	UpdatedAt     time.Time
}

// reportRow is one journal entry prepared for display. Status carries
// the raw value for styling, StatusLabel the human-readable text.
type reportRow struct {
	Phone        string
	PatientName  string
	SampleDate   string
	AnalyteCount int
	Status       string
	StatusLabel  string
	ErrorDetail  string
	ReceivedAt   time.Time
}

// Dashboard renders the operator overview: connection state, linked
// spreadsheets, and the most recent report runs.
func Dashboard(c flamego.Context, t template.Template, data template.Data) {
	ctx := c.Request().Context()

	if client := whatsapp.GetClient(); client != nil {
		data["Status"] = string(client.GetStatus())
		data["IsConnected"] = client.IsConnected()
	} else {
		data["Status"] = "unavailable"
		data["IsConnected"] = false
	}

	links, err := db.ListLedgerLinks(ctx)
	if err != nil {
		logger.Error("Failed to load ledger links", "error", err)
		data["Error"] = "Failed to load linked spreadsheets"
	} else {
		rows := make([]linkRow, 0, len(links))
		for _, link := range links {
			rows = append(rows, linkRow{
				Phone:         whatsapp.JIDToPhone(link.JID),
				SpreadsheetID: link.SpreadsheetID,
				UpdatedAt:     link.UpdatedAt,
			})
		}

		data["Links"] = rows
	}

	reports, err := db.ListRecentReportLogs(ctx, dashboardReportLimit)
	if err != nil {
		logger.Error("Failed to load report log", "error", err)
		data["Error"] = "Failed to load recent reports"
	} else {
		rows := make([]reportRow, 0, len(reports))
		for _, entry := range reports {
			rows = append(rows, reportRow{
				Phone:        whatsapp.JIDToPhone(entry.JID),
				PatientName:  entry.PatientName,
				SampleDate:   entry.SampleDate,
				AnalyteCount: entry.AnalyteCount,
				Status:       string(entry.Status),
				StatusLabel:  db.ReportStatusLabel(entry.Status),
				ErrorDetail:  entry.ErrorDetail,
				ReceivedAt:   entry.CreatedAt,
			})
		}

		data["Reports"] = rows
	}

	t.HTML(http.StatusOK, "home")
}
