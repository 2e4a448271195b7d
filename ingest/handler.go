/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/humaidq/labwave/db"
	"github.com/humaidq/labwave/ledger"
)

const setLedgerCommand = "setledger"

// Handler serves incoming chat messages: the setledger command links a
// requester to a spreadsheet, and PDF documents run through the
// pipeline against that spreadsheet. All collaborator seams are plain
// functions so the command layer can wire them straight to the db and
// chat packages.
type Handler struct {
	Processor *Processor
	GetLink   func(ctx context.Context, jid string) (*db.LedgerLink, error)
	SetLink   func(ctx context.Context, jid, spreadsheetID string) error
	Journal   func(ctx context.Context, input db.CreateReportLogInput) error
	Send      func(ctx context.Context, jid, text string) error
}

// HandleText serves one incoming text message.
func (h *Handler) HandleText(ctx context.Context, jid string, text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.EqualFold(fields[0], setLedgerCommand) {
		h.reply(ctx, jid, replyGreeting)
		return
	}

	if len(fields) < 2 {
		h.reply(ctx, jid, replyUsage)
		return
	}

	spreadsheetID := ExtractSpreadsheetID(fields[1])
	if spreadsheetID == "" {
		h.reply(ctx, jid, replyUsage)
		return
	}

	if err := h.SetLink(ctx, jid, spreadsheetID); err != nil {
		logger.Error("Failed to save ledger link", "jid", jid, "error", err)
		h.reply(ctx, jid, replyLinkFailed)

		return
	}

	logger.Info("Ledger link saved", "jid", jid, "spreadsheet", spreadsheetID)
	h.reply(ctx, jid, fmt.Sprintf(replyLinkSaved, spreadsheetID))
}

// HandleDocument serves one incoming document message.
func (h *Handler) HandleDocument(ctx context.Context, jid, filename, mimetype string, data []byte) {
	if !IsPDF(filename, mimetype) {
		h.reply(ctx, jid, replyNotPDF)
		return
	}

	link, err := h.GetLink(ctx, jid)
	if err != nil {
		logger.Error("Failed to look up ledger link", "jid", jid, "error", err)
		h.reply(ctx, jid, replyLinkFailed)

		return
	}

	if link == nil {
		h.reply(ctx, jid, replyNoLink)
		return
	}

	h.reply(ctx, jid, replyParsing)

	out := h.Processor.Process(ctx, link.SpreadsheetID, data)
	h.finishDocument(ctx, jid, link.SpreadsheetID, out)
}

// finishDocument reports a finished pipeline run back to the requester
// and records it in the journal.
func (h *Handler) finishDocument(ctx context.Context, jid, spreadsheetID string, out *Outcome) {
	if summary := out.Summary(); summary != "" {
		h.reply(ctx, jid, summary)
	}

	h.reply(ctx, jid, out.ReplyText())

	h.journal(ctx, jid, spreadsheetID, out)
}

// IsPDF reports whether an incoming document looks like a PDF report,
// by declared content type or by filename extension.
func IsPDF(filename, mimetype string) bool {
	if strings.EqualFold(mimetype, "application/pdf") {
		return true
	}

	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// Status returns the journal status for this outcome.
func (o *Outcome) Status() db.ReportStatus {
	switch {
	case o.Stage == StageParse:
		return db.ReportStatusParseFailed
	case o.Err == nil:
		return db.ReportStatusOK
	case errors.Is(o.Err, ledger.ErrPartialWrite):
		return db.ReportStatusPartial
	default:
		return db.ReportStatusStoreFailed
	}
}

func (h *Handler) journal(ctx context.Context, jid, spreadsheetID string, out *Outcome) {
	input := db.CreateReportLogInput{
		JID:           jid,
		SpreadsheetID: spreadsheetID,
		Status:        out.Status(),
	}

	if out.Record != nil {
		input.PatientName = out.Record.PatientName
		input.SampleDate = out.Record.SampleDate
		input.AnalyteCount = len(out.Record.Analytes)
	}

	if out.Err != nil {
		input.ErrorDetail = out.Err.Error()
	}

	if err := h.Journal(ctx, input); err != nil {
		logger.Error("Failed to record report log", "jid", jid, "error", err)
	}
}

func (h *Handler) reply(ctx context.Context, jid, text string) {
	if err := h.Send(ctx, jid, text); err != nil {
		logger.Warn("Failed to send reply", "jid", jid, "error", err)
	}
}
