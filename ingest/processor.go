/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package ingest runs the report pipeline: extract text from a PDF
// document, parse the lab record out of it, and apply the record to the
// linked ledger. It also hosts the chat-facing handlers that drive the
// pipeline from incoming WhatsApp messages.
package ingest

import (
	"context"

	"github.com/humaidq/labwave/ledger"
	"github.com/humaidq/labwave/pdftext"
	"github.com/humaidq/labwave/report"
)

// Applier reconciles one extracted record onto a ledger.
type Applier interface {
	Apply(ctx context.Context, ledgerID string, rec *report.Record) (*ledger.ApplyResult, error)
}

// Stage identifies where a pipeline run stopped.
type Stage string

const (
	// StageParse covers text extraction and record parsing.
	StageParse Stage = "parse"
	// StageApply covers the ledger reconciliation.
	StageApply Stage = "apply"
	// StageDone marks a fully successful run.
	StageDone Stage = "done"
)

// Outcome describes one pipeline run. Record is nil when parsing never
// produced one; Applied is nil when reconciliation never ran.
type Outcome struct {
	Record  *report.Record
	Applied *ledger.ApplyResult
	Stage   Stage
	Err     error
}

// Processor owns the document pipeline.
type Processor struct {
	applier Applier
}

// NewProcessor returns a processor that applies records through the
// given applier.
func NewProcessor(applier Applier) *Processor {
	return &Processor{applier: applier}
}

// Process runs one document through the full pipeline against the given
// ledger. Never returns nil; inspect Stage and Err for the result.
func (p *Processor) Process(ctx context.Context, ledgerID string, doc []byte) *Outcome {
	pages, err := pdftext.Extract(doc)
	if err != nil {
		logger.Warn("Document text extraction failed", "error", err)
		return &Outcome{Stage: StageParse, Err: err}
	}

	return p.processPages(ctx, ledgerID, pages)
}

func (p *Processor) processPages(ctx context.Context, ledgerID string, pages []string) *Outcome {
	rec, err := report.Parse(pages)
	if err != nil {
		logger.Warn("Report parsing failed", "error", err)
		return &Outcome{Stage: StageParse, Err: err}
	}

	logger.Info("Report parsed",
		"patient", rec.PatientName,
		"date", rec.SampleDate,
		"analytes", len(rec.Analytes))

	out := &Outcome{Record: rec}

	applied, err := p.applier.Apply(ctx, ledgerID, rec)
	out.Applied = applied
	if err != nil {
		logger.Error("Ledger apply failed",
			"ledger", ledgerID,
			"sheet", rec.PatientName,
			"error", err)

		out.Stage = StageApply
		out.Err = err

		return out
	}

	logger.Info("Report applied",
		"ledger", ledgerID,
		"sheet", applied.SheetTitle,
		"column", applied.Column,
		"cells", applied.CellsWritten)

	out.Stage = StageDone

	return out
}
