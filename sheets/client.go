/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package sheets backs the ledger store with the Google Sheets API.
// Values are read and written in A1 notation against a spreadsheet
// identified by its document id; all writes use user-entered input so
// dates and numbers keep the spelling the reconciler produced.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/humaidq/labwave/ledger"
	"github.com/humaidq/labwave/logging"
)

var logger = logging.Logger(logging.SourceSheets)

const valueInputUserEntered = "USER_ENTERED"

// Client implements the reconciler's store contract against Google
// Sheets.
type Client struct {
	svc *sheetsapi.Service
}

// NewClient builds a Sheets client from OAuth credentials and a stored
// token. The underlying HTTP client refreshes the token on its own.
func NewClient(ctx context.Context, clientID, clientSecret, tokenFile string) (*Client, error) {
	cfg := OAuthConfig(clientID, clientSecret)

	token, err := LoadToken(tokenFile)
	if err != nil {
		return nil, err
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	logger.Debug("sheets service ready", "token_file", tokenFile)

	return &Client{svc: svc}, nil
}

// ListSheetTitles returns the titles of all sheets in the spreadsheet.
func (c *Client) ListSheetTitles(ctx context.Context, ledgerID string) ([]string, error) {
	resp, err := c.svc.Spreadsheets.Get(ledgerID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing sheets of ledger %s: %w", ledgerID, err)
	}

	titles := make([]string, 0, len(resp.Sheets))
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}

	return titles, nil
}

// CreateSheet adds a new sheet with the given grid size.
func (c *Client) CreateSheet(ctx context.Context, ledgerID, title string, rows, cols int64) error {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{
					Title: title,
					GridProperties: &sheetsapi.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
				},
			},
		}},
	}

	if _, err := c.svc.Spreadsheets.BatchUpdate(ledgerID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("creating sheet %q in ledger %s: %w", title, ledgerID, err)
	}

	logger.Debug("created sheet", "ledger", ledgerID, "sheet", title)

	return nil
}

// ReadRange returns the cell matrix for an A1 range within a sheet.
func (c *Client) ReadRange(ctx context.Context, ledgerID, sheetTitle, rangeSpec string) ([][]string, error) {
	rng := rangeRef(sheetTitle, rangeSpec)

	resp, err := c.svc.Spreadsheets.Values.Get(ledgerID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s from ledger %s: %w", rng, ledgerID, err)
	}

	return stringMatrix(resp.Values), nil
}

// WriteRange writes a cell matrix anchored at the range's first cell.
func (c *Client) WriteRange(ctx context.Context, ledgerID, sheetTitle, rangeSpec string, values [][]string) error {
	rng := rangeRef(sheetTitle, rangeSpec)
	vr := &sheetsapi.ValueRange{Values: interfaceMatrix(values)}

	_, err := c.svc.Spreadsheets.Values.Update(ledgerID, rng, vr).
		ValueInputOption(valueInputUserEntered).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing %s of ledger %s: %w", rng, ledgerID, err)
	}

	return nil
}

// AppendRows appends rows after the table region addressed by
// columnSpec.
func (c *Client) AppendRows(ctx context.Context, ledgerID, sheetTitle, columnSpec string, rows [][]string) error {
	rng := rangeRef(sheetTitle, columnSpec)
	vr := &sheetsapi.ValueRange{Values: interfaceMatrix(rows)}

	_, err := c.svc.Spreadsheets.Values.Append(ledgerID, rng, vr).
		ValueInputOption(valueInputUserEntered).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending %d rows to %s of ledger %s: %w", len(rows), rng, ledgerID, err)
	}

	return nil
}

// BatchWrite applies all writes in one request.
func (c *Client) BatchWrite(ctx context.Context, ledgerID string, writes []ledger.RangeWrite) error {
	data := make([]*sheetsapi.ValueRange, 0, len(writes))
	for _, w := range writes {
		data = append(data, &sheetsapi.ValueRange{
			Range:  rangeRef(w.SheetTitle, w.RangeSpec),
			Values: interfaceMatrix(w.Values),
		})
	}

	req := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: valueInputUserEntered,
		Data:             data,
	}

	if _, err := c.svc.Spreadsheets.Values.BatchUpdate(ledgerID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("batch-writing %d ranges to ledger %s: %w", len(writes), ledgerID, err)
	}

	return nil
}

// rangeRef scopes an A1 reference to a sheet, quoting the title so
// patient names with spaces or apostrophes stay valid.
func rangeRef(sheetTitle, a1 string) string {
	return "'" + strings.ReplaceAll(sheetTitle, "'", "''") + "'!" + a1
}

func stringMatrix(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}

		out[i] = cells
	}

	return out
}

func interfaceMatrix(values [][]string) [][]interface{} {
	out := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}

		out[i] = cells
	}

	return out
}
