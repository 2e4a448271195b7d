/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SetLedgerLink links a chat JID to a spreadsheet, replacing any previous link.
func SetLedgerLink(ctx context.Context, jid, spreadsheetID string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	query := `
		INSERT INTO ledger_links (jid, spreadsheet_id)
		VALUES ($1, $2)
		ON CONFLICT (jid) DO UPDATE SET
			spreadsheet_id = EXCLUDED.spreadsheet_id,
			updated_at = NOW()
	`

	_, err := pool.Exec(ctx, query, jid, spreadsheetID)
	if err != nil {
		return fmt.Errorf("failed to set ledger link: %w", err)
	}

	return nil
}

// GetLedgerLink fetches the ledger link for a chat JID.
// Returns nil if the JID has no link.
func GetLedgerLink(ctx context.Context, jid string) (*LedgerLink, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, jid, spreadsheet_id, created_at, updated_at
		FROM ledger_links
		WHERE jid = $1
	`

	var link LedgerLink

	err := pool.QueryRow(ctx, query, jid).Scan(
		&link.ID,
		&link.JID,
		&link.SpreadsheetID,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // A missing link is a valid, non-error lookup result.
		}

		return nil, fmt.Errorf("failed to get ledger link: %w", err)
	}

	return &link, nil
}

// ListLedgerLinks fetches all ledger links, most recently updated first.
func ListLedgerLinks(ctx context.Context) ([]LedgerLink, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, jid, spreadsheet_id, created_at, updated_at
		FROM ledger_links
		ORDER BY updated_at DESC
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger links: %w", err)
	}
	defer rows.Close()

	var links []LedgerLink

	for rows.Next() {
		var link LedgerLink

		err := rows.Scan(
			&link.ID,
			&link.JID,
			&link.SpreadsheetID,
			&link.CreatedAt,
			&link.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger link: %w", err)
		}

		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger links: %w", err)
	}

	return links, nil
}
