/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labwave/ingest"
	"github.com/humaidq/labwave/ledger"
)

var CmdImport = &cli.Command{
	Name:  "import",
	Usage: "Parse a lab report PDF from disk and write it to a Google Sheet",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "file",
			Usage: "path of the lab report PDF",
		},
		&cli.StringFlag{
			Name:  "ledger",
			Usage: "target spreadsheet ID or URL",
		},
		&cli.StringFlag{
			Name:    "client-id",
			Sources: cli.EnvVars("GOOGLE_CLIENT_ID"),
			Usage:   "Google OAuth client ID",
		},
		&cli.StringFlag{
			Name:    "client-secret",
			Sources: cli.EnvVars("GOOGLE_CLIENT_SECRET"),
			Usage:   "Google OAuth client secret",
		},
		&cli.StringFlag{
			Name:    "token-file",
			Value:   "token.json",
			Sources: cli.EnvVars("LABWAVE_TOKEN_FILE"),
			Usage:   "path of the stored Google OAuth token",
		},
	},
	Action: runImport,
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	if path == "" {
		return errImportFileRequired
	}

	ledgerID := ingest.ExtractSpreadsheetID(cmd.String("ledger"))
	if ledgerID == "" {
		return errImportLedgerRequired
	}

	client, err := googleClientFromFlags(ctx, cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	processor := ingest.NewProcessor(ledger.NewReconciler(client))
	out := processor.Process(ctx, ledgerID, data)

	if summary := out.Summary(); summary != "" {
		fmt.Println(summary)
	}

	fmt.Println(out.ReplyText())

	if out.Err != nil {
		return fmt.Errorf("import failed: %w", out.Err)
	}

	return nil
}
