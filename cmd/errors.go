/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabaseURLRequired    = errors.New("database-url is required (set via --database-url or DATABASE_URL env var)")
	errClientIDRequired       = errors.New("client-id is required (set via --client-id or GOOGLE_CLIENT_ID env var)")
	errClientSecretRequired   = errors.New("client-secret is required (set via --client-secret or GOOGLE_CLIENT_SECRET env var)")
	errMigrationNameRequired  = errors.New("migration name is required")
	errAuthCodeEmpty          = errors.New("authorization code is empty")
	errImportFileRequired     = errors.New("file is required (path to a lab report PDF)")
	errImportLedgerRequired   = errors.New("ledger is required (spreadsheet ID or URL)")
	errWhatsAppNotInitialized = errors.New("whatsapp client is not initialized")
)
