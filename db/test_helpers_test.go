// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
)

func testContext() context.Context {
	return context.Background()
}

func mustSetLedgerLink(t *testing.T, jid, spreadsheetID string) {
	t.Helper()

	if err := SetLedgerLink(testContext(), jid, spreadsheetID); err != nil {
		t.Fatalf("failed to set ledger link: %v", err)
	}
}

func mustCreateReportLog(t *testing.T, input CreateReportLogInput) {
	t.Helper()

	if err := CreateReportLog(testContext(), input); err != nil {
		t.Fatalf("failed to create report log: %v", err)
	}
}
