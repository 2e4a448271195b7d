/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import (
	"strings"
)

// ExtractSpreadsheetID returns the spreadsheet ID from a raw setledger
// argument. Accepts either a bare ID or a full Google Sheets URL, where
// the ID is the path segment after "/d/".
func ExtractSpreadsheetID(raw string) string {
	id := strings.TrimSpace(raw)

	if i := strings.Index(id, "/d/"); i >= 0 {
		id = id[i+len("/d/"):]
		if j := strings.IndexAny(id, "/?#"); j >= 0 {
			id = id[:j]
		}
	}

	return id
}
