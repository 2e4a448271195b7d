/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import "strings"

// Normalize flattens per-page text into an ordered sequence of trimmed,
// non-empty lines, pages concatenated in page order with line order
// preserved. No deduplication is applied. A document whose pages are all
// blank yields ErrNoExtractableText.
func Normalize(pages []string) ([]string, error) {
	var lines []string

	for _, page := range pages {
		for _, ln := range strings.Split(page, "\n") {
			ln = strings.TrimSpace(ln)
			if ln != "" {
				lines = append(lines, ln)
			}
		}
	}

	if len(lines) == 0 {
		return nil, ErrNoExtractableText
	}

	return lines, nil
}
