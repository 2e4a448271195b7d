/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import (
	"strings"
	"unicode"
)

// Canonical spellings for the two negative-result phrases that appear in
// reference columns of Russian lab reports.
const (
	refNegative    = "отрицательно"
	refNotDetected = "не обнаружено"
)

// normalizeReference canonicalizes a matched reference string. The two
// recognized negative-result phrases normalize to their dictionary
// spellings regardless of case and spacing; every other input passes
// through with all whitespace stripped ("3,5 – 6,1" becomes "3,5–6,1").
// Total: never fails, empty in gives empty out.
func normalizeReference(ref string) string {
	stripped := stripWhitespace(ref)

	switch strings.ToLower(stripped) {
	case "отрицательно":
		return refNegative
	case "необнаружено":
		return refNotDetected
	}

	return stripped
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}
