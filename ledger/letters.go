/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ledger

// ColumnLetter converts a 1-based column number to its A1-notation
// letter form. The encoding is bijective base-26 with no zero digit:
// 1 is A, 26 is Z, 27 is AA, 53 is BA. Numbers below 1 yield an empty
// string.
func ColumnLetter(n int) string {
	var buf []byte

	for n > 0 {
		n--
		buf = append([]byte{byte('A' + n%26)}, buf...)
		n /= 26
	}

	return string(buf)
}
