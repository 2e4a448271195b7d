/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import (
	"regexp"
	"strings"
)

// analyteStrategy extracts measurements from the normalized text. The
// matcher runs strategies in priority order and keeps the first non-empty
// result, so precise and loose matches never mix within one document.
type analyteStrategy func(lines []string, joined string) []Analyte

var analyteStrategies = []analyteStrategy{
	matchStructuredLines,
	matchLooseTokens,
}

// Structural per-line form: name (letters of both alphabets, digits,
// spaces, limited punctuation), a numeric value with optional comparison
// prefix, up to eight unit characters, then an optional reference: an
// en-dash bound pair, a single bound, a bare number, or one of the two
// negative-result phrases.
var structuredLineRe = regexp.MustCompile(
	`(?i)^([А-ЯЁа-яA-Za-z0-9\s\-\(\)\/%µμ]+?)\s+([<>]?\d+[.,]?\d*)\s*(?:[^\d\n]{0,8})\s*([\d.,<>]+–[\d.,<>]+|<\d+|>?\d+|отрицательно|не обнаружено)?`,
)

// Loose fallback over the whole document: a name-like run of three or
// more characters, a separator, a numeric value. Trailing text is
// consumed but discarded; references are never recovered on this path.
var looseTokenRe = regexp.MustCompile(
	`([А-ЯЁа-яA-Za-z\-\s]{3,}?)[:\s]{1,3}([0-9]+(?:[.,][0-9]+)?)\s*([^\d\n]*)`,
)

func matchAnalytes(lines []string, joined string) []Analyte {
	for _, strategy := range analyteStrategies {
		if found := strategy(lines, joined); len(found) > 0 {
			return found
		}
	}

	return nil
}

func matchStructuredLines(lines []string, _ string) []Analyte {
	var set analyteSet

	for _, ln := range lines {
		m := structuredLineRe.FindStringSubmatch(ln)
		if m == nil {
			continue
		}

		set.put(Analyte{
			Name:      strings.TrimSpace(m[1]),
			Value:     normalizeValue(m[2]),
			Reference: normalizeReference(m[3]),
		})
	}

	return set.entries
}

func matchLooseTokens(_ []string, joined string) []Analyte {
	var set analyteSet

	for _, m := range looseTokenRe.FindAllStringSubmatch(joined, -1) {
		set.put(Analyte{
			Name:  strings.TrimSpace(m[1]),
			Value: normalizeValue(m[2]),
		})
	}

	return set.entries
}

// normalizeValue keeps the value as display text, only replacing a
// decimal comma with a period.
func normalizeValue(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
}

// analyteSet is an insertion-ordered name→analyte mapping: a repeated
// name overwrites the earlier entry's value but keeps its original
// position, so row creation order follows first appearance in the text.
type analyteSet struct {
	entries []Analyte
	index   map[string]int
}

func (s *analyteSet) put(a Analyte) {
	if i, ok := s.index[a.Name]; ok {
		s.entries[i] = a
		return
	}

	if s.index == nil {
		s.index = make(map[string]int)
	}

	s.index[a.Name] = len(s.entries)
	s.entries = append(s.entries, a)
}
