/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	surnameLabelRe  = regexp.MustCompile(`(?i)Фамилия[:\s]*([А-ЯЁ][а-яё\-]+)`)
	fullNameLabelRe = regexp.MustCompile(`ФИО[:\s]+([\wЁёА-Яа-я]+\s+[\wЁёА-Яа-я]+\s+[\wЁёА-Яа-я]+)`)
	capitalWordRe   = regexp.MustCompile(`[А-ЯЁ][а-яё]+`)

	sampleDateLabelRe = regexp.MustCompile(`Дата взятия образца[:\s]*([0-3]?\d[.\-/][01]?\d[.\-/]\d{4})`)
	bareDateRe        = regexp.MustCompile(`\d{2}[.\-/]\d{2}[.\-/]\d{4}`)
	dateSepRe         = regexp.MustCompile(`[.\-/]`)
)

// Lines scanned by the capitalized-words name fallback before giving up.
const nameScanLimit = 12

// UnknownPatient is the placeholder name used when no name strategy
// matches. It becomes the sheet title, so it must stay stable.
const UnknownPatient = "Пациент"

// extractPatientName recovers the patient's full name. Strategies in
// priority order: surname label extended by a nearby name fragment,
// full-name label with three tokens, first early line holding at least
// two capitalized Cyrillic words.
func extractPatientName(lines []string, joined string) string {
	if name := nameFromSurnameLabel(joined); name != "" {
		return name
	}

	if m := fullNameLabelRe.FindStringSubmatch(joined); m != nil {
		return strings.TrimSpace(m[1])
	}

	scan := lines
	if len(scan) > nameScanLimit {
		scan = scan[:nameScanLimit]
	}

	for _, ln := range scan {
		if len(capitalWordRe.FindAllString(ln, -1)) >= 2 {
			return strings.TrimSpace(ln)
		}
	}

	return UnknownPatient
}

// nameFromSurnameLabel matches a surname field and, when the following
// line carries a two-token name fragment, extends the surname with it.
func nameFromSurnameLabel(joined string) string {
	m := surnameLabelRe.FindStringSubmatch(joined)
	if m == nil {
		return ""
	}

	surname := strings.TrimSpace(m[1])

	// The fragment pattern embeds the matched surname, so it has to be
	// compiled per document.
	fragmentRe, err := regexp.Compile(
		`(?i)Фамилия[:\s]*` + regexp.QuoteMeta(surname) + `[^\n]*\n.*?([\wЁёА-Яа-я]+\s+[\wЁёА-Яа-я]+)`,
	)
	if err != nil {
		return surname
	}

	if m2 := fragmentRe.FindStringSubmatch(joined); m2 != nil {
		return surname + " " + strings.TrimSpace(m2[1])
	}

	return surname
}

// extractSampleDate finds the sample collection date, preferring the
// labelled field over a bare date token anywhere in the text, defaulting
// to the processing date. Output is always DD.MM.YYYY.
func extractSampleDate(joined string, now time.Time) string {
	if m := sampleDateLabelRe.FindStringSubmatch(joined); m != nil {
		return canonicalDate(m[1])
	}

	if token := bareDateRe.FindString(joined); token != "" {
		return canonicalDate(token)
	}

	return now.Format("02.01.2006")
}

// canonicalDate renders a matched date token with zero-padded day and
// month and dot separators. Tokens that do not split into three numeric
// parts pass through unchanged.
func canonicalDate(token string) string {
	parts := dateSepRe.Split(token, -1)
	if len(parts) != 3 {
		return token
	}

	day, dayErr := strconv.Atoi(parts[0])
	month, monthErr := strconv.Atoi(parts[1])
	if dayErr != nil || monthErr != nil {
		return token
	}

	return fmt.Sprintf("%02d.%02d.%s", day, month, parts[2])
}
