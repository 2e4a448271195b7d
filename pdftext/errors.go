/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pdftext

import "errors"

// ErrExtraction indicates the document could not be opened as a PDF.
// Page-level extraction problems never surface here; an unreadable page
// yields an empty string instead.
var ErrExtraction = errors.New("cannot open document")
