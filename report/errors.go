/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import "errors"

// ErrNoExtractableText indicates a document produced no text on any page.
// Fatal for the document; callers must not touch the ledger when this is
// returned.
var ErrNoExtractableText = errors.New("no extractable text on any page")
