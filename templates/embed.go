/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package templates

import "embed"

// Templates contains the embedded dashboard and pairing pages.
//
//go:embed *.html
var Templates embed.FS
