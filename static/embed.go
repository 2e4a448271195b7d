/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package static

import "embed"

// Static contains the embedded stylesheet and other site assets.
//
//go:embed *
var Static embed.FS
