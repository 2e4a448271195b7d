/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package sheets

import "errors"

// ErrTokenMissing indicates no stored OAuth token was found. The auth
// command creates one.
var ErrTokenMissing = errors.New("no Google OAuth token; run the auth command first")
