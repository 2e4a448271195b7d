/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package whatsapp

import (
	"strings"
)

// JIDToPhone extracts the phone number from a WhatsApp JID.
// JID format: 1234567890@s.whatsapp.net
func JIDToPhone(jid string) string {
	parts := strings.Split(jid, "@")
	if len(parts) > 0 {
		return parts[0]
	}

	return jid
}
