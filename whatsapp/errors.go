/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package whatsapp

import "errors"

var (
	errNoExistingSessionToReconnect = errors.New("no existing session to reconnect")
	errNotConnected                 = errors.New("whatsapp client is not connected")
)
