/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/labwave/db"
	"github.com/humaidq/labwave/whatsapp"
)

// Healthz reports process health as JSON. The database is the hard
// dependency; a disconnected WhatsApp session is reported but does not
// fail the check.
func Healthz(c flamego.Context) {
	ctx := c.Request().Context()

	response := map[string]interface{}{
		"database": "ok",
		"whatsapp": "unavailable",
	}
	status := http.StatusOK

	pool := db.GetPool()
	switch {
	case pool == nil:
		response["database"] = "not initialized"
		status = http.StatusServiceUnavailable
	default:
		if err := pool.Ping(ctx); err != nil {
			logger.Error("Health check database ping failed", "error", err)
			response["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	if client := whatsapp.GetClient(); client != nil {
		response["whatsapp"] = string(client.GetStatus())
	}

	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Error encoding health response", "error", err)
	}
}
