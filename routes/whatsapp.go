/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/template"

	"github.com/humaidq/labwave/whatsapp"
)

// WhatsAppPairing renders the WhatsApp pairing/status page
func WhatsAppPairing(_ flamego.Context, t template.Template, data template.Data) {
	client := whatsapp.GetClient()

	if client != nil {
		data["Status"] = string(client.GetStatus())
		data["QRCode"] = client.GetQRCode()
		data["IsConnected"] = client.IsConnected()
	} else {
		data["Status"] = "unavailable"
		data["QRCode"] = ""
		data["IsConnected"] = false
	}

	t.HTML(http.StatusOK, "whatsapp")
}

// WhatsAppConnect initiates the WhatsApp connection
func WhatsAppConnect(c flamego.Context) {
	client := whatsapp.GetClient()

	if client == nil {
		logger.Error("WhatsApp connect requested but client is not initialized")
		c.Redirect("/whatsapp", http.StatusSeeOther)

		return
	}

	// Use background context since the connection needs to persist beyond the HTTP request
	go func() {
		if err := client.Connect(context.Background()); err != nil {
			logger.Error("WhatsApp connect failed", "error", err)
		}
	}()

	c.Redirect("/whatsapp", http.StatusSeeOther)
}

// WhatsAppDisconnect logs out the WhatsApp session
func WhatsAppDisconnect(c flamego.Context) {
	client := whatsapp.GetClient()

	if client == nil {
		logger.Error("WhatsApp disconnect requested but client is not initialized")
		c.Redirect("/whatsapp", http.StatusSeeOther)

		return
	}

	if err := client.Logout(); err != nil {
		logger.Error("WhatsApp logout failed", "error", err)
	}

	c.Redirect("/whatsapp", http.StatusSeeOther)
}

// WhatsAppStatusAPI returns the current WhatsApp status as JSON
func WhatsAppStatusAPI(c flamego.Context) {
	client := whatsapp.GetClient()

	response := map[string]interface{}{
		"status":    "unavailable",
		"qrCode":    "",
		"connected": false,
	}

	if client != nil {
		response["status"] = string(client.GetStatus())
		response["qrCode"] = client.GetQRCode()
		response["connected"] = client.IsConnected()
	}

	c.ResponseWriter().Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(c.ResponseWriter()).Encode(response); err != nil {
		logger.Error("Error encoding WhatsApp status", "error", err)
	}
}
