/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package whatsapp manages the WhatsApp connection that feeds report
// documents into the pipeline. The client is a process-wide singleton
// backed by a PostgreSQL device store, so pairing survives restarts.
package whatsapp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"
)

// Status represents the WhatsApp connection status
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusPairing      Status = "pairing"
)

// TextHandler is called for each incoming direct-chat text message.
type TextHandler func(ctx context.Context, jid string, text string)

// DocumentHandler is called for each incoming direct-chat document,
// after its content has been downloaded.
type DocumentHandler func(ctx context.Context, jid string, filename string, mimetype string, data []byte)

// Client manages the WhatsApp connection via whatsmeow
type Client struct {
	client      *whatsmeow.Client
	container   *sqlstore.Container
	deviceStore *store.Device
	status      Status
	qrCode      string // Base64 encoded PNG
	mu          sync.RWMutex
	onText      TextHandler
	onDocument  DocumentHandler
}

var (
	instance *Client
	once     sync.Once
)

// GetClient returns the singleton WhatsApp client instance
func GetClient() *Client {
	return instance
}

// Initialize sets up the WhatsApp client with PostgreSQL storage
func Initialize(ctx context.Context, databaseURL string, onText TextHandler, onDocument DocumentHandler) error {
	var initErr error
	once.Do(func() {
		// Device name shown in WhatsApp linked devices
		store.SetOSInfo("Labwave", [3]uint32{1, 0, 0})

		container, err := sqlstore.New(ctx, "pgx", databaseURL, newWALogger("store"))
		if err != nil {
			initErr = fmt.Errorf("failed to create sqlstore: %w", err)
			return
		}

		deviceStore, err := container.GetFirstDevice(ctx)
		if err != nil {
			initErr = fmt.Errorf("failed to get device: %w", err)
			return
		}

		instance = &Client{
			container:   container,
			deviceStore: deviceStore,
			status:      StatusDisconnected,
			onText:      onText,
			onDocument:  onDocument,
		}

		// If we have an existing device, try to reconnect
		if deviceStore.ID != nil {
			go func() {
				if err := instance.Reconnect(context.Background()); err != nil {
					logger.Warn("WhatsApp auto-reconnect failed", "error", err)
				}
			}()
		}
	})

	return initErr
}

// GetStatus returns the current connection status
func (c *Client) GetStatus() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// GetQRCode returns the current QR code as a base64 PNG string
func (c *Client) GetQRCode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.qrCode
}

// setStatus updates the connection status thread-safely
func (c *Client) setStatus(status Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// setQRCode updates the QR code thread-safely
func (c *Client) setQRCode(qrCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.qrCode = qrCode
}

// Connect initiates the WhatsApp connection
func (c *Client) Connect(ctx context.Context) error {
	c.setStatus(StatusConnecting)

	c.client = whatsmeow.NewClient(c.deviceStore, newWALogger("client"))
	c.client.AddEventHandler(c.handleEvent)
	c.client.EnableAutoReconnect = true
	c.client.AutoTrustIdentity = true

	// If already logged in, just connect
	if c.client.Store.ID != nil {
		err := c.client.Connect()
		if err != nil {
			c.setStatus(StatusDisconnected)
			return fmt.Errorf("failed to connect: %w", err)
		}
		c.setStatus(StatusConnected)
		return nil
	}

	// Need to pair - get QR code channel BEFORE connecting
	c.setStatus(StatusPairing)
	qrChan, _ := c.client.GetQRChannel(ctx)

	err := c.client.Connect()
	if err != nil {
		c.setStatus(StatusDisconnected)
		return fmt.Errorf("failed to connect: %w", err)
	}

	go func() {
		for evt := range qrChan {
			switch evt.Event {
			case "code":
				png, err := qrcode.Encode(evt.Code, qrcode.Medium, 256)
				if err != nil {
					logger.Error("Failed to generate QR code", "error", err)
					continue
				}
				c.setQRCode(base64.StdEncoding.EncodeToString(png))
				logger.Info("WhatsApp QR code generated")
			case "success":
				c.setQRCode("")
				c.setStatus(StatusConnected)
				logger.Info("WhatsApp pairing successful")
			case "timeout":
				c.setQRCode("")
				c.setStatus(StatusDisconnected)
				logger.Warn("WhatsApp QR code timeout")
			case "error":
				c.setQRCode("")
				c.setStatus(StatusDisconnected)
				logger.Error("WhatsApp pairing error", "error", evt.Error)
			}
		}
	}()

	return nil
}

// Reconnect attempts to reconnect with existing credentials
func (c *Client) Reconnect(ctx context.Context) error {
	if c.deviceStore.ID == nil {
		return errNoExistingSessionToReconnect
	}

	c.setStatus(StatusConnecting)

	c.client = whatsmeow.NewClient(c.deviceStore, newWALogger("client"))
	c.client.AddEventHandler(c.handleEvent)
	c.client.EnableAutoReconnect = true
	c.client.AutoTrustIdentity = true

	err := c.client.Connect()
	if err != nil {
		c.setStatus(StatusDisconnected)
		return fmt.Errorf("failed to reconnect: %w", err)
	}

	c.setStatus(StatusConnected)
	logger.Info("WhatsApp reconnected successfully")
	return nil
}

// Disconnect cleanly disconnects the WhatsApp client
func (c *Client) Disconnect() {
	if c.client != nil {
		c.client.Disconnect()
	}
	c.setStatus(StatusDisconnected)
	c.setQRCode("")
}

// Logout disconnects and removes the device credentials
func (c *Client) Logout() error {
	if c.client == nil {
		return nil
	}

	ctx := context.Background()
	err := c.client.Logout(ctx)
	if err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	c.setStatus(StatusDisconnected)
	c.setQRCode("")

	// Get a fresh device store
	deviceStore, err := c.container.GetFirstDevice(ctx)
	if err != nil {
		return fmt.Errorf("failed to get new device: %w", err)
	}
	c.deviceStore = deviceStore

	return nil
}

// SendText sends a plain text message to the given JID.
func (c *Client) SendText(ctx context.Context, jid string, text string) error {
	if c.client == nil || !c.IsConnected() {
		return errNotConnected
	}

	target, err := types.ParseJID(jid)
	if err != nil {
		return fmt.Errorf("invalid jid %q: %w", jid, err)
	}

	_, err = c.client.SendMessage(ctx, target, &waE2E.Message{
		Conversation: proto.String(text),
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// handleEvent processes WhatsApp events
func (c *Client) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Connected:
		c.setStatus(StatusConnected)
		logger.Info("WhatsApp connected")

	case *events.Disconnected:
		c.setStatus(StatusDisconnected)
		logger.Info("WhatsApp disconnected")

	case *events.LoggedOut:
		c.setStatus(StatusDisconnected)
		logger.Info("WhatsApp logged out")

	case *events.Message:
		c.handleMessage(v)
	}
}

// handleMessage dispatches incoming direct-chat messages to the
// document and text handlers. Group chats and own messages are ignored.
func (c *Client) handleMessage(evt *events.Message) {
	if evt.Info.IsGroup {
		return
	}

	if isOutgoingMessage(evt.Info) {
		return
	}

	msg := evt.UnwrapRaw().Message
	if msg == nil {
		return
	}

	ctx := context.Background()
	jid := resolveOtherPartyJID(evt.Info).ToNonAD().String()

	if doc := msg.GetDocumentMessage(); doc != nil {
		if c.onDocument == nil {
			return
		}

		data, err := c.client.Download(ctx, doc)
		if err != nil {
			logger.Error("Failed to download document", "jid", jid, "error", err)
			return
		}

		c.onDocument(ctx, jid, doc.GetFileName(), doc.GetMimetype(), data)
		return
	}

	if text := extractMessageText(msg); text != "" && c.onText != nil {
		c.onText(ctx, jid, text)
	}
}

func extractMessageText(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}

	if text := strings.TrimSpace(msg.GetConversation()); text != "" {
		return text
	}

	if extended := msg.GetExtendedTextMessage(); extended != nil {
		if text := strings.TrimSpace(extended.GetText()); text != "" {
			return text
		}
	}

	return ""
}

// isOutgoingMessage reports whether the message was sent by this
// account, from this device or any other linked device.
func isOutgoingMessage(info types.MessageInfo) bool {
	if info.IsFromMe {
		return true
	}

	return info.DeviceSentMeta != nil && info.DeviceSentMeta.DestinationJID != ""
}

// resolveOtherPartyJID returns the JID of the other side of a direct
// chat, preferring phone-number addressing over hidden-user (lid)
// aliases so the same person always resolves to the same key.
func resolveOtherPartyJID(info types.MessageInfo) types.JID {
	if isOutgoingMessage(info) {
		if info.DeviceSentMeta != nil && info.DeviceSentMeta.DestinationJID != "" {
			dest, err := types.ParseJID(info.DeviceSentMeta.DestinationJID)
			if err == nil && isPhoneNumberJID(dest) {
				return dest
			}
		}

		return preferPhoneNumberJID(info.Chat, info.RecipientAlt)
	}

	if !info.Sender.IsEmpty() {
		return preferPhoneNumberJID(info.Sender, info.SenderAlt)
	}

	return preferPhoneNumberJID(info.Chat, info.SenderAlt)
}

// preferPhoneNumberJID picks the phone-addressed JID of the pair,
// falling back to primary when neither is phone-addressed.
func preferPhoneNumberJID(primary, alternate types.JID) types.JID {
	if primary.IsEmpty() {
		return alternate
	}

	if isPhoneNumberJID(primary) {
		return primary
	}

	if isPhoneNumberJID(alternate) {
		return alternate
	}

	return primary
}

func isPhoneNumberJID(jid types.JID) bool {
	switch jid.Server {
	case types.DefaultUserServer, types.LegacyUserServer:
		return true
	}

	return false
}

// IsConnected returns true if WhatsApp is connected
func (c *Client) IsConnected() bool {
	return c.GetStatus() == StatusConnected
}
