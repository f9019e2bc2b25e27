// Package whatsapp runs the single process-wide WhatsApp session used for notifications.
package whatsapp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	_ "modernc.org/sqlite"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/validator"
	"kariyer_backend/pkg/apperrors"
)

const DefaultReconnectDelay = 5 * time.Second

// Client owns the whatsmeow session. Obtain it with Init; there is one per process.
type Client struct {
	container      *sqlstore.Container
	reconnectDelay time.Duration

	mu          sync.RWMutex
	wa          *whatsmeow.Client
	qrCode      string
	connected   bool
	reconnectOn bool
	ctx         context.Context
}

var (
	instance *Client
	initErr  error
	once     sync.Once
)

// Init opens the credential store at storePath once; later calls return the same client.
func Init(ctx context.Context, storePath string, reconnectDelay time.Duration) (*Client, error) {
	once.Do(func() {
		instance, initErr = newClient(ctx, storePath, reconnectDelay)
	})
	return instance, initErr
}

func newClient(ctx context.Context, storePath string, reconnectDelay time.Duration) (*Client, error) {
	if reconnectDelay <= 0 {
		reconnectDelay = DefaultReconnectDelay
	}
	if dir := filepath.Dir(storePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("whatsapp: create store dir: %w", err)
		}
	}

	container, err := sqlstore.New(ctx, "sqlite", "file:"+storePath+"?_pragma=foreign_keys(1)", newLogger("store"))
	if err != nil {
		return nil, fmt.Errorf("whatsapp: open store: %w", err)
	}
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: load device: %w", err)
	}

	c := &Client{container: container, reconnectDelay: reconnectDelay}
	c.wa = c.newWAClient(device)
	return c, nil
}

func (c *Client) newWAClient(device *store.Device) *whatsmeow.Client {
	wa := whatsmeow.NewClient(device, newLogger("client"))
	wa.EnableAutoReconnect = false
	wa.AddEventHandler(c.handleEvent)
	return wa
}

// Start connects and keeps the session alive until ctx ends.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	c.ctx = ctx
	c.reconnectOn = true
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		c.reconnectOn = false
		wa := c.wa
		c.mu.Unlock()
		wa.Disconnect()
	}()

	return c.connect(ctx)
}

// connect starts pairing when the device has no identity, otherwise resumes the session.
func (c *Client) connect(ctx context.Context) error {
	c.mu.RLock()
	wa := c.wa
	c.mu.RUnlock()

	if wa.Store.ID == nil {
		qrChan, err := wa.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("whatsapp: qr channel: %w", err)
		}
		if err := wa.Connect(); err != nil {
			return fmt.Errorf("whatsapp: connect: %w", err)
		}
		go c.consumeQR(qrChan)
		logger.Info("whatsapp waiting for pairing")
		return nil
	}

	if err := wa.Connect(); err != nil {
		return fmt.Errorf("whatsapp: connect: %w", err)
	}
	return nil
}

func (c *Client) consumeQR(qrChan <-chan whatsmeow.QRChannelItem) {
	for evt := range qrChan {
		switch evt.Event {
		case "code":
			c.mu.Lock()
			c.qrCode = evt.Code
			c.mu.Unlock()
			logger.Info("whatsapp pairing code refreshed")
		default:
			c.mu.Lock()
			c.qrCode = ""
			c.mu.Unlock()
			logger.Info("whatsapp pairing event", "event", evt.Event)
		}
	}
}

func (c *Client) handleEvent(evt interface{}) {
	switch e := evt.(type) {
	case *events.Connected:
		c.mu.Lock()
		c.connected = true
		c.qrCode = ""
		c.mu.Unlock()
		logger.Info("whatsapp connected")

	case *events.Disconnected:
		c.mu.Lock()
		c.connected = false
		retry := c.reconnectOn
		c.mu.Unlock()
		logger.Warn("whatsapp disconnected")
		if retry {
			go c.reconnectLoop()
		}

	case *events.LoggedOut:
		logger.Warn("whatsapp session logged out", "reason", e.Reason.String())
		c.resetDevice()
	}
}

// reconnectLoop waits the fixed delay and retries until connected or stopped.
func (c *Client) reconnectLoop() {
	for {
		c.mu.RLock()
		ctx, wa, on := c.ctx, c.wa, c.reconnectOn
		c.mu.RUnlock()
		if !on || ctx == nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.reconnectDelay):
		}

		if wa.IsConnected() || wa.Store.ID == nil {
			return
		}
		if err := wa.Connect(); err != nil {
			logger.WorkerLog("whatsapp", "reconnect", err, "delay", c.reconnectDelay.String())
			continue
		}
		return
	}
}

// resetDevice swaps in a fresh device so a new QR can be paired.
func (c *Client) resetDevice() {
	c.mu.Lock()
	old := c.wa
	device := c.container.NewDevice()
	c.wa = c.newWAClient(device)
	c.connected = false
	c.qrCode = ""
	ctx, on := c.ctx, c.reconnectOn
	c.mu.Unlock()

	old.Disconnect()
	if on && ctx != nil {
		if err := c.connect(ctx); err != nil {
			logger.WorkerLog("whatsapp", "pairing", err)
		}
	}
}

// Status reports the session state for the admin panel.
func (c *Client) Status() dto.WhatsAppStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := dto.WhatsAppStatus{
		Enabled:   true,
		Connected: c.connected && c.wa.IsConnected(),
		HasQR:     c.qrCode != "",
	}
	if c.wa.Store.ID != nil {
		st.LoggedIn = true
		st.Phone = c.wa.Store.ID.User
		st.PushName = c.wa.Store.PushName
	}
	return st
}

func (c *Client) QRCode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.qrCode
}

// SendText sends a plain message to a Turkish mobile number. There is no retry.
func (c *Client) SendText(ctx context.Context, phone, text string) error {
	normalized := validator.NormalizeTurkishPhone(phone)
	if normalized == "" {
		return apperrors.ErrInvalidPhone
	}

	c.mu.RLock()
	wa, connected := c.wa, c.connected
	c.mu.RUnlock()
	if !connected || !wa.IsConnected() || wa.Store.ID == nil {
		return apperrors.ErrWhatsAppNotConnected
	}

	jid := types.NewJID(normalized, types.DefaultUserServer)
	_, err := wa.SendMessage(ctx, jid, &waE2E.Message{Conversation: &text})
	if err != nil {
		return apperrors.ExternalServiceError(err, "whatsapp", "Failed to send WhatsApp message")
	}
	return nil
}

// Logout unlinks the device and starts a new pairing.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.RLock()
	wa := c.wa
	c.mu.RUnlock()

	if wa.Store.ID == nil {
		return apperrors.ErrWhatsAppNotConnected
	}
	if err := wa.Logout(ctx); err != nil {
		return apperrors.ExternalServiceError(err, "whatsapp", "Failed to log out")
	}
	c.resetDevice()
	return nil
}

// Close stops reconnecting and drops the connection.
func (c *Client) Close() {
	c.mu.Lock()
	c.reconnectOn = false
	wa := c.wa
	c.mu.Unlock()
	wa.Disconnect()
}
