// Package status tracks the WhatsApp connection state and serves it over HTTP
// so a dashboard can show the pairing QR code or the current state.
package status

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// Connection states reported in place of a QR code.
const (
	StateReady        = "READY"
	StateDisconnected = "DISCONNECTED"
	StateAuthFailure  = "AUTH_FAILURE"
)

// Tracker holds either a QR code data URL or one of the State constants.
// The zero value reports an empty state.
type Tracker struct {
	mu     sync.RWMutex
	value  string
	logger *zap.Logger
}

// NewTracker creates an empty Tracker.
func NewTracker(logger *zap.Logger) *Tracker {
	return &Tracker{logger: logger}
}

// QRDataURL renders code as a PNG data URL.
func QRDataURL(code string) (string, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// SetQR publishes a new pairing code.
func (t *Tracker) SetQR(code string) error {
	url, err := QRDataURL(code)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.value = url
	t.mu.Unlock()
	if t.logger != nil {
		t.logger.Info("QR code published for status API")
	}
	return nil
}

// Set publishes a connection state.
func (t *Tracker) Set(state string) {
	t.mu.Lock()
	t.value = state
	t.mu.Unlock()
	if t.logger != nil {
		t.logger.Info("Connection state changed", zap.String("state", state))
	}
}

// Value returns the current QR data URL or state.
func (t *Tracker) Value() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value
}
