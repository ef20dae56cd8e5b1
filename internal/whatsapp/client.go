// Package whatsapp wires a whatsmeow client to the bridge: session storage,
// QR pairing, inbound message conversion and outbound notifications.
package whatsapp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"whatsapp-media-bridge/internal/apperr"
)

// OpenClient opens (or creates) the session database at dbPath and returns a
// client for its first device.
func OpenClient(ctx context.Context, dbPath string, logger *zap.Logger) (*whatsmeow.Client, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	// whatsmeow is very chatty at debug level
	quiet := logger.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel))

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", dbPath)
	container, err := sqlstore.New(ctx, "sqlite3", dsn, Logger(quiet, "Database"))
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device from container: %w", err)
	}
	return whatsmeow.NewClient(deviceStore, Logger(quiet, "Client")), nil
}

// WaitConnected connects cli and blocks until the session is authenticated.
// It requires an already paired session.
func WaitConnected(ctx context.Context, cli *whatsmeow.Client, timeout time.Duration) error {
	if cli.Store.ID == nil {
		return apperr.Auth("whatsapp", fmt.Errorf("no paired session, run the monitor once to scan the QR code"))
	}

	connected := make(chan struct{})
	var once sync.Once
	id := cli.AddEventHandler(func(evt interface{}) {
		if _, ok := evt.(*events.Connected); ok {
			once.Do(func() { close(connected) })
		}
	})
	defer cli.RemoveEventHandler(id)

	if err := cli.Connect(); err != nil {
		return apperr.Transport("whatsapp", "connect", err)
	}

	select {
	case <-connected:
		return nil
	case <-time.After(timeout):
		return apperr.Transport("whatsapp", "connect", fmt.Errorf("not connected after %s", timeout))
	case <-ctx.Done():
		return ctx.Err()
	}
}
