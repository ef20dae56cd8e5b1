package whatsapp

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/status"
)

// Connect connects cli, first starting QR pairing when the device has no
// session. Pairing codes are printed to out and published to tracker.
func Connect(ctx context.Context, cli *whatsmeow.Client, tracker *status.Tracker, out io.Writer, logger *zap.Logger) error {
	if cli.Store.ID == nil {
		// No ID stored, new session
		qrChan, err := cli.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("failed to get QR channel: %w", err)
		}
		logger.Info("Generating QR code...")
		go watchQR(qrChan, tracker, out, logger)
	}

	if err := cli.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	return nil
}

func watchQR(qrChan <-chan whatsmeow.QRChannelItem, tracker *status.Tracker, out io.Writer, logger *zap.Logger) {
	for evt := range qrChan {
		switch evt.Event {
		case "code":
			fmt.Fprintln(out, "QR Code generated! Please scan this with your WhatsApp mobile app:")
			fmt.Fprintln(out)
			if err := PrintQRCode(out, evt.Code); err != nil {
				logger.Error("Failed to display QR code in terminal", zap.Error(err))
				fmt.Fprintf(out, "Alternatively, you can manually scan this code: %s\n", evt.Code)
			}
			fmt.Fprintln(out)
			if err := tracker.SetQR(evt.Code); err != nil {
				logger.Error("Failed to publish QR code", zap.Error(err))
			}
		case "timeout":
			logger.Info("QR code timeout, generating new one...")
			tracker.Set(status.StateDisconnected)
		case "success":
			logger.Info("QR pairing succeeded")
		default:
			logger.Info("Login event", zap.String("event", evt.Event))
		}
	}
}

// PrintQRCode renders code to out as block characters inside a frame.
func PrintQRCode(out io.Writer, code string) error {
	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("failed to create QR code: %w", err)
	}

	// true is a black module
	matrix := qr.Bitmap()
	if len(matrix) == 0 {
		return fmt.Errorf("empty QR bitmap")
	}

	// two characters per module keep the aspect ratio square in terminals
	const blackBlock = "██"
	const whiteBlock = "  "
	border := strings.Repeat("═", len(matrix[0])*2)

	var b strings.Builder
	b.WriteString("╔" + border + "╗\n")
	for _, row := range matrix {
		b.WriteString("║")
		for _, isBlack := range row {
			if isBlack {
				b.WriteString(blackBlock)
			} else {
				b.WriteString(whiteBlock)
			}
		}
		b.WriteString("║\n")
	}
	b.WriteString("╚" + border + "╝\n")

	_, err = io.WriteString(out, b.String())
	return err
}
