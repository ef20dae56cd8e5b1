// Package trello exposes a Trello board as a card store for label resolution
// and URL attachments.
package trello

import (
	"context"
	"fmt"
	"time"

	"github.com/adlio/trello"
	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/apperr"
	"whatsapp-media-bridge/internal/resolve"
)

const service = "trello"

// Board lists and creates cards on one board, placing new cards in one list.
type Board struct {
	client   *trello.Client
	boardID  string
	listID   string
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewBoard creates a Board. loc is used for timestamps in card descriptions.
func NewBoard(apiKey, token, boardID, listID string, loc *time.Location, logger *zap.Logger) *Board {
	if loc == nil {
		loc = time.UTC
	}
	return &Board{
		client:   trello.NewClient(apiKey, token),
		boardID:  boardID,
		listID:   listID,
		location: loc,
		now:      time.Now,
		logger:   logger,
	}
}

// Description returns the description given to a card created for title.
func Description(title string, at time.Time) string {
	return fmt.Sprintf("Card criado automaticamente após receber a primeira mídia de %s em %s.",
		title, at.Format("02/01/2006 15:04:05"))
}

// List implements resolve.Store.
func (b *Board) List(ctx context.Context) ([]resolve.Record, error) {
	var cards []*trello.Card
	path := fmt.Sprintf("boards/%s/cards", b.boardID)
	if err := b.client.WithContext(ctx).Get(path, trello.Arguments{"fields": "name,id"}, &cards); err != nil {
		return nil, classify("list cards", err)
	}

	records := make([]resolve.Record, 0, len(cards))
	for _, card := range cards {
		records = append(records, resolve.Record{ID: card.ID, Title: card.Name})
	}
	b.logger.Debug("Cards listed", zap.String("board", b.boardID), zap.Int("count", len(records)))
	return records, nil
}

// Create implements resolve.Store.
func (b *Board) Create(ctx context.Context, title string) (resolve.Record, error) {
	card := &trello.Card{
		Name:   title,
		Desc:   Description(title, b.now().In(b.location)),
		IDList: b.listID,
	}
	if err := b.client.WithContext(ctx).CreateCard(card, trello.Defaults()); err != nil {
		return resolve.Record{}, classify("create card", err)
	}
	b.logger.Info("Card created", zap.String("title", title), zap.String("id", card.ID))
	return resolve.Record{ID: card.ID, Title: card.Name}, nil
}

// AttachURL implements record.Attacher.
func (b *Board) AttachURL(ctx context.Context, cardID, title, url string) error {
	var attachment trello.Attachment
	path := fmt.Sprintf("cards/%s/attachments", cardID)
	args := trello.Arguments{"url": url, "name": title}
	if err := b.client.WithContext(ctx).Post(path, args, &attachment); err != nil {
		return classify("attach url", err)
	}
	return nil
}

func classify(op string, err error) error {
	if trello.IsPermissionDenied(err) {
		return apperr.Auth(service, fmt.Errorf("%s: %w", op, err))
	}
	return apperr.Transport(service, op, err)
}
