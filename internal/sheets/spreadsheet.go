// Package sheets exposes the tabs of one Google spreadsheet as an append-style
// record store: tabs are records, rows are appended media entries.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"whatsapp-media-bridge/internal/gauth"
	"whatsapp-media-bridge/internal/resolve"
)

const service = "sheets"

// Scope is the OAuth scope needed to read and write spreadsheets.
const Scope = sheets.SpreadsheetsScope

// Spreadsheet reads and writes the tabs of one spreadsheet.
type Spreadsheet struct {
	svc    *sheets.Service
	id     string
	logger *zap.Logger
}

// NewSpreadsheet creates a Spreadsheet client authenticated by ts.
func NewSpreadsheet(ctx context.Context, ts oauth2.TokenSource, spreadsheetID string, logger *zap.Logger) (*Spreadsheet, error) {
	return newSpreadsheet(ctx, spreadsheetID, logger, option.WithTokenSource(ts))
}

func newSpreadsheet(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*Spreadsheet, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Spreadsheet{svc: svc, id: spreadsheetID, logger: logger}, nil
}

// QuoteTab quotes a tab title for A1 notation.
func QuoteTab(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

// ColumnRange returns the A1 range covering a whole column of tab.
func ColumnRange(tab, column string) string {
	return fmt.Sprintf("%s!%s:%s", QuoteTab(tab), column, column)
}

// RowRange returns the A1 range for width cells of row, starting at column A.
func RowRange(tab string, row, width int) string {
	if width < 1 {
		width = 1
	}
	last := string(rune('A' + width - 1))
	return fmt.Sprintf("%s!A%d:%s%d", QuoteTab(tab), row, last, row)
}

// List implements resolve.Store. Record IDs are the exact tab titles.
func (s *Spreadsheet) List(ctx context.Context) ([]resolve.Record, error) {
	resp, err := s.svc.Spreadsheets.Get(s.id).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, gauth.Classify(service, "list tabs", err)
	}

	records := make([]resolve.Record, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		records = append(records, resolve.Record{ID: sh.Properties.Title, Title: sh.Properties.Title})
	}
	return records, nil
}

// Create implements resolve.Store by adding a tab titled title.
func (s *Spreadsheet) Create(ctx context.Context, title string) (resolve.Record, error) {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.id, req).Context(ctx).Do(); err != nil {
		return resolve.Record{}, gauth.Classify(service, "add tab", err)
	}
	s.logger.Info("Tab created", zap.String("tab", title))
	return resolve.Record{ID: title, Title: title}, nil
}

// ReadColumn implements record.Log.
func (s *Spreadsheet) ReadColumn(ctx context.Context, tab, column string) ([]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.id, ColumnRange(tab, column)).Context(ctx).Do()
	if err != nil {
		return nil, gauth.Classify(service, "read column", err)
	}
	cells := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			cells = append(cells, "")
			continue
		}
		cells = append(cells, fmt.Sprint(row[0]))
	}
	return cells, nil
}

// WriteRow implements record.Log. Values are entered as if typed by a user.
func (s *Spreadsheet) WriteRow(ctx context.Context, tab string, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}
	_, err := s.svc.Spreadsheets.Values.Update(s.id, RowRange(tab, row, len(values)), vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return gauth.Classify(service, "write row", err)
	}
	return nil
}
