package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/api/option"

	"whatsapp-media-bridge/internal/apperr"
	"whatsapp-media-bridge/internal/gauth"
	"whatsapp-media-bridge/internal/resolve"
)

func newTestSpreadsheet(t *testing.T, handler http.HandlerFunc) *Spreadsheet {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := newSpreadsheet(context.Background(), "sheet1", zaptest.NewLogger(t),
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return s
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestSpreadsheetListFake(t *testing.T) {
	s := newTestSpreadsheet(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet1", r.URL.Path)
		assert.Equal(t, "sheets.properties.title", r.URL.Query().Get("fields"))
		writeJSON(t, w, map[string]interface{}{
			"sheets": []map[string]interface{}{
				{"properties": map[string]string{"title": "MIGUEL PEREIRA"}},
				{"properties": map[string]string{"title": "maya"}},
			},
		})
	})

	records, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []resolve.Record{
		{ID: "MIGUEL PEREIRA", Title: "MIGUEL PEREIRA"},
		{ID: "maya", Title: "maya"},
	}, records)
}

func TestSpreadsheetCreateKeepsTitle(t *testing.T) {
	var body struct {
		Requests []struct {
			AddSheet struct {
				Properties struct {
					Title string `json:"title"`
				} `json:"properties"`
			} `json:"addSheet"`
		} `json:"requests"`
	}
	s := newTestSpreadsheet(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet1:batchUpdate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(t, w, map[string]string{"spreadsheetId": "sheet1"})
	})

	rec, err := s.Create(context.Background(), "José Álvares")
	require.NoError(t, err)
	assert.Equal(t, resolve.Record{ID: "José Álvares", Title: "José Álvares"}, rec)
	require.Len(t, body.Requests, 1)
	assert.Equal(t, "José Álvares", body.Requests[0].AddSheet.Properties.Title)
}

func TestSpreadsheetReadColumnKeepsBlankRows(t *testing.T) {
	s := newTestSpreadsheet(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet1/values/'maya'!A:A", r.URL.Path)
		writeJSON(t, w, map[string]interface{}{
			"range":  "'maya'!A1:A4",
			"values": [][]interface{}{{"foto1.jpeg"}, {}, {"foto3.jpeg"}, {"foto4.mp4"}},
		})
	})

	cells, err := s.ReadColumn(context.Background(), "maya", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"foto1.jpeg", "", "foto3.jpeg", "foto4.mp4"}, cells)
}

func TestSpreadsheetWriteRow(t *testing.T) {
	var body struct {
		Values [][]string `json:"values"`
	}
	s := newTestSpreadsheet(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet1/values/'maya'!A5:C5", r.URL.Path)
		assert.Equal(t, "USER_ENTERED", r.URL.Query().Get("valueInputOption"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(t, w, map[string]interface{}{"updatedRows": 1})
	})

	err := s.WriteRow(context.Background(), "maya", 5,
		[]string{"foto5.jpeg", "01/03/2025 09:00:00", "https://drive.google.com/file/d/f5/view"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"foto5.jpeg", "01/03/2025 09:00:00", "https://drive.google.com/file/d/f5/view"}}, body.Values)
}

func TestSpreadsheetPermissionDenied(t *testing.T) {
	s := newTestSpreadsheet(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	})

	_, err := s.List(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))
}

func TestRanges(t *testing.T) {
	assert.Equal(t, "'MIGUEL PEREIRA'!A:A", ColumnRange("MIGUEL PEREIRA", "A"))
	assert.Equal(t, "'d''avila'!A:A", ColumnRange("d'avila", "A"))
	assert.Equal(t, "'maya'!A5:C5", RowRange("maya", 5, 3))
	assert.Equal(t, "'maya'!A1:A1", RowRange("maya", 1, 0))
}

func TestSpreadsheetListTabs(t *testing.T) {
	id := os.Getenv("GOOGLE_SPREADSHEET_ID")
	email := os.Getenv("GOOGLE_CLIENT_EMAIL")
	key := os.Getenv("GOOGLE_PRIVATE_KEY")
	if id == "" || email == "" || key == "" {
		t.Skip("Skipping test: GOOGLE_SPREADSHEET_ID, GOOGLE_CLIENT_EMAIL and GOOGLE_PRIVATE_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ts, err := gauth.TokenSource(ctx, gauth.Credentials{ClientEmail: email, PrivateKey: key},
		"https://www.googleapis.com/auth/spreadsheets")
	require.NoError(t, err)
	s, err := NewSpreadsheet(ctx, ts, id, zaptest.NewLogger(t))
	require.NoError(t, err)

	tabs, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, tabs)
}
