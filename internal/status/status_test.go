package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestTrackerStates(t *testing.T) {
	tr := NewTracker(zaptest.NewLogger(t))
	assert.Equal(t, "", tr.Value())

	require.NoError(t, tr.SetQR("2@abc,def,ghi"))
	assert.True(t, strings.HasPrefix(tr.Value(), "data:image/png;base64,"))

	tr.Set(StateReady)
	assert.Equal(t, StateReady, tr.Value())
}

func TestRouterHealth(t *testing.T) {
	router := NewRouter(NewTracker(nil), nil, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HealthMessage, rec.Body.String())
}

func TestRouterQRCode(t *testing.T) {
	tr := NewTracker(nil)
	tr.Set(StateDisconnected)
	router := NewRouter(tr, nil, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/qrcode", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		QR string `json:"qr"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StateDisconnected, body.QR)
}

func TestRouterCORS(t *testing.T) {
	allowed := []string{"http://localhost:8080"}
	router := NewRouter(NewTracker(nil), allowed, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/qrcode", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

	req = httptest.NewRequest(http.MethodGet, "/qrcode", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/qrcode", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
