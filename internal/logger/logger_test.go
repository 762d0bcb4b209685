package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurancefinder/internal/middleware"
)

func TestEmitWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	Warn("out: unknown company", map[string]interface{}{"id": "acme"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "out: unknown company", entry["msg"])
	assert.Equal(t, "acme", entry["extra"].(map[string]interface{})["id"])
	assert.NotEmpty(t, entry["ts"])
}

func TestEmitOmitsEmptyExtra(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	Info("server starting", nil)

	assert.NotContains(t, buf.String(), `"extra"`)
}

func TestForStampsRequestID(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		For(r).Error("plan pdf render failed", map[string]interface{}{"state": "CA"})
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/plan-pdf", nil)
	id := "3f1c2a9e-5b7d-4e8f-9a0b-1c2d3e4f5a6b"
	req.Header.Set(middleware.RequestIDHeader, id)
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, id, entry["request_id"])
}

func TestForWithoutRequestIDOmitsField(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	For(httptest.NewRequest(http.MethodGet, "/", nil)).Info("outbound", nil)

	assert.NotContains(t, buf.String(), `"request_id"`)
}
