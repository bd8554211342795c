package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false)

	logger.WithFields(map[string]any{"user_id": "abc"}).Info("signed in")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "signed in", entry["msg"])
	assert.Equal(t, "abc", entry["user_id"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewLogger_ProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("noise")
	assert.Empty(t, buf.String())
}

func TestNewLogger_DevelopmentWritesText(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, true).Debug("details", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=details")
	assert.Contains(t, out, "k=v")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false)

	var inner *Logger
	handler := middleware.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = FromContext(r.Context(), nil)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("nope"))
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	require.NotNil(t, inner)
	assert.NotSame(t, logger, inner)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/me", entry["path"])
	assert.Equal(t, float64(http.StatusUnauthorized), entry["status"])
	assert.Equal(t, float64(4), entry["bytes"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestFromContext_Fallback(t *testing.T) {
	fallback := Discard()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))
	assert.NotNil(t, FromContext(context.Background(), nil))

	stored := Discard()
	assert.Same(t, stored, FromContext(WithLogger(context.Background(), stored), fallback))
}
