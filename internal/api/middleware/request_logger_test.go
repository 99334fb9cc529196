package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLogger(logger))
	r.Get("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
		w.WriteHeader(http.StatusBadGateway)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inner, entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inner))
	require.NoError(t, json.Unmarshal(lines[1], &entry))

	assert.Equal(t, "inside", inner["message"])
	assert.NotEmpty(t, inner["request_id"])
	assert.Equal(t, inner["request_id"], entry["request_id"])

	assert.Equal(t, "request", entry["message"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/projects", entry["path"])
	assert.Equal(t, float64(http.StatusBadGateway), entry["status"])
}

func TestStatusWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	ww.Write([]byte("ok"))
	assert.Equal(t, http.StatusOK, ww.status)

	ww = &statusWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	ww.WriteHeader(http.StatusNotFound)
	ww.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusNotFound, ww.status)
}
