package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// jsonRequest builds a request whose body is either a raw string, sent
// as is, or any other value encoded as JSON. A nil body sends nothing.
func jsonRequest(method, target string, body any) *http.Request {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		var buf bytes.Buffer
		json.NewEncoder(&buf).Encode(b)
		rd = &buf
	}
	r := httptest.NewRequest(method, target, rd)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// deploymentsRequest targets /api/deployments/{projectId} with the chi
// route param set, as the router would.
func deploymentsRequest(projectID string) *http.Request {
	r := jsonRequest(http.MethodGet, "/api/deployments/"+projectID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("projectId", projectID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody parses a flat JSON response body into a map.
func decodeBody(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}
