package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_Routes(t *testing.T) {
	srv := NewServer(":0", nil)
	assert.Equal(t, ":0", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	ProjectListSource.WithLabelValues("mock").Inc()
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "dashboard_project_list_total")
}

func TestCollectors_Exposed(t *testing.T) {
	UpstreamRequests.WithLabelValues("projects", "ok").Inc()
	UpstreamDuration.WithLabelValues("projects").Observe(0.2)
	PingProbes.WithLabelValues("ok").Inc()
	PingLatency.Observe(0.1)

	rec := httptest.NewRecorder()
	NewServer(":0", nil).Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `dashboard_upstream_requests_total{endpoint="projects",outcome="ok"}`)
	assert.Contains(t, body, "dashboard_upstream_request_duration_seconds_bucket")
	assert.Contains(t, body, `dashboard_ping_probes_total{outcome="ok"}`)
	assert.Contains(t, body, "dashboard_ping_latency_seconds_count")
}

func TestNewServer_CustomGatherer(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "only_in_custom_registry_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	rec := httptest.NewRecorder()
	NewServer(":0", reg).Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "only_in_custom_registry_total 1")
	assert.NotContains(t, rec.Body.String(), "dashboard_project_list_total")
}

func TestNewServer_RejectsPost(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(":0", nil).Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
