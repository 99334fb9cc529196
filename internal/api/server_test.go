package api

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TodayDesign/vercel-project-dashboard/internal/config"
	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/ping"
)

type stubProjects struct {
	list model.ProjectList
	err  error
	id   string
}

func (s *stubProjects) List(context.Context) (model.ProjectList, error) {
	return s.list, s.err
}

func (s *stubProjects) Deployments(_ context.Context, projectID string) (model.DeploymentList, error) {
	s.id = projectID
	return model.DeploymentList{}, s.err
}

type stubProber struct{}

func (stubProber) Probe(context.Context, string) (ping.Result, error) {
	return ping.Result{Latency: 12, Status: 200}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		HTTPListenAddr: ":0",
		CORSOrigins:    []string{"http://localhost:3000"},
		AuthUsername:   "admin",
		AuthPassword:   "s3cret",
	}
}

func newTestServer(cfg *config.Config, svc Services) *Server {
	if svc.Projects == nil {
		svc.Projects = &stubProjects{list: model.ProjectList{Source: model.SourceMock}}
	}
	if svc.Prober == nil {
		svc.Prober = stubProber{}
	}
	return NewServer(zerolog.Nop(), cfg, svc)
}

func authorized(r *http.Request) *http.Request {
	r.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:s3cret")))
	return r
}

func serve(s *Server, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, r)
	return rec
}

// ---------- Public endpoints ----------

func TestServer_Healthz(t *testing.T) {
	s := newTestServer(testConfig(), Services{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Readyz(t *testing.T) {
	s := newTestServer(testConfig(), Services{Checks: map[string]ReadinessCheck{
		"vercel": func(context.Context) error { return nil },
	}})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"vercel":"ok"}`, rec.Body.String())
}

func TestServer_ReadyzUnhealthy(t *testing.T) {
	s := newTestServer(testConfig(), Services{Checks: map[string]ReadinessCheck{
		"vercel": func(context.Context) error { return nil },
		"cache":  func(context.Context) error { return errors.New("connection refused") },
	}})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"vercel":"ok","cache":"connection refused"}`, rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(testConfig(), Services{})
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	cfg := testConfig()
	cfg.MetricsListenAddr = ":9090"
	s = newTestServer(cfg, Services{})
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---------- API ----------

func TestServer_APIRequiresAuth(t *testing.T) {
	s := newTestServer(testConfig(), Services{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Basic realm="Vercel Dashboard"`, rec.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"error":"Authorization header required"}`, rec.Body.String())
}

func TestServer_Projects(t *testing.T) {
	s := newTestServer(testConfig(), Services{})

	rec := serve(s, authorized(httptest.NewRequest(http.MethodGet, "/api/projects", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.SourceMock, rec.Header().Get("X-Data-Source"))
}

func TestServer_DeploymentsRouteParam(t *testing.T) {
	projects := &stubProjects{}
	s := newTestServer(testConfig(), Services{Projects: projects})

	rec := serve(s, authorized(httptest.NewRequest(http.MethodGet, "/api/deployments/prj_42", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "prj_42", projects.id)
}

func TestServer_Ping(t *testing.T) {
	s := newTestServer(testConfig(), Services{})

	r := authorized(httptest.NewRequest(http.MethodPost, "/api/ping", strings.NewReader(`{"domain":"example.com"}`)))
	rec := serve(s, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"latency":12,"status":200,"success":true}`, rec.Body.String())
}

func TestServer_PreflightSkipsAuth(t *testing.T) {
	s := newTestServer(testConfig(), Services{})

	r := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	rec := serve(s, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_NotFound(t *testing.T) {
	s := newTestServer(testConfig(), Services{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}
