package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

func newProjectHandler() (*Project, *mockProjectService) {
	svc := &mockProjectService{}
	return NewProject(svc), svc
}

// ---------- List ----------

func TestProjectList_Success(t *testing.T) {
	h, svc := newProjectHandler()
	svc.On("List", mock.Anything).Return(model.ProjectList{
		Source: model.SourceVercel,
		Projects: []model.ProjectWithSource{{
			Source:      model.SanitizedProject{ID: "prj_1", Name: "shop"},
			Transformed: model.Project{ID: "prj_1", Name: "shop", Status: model.StatusReady},
		}},
	}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, jsonRequest(http.MethodGet, "/api/projects", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.SourceVercel, rec.Header().Get(DataSourceHeader))

	var body model.ProjectList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Projects, 1)
	assert.Equal(t, "shop", body.Projects[0].Transformed.Name)
	assert.Equal(t, "prj_1", body.Projects[0].Source.ID)
	assert.Equal(t, model.SourceVercel, body.Source)
	svc.AssertExpectations(t)
}

func TestProjectList_MockSource(t *testing.T) {
	h, svc := newProjectHandler()
	svc.On("List", mock.Anything).Return(model.ProjectList{Source: model.SourceMock}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, jsonRequest(http.MethodGet, "/api/projects", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.SourceMock, rec.Header().Get(DataSourceHeader))
	assert.JSONEq(t, `{"projects":[],"source":"mock"}`, rec.Body.String())
}

func TestProjectList_NotConfigured(t *testing.T) {
	h, svc := newProjectHandler()
	svc.On("List", mock.Anything).Return(model.ProjectList{}, vercel.ErrNotConfigured)

	rec := httptest.NewRecorder()
	h.List(rec, jsonRequest(http.MethodGet, "/api/projects", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Vercel API token not configured", decodeBody(rec)["error"])
}

func TestProjectList_UpstreamError(t *testing.T) {
	h, svc := newProjectHandler()
	upstream := &vercel.APIError{Path: "/v9/projects", StatusCode: 403, Body: "forbidden secret detail"}
	svc.On("List", mock.Anything).Return(model.ProjectList{}, fmt.Errorf("list projects: %w", upstream))

	rec := httptest.NewRecorder()
	h.List(rec, jsonRequest(http.MethodGet, "/api/projects", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Failed to fetch projects from Vercel API", decodeBody(rec)["error"])
	assert.NotContains(t, rec.Body.String(), "secret")
}

// ---------- Deployments ----------

func TestProjectDeployments_Success(t *testing.T) {
	h, svc := newProjectHandler()
	svc.On("Deployments", mock.Anything, "prj_1").Return(model.DeploymentList{
		Deployments: []model.DeploymentWithSource{{
			Source:      model.SanitizedDeployment{ID: "dpl_1"},
			Transformed: model.Deployment{ID: "dpl_1", State: vercel.StateReady},
		}},
	}, nil)

	rec := httptest.NewRecorder()
	r := deploymentsRequest("prj_1")
	h.Deployments(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.DeploymentList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Deployments, 1)
	assert.Equal(t, "dpl_1", body.Deployments[0].Transformed.ID)
	svc.AssertExpectations(t)
}

func TestProjectDeployments_EmptyList(t *testing.T) {
	h, svc := newProjectHandler()
	svc.On("Deployments", mock.Anything, "prj_1").Return(model.DeploymentList{}, nil)

	rec := httptest.NewRecorder()
	r := deploymentsRequest("prj_1")
	h.Deployments(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deployments":[]}`, rec.Body.String())
}

func TestProjectDeployments_MissingID(t *testing.T) {
	h, svc := newProjectHandler()

	rec := httptest.NewRecorder()
	h.Deployments(rec, jsonRequest(http.MethodGet, "/api/deployments/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Project ID is required", decodeBody(rec)["error"])
	svc.AssertNotCalled(t, "Deployments", mock.Anything, mock.Anything)
}

func TestProjectDeployments_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not configured", vercel.ErrNotConfigured, http.StatusInternalServerError, "Vercel API token not configured"},
		{"upstream", errors.New("connection refused"), http.StatusBadGateway, "Failed to fetch deployments from Vercel API"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newProjectHandler()
			svc.On("Deployments", mock.Anything, "prj_1").Return(model.DeploymentList{}, tt.err)

			rec := httptest.NewRecorder()
			r := deploymentsRequest("prj_1")
			h.Deployments(rec, r)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.msg, decodeBody(rec)["error"])
		})
	}
}
