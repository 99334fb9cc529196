package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/TodayDesign/vercel-project-dashboard/internal/api/request"
	"github.com/TodayDesign/vercel-project-dashboard/internal/api/response"
	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

// DataSourceHeader reports whether a project list came from Vercel or mock data.
const DataSourceHeader = "X-Data-Source"

const (
	msgTokenNotConfigured  = "Vercel API token not configured"
	msgFetchProjects       = "Failed to fetch projects from Vercel API"
	msgFetchDeployments    = "Failed to fetch deployments from Vercel API"
	msgProjectIDIsRequired = "Project ID is required"
)

// ProjectService is implemented by core.ProjectService.
type ProjectService interface {
	List(ctx context.Context) (model.ProjectList, error)
	Deployments(ctx context.Context, projectID string) (model.DeploymentList, error)
}

type Project struct {
	svc ProjectService
}

func NewProject(svc ProjectService) *Project {
	return &Project{svc: svc}
}

// List godoc
//
//	@Summary		List projects
//	@Description	Returns every project with its sanitized Vercel record. The source field and X-Data-Source header tell real data from mock data.
//	@Tags			Projects
//	@Security		BasicAuth
//	@Success		200	{object}	model.ProjectList
//	@Failure		401	{object}	response.ErrorResponse
//	@Failure		500	{object}	response.ErrorResponse
//	@Failure		502	{object}	response.ErrorResponse
//	@Router			/projects [get]
func (h *Project) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list projects")
		if errors.Is(err, vercel.ErrNotConfigured) {
			response.WriteError(w, http.StatusInternalServerError, msgTokenNotConfigured)
			return
		}
		response.WriteError(w, http.StatusBadGateway, msgFetchProjects)
		return
	}

	if list.Projects == nil {
		list.Projects = []model.ProjectWithSource{}
	}
	w.Header().Set(DataSourceHeader, list.Source)
	response.WriteJSON(w, http.StatusOK, list)
}

// Deployments godoc
//
//	@Summary		List recent deployments of a project
//	@Tags			Projects
//	@Security		BasicAuth
//	@Param			projectId	path		string	true	"Vercel project ID"
//	@Success		200			{object}	model.DeploymentList
//	@Failure		400			{object}	response.ErrorResponse
//	@Failure		401			{object}	response.ErrorResponse
//	@Failure		500			{object}	response.ErrorResponse
//	@Failure		502			{object}	response.ErrorResponse
//	@Router			/deployments/{projectId} [get]
func (h *Project) Deployments(w http.ResponseWriter, r *http.Request) {
	projectID, err := request.RequireID(chi.URLParam(r, "projectId"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, msgProjectIDIsRequired)
		return
	}

	list, err := h.svc.Deployments(r.Context(), projectID)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("project_id", projectID).Msg("list deployments")
		if errors.Is(err, vercel.ErrNotConfigured) {
			response.WriteError(w, http.StatusInternalServerError, msgTokenNotConfigured)
			return
		}
		response.WriteError(w, http.StatusBadGateway, msgFetchDeployments)
		return
	}

	if list.Deployments == nil {
		list.Deployments = []model.DeploymentWithSource{}
	}
	response.WriteJSON(w, http.StatusOK, list)
}
