package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/TodayDesign/vercel-project-dashboard/internal/metrics"
	"github.com/TodayDesign/vercel-project-dashboard/internal/mockdata"
	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/transform"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

const (
	// deploymentListLimit is the page size of the deployment history.
	deploymentListLimit = 10
	// maxConcurrentFetches bounds the latest-deployment fan-out.
	maxConcurrentFetches = 4
)

// ErrProjectIDRequired is returned by Deployments for an empty project id.
var ErrProjectIDRequired = errors.New("project id is required")

// Upstream is the subset of the Vercel client used by the services.
type Upstream interface {
	Configured() bool
	ListProjects(ctx context.Context) ([]vercel.Project, error)
	ListDeployments(ctx context.Context, projectID string, limit int) (*vercel.DeploymentList, error)
}

type ProjectServiceConfig struct {
	// MockFallback serves mock data instead of returning upstream errors.
	MockFallback bool
	// FetchMissingDeployments fetches the latest deployment of projects
	// whose record does not embed one.
	FetchMissingDeployments bool
}

// ProjectService lists projects and deployments in canonical form.
type ProjectService struct {
	upstream    Upstream
	transformer *transform.Transformer
	cfg         ProjectServiceConfig
	now         func() time.Time
}

// NewProjectService creates a new ProjectService.
func NewProjectService(upstream Upstream, transformer *transform.Transformer, cfg ProjectServiceConfig) *ProjectService {
	return &ProjectService{
		upstream:    upstream,
		transformer: transformer,
		cfg:         cfg,
		now:         time.Now,
	}
}

// List returns every project visible to the configured token. When the
// token is missing or the upstream call fails and mock fallback is
// enabled, mock data is returned with the matching source instead of an
// error.
func (s *ProjectService) List(ctx context.Context) (model.ProjectList, error) {
	logger := zerolog.Ctx(ctx)

	if !s.upstream.Configured() {
		if !s.cfg.MockFallback {
			return model.ProjectList{}, vercel.ErrNotConfigured
		}
		logger.Debug().Msg("vercel token not configured, serving mock projects")
		return s.fallback(model.SourceMock, mockdata.Projects(s.now())), nil
	}

	projects, err := s.listProjects(ctx)
	if err != nil {
		if !s.cfg.MockFallback {
			return model.ProjectList{}, fmt.Errorf("list projects: %w", err)
		}
		logger.Error().Err(err).Msg("vercel project list failed, serving fallback projects")
		return s.fallback(model.SourceFallback, mockdata.ErrorProjects(s.now())), nil
	}

	latest := s.latestDeployments(ctx, projects)
	out := s.transformer.AssembleAll(projects, func(i int, _ *vercel.Project) *vercel.Deployment {
		return latest[i]
	})

	metrics.ProjectListSource.WithLabelValues(model.SourceVercel).Inc()
	return model.ProjectList{Projects: out, Source: model.SourceVercel}, nil
}

// Deployments returns the recent deployments of a project, each paired
// with its sanitized upstream record.
func (s *ProjectService) Deployments(ctx context.Context, projectID string) (model.DeploymentList, error) {
	if projectID == "" {
		return model.DeploymentList{}, ErrProjectIDRequired
	}
	if !s.upstream.Configured() {
		return model.DeploymentList{}, vercel.ErrNotConfigured
	}

	list, err := s.listDeployments(ctx, projectID, deploymentListLimit)
	if err != nil {
		return model.DeploymentList{}, fmt.Errorf("list deployments for %s: %w", projectID, err)
	}

	now := s.now()
	out := make([]model.DeploymentWithSource, 0, len(list.Deployments))
	for i := range list.Deployments {
		d := &list.Deployments[i]
		out = append(out, model.DeploymentWithSource{
			Source:      transform.SanitizeDeployment(d),
			Transformed: transform.NormalizeDeployment(d, nil, "", now),
		})
	}
	return model.DeploymentList{Deployments: out}, nil
}

func (s *ProjectService) fallback(source string, projects []model.ProjectWithSource) model.ProjectList {
	metrics.ProjectListSource.WithLabelValues(source).Inc()
	return model.ProjectList{Projects: projects, Source: source}
}

// latestDeployments resolves the latest deployment of each project by
// index. Embedded deployments are used as is; missing ones are fetched
// concurrently when enabled. A failed fetch leaves the slot nil.
func (s *ProjectService) latestDeployments(ctx context.Context, projects []vercel.Project) []*vercel.Deployment {
	latest := make([]*vercel.Deployment, len(projects))
	logger := zerolog.Ctx(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i := range projects {
		if d := transform.LatestDeployment(&projects[i]); d != nil {
			latest[i] = d
			continue
		}
		if !s.cfg.FetchMissingDeployments || projects[i].ID == "" {
			continue
		}
		g.Go(func() error {
			list, err := s.listDeployments(gctx, projects[i].ID, 1)
			if err != nil {
				logger.Warn().Err(err).Str("project", projects[i].Name).Msg("fetch latest deployment")
				return nil
			}
			if len(list.Deployments) > 0 {
				latest[i] = &list.Deployments[0]
			}
			return nil
		})
	}

	// Goroutines never return errors; failures are logged per project.
	_ = g.Wait()
	return latest
}

func (s *ProjectService) listProjects(ctx context.Context) ([]vercel.Project, error) {
	start := time.Now()
	projects, err := s.upstream.ListProjects(ctx)
	observeUpstream("projects", start, err)
	return projects, err
}

func (s *ProjectService) listDeployments(ctx context.Context, projectID string, limit int) (*vercel.DeploymentList, error) {
	start := time.Now()
	list, err := s.upstream.ListDeployments(ctx, projectID, limit)
	observeUpstream("deployments", start, err)
	if err == nil && list == nil {
		list = &vercel.DeploymentList{}
	}
	return list, err
}

func observeUpstream(endpoint string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
