package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/ping"
)

type mockProjectService struct {
	mock.Mock
}

func (m *mockProjectService) List(ctx context.Context) (model.ProjectList, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ProjectList), args.Error(1)
}

func (m *mockProjectService) Deployments(ctx context.Context, projectID string) (model.DeploymentList, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(model.DeploymentList), args.Error(1)
}

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Probe(ctx context.Context, domain string) (ping.Result, error) {
	args := m.Called(ctx, domain)
	return args.Get(0).(ping.Result), args.Error(1)
}
