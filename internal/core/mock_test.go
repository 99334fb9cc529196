package core

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

// ---------- Mock Upstream ----------

// mockUpstream implements the Upstream interface for testing.
type mockUpstream struct {
	mock.Mock
}

func (m *mockUpstream) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockUpstream) ListProjects(ctx context.Context) ([]vercel.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vercel.Project), args.Error(1)
}

func (m *mockUpstream) ListDeployments(ctx context.Context, projectID string, limit int) (*vercel.DeploymentList, error) {
	args := m.Called(ctx, projectID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vercel.DeploymentList), args.Error(1)
}
