package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

func TestSynthesizeEnvironments_Fixture(t *testing.T) {
	last := model.Deployment{Version: "abc123d"}

	envs := SynthesizeEnvironments(loadProject(t), "shop.example.com", last, "vercel.app")

	assert.Equal(t, model.Environment{
		URL:          "https://shop-abc123.vercel.app",
		LastDeployed: "2024-01-02T00:00:00.000Z",
		Version:      "abc123d",
		Status:       "active",
		Branch:       "main",
	}, envs.Production)
	assert.Equal(t, model.Environment{
		URL:          "https://shop-git-develop.vercel.app",
		LastDeployed: "2024-01-02T00:00:00.000Z",
		Version:      "dev",
		Status:       "active",
		Branch:       "develop",
		Synthesized:  true,
	}, envs.Develop)
	assert.Equal(t, "https://shop-git-staging.vercel.app", envs.Staging.URL)
	assert.Equal(t, "staging", envs.Staging.Version)
	assert.Equal(t, "staging", envs.Staging.Branch)
	assert.True(t, envs.Staging.Synthesized)
}

func TestSynthesizeEnvironments_NoProductionTarget(t *testing.T) {
	p := &vercel.Project{Name: "demo"}

	envs := SynthesizeEnvironments(p, "demo.vercel.app", model.Deployment{Version: "v1.0.0"}, "")

	assert.Equal(t, "https://demo.vercel.app", envs.Production.URL)
	assert.Equal(t, "v1.0.0", envs.Production.Version)
	assert.Equal(t, "1970-01-01T00:00:00.000Z", envs.Production.LastDeployed)
	assert.Equal(t, "https://demo-git-develop.vercel.app", envs.Develop.URL)
}

func TestSynthesizeEnvironments_AlwaysThreeSlots(t *testing.T) {
	body := mustJSON(t, SynthesizeEnvironments(nil, "unknown.vercel.app", model.Deployment{}, ""))

	assert.Contains(t, body, `"production":`)
	assert.Contains(t, body, `"develop":`)
	assert.Contains(t, body, `"staging":`)
}
