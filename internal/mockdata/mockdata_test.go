package mockdata

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestProjects(t *testing.T) {
	projects := Projects(now)

	require.Len(t, projects, 3)
	assert.Equal(t, "my-nextjs-app", projects[0].Transformed.Name)
	assert.Equal(t, "ready", projects[0].Transformed.Status)
	assert.Equal(t, "READY", projects[0].Transformed.LastDeployment.State)
	assert.Equal(t, "building", projects[1].Transformed.Status)
	assert.Equal(t, "BUILDING", projects[1].Transformed.LastDeployment.State)
	assert.Equal(t, "error", projects[2].Transformed.Status)
	assert.Equal(t, "ERROR", projects[2].Transformed.LastDeployment.State)
	assert.Equal(t, "https://vercel.com/dashboard/project/1/settings", projects[0].Transformed.SettingsURL)
	assert.Equal(t, "2024-02-29T12:00:00.000Z", projects[0].Transformed.LastDeployment.CreatedAt)
}

func TestErrorProjects(t *testing.T) {
	projects := ErrorProjects(now)

	require.Len(t, projects, 1)
	assert.Equal(t, "error-project", projects[0].Transformed.Name)
	assert.Equal(t, "Unknown", projects[0].Transformed.Framework)
	assert.Equal(t, "error", projects[0].Transformed.Status)
}

func TestProjects_SourcesAreSanitized(t *testing.T) {
	for _, p := range append(Projects(now), ErrorProjects(now)...) {
		src := p.Source
		assert.Equal(t, model.RedactedValue, src.ID)
		assert.Equal(t, model.RedactedValue, src.AccountID)
		assert.Equal(t, model.RedactedValue, src.Link.GitCredentialID)
		assert.Equal(t, model.RedactedValue, src.Link.DeployHooks[0].URL)
		assert.Equal(t, model.RedactedValue, src.Crons.DeploymentID)
		assert.Equal(t, model.RedactedValue, src.LatestDeployments[0].TeamID)
		assert.Equal(t, model.RedactedValue, src.Targets.Production.OIDCTokenClaims.OwnerID)

		body, err := json.Marshal(src)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "usr_mock")
		assert.NotContains(t, string(body), "cred_")
	}
}

func TestProjects_ThreeEnvironments(t *testing.T) {
	for _, p := range Projects(now) {
		envs := p.Transformed.Environments
		assert.Equal(t, "main", envs.Production.Branch)
		assert.Equal(t, "develop", envs.Develop.Branch)
		assert.Equal(t, "staging", envs.Staging.Branch)
	}
}
