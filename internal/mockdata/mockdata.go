// Package mockdata provides the static project lists served when the
// Vercel API is not configured or cannot be reached.
package mockdata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/transform"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

const (
	day       = 24 * time.Hour
	namespace = "mockuser"
	team      = "team_mock123"
)

type seed struct {
	id        string
	name      string
	framework string
	status    string
}

const (
	defaultResourceConfig = `{"fluid":false,"functionDefaultRegions":["iad1"],"functionDefaultTimeout":300,"functionDefaultMemoryType":"standard_legacy","functionZeroConfigFailover":false,"elasticConcurrencyEnabled":false}`
	resourceConfig        = `{"functionDefaultRegions":["iad1"],"functionDefaultMemoryType":"standard_legacy"}`
)

var projectSeeds = []seed{
	{"1", "my-nextjs-app", "Next.js", model.StatusReady},
	{"2", "portfolio-site", "React", model.StatusBuilding},
	{"3", "api-service", "Node.js", model.StatusError},
}

var errorSeeds = []seed{
	{"error_1", "error-project", "Unknown", model.StatusError},
}

// Projects returns the demo projects shown when no API token is configured.
func Projects(now time.Time) []model.ProjectWithSource {
	return build(projectSeeds, now)
}

// ErrorProjects returns the placeholder list shown when the Vercel API fails.
func ErrorProjects(now time.Time) []model.ProjectWithSource {
	return build(errorSeeds, now)
}

func build(seeds []seed, now time.Time) []model.ProjectWithSource {
	out := make([]model.ProjectWithSource, 0, len(seeds))
	for _, s := range seeds {
		raw := rawProject(s, now)
		out = append(out, model.ProjectWithSource{
			Source:      transform.Sanitize(&raw),
			Transformed: transformedProject(s, now),
		})
	}
	return out
}

func ms(t time.Time) int64 {
	return t.UnixMilli()
}

func iso(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func str(s string) *string {
	return &s
}

func rawProject(s seed, now time.Time) vercel.Project {
	created := now.Add(-30 * day)
	yesterday := now.Add(-day)
	deployment := rawDeployment(s, yesterday)

	return vercel.Project{
		AccountID:                        team,
		SpeedInsights:                    &vercel.SpeedInsights{ID: "speed_" + s.id, HasData: true},
		AutoExposeSystemEnvs:             true,
		AutoAssignCustomDomains:          true,
		AutoAssignCustomDomainsUpdatedBy: "system",
		BuildCommand:                     str("npm run build"),
		CreatedAt:                        ms(created),
		Crons: &vercel.Crons{
			EnabledAt:    ms(now.Add(-7 * day)),
			UpdatedAt:    ms(yesterday),
			DeploymentID: "dpl_cron_" + s.id,
			Definitions:  json.RawMessage(`[]`),
		},
		DevCommand:                      str("npm run dev"),
		Framework:                       "nextjs",
		GitForkProtection:               true,
		ID:                              "prj_" + s.id,
		InstallCommand:                  str("npm install"),
		Name:                            s.name,
		NodeVersion:                     "18.x",
		OutputDirectory:                 str(".next"),
		DefaultResourceConfig:           json.RawMessage(defaultResourceConfig),
		ResourceConfig:                  json.RawMessage(resourceConfig),
		ServerlessFunctionRegion:        "iad1",
		SourceFilesOutsideRootDirectory: true,
		UpdatedAt:                       ms(yesterday),
		Live:                            true,
		GitComments:                     json.RawMessage(`{"onCommit":false,"onPullRequest":true}`),
		WebAnalytics:                    json.RawMessage(fmt.Sprintf(`{"id":"analytics_%s"}`, s.id)),
		Link: &vercel.Link{
			Type:                     vercel.LinkGitHub,
			ProjectID:                "proj_" + s.id,
			ProjectName:              s.name,
			ProjectNameWithNamespace: namespace + "/" + s.name,
			ProjectNamespace:         namespace,
			ProjectURL:               "https://github.com/" + namespace + "/" + s.name,
			GitCredentialID:          "cred_" + s.id,
			ProductionBranch:         "main",
			CreatedAt:                ms(created),
			UpdatedAt:                ms(created),
			DeployHooks: []vercel.DeployHook{{
				CreatedAt: ms(created),
				ID:        "hook_" + s.id,
				Name:      "GitHub",
				Ref:       "main",
				URL:       "https://api.vercel.com/v1/integrations/deploy/prj_" + s.id + "/hook_" + s.id,
			}},
		},
		LatestDeployments:        []vercel.Deployment{deployment},
		Targets:                  &vercel.Targets{Production: &deployment},
		TransferredFromAccountID: team,
		Features:                 json.RawMessage(`{"webAnalytics":true}`),
	}
}

func rawDeployment(s seed, at time.Time) vercel.Deployment {
	branchAlias := s.name + "-git-main.vercel.app"
	return vercel.Deployment{
		ID:                 "dpl_" + s.id,
		Name:               s.name,
		URL:                "https://" + s.name + "-mock123.vercel.app",
		CreatedAt:          ms(at),
		ReadyState:         vercel.StateReady,
		ReadySubstate:      "PROMOTED",
		Target:             vercel.TargetProduction,
		Alias:              []string{s.name + ".vercel.app", branchAlias},
		AliasAssigned:      json.RawMessage(strconv.FormatInt(ms(at), 10)),
		AutomaticAliases:   []string{branchAlias},
		Builds:             json.RawMessage(`[]`),
		CreatedIn:          "sfo1",
		Creator:            &vercel.Creator{UID: "usr_mock", Email: "user@example.com", Username: namespace},
		DeploymentHostname: s.name + "-mock123.vercel.app",
		Meta: vercel.Meta{
			"githubCommitAuthorName":     "Mock User",
			"githubCommitMessage":        "feat: add new features",
			"githubCommitRef":            "main",
			"githubCommitSha":            "abc123def456",
			"githubProjectName":          s.name,
			"githubProjectNamespace":     namespace,
			"githubProjectRepo":          s.name,
			"githubCommitRawAuthorEmail": "user@example.com",
			"branchAlias":                branchAlias,
		},
		Plan:                   "hobby",
		TeamID:                 team,
		Type:                   "LAMBDAS",
		UserID:                 "usr_mock",
		WithCache:              true,
		BuildingAt:             ms(at),
		ReadyAt:                ms(at),
		PreviewCommentsEnabled: true,
		OIDCTokenClaims: &vercel.OIDCTokenClaims{
			Sub:         fmt.Sprintf("owner:%s:project:%s:environment:production", team, s.name),
			Iss:         "https://oidc.vercel.com/" + team,
			Scope:       fmt.Sprintf("owner:%s:project:%s:environment:production", team, s.name),
			Aud:         "https://vercel.com/" + team,
			Owner:       team,
			OwnerID:     team,
			Project:     s.name,
			ProjectID:   "prj_" + s.id,
			Environment: "production",
		},
	}
}

func deploymentState(status string) string {
	switch status {
	case model.StatusReady:
		return vercel.StateReady
	case model.StatusBuilding:
		return vercel.StateBuilding
	default:
		return vercel.StateError
	}
}

func transformedProject(s seed, now time.Time) model.Project {
	domain := s.name + ".vercel.app"
	return model.Project{
		ID:                       s.id,
		Name:                     s.name,
		Framework:                s.framework,
		Domain:                   domain,
		NodeVersion:              "18.x",
		ServerlessFunctionRegion: "iad1",
		Status:                   s.status,
		ProjectURL:               "https://" + domain,
		SettingsURL:              fmt.Sprintf("https://vercel.com/dashboard/project/%s/settings", s.id),
		SourceCodeURL:            "https://github.com/" + namespace + "/" + s.name,
		LastDeployment: model.Deployment{
			ID:        "dpl_" + s.id,
			URL:       "https://" + s.name + "-git-main.vercel.app",
			CreatedAt: iso(now.Add(-day)),
			State:     deploymentState(s.status),
			Target:    model.TargetProduction,
			Branch:    "main",
			Commit:    "feat: add new features",
			Version:   "v1.2.3",
			TriggeredBy: model.TriggeredBy{
				Name:  "Mock User",
				Email: "user@example.com",
				Type:  model.TriggerGit,
			},
		},
		Environments: model.Environments{
			Production: model.Environment{
				URL:          "https://" + domain,
				LastDeployed: iso(now.Add(-day)),
				Version:      "v1.2.3",
				Status:       model.StatusActive,
				Branch:       "main",
			},
			Develop: model.Environment{
				URL:          "https://" + s.name + "-git-develop.vercel.app",
				LastDeployed: iso(now.Add(-2 * day)),
				Version:      "v1.2.4-dev.1",
				Status:       model.StatusActive,
				Branch:       model.TargetDevelopment,
				Synthesized:  true,
			},
			Staging: model.Environment{
				URL:          "https://" + s.name + "-git-staging.vercel.app",
				LastDeployed: iso(now.Add(-3 * day)),
				Version:      "v1.2.3-rc.2",
				Status:       model.StatusActive,
				Branch:       model.TargetStaging,
				Synthesized:  true,
			},
		},
		CronJobs: []model.CronJob{{
			ID:          "cron_1",
			Name:        "Daily Backup",
			Schedule:    "0 2 * * *",
			NextRun:     iso(now.Add(time.Hour)),
			LastRun:     iso(now.Add(-day)),
			Status:      model.StatusActive,
			Endpoint:    "/api/backup",
			Placeholder: true,
		}},
		VersionInfo: model.VersionInfo{
			Dependencies: map[string]string{
				"next":      "14.0.4",
				"react":     "18.2.0",
				"react-dom": "18.2.0",
			},
			DevDependencies: map[string]string{
				"@types/node":  "20.10.5",
				"@types/react": "18.2.45",
				"typescript":   "5.3.3",
			},
			BuildCommand:    "npm run build",
			OutputDirectory: ".next",
			InstallCommand:  "npm ci",
		},
		Analytics: model.Analytics{
			Visitors:    1250,
			Requests:    5420,
			Bandwidth:   "2.1 GB",
			Placeholder: true,
		},
	}
}
