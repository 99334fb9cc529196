package transform

import (
	"fmt"

	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

// Defaults reported in VersionInfo when the project leaves a command unset.
const (
	DefaultBuildCommand    = "npm run build"
	DefaultOutputDirectory = ".next"
	DefaultInstallCommand  = "npm install"
)

const (
	UnknownNodeVersion = "Unknown"
	zeroBandwidth      = "0 MB"
	settingsURLFormat  = "https://vercel.com/dashboard/project/%s/settings"
)

// Assemble derives the canonical project from p and its latest deployment
// and pairs it with the sanitized upstream record. latest may be nil.
// Assemble never fails and does not modify p or latest.
func (t *Transformer) Assemble(p *vercel.Project, latest *vercel.Deployment) model.ProjectWithSource {
	if p == nil {
		p = &vercel.Project{}
	}
	now := t.now()

	source := Sanitize(p)
	domain := ExtractDomain(p, t.policy)
	last := NormalizeDeployment(latest, p, domain, now)

	status := ProjectStatus(latest)
	if t.policy.StatusSource == StatusFromLive {
		status = liveStatus(p)
	}

	return model.ProjectWithSource{
		Source: source,
		Transformed: model.Project{
			ID:                       p.ID,
			Name:                     p.Name,
			Framework:                ExtractFramework(p),
			Domain:                   domain,
			NodeVersion:              orDefault(p.NodeVersion, UnknownNodeVersion),
			ServerlessFunctionRegion: p.ServerlessFunctionRegion,
			Status:                   status,
			ProjectURL:               "https://" + domain,
			SettingsURL:              settingsURL(p.ID),
			SourceCodeURL:            ExtractSourceCodeURL(p),
			LastDeployment:           last,
			Environments:             SynthesizeEnvironments(p, domain, last, t.policy.suffix()),
			CronJobs:                 NormalizeCrons(p, now),
			VersionInfo:              versionInfo(p),
			Analytics: model.Analytics{
				Bandwidth:   zeroBandwidth,
				Placeholder: true,
			},
		},
	}
}

// LatestFunc returns the latest deployment of the i-th project, or nil.
type LatestFunc func(i int, p *vercel.Project) *vercel.Deployment

// AssembleAll assembles every project in order. A nil latest uses
// LatestDeployment.
func (t *Transformer) AssembleAll(projects []vercel.Project, latest LatestFunc) []model.ProjectWithSource {
	if latest == nil {
		latest = func(_ int, p *vercel.Project) *vercel.Deployment {
			return LatestDeployment(p)
		}
	}
	out := make([]model.ProjectWithSource, 0, len(projects))
	for i := range projects {
		out = append(out, t.Assemble(&projects[i], latest(i, &projects[i])))
	}
	return out
}

// LatestDeployment returns the first embedded latest deployment of p.
func LatestDeployment(p *vercel.Project) *vercel.Deployment {
	if p == nil || len(p.LatestDeployments) == 0 {
		return nil
	}
	return &p.LatestDeployments[0]
}

func settingsURL(id string) string {
	return fmt.Sprintf(settingsURLFormat, id)
}

func versionInfo(p *vercel.Project) model.VersionInfo {
	return model.VersionInfo{
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
		BuildCommand:    command(p.BuildCommand, DefaultBuildCommand),
		OutputDirectory: command(p.OutputDirectory, DefaultOutputDirectory),
		InstallCommand:  command(p.InstallCommand, DefaultInstallCommand),
	}
}

func command(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
