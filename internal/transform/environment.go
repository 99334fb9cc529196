package transform

import (
	"fmt"

	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/platform"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

// Versions reported for the synthesized preview slots.
const (
	DevelopVersion = "dev"
	StagingVersion = "staging"
)

// SynthesizeEnvironments builds the production, develop and staging slots.
// Only production is derived from upstream data; the other two are
// placeholders pointing at the conventional git-branch preview hostnames.
func SynthesizeEnvironments(p *vercel.Project, domain string, last model.Deployment, suffix string) model.Environments {
	if suffix == "" {
		suffix = DefaultDomainSuffix
	}

	var (
		name      string
		updatedAt int64
		prodURL   string
	)
	if p != nil {
		name = p.Name
		updatedAt = p.UpdatedAt
		if p.Targets != nil && p.Targets.Production != nil {
			prodURL = withScheme(p.Targets.Production.URL)
		}
	}
	if prodURL == "" {
		prodURL = "https://" + domain
	}
	lastDeployed := formatMillis(updatedAt)

	return model.Environments{
		Production: model.Environment{
			URL:          prodURL,
			LastDeployed: lastDeployed,
			Version:      last.Version,
			Status:       model.StatusActive,
			Branch:       DefaultBranch,
		},
		Develop: preview(name, model.TargetDevelopment, DevelopVersion, suffix, lastDeployed),
		Staging: preview(name, model.TargetStaging, StagingVersion, suffix, lastDeployed),
	}
}

func preview(name, branch, version, suffix, lastDeployed string) model.Environment {
	return model.Environment{
		URL:          fmt.Sprintf("https://%s", platform.PreviewHostname(name, branch, suffix)),
		LastDeployed: lastDeployed,
		Version:      version,
		Status:       model.StatusActive,
		Branch:       branch,
		Synthesized:  true,
	}
}
