package transform

import (
	"strings"
	"time"

	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

// Markers used when the upstream record lacks git metadata.
const (
	UnknownBranch  = "unknown branch"
	UnknownCommit  = "unknown commit"
	UnknownVersion = "unknown version"
	UnknownAuthor  = "User unavailable in API"
	UnknownEmail   = "Email unavailable in API"
)

// Values of the record produced for a project that was never deployed.
const (
	NoDeploymentID      = "unknown"
	NoDeploymentCommit  = "No deployments"
	NoDeploymentVersion = "v1.0.0"
	DefaultBranch       = "main"
)

const shortSHALength = 7

// GitProvider names a git integration whose commit metadata is stored in
// the deployment meta bag under keys prefixed with Tag, e.g. githubCommitRef.
type GitProvider struct {
	Tag string
}

// GitProviders lists the integrations consulted when resolving commit
// metadata, highest priority first. Each field is resolved independently.
var GitProviders = []GitProvider{
	{Tag: vercel.LinkGitHub},
	{Tag: vercel.LinkGitLab},
}

type gitCommit struct {
	ref         string
	message     string
	sha         string
	authorName  string
	authorEmail string
}

func (g GitProvider) commit(meta vercel.Meta) gitCommit {
	return gitCommit{
		ref:         meta.String(g.Tag + "CommitRef"),
		message:     meta.String(g.Tag + "CommitMessage"),
		sha:         meta.String(g.Tag + "CommitSha"),
		authorName:  meta.String(g.Tag + "CommitAuthorName"),
		authorEmail: meta.String(g.Tag + "CommitRawAuthorEmail"),
	}
}

func resolveCommits(meta vercel.Meta) []gitCommit {
	commits := make([]gitCommit, 0, len(GitProviders))
	for _, p := range GitProviders {
		commits = append(commits, p.commit(meta))
	}
	return commits
}

func resolve(commits []gitCommit, field func(gitCommit) string, fallback string) string {
	for _, c := range commits {
		if v := field(c); v != "" {
			return v
		}
	}
	return fallback
}

// NormalizeDeployment converts a raw deployment into the canonical shape.
// A nil deployment yields a synthetic record describing a project that has
// never been deployed. now is used when the deployment has no timestamp.
func NormalizeDeployment(d *vercel.Deployment, p *vercel.Project, domain string, now time.Time) model.Deployment {
	if d == nil {
		var createdAt int64
		if p != nil {
			createdAt = p.CreatedAt
		}
		return model.Deployment{
			ID:        NoDeploymentID,
			URL:       "https://" + domain,
			CreatedAt: formatMillis(createdAt),
			State:     vercel.StateReady,
			Target:    model.TargetProduction,
			Branch:    DefaultBranch,
			Commit:    NoDeploymentCommit,
			Version:   NoDeploymentVersion,
			TriggeredBy: model.TriggeredBy{
				Name:  UnknownAuthor,
				Email: UnknownEmail,
				Type:  model.TriggerGit,
			},
		}
	}

	commits := resolveCommits(d.Meta)
	version := UnknownVersion
	if sha := resolve(commits, func(c gitCommit) string { return c.sha }, ""); sha != "" {
		version = shortSHA(sha)
	}

	return model.Deployment{
		ID:        firstOf(d.UID, d.ID, NoDeploymentID),
		URL:       withScheme(d.URL),
		CreatedAt: deploymentTime(d, now),
		State:     deploymentState(d),
		Target:    canonicalTarget(d.Target),
		Branch:    resolve(commits, func(c gitCommit) string { return c.ref }, UnknownBranch),
		Commit:    resolve(commits, func(c gitCommit) string { return c.message }, UnknownCommit),
		Version:   version,
		TriggeredBy: model.TriggeredBy{
			Name:  resolve(commits, func(c gitCommit) string { return c.authorName }, UnknownAuthor),
			Email: resolve(commits, func(c gitCommit) string { return c.authorEmail }, UnknownEmail),
			Type:  model.TriggerGit,
		},
	}
}

// ProjectStatus maps the state of the latest deployment to a project
// status. A project without deployments is considered ready.
func ProjectStatus(d *vercel.Deployment) string {
	if d == nil {
		return model.StatusReady
	}
	switch deploymentState(d) {
	case vercel.StateReady:
		return model.StatusReady
	case vercel.StateBuilding:
		return model.StatusBuilding
	case vercel.StateError:
		return model.StatusError
	default:
		return model.StatusQueued
	}
}

// liveStatus is the status derivation used with StatusFromLive.
func liveStatus(p *vercel.Project) string {
	if p != nil && p.Live {
		return model.StatusReady
	}
	return model.StatusError
}

func deploymentState(d *vercel.Deployment) string {
	return firstOf(d.State, d.ReadyState, vercel.StateReady)
}

func deploymentTime(d *vercel.Deployment, now time.Time) string {
	switch {
	case d.Created > 0:
		return formatMillis(d.Created)
	case d.CreatedAt > 0:
		return formatMillis(d.CreatedAt)
	default:
		return formatTime(now)
	}
}

func canonicalTarget(target string) string {
	if target == vercel.TargetDevelopment {
		return model.TargetDevelopment
	}
	return target
}

func shortSHA(sha string) string {
	r := []rune(sha)
	if len(r) <= shortSHALength {
		return sha
	}
	return string(r[:shortSHALength])
}

// withScheme prefixes bare hostnames with https://.
func withScheme(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || strings.Contains(url, "://") {
		return url
	}
	return "https://" + url
}
