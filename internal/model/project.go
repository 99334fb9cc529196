package model

import "github.com/TodayDesign/vercel-project-dashboard/internal/vercel"

// RedactedValue replaces every sensitive value in a SanitizedProject.
const RedactedValue = "[REDACTED]"

// SanitizedProject has the shape of an upstream project record with
// account identifiers, credentials and hook URLs redacted and the
// environment variable list removed. It is safe to hand to a browser.
type SanitizedProject vercel.Project

// ProjectWithSource pairs the sanitized upstream record with the project
// derived from it.
type ProjectWithSource struct {
	Source      SanitizedProject `json:"source"`
	Transformed Project          `json:"transformed"`
}

// Project is the provider-agnostic project shape consumed by the UI.
type Project struct {
	ID                       string       `json:"id"`
	Name                     string       `json:"name"`
	Framework                string       `json:"framework"`
	Domain                   string       `json:"domain"`
	NodeVersion              string       `json:"nodeVersion"`
	ServerlessFunctionRegion string       `json:"serverlessFunctionRegion"`
	Status                   string       `json:"status"`
	ProjectURL               string       `json:"projectUrl"`
	SettingsURL              string       `json:"settingsUrl"`
	SourceCodeURL            string       `json:"sourceCodeUrl"`
	LastDeployment           Deployment   `json:"lastDeployment"`
	Environments             Environments `json:"environments"`
	CronJobs                 []CronJob    `json:"cronJobs"`
	VersionInfo              VersionInfo  `json:"versionInfo"`
	Analytics                Analytics    `json:"analytics"`
}

// Deployment is the canonical deployment shape.
type Deployment struct {
	ID          string      `json:"id"`
	URL         string      `json:"url"`
	CreatedAt   string      `json:"createdAt"`
	State       string      `json:"state"`
	Target      string      `json:"target"`
	Branch      string      `json:"branch"`
	Commit      string      `json:"commit"`
	Version     string      `json:"version"`
	TriggeredBy TriggeredBy `json:"triggeredBy"`
}

type TriggeredBy struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

// Environments always carries all three slots, whatever the provider exposes.
type Environments struct {
	Production Environment `json:"production"`
	Develop    Environment `json:"develop"`
	Staging    Environment `json:"staging"`
}

type Environment struct {
	URL          string `json:"url"`
	LastDeployed string `json:"lastDeployed"`
	Version      string `json:"version"`
	Status       string `json:"status"`
	Branch       string `json:"branch"`
	// Synthesized is true when the slot does not correspond to a real
	// upstream target.
	Synthesized bool `json:"synthesized"`
}

// CronJob is a normalized cron definition. NextRun and LastRun are
// placeholders computed from the current time, not from the schedule.
type CronJob struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Schedule    string `json:"schedule"`
	NextRun     string `json:"nextRun"`
	LastRun     string `json:"lastRun"`
	Status      string `json:"status"`
	Endpoint    string `json:"endpoint"`
	Placeholder bool   `json:"placeholder"`
}

type VersionInfo struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	BuildCommand    string            `json:"buildCommand"`
	OutputDirectory string            `json:"outputDirectory"`
	InstallCommand  string            `json:"installCommand"`
}

// Analytics counters are zeroed; the upstream project record carries none.
type Analytics struct {
	Visitors    int    `json:"visitors"`
	Requests    int    `json:"requests"`
	Bandwidth   string `json:"bandwidth"`
	Placeholder bool   `json:"placeholder"`
}

// SanitizedDeployment is an upstream deployment record with account
// identifiers redacted.
type SanitizedDeployment vercel.Deployment

// DeploymentWithSource pairs a sanitized upstream deployment with its
// canonical form.
type DeploymentWithSource struct {
	Source      SanitizedDeployment `json:"source"`
	Transformed Deployment          `json:"transformed"`
}

// Data sources of a project list.
const (
	SourceVercel   = "vercel"
	SourceMock     = "mock"
	SourceFallback = "fallback"
)

// ProjectList is the body of the project list endpoint.
type ProjectList struct {
	Projects []ProjectWithSource `json:"projects"`
	Source   string              `json:"source"`
}

// DeploymentList is the body of the deployment list endpoint.
type DeploymentList struct {
	Deployments []DeploymentWithSource `json:"deployments"`
}
