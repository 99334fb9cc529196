package vercel

import (
	"encoding/json"
	"strings"
)

// Deployment ready states reported by the Vercel API.
const (
	StateReady        = "READY"
	StateBuilding     = "BUILDING"
	StateError        = "ERROR"
	StateQueued       = "QUEUED"
	StateInitializing = "INITIALIZING"
	StateCanceled     = "CANCELED"
)

// Deployment targets reported by the Vercel API.
const (
	TargetProduction  = "production"
	TargetPreview     = "preview"
	TargetDevelopment = "development"
)

// Git integration kinds found in Project.Link.Type.
const (
	LinkGitHub = "github"
	LinkGitLab = "gitlab"
)

// Project is a project record as returned by GET /v9/projects.
type Project struct {
	AccountID                        string          `json:"accountId,omitempty"`
	SpeedInsights                    *SpeedInsights  `json:"speedInsights,omitempty"`
	AutoExposeSystemEnvs             bool            `json:"autoExposeSystemEnvs"`
	AutoAssignCustomDomains          bool            `json:"autoAssignCustomDomains"`
	AutoAssignCustomDomainsUpdatedBy string          `json:"autoAssignCustomDomainsUpdatedBy,omitempty"`
	BuildCommand                     *string         `json:"buildCommand"`
	CreatedAt                        int64           `json:"createdAt"`
	Crons                            *Crons          `json:"crons,omitempty"`
	DevCommand                       *string         `json:"devCommand"`
	DirectoryListing                 bool            `json:"directoryListing"`
	Env                              []EnvVar        `json:"env,omitempty"`
	Framework                        string          `json:"framework,omitempty"`
	GitForkProtection                bool            `json:"gitForkProtection"`
	GitLFS                           bool            `json:"gitLFS"`
	ID                               string          `json:"id"`
	InstallCommand                   *string         `json:"installCommand"`
	LastRollbackTarget               json.RawMessage `json:"lastRollbackTarget,omitempty"`
	LastAliasRequest                 json.RawMessage `json:"lastAliasRequest,omitempty"`
	Name                             string          `json:"name"`
	NodeVersion                      string          `json:"nodeVersion,omitempty"`
	OutputDirectory                  *string         `json:"outputDirectory"`
	PasswordProtection               json.RawMessage `json:"passwordProtection,omitempty"`
	PublicSource                     json.RawMessage `json:"publicSource,omitempty"`
	DefaultResourceConfig            json.RawMessage `json:"defaultResourceConfig,omitempty"`
	ResourceConfig                   json.RawMessage `json:"resourceConfig,omitempty"`
	RootDirectory                    *string         `json:"rootDirectory"`
	ServerlessFunctionRegion         string          `json:"serverlessFunctionRegion,omitempty"`
	SourceFilesOutsideRootDirectory  bool            `json:"sourceFilesOutsideRootDirectory"`
	UpdatedAt                        int64           `json:"updatedAt"`
	Live                             bool            `json:"live"`
	GitComments                      json.RawMessage `json:"gitComments,omitempty"`
	WebAnalytics                     json.RawMessage `json:"webAnalytics,omitempty"`
	Link                             *Link           `json:"link,omitempty"`
	LatestDeployments                []Deployment    `json:"latestDeployments,omitempty"`
	Targets                          *Targets        `json:"targets,omitempty"`
	TransferStartedAt                int64           `json:"transferStartedAt,omitempty"`
	TransferCompletedAt              int64           `json:"transferCompletedAt,omitempty"`
	TransferredFromAccountID         string          `json:"transferredFromAccountId,omitempty"`
	Features                         json.RawMessage `json:"features,omitempty"`
}

type SpeedInsights struct {
	ID      string `json:"id"`
	HasData bool   `json:"hasData"`
}

// Crons holds the project's cron configuration. Definitions is kept raw
// because the upstream shape is not guaranteed to be a list.
type Crons struct {
	EnabledAt    int64           `json:"enabledAt,omitempty"`
	DisabledAt   *int64          `json:"disabledAt"`
	UpdatedAt    int64           `json:"updatedAt,omitempty"`
	DeploymentID string          `json:"deploymentId,omitempty"`
	Definitions  json.RawMessage `json:"definitions,omitempty"`
}

// CronDefinition is a single entry of Crons.Definitions.
type CronDefinition struct {
	Name     string `json:"name,omitempty"`
	Path     string `json:"path,omitempty"`
	Schedule string `json:"schedule,omitempty"`
}

// EnvVar is a project environment variable. Target is a string or a list
// upstream and is never read, so it stays raw.
type EnvVar struct {
	Target               json.RawMessage `json:"target,omitempty"`
	ConfigurationID      *string         `json:"configurationId"`
	ID                   string          `json:"id"`
	Key                  string          `json:"key"`
	CreatedAt            int64           `json:"createdAt"`
	UpdatedAt            int64           `json:"updatedAt"`
	CreatedBy            string          `json:"createdBy,omitempty"`
	UpdatedBy            *string         `json:"updatedBy"`
	Type                 string          `json:"type"`
	Value                string          `json:"value"`
	CustomEnvironmentIDs json.RawMessage `json:"customEnvironmentIds,omitempty"`
}

// Link describes the git integration of a project.
type Link struct {
	Type                     string          `json:"type"`
	Org                      string          `json:"org,omitempty"`
	Repo                     string          `json:"repo,omitempty"`
	RepoID                   json.RawMessage `json:"repoId,omitempty"`
	ProjectID                string          `json:"projectId,omitempty"`
	ProjectName              string          `json:"projectName,omitempty"`
	ProjectNameWithNamespace string          `json:"projectNameWithNamespace,omitempty"`
	ProjectNamespace         string          `json:"projectNamespace,omitempty"`
	ProjectURL               string          `json:"projectUrl,omitempty"`
	GitCredentialID          string          `json:"gitCredentialId,omitempty"`
	ProductionBranch         string          `json:"productionBranch,omitempty"`
	CreatedAt                int64           `json:"createdAt,omitempty"`
	UpdatedAt                int64           `json:"updatedAt,omitempty"`
	DeployHooks              []DeployHook    `json:"deployHooks,omitempty"`
}

type DeployHook struct {
	CreatedAt int64  `json:"createdAt"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Ref       string `json:"ref"`
	URL       string `json:"url"`
}

type Targets struct {
	Production *Deployment `json:"production,omitempty"`
}

// Deployment covers both the deployment entries embedded in a project
// (id, createdAt, readyState) and the /v6/deployments list items
// (uid, created, state).
type Deployment struct {
	UID                    string           `json:"uid,omitempty"`
	ID                     string           `json:"id,omitempty"`
	Name                   string           `json:"name,omitempty"`
	URL                    string           `json:"url,omitempty"`
	Created                int64            `json:"created,omitempty"`
	CreatedAt              int64            `json:"createdAt,omitempty"`
	State                  string           `json:"state,omitempty"`
	ReadyState             string           `json:"readyState,omitempty"`
	ReadySubstate          string           `json:"readySubstate,omitempty"`
	Target                 string           `json:"target,omitempty"`
	Alias                  []string         `json:"alias,omitempty"`
	AliasAssigned          json.RawMessage  `json:"aliasAssigned,omitempty"`
	AliasError             json.RawMessage  `json:"aliasError,omitempty"`
	AutomaticAliases       []string         `json:"automaticAliases,omitempty"`
	Builds                 json.RawMessage  `json:"builds,omitempty"`
	CreatedIn              string           `json:"createdIn,omitempty"`
	Creator                *Creator         `json:"creator,omitempty"`
	DeploymentHostname     string           `json:"deploymentHostname,omitempty"`
	Forced                 bool             `json:"forced,omitempty"`
	Meta                   Meta             `json:"meta,omitempty"`
	Plan                   string           `json:"plan,omitempty"`
	Private                bool             `json:"private,omitempty"`
	TeamID                 string           `json:"teamId,omitempty"`
	Type                   string           `json:"type,omitempty"`
	UserID                 string           `json:"userId,omitempty"`
	WithCache              bool             `json:"withCache,omitempty"`
	BuildingAt             int64            `json:"buildingAt,omitempty"`
	ReadyAt                int64            `json:"readyAt,omitempty"`
	PreviewCommentsEnabled bool             `json:"previewCommentsEnabled,omitempty"`
	OIDCTokenClaims        *OIDCTokenClaims `json:"oidcTokenClaims,omitempty"`
}

type Creator struct {
	UID      string `json:"uid,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

type OIDCTokenClaims struct {
	Sub         string `json:"sub,omitempty"`
	Iss         string `json:"iss,omitempty"`
	Scope       string `json:"scope,omitempty"`
	Aud         string `json:"aud,omitempty"`
	Owner       string `json:"owner,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
	Project     string `json:"project,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
	Environment string `json:"environment,omitempty"`
}

// Meta is the free-form deployment metadata bag. Git fields are prefixed
// with the provider tag, e.g. githubCommitSha or gitlabCommitSha.
type Meta map[string]any

// String returns the value stored under key when it is a non-empty string.
func (m Meta) String(key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// DeploymentList is the response body of GET /v6/deployments.
type DeploymentList struct {
	Deployments []Deployment    `json:"deployments"`
	Pagination  json.RawMessage `json:"pagination,omitempty"`
	// Malformed lists the records that did not fully match their type.
	Malformed []error `json:"-"`
}

// ProjectList is the response body of GET /v9/projects.
type ProjectList struct {
	Projects   []Project       `json:"projects"`
	Pagination json.RawMessage `json:"pagination,omitempty"`
	// Malformed lists the records that did not fully match their type.
	Malformed []error `json:"-"`
}
