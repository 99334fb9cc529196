package transform

import (
	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

// Sanitize returns a copy of p with account identifiers, credential ids
// and deploy hook URLs replaced by model.RedactedValue and the environment
// variable list removed. Deployment ids are kept because the transformed
// record already exposes them. p is not modified; every nested value that
// is altered is copied first.
func Sanitize(p *vercel.Project) model.SanitizedProject {
	if p == nil {
		return model.SanitizedProject{}
	}

	out := model.SanitizedProject(*p)
	out.Env = nil
	out.ID = redact(p.ID)
	out.AccountID = redact(p.AccountID)
	out.TransferredFromAccountID = redact(p.TransferredFromAccountID)

	if p.Link != nil {
		link := *p.Link
		link.GitCredentialID = redact(link.GitCredentialID)
		if p.Link.DeployHooks != nil {
			link.DeployHooks = make([]vercel.DeployHook, len(p.Link.DeployHooks))
			for i, hook := range p.Link.DeployHooks {
				hook.URL = redact(hook.URL)
				link.DeployHooks[i] = hook
			}
		}
		out.Link = &link
	}

	if p.Crons != nil {
		crons := *p.Crons
		crons.DeploymentID = redact(crons.DeploymentID)
		out.Crons = &crons
	}

	if p.LatestDeployments != nil {
		out.LatestDeployments = make([]vercel.Deployment, len(p.LatestDeployments))
		for i := range p.LatestDeployments {
			out.LatestDeployments[i] = redactDeployment(&p.LatestDeployments[i])
		}
	}

	if p.Targets != nil {
		targets := *p.Targets
		if p.Targets.Production != nil {
			prod := redactDeployment(p.Targets.Production)
			targets.Production = &prod
		}
		out.Targets = &targets
	}

	return out
}

// SanitizeDeployment returns a copy of d with the team, user and creator
// identifiers and the identifying OIDC claims redacted. The deployment
// id and uid are kept.
func SanitizeDeployment(d *vercel.Deployment) model.SanitizedDeployment {
	if d == nil {
		return model.SanitizedDeployment{}
	}
	return model.SanitizedDeployment(redactDeployment(d))
}

func redactDeployment(d *vercel.Deployment) vercel.Deployment {
	out := *d
	out.TeamID = redact(d.TeamID)
	out.UserID = redact(d.UserID)

	if d.Creator != nil {
		creator := *d.Creator
		creator.UID = redact(creator.UID)
		out.Creator = &creator
	}

	if d.OIDCTokenClaims != nil {
		claims := *d.OIDCTokenClaims
		claims.Sub = redact(claims.Sub)
		claims.Owner = redact(claims.Owner)
		claims.OwnerID = redact(claims.OwnerID)
		claims.ProjectID = redact(claims.ProjectID)
		out.OIDCTokenClaims = &claims
	}

	return out
}

// redact keeps absent values absent.
func redact(v string) string {
	if v == "" {
		return ""
	}
	return model.RedactedValue
}
