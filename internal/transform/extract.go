package transform

import (
	"strings"

	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

// UnknownFramework is reported when the project has no framework preset.
const UnknownFramework = "Unknown"

func ExtractFramework(p *vercel.Project) string {
	if p == nil || strings.TrimSpace(p.Framework) == "" {
		return UnknownFramework
	}
	return p.Framework
}

// ExtractDomain picks the primary public hostname of a project from the
// aliases of its production target. Custom domains win over provider
// subdomains, and automatic aliases are only used when nothing else is
// assigned. Projects without production aliases get {name}.{suffix}.
func ExtractDomain(p *vercel.Project, policy Policy) string {
	suffix := policy.suffix()
	if p == nil {
		return "unknown." + suffix
	}

	var aliases, automatic []string
	if p.Targets != nil && p.Targets.Production != nil {
		aliases = nonEmpty(p.Targets.Production.Alias)
		automatic = nonEmpty(p.Targets.Production.AutomaticAliases)
	}

	if len(aliases) == 0 {
		if p.Name == "" {
			return "unknown." + suffix
		}
		return p.Name + "." + suffix
	}

	candidates := aliases
	if policy.ExcludeAutomaticAliases {
		candidates = without(aliases, automatic)
	}
	if len(candidates) > 0 {
		for _, alias := range candidates {
			if !strings.Contains(alias, suffix) {
				return alias
			}
		}
		return candidates[0]
	}

	if shortest := shortestOf(automatic); shortest != "" {
		return shortest
	}
	return aliases[0]
}

// ExtractSourceCodeURL returns the repository URL of a linked project.
func ExtractSourceCodeURL(p *vercel.Project) string {
	if p == nil || p.Link == nil {
		return ""
	}
	link := p.Link

	if link.Type == vercel.LinkGitHub {
		namespace := firstOf(link.Org, link.ProjectNamespace)
		repo := firstOf(link.Repo, link.ProjectName)
		if namespace != "" && repo != "" {
			return "https://github.com/" + namespace + "/" + repo
		}
	}
	return link.ProjectURL
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func without(values, exclude []string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, v := range exclude {
		skip[v] = struct{}{}
	}
	var out []string
	for _, v := range values {
		if _, ok := skip[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// shortestOf returns the first of the shortest values.
func shortestOf(values []string) string {
	var shortest string
	for _, v := range values {
		if shortest == "" || len(v) < len(shortest) {
			shortest = v
		}
	}
	return shortest
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
