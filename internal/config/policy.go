package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TodayDesign/vercel-project-dashboard/internal/transform"
)

// Policy is the transform policy loaded from POLICY_FILE.
//
//	domain_suffix: vercel.app
//	exclude_automatic_aliases: true
//	status_source: deployment
//	fetch_missing_deployments: false
type Policy struct {
	DomainSuffix            string `yaml:"domain_suffix"`
	ExcludeAutomaticAliases *bool  `yaml:"exclude_automatic_aliases"`
	StatusSource            string `yaml:"status_source"`
	FetchMissingDeployments bool   `yaml:"fetch_missing_deployments"`
}

// DefaultPolicy is used when no policy file is configured.
func DefaultPolicy() *Policy {
	p := &Policy{}
	p.applyDefaults()
	return p
}

// LoadPolicy reads and parses a policy file.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy %s: %w", path, err)
	}
	return ParsePolicy(data)
}

// ParsePolicy parses policy YAML from raw bytes.
func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	p.applyDefaults()

	if err := p.Transform().Validate(); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	return &p, nil
}

func (p *Policy) applyDefaults() {
	if p.DomainSuffix == "" {
		p.DomainSuffix = transform.DefaultDomainSuffix
	}
	if p.ExcludeAutomaticAliases == nil {
		exclude := true
		p.ExcludeAutomaticAliases = &exclude
	}
	if p.StatusSource == "" {
		p.StatusSource = transform.StatusFromDeployment
	}
}

// Transform converts the file representation into a transform.Policy.
func (p *Policy) Transform() transform.Policy {
	exclude := true
	if p.ExcludeAutomaticAliases != nil {
		exclude = *p.ExcludeAutomaticAliases
	}
	return transform.Policy{
		DomainSuffix:            p.DomainSuffix,
		ExcludeAutomaticAliases: exclude,
		StatusSource:            p.StatusSource,
	}
}

// ResolvePolicy loads the policy file named by the config, or returns the
// default policy when none is set.
func (c *Config) ResolvePolicy() (*Policy, error) {
	if c.PolicyFile == "" {
		return DefaultPolicy(), nil
	}
	return LoadPolicy(c.PolicyFile)
}
