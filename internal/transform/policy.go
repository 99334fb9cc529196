// Package transform turns upstream Vercel project and deployment records
// into the dashboard's canonical project shape. Every function in this
// package is total: missing or malformed input yields documented defaults,
// never an error.
package transform

import (
	"fmt"
	"time"
)

// DefaultDomainSuffix marks provider-hosted subdomains.
const DefaultDomainSuffix = "vercel.app"

// Status sources accepted by Policy.StatusSource.
const (
	// StatusFromDeployment derives the project status from the latest
	// deployment state.
	StatusFromDeployment = "deployment"
	// StatusFromLive derives the project status from the project's live flag.
	StatusFromLive = "live"
)

// Policy selects between the domain and status derivation variants.
type Policy struct {
	// DomainSuffix is the provider default hostname suffix.
	DomainSuffix string
	// ExcludeAutomaticAliases drops automatic aliases before choosing the
	// project domain.
	ExcludeAutomaticAliases bool
	// StatusSource is StatusFromDeployment or StatusFromLive.
	StatusSource string
}

// DefaultPolicy returns the automatic-alias-excluding, deployment-state
// driven policy.
func DefaultPolicy() Policy {
	return Policy{
		DomainSuffix:            DefaultDomainSuffix,
		ExcludeAutomaticAliases: true,
		StatusSource:            StatusFromDeployment,
	}
}

// Validate reports an unknown status source.
func (p Policy) Validate() error {
	switch p.StatusSource {
	case "", StatusFromDeployment, StatusFromLive:
		return nil
	default:
		return fmt.Errorf("unknown status source %q (want %q or %q)", p.StatusSource, StatusFromDeployment, StatusFromLive)
	}
}

func (p Policy) suffix() string {
	if p.DomainSuffix == "" {
		return DefaultDomainSuffix
	}
	return p.DomainSuffix
}

// Transformer assembles projects under a fixed policy. It holds no mutable
// state and is safe for concurrent use.
type Transformer struct {
	policy Policy
	now    func() time.Time
}

type Option func(*Transformer)

// WithPolicy overrides DefaultPolicy.
func WithPolicy(p Policy) Option {
	return func(t *Transformer) {
		t.policy = p
	}
}

// WithClock overrides time.Now, which feeds the cron placeholders and the
// createdAt of deployments that carry no timestamp.
func WithClock(now func() time.Time) Option {
	return func(t *Transformer) {
		t.now = now
	}
}

func New(opts ...Option) *Transformer {
	t := &Transformer{
		policy: DefaultPolicy(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Policy returns the policy the transformer was built with.
func (t *Transformer) Policy() Policy {
	return t.policy
}

// isoLayout matches JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func formatMillis(ms int64) string {
	return formatTime(time.UnixMilli(ms))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
