// Package ping measures the response latency of project domains. Probes
// are queued and executed one at a time by a single worker so concurrent
// dashboard users do not skew each other's measurements.
package ping

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TodayDesign/vercel-project-dashboard/internal/metrics"
	"github.com/TodayDesign/vercel-project-dashboard/internal/platform"
)

var (
	// ErrUnreachable is returned when neither the favicon nor the root of
	// the domain answered.
	ErrUnreachable = errors.New("failed to reach domain")
	// ErrInvalidDomain is returned for values that are not a bare host.
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrStopped is returned once the worker has exited.
	ErrStopped = errors.New("prober stopped")
)

const (
	defaultTimeout   = 10 * time.Second
	defaultQueueSize = 64
)

// Result is the outcome of a successful probe. Status is whatever HTTP
// status the domain answered with; any answer counts as reachable.
type Result struct {
	Latency int64 `json:"latency"`
	Status  int   `json:"status"`
}

type job struct {
	id     string
	ctx    context.Context
	domain string
	result chan outcome
}

type outcome struct {
	result Result
	err    error
}

type Prober struct {
	client  *http.Client
	scheme  string
	timeout time.Duration
	logger  zerolog.Logger
	now     func() time.Time

	jobs    chan job
	stopped chan struct{}
}

type Option func(*Prober)

// WithScheme overrides the https scheme, e.g. for plain-HTTP test servers.
func WithScheme(scheme string) Option {
	return func(p *Prober) {
		p.scheme = scheme
	}
}

// WithTimeout sets the per-request timeout of each HEAD attempt.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		p.timeout = d
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *Prober) {
		p.client = c
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(p *Prober) {
		p.logger = l
	}
}

func WithQueueSize(n int) Option {
	return func(p *Prober) {
		p.jobs = make(chan job, n)
	}
}

func NewProber(opts ...Option) *Prober {
	p := &Prober{
		client: &http.Client{
			// Redirects are answers too; report the first status.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		scheme:  "https",
		timeout: defaultTimeout,
		logger:  zerolog.Nop(),
		now:     time.Now,
		jobs:    make(chan job, defaultQueueSize),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start runs the worker until ctx is cancelled. It must be called once.
func (p *Prober) Start(ctx context.Context) {
	go p.run(ctx)
}

// QueueDepth returns the number of probes waiting for the worker.
func (p *Prober) QueueDepth() int {
	return len(p.jobs)
}

// Probe queues a latency probe for domain and waits for its result.
func (p *Prober) Probe(ctx context.Context, domain string) (Result, error) {
	domain, err := normalizeDomain(domain)
	if err != nil {
		return Result{}, err
	}

	j := job{
		id:     platform.NewProbeID(),
		ctx:    ctx,
		domain: domain,
		result: make(chan outcome, 1),
	}

	select {
	case p.jobs <- j:
	case <-p.stopped:
		return Result{}, ErrStopped
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	select {
	case o := <-j.result:
		return o.result, o.err
	case <-p.stopped:
		return Result{}, ErrStopped
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (p *Prober) run(ctx context.Context) {
	defer close(p.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			if err := j.ctx.Err(); err != nil {
				j.result <- outcome{err: err}
				continue
			}
			res, err := p.probe(j)
			j.result <- outcome{result: res, err: err}
		}
	}
}

func (p *Prober) probe(j job) (Result, error) {
	logger := p.logger.With().Str("probe_id", j.id).Str("domain", j.domain).Logger()

	primary := fmt.Sprintf("%s://%s/favicon.ico?_=%s", p.scheme, j.domain, strconv.FormatInt(p.now().UnixMilli(), 10))
	res, err := p.head(j.ctx, primary)
	if err != nil {
		logger.Debug().Err(err).Msg("favicon probe failed, retrying root")
		res, err = p.head(j.ctx, fmt.Sprintf("%s://%s", p.scheme, j.domain))
	}
	if err != nil {
		logger.Info().Err(err).Msg("domain unreachable")
		metrics.PingProbes.WithLabelValues("unreachable").Inc()
		return Result{}, fmt.Errorf("%w: %s", ErrUnreachable, j.domain)
	}

	metrics.PingProbes.WithLabelValues("ok").Inc()
	metrics.PingLatency.Observe(float64(res.Latency) / 1000)
	logger.Debug().Int64("latency_ms", res.Latency).Int("status", res.Status).Msg("domain probed")
	return res, nil
}

func (p *Prober) head(ctx context.Context, url string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	resp.Body.Close()

	return Result{
		Latency: time.Since(start).Round(time.Millisecond).Milliseconds(),
		Status:  resp.StatusCode,
	}, nil
}

// normalizeDomain accepts a bare host with optional port.
func normalizeDomain(domain string) (string, error) {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimSuffix(domain, "/")
	if domain == "" || strings.ContainsAny(domain, "/?#@ \t\r\n\\") {
		return "", ErrInvalidDomain
	}
	return domain, nil
}
