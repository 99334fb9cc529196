package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPListenAddr    string
	MetricsListenAddr string
	LogLevel          string
	ServiceName       string
	CORSOrigins       []string

	VercelAPIURL   string
	VercelAPIToken string
	VercelTeamID   string

	AuthUsername     string
	AuthPassword     string
	AuthPasswordHash string

	// MockFallback serves mock projects instead of 500/502 responses when
	// the Vercel API is unconfigured or failing.
	MockFallback bool

	RedisURL string
	CacheTTL time.Duration

	// PolicyFile is an optional YAML file holding the transform Policy.
	PolicyFile string
}

func Load() (*Config, error) {
	origins := getEnv("CORS_ORIGINS", "http://localhost:3000")
	var corsList []string
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			corsList = append(corsList, trimmed)
		}
	}

	mockFallback, err := strconv.ParseBool(getEnv("MOCK_FALLBACK", "true"))
	if err != nil {
		return nil, fmt.Errorf("parse MOCK_FALLBACK: %w", err)
	}
	ttl, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("parse CACHE_TTL_SECONDS: %w", err)
	}

	cfg := &Config{
		HTTPListenAddr:    getEnv("HTTP_LISTEN_ADDR", ":8080"),
		MetricsListenAddr: getEnv("METRICS_LISTEN_ADDR", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ServiceName:       getEnv("SERVICE_NAME", "dashboard-api"),
		CORSOrigins:       corsList,
		VercelAPIURL:      getEnv("VERCEL_API_URL", "https://api.vercel.com"),
		VercelAPIToken:    getEnv("VERCEL_API_TOKEN", ""),
		VercelTeamID:      getEnv("VERCEL_TEAM_ID", ""),
		AuthUsername:      getEnv("AUTH_USERNAME", ""),
		AuthPassword:      getEnv("AUTH_PASSWORD", ""),
		AuthPasswordHash:  getEnv("AUTH_PASSWORD_HASH", ""),
		MockFallback:      mockFallback,
		RedisURL:          getEnv("REDIS_URL", ""),
		CacheTTL:          time.Duration(ttl) * time.Second,
		PolicyFile:        getEnv("POLICY_FILE", ""),
	}

	return cfg, nil
}

// Validate rejects combinations that cannot work. Missing Vercel or auth
// credentials are not errors: the API then serves mock data and rejects
// every request with "Authentication not configured".
func (c *Config) Validate() error {
	var problems []string
	if c.HTTPListenAddr == "" {
		problems = append(problems, "HTTP_LISTEN_ADDR must not be empty")
	}
	if c.MetricsListenAddr != "" && c.MetricsListenAddr == c.HTTPListenAddr {
		problems = append(problems, "METRICS_LISTEN_ADDR must differ from HTTP_LISTEN_ADDR")
	}
	if c.CacheTTL < 0 {
		problems = append(problems, "CACHE_TTL_SECONDS must not be negative")
	}
	if c.AuthPasswordHash != "" && !strings.HasPrefix(c.AuthPasswordHash, "$argon2id$") {
		problems = append(problems, "AUTH_PASSWORD_HASH must be an argon2id PHC string")
	}
	if c.RedisURL != "" && !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
		problems = append(problems, "REDIS_URL must use the redis:// or rediss:// scheme")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// AuthConfigured reports whether basic-auth credentials are set.
func (c *Config) AuthConfigured() bool {
	return c.AuthUsername != "" && (c.AuthPassword != "" || c.AuthPasswordHash != "")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
