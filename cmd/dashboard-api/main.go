package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/TodayDesign/vercel-project-dashboard/internal/api"
	"github.com/TodayDesign/vercel-project-dashboard/internal/cache"
	"github.com/TodayDesign/vercel-project-dashboard/internal/config"
	"github.com/TodayDesign/vercel-project-dashboard/internal/core"
	"github.com/TodayDesign/vercel-project-dashboard/internal/crypto"
	"github.com/TodayDesign/vercel-project-dashboard/internal/logging"
	"github.com/TodayDesign/vercel-project-dashboard/internal/metrics"
	"github.com/TodayDesign/vercel-project-dashboard/internal/ping"
	"github.com/TodayDesign/vercel-project-dashboard/internal/transform"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "hash-password" {
		hashPassword(os.Args[2:])
		return
	}

	envFile := flag.String("env-file", ".env", "Dotenv file loaded before reading the environment")
	flag.Parse()

	_ = godotenv.Load(*envFile) // silently ignore if .env doesn't exist

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	policy, err := cfg.ResolvePolicy()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load transform policy")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checks := map[string]api.ReadinessCheck{}

	var upstreamCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rc.Close()
		upstreamCache = rc
		checks["cache"] = rc.Ping
		logger.Info().Dur("ttl", cfg.CacheTTL).Msg("upstream response cache enabled")
	}

	client := vercel.NewClient(cfg.VercelAPIURL, cfg.VercelAPIToken, cfg.VercelTeamID,
		vercel.WithCache(upstreamCache, cfg.CacheTTL),
	)
	checks["vercel"] = func(context.Context) error {
		if !client.Configured() && !cfg.MockFallback {
			return vercel.ErrNotConfigured
		}
		return nil
	}
	if !client.Configured() {
		logger.Warn().Bool("mock_fallback", cfg.MockFallback).Msg("VERCEL_API_TOKEN not set")
	}
	if !cfg.AuthConfigured() {
		logger.Warn().Msg("basic auth credentials not set, every API request will be rejected")
	}

	projects := core.NewProjectService(client,
		transform.New(transform.WithPolicy(policy.Transform())),
		core.ProjectServiceConfig{
			MockFallback:            cfg.MockFallback,
			FetchMissingDeployments: policy.FetchMissingDeployments,
		},
	)

	prober := ping.NewProber(ping.WithLogger(logger.With().Str("component", "ping").Logger()))
	prober.Start(ctx)
	metrics.RegisterPingQueueMetrics(prober.QueueDepth)

	if cfg.MetricsListenAddr != "" {
		go serveMetrics(cfg.MetricsListenAddr, logger)
	}

	srv := api.NewServer(logger, cfg, api.Services{
		Projects: projects,
		Prober:   prober,
		Checks:   checks,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Str("policy", policy.StatusSource).Msg("starting dashboard API server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	cancel()
}

func serveMetrics(addr string, logger zerolog.Logger) {
	logger.Info().Str("addr", addr).Msg("starting metrics server")
	if err := metrics.NewServer(addr, nil).ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server failed")
	}
}

// hashPassword prints an argon2id hash suitable for AUTH_PASSWORD_HASH.
func hashPassword(args []string) {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	password := fs.String("password", "", "Password to hash (read from stdin when empty)")
	fs.Parse(args)

	if *password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "error: no password given")
			fmt.Fprintln(os.Stderr, "usage: dashboard-api hash-password [--password <password>] < password.txt")
			os.Exit(1)
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	hash, err := crypto.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
