// Package main is the entrypoint for the hellosvc HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hellosvc/hellosvc/internal/config"
	"github.com/hellosvc/hellosvc/internal/handler"
	"github.com/hellosvc/hellosvc/internal/metrics"
	"github.com/hellosvc/hellosvc/internal/middleware"
	"github.com/hellosvc/hellosvc/internal/probe"
	"github.com/hellosvc/hellosvc/internal/router"
	"github.com/hellosvc/hellosvc/internal/server"
)

// @title hellosvc API
// @version 1.0.0
// @description Greeting and status endpoints.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	opts := router.Options{
		Logger:             logger,
		CORSAllowedOrigins: cfg.GetCORSAllowedOrigins(),
		DocsEnabled:        cfg.DocsEnabled,
		IsDevelopment:      cfg.IsDevelopment(),
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts.Metrics = metrics.NewPrometheus(reg)
		opts.Gatherer = reg
	}

	checks, pingers, err := initProbes(ctx, cfg)
	if err != nil {
		logger.Error("failed to configure readiness probes",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL, cfg.RedisURL)),
		)
		os.Exit(1)
	}
	opts.HealthChecks = checks

	if cfg.RateLimitEnabled {
		opts.RateLimiter = middleware.NewIPRateLimiter(middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		})
	}

	srv := server.New(
		router.New(opts),
		cfg.ListenPort(),
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	for _, p := range pingers {
		srv.OnShutdown(p.Name(), p.Close)
	}
	if opts.RateLimiter != nil {
		srv.OnShutdown("rate_limiter", opts.RateLimiter.Close)
	}

	logger.Info("starting server",
		"port", cfg.ListenPort(),
		"env", cfg.AppEnv,
		"metrics", cfg.MetricsEnabled,
		"docs", cfg.DocsEnabled,
		"rate_limit", cfg.RateLimitEnabled,
		"database_url", redactURL(cfg.DatabaseURL),
		"redis_url", redactURL(cfg.RedisURL),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// initProbes builds a readiness check per dependency. Dependencies without a
// URL stay in the list with a nil Checker so /readyz reports them as
// "not configured". The returned pingers need closing on shutdown.
func initProbes(ctx context.Context, cfg *config.Config) ([]handler.Check, []probe.Pinger, error) {
	checks := []handler.Check{{Name: "postgres"}, {Name: "redis"}}
	var pingers []probe.Pinger

	closeAll := func() {
		for _, p := range pingers {
			_ = p.Close(ctx)
		}
	}

	if cfg.DatabaseURL != "" {
		pg, err := probe.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		checks[0].Checker = pg
		pingers = append(pingers, pg)
	}

	if cfg.RedisURL != "" {
		rd, err := probe.NewRedis(cfg.RedisURL)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		checks[1].Checker = rd
		pingers = append(pingers, rd)
	}

	return checks, pingers, nil
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
