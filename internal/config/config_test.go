package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ListenPort() != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.ListenPort())
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel 'info', got %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "text" {
		t.Errorf("expected default LogFormat 'text', got %s", cfg.LogFormat)
	}

	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected default ShutdownTimeout 30s, got %s", cfg.ShutdownTimeout)
	}

	if cfg.RateLimitEnabled {
		t.Error("expected rate limiting to be disabled by default")
	}

	if !cfg.MetricsEnabled || !cfg.DocsEnabled {
		t.Error("expected metrics and docs to be enabled by default")
	}
}

func TestLoad_PortFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ListenPort() != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.ListenPort())
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed duration, got nil")
	}
}

func TestConfig_ListenPort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		port string
		want int
	}{
		{"empty", "", 3000},
		{"valid", "8080", 8080},
		{"padded", " 9090 ", 9090},
		{"not a number", "http", 3000},
		{"negative", "-1", 3000},
		{"zero", "0", 3000},
		{"too large", "70000", 3000},
		{"upper bound", "65535", 65535},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{Port: tt.port}
			if got := cfg.ListenPort(); got != tt.want {
				t.Errorf("ListenPort() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.example , ,https://b.example"}

	got := cfg.GetCORSAllowedOrigins()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", got)
	}

	cfg.CORSAllowedOrigins = ""
	if got := cfg.GetCORSAllowedOrigins(); got != nil {
		t.Errorf("expected nil origins, got %v", got)
	}
}
