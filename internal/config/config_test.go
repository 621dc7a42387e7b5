package config

import (
	"testing"
	"time"

	"github.com/Bennylang23/autobeluga/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("MATCH_INTERVAL", "")
	t.Setenv("MATCH_JITTER", "")
	t.Setenv("FBREF_BASE_URL", "")
	t.Setenv("TEAM_CODE_OVERRIDES", "")
	t.Setenv("UPTRACE_ENABLED", "")
	t.Setenv("PYROSCOPE_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected app env: %s", cfg.AppEnv)
	}
	if cfg.MatchInterval != 7*time.Second || cfg.MatchJitter != 4*time.Second {
		t.Fatalf("unexpected pacing: interval=%s jitter=%s", cfg.MatchInterval, cfg.MatchJitter)
	}
	if cfg.FBrefBaseURL != "https://fbref.com" {
		t.Fatalf("unexpected base url: %s", cfg.FBrefBaseURL)
	}
	if cfg.FetchMaxBodyBytes != 8<<20 {
		t.Fatalf("unexpected max body bytes: %d", cfg.FetchMaxBodyBytes)
	}
	if cfg.FetchMaxRetries != 0 {
		t.Fatalf("fetch retries must default to zero, got=%d", cfg.FetchMaxRetries)
	}
	if len(cfg.TeamCodeOverrides) != 0 {
		t.Fatalf("unexpected overrides: %+v", cfg.TeamCodeOverrides)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected dsn: %s", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_ParsesOverridesAndPacing(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
	t.Setenv("TEAM_CODE_OVERRIDES", "Spurs:361ca564, Nott'ham Forest:e4a775cb")
	t.Setenv("MATCH_INTERVAL", "2s")
	t.Setenv("MATCH_JITTER", "0s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("FBREF_BASE_URL", "https://fbref.example/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TeamCodeOverrides["Spurs"] != "361ca564" || cfg.TeamCodeOverrides["Nott'ham Forest"] != "e4a775cb" {
		t.Fatalf("unexpected overrides: %+v", cfg.TeamCodeOverrides)
	}
	if cfg.MatchInterval != 2*time.Second || cfg.MatchJitter != 0 {
		t.Fatalf("unexpected pacing: interval=%s jitter=%s", cfg.MatchInterval, cfg.MatchJitter)
	}
	if cfg.LogLevel != logging.LevelDebug || cfg.LogFormat != logging.FormatConsole {
		t.Fatalf("unexpected log settings: level=%v format=%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.FBrefBaseURL != "https://fbref.example" {
		t.Fatalf("unexpected base url: %s", cfg.FBrefBaseURL)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"TEAM_CODE_OVERRIDES":         "Spurs",
		"MATCH_INTERVAL":              "-1s",
		"FETCH_TIMEOUT":               "0s",
		"FETCH_CIRCUIT_FAILURE_COUNT": "0",
		"LOG_FORMAT":                  "xml",
		"DOCUMENT_CACHE_TTL":          "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv("PYROSCOPE_ENABLED", "false")
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
