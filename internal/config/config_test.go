package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("CACHE_ENABLED", "")
	t.Setenv("THESPORTSDB_API_KEY", "")
	t.Setenv("FOOTBALL_DATA_API_KEY", "")
	t.Setenv("TEAM_ENRICH_WORKERS", "")
	t.Setenv("APP_SERVICE_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "grounder-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.CacheEnabled {
		t.Fatalf("expected cache disabled by default")
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
	}
	if cfg.TheSportsDBAPIKey != "1" {
		t.Fatalf("expected public thesportsdb key, got %q", cfg.TheSportsDBAPIKey)
	}
	if cfg.FootballDataAPIKey != "" {
		t.Fatalf("expected football-data to be disabled without a key")
	}
	if cfg.TeamEnrichWorkers != 4 {
		t.Fatalf("unexpected enrich workers: %d", cfg.TeamEnrichWorkers)
	}
	if cfg.CrestAllowedPrefix != "https://crests.football-data.org/" {
		t.Fatalf("unexpected crest prefix: %q", cfg.CrestAllowedPrefix)
	}
	if cfg.WriteTimeout != 30*time.Second {
		t.Fatalf("unexpected write timeout: %s", cfg.WriteTimeout)
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
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "grounder-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "grounder-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})

	t.Run("only separators", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origin list")
		}
	})
}

func TestLoad_UpstreamConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("breaker values", func(t *testing.T) {
		t.Setenv("UPSTREAM_CIRCUIT_FAILURE_COUNT", "3")
		t.Setenv("UPSTREAM_CIRCUIT_OPEN_TIMEOUT", "30s")
		t.Setenv("UPSTREAM_MAX_RETRIES", "0")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		breaker := cfg.UpstreamCircuitBreaker()
		if !breaker.Enabled || breaker.FailureThreshold != 3 || breaker.OpenTimeout != 30*time.Second {
			t.Fatalf("unexpected breaker config: %+v", breaker)
		}
		if cfg.UpstreamMaxRetries != 0 {
			t.Fatalf("unexpected retries: %d", cfg.UpstreamMaxRetries)
		}
	})

	invalid := map[string]string{
		"UPSTREAM_TIMEOUT":                   "0s",
		"UPSTREAM_MAX_RETRIES":               "-1",
		"UPSTREAM_CIRCUIT_FAILURE_COUNT":     "0",
		"UPSTREAM_CIRCUIT_HALF_OPEN_MAX_REQ": "zero",
		"TEAM_ENRICH_WORKERS":                "0",
		"MATCH_FIELD_MERGE":                  "maybe",
		"CACHE_TTL":                          "bad",
		"OPENFOOTBALL_CATALOG_URL":           "ftp://example.com/catalog.json",
	}
	for key, value := range invalid {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("GROUNDER_TEST_FROM_FILE=file\nGROUNDER_TEST_PRESET=file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("GROUNDER_TEST_FROM_FILE", "")
	t.Setenv("GROUNDER_TEST_PRESET", "process")
	os.Unsetenv("GROUNDER_TEST_FROM_FILE")

	if err := LoadEnvFiles(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load env files: %v", err)
	}
	if got := os.Getenv("GROUNDER_TEST_FROM_FILE"); got != "file" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("GROUNDER_TEST_PRESET"); got != "process" {
		t.Fatalf("process env must win, got %q", got)
	}
}
