package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/platform/resilience"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	HTTPAddr                      string
	ReadTimeout                   time.Duration
	WriteTimeout                  time.Duration
	LogLevel                      logging.Level
	CORSAllowedOrigins            []string
	SwaggerEnabled                bool
	PprofEnabled                  bool
	PprofAddr                     string
	CacheEnabled                  bool
	CacheTTL                      time.Duration
	UpstreamTimeout               time.Duration
	UpstreamMaxRetries            int
	UpstreamCircuitEnabled        bool
	UpstreamCircuitFailureCount   int
	UpstreamCircuitOpenTimeout    time.Duration
	UpstreamCircuitHalfOpenMaxReq int
	FootballDataAPIKey            string
	FootballDataBaseURL           string
	TheSportsDBAPIKey             string
	TheSportsDBBaseURL            string
	SportMonksToken               string
	SportMonksBaseURL             string
	WikidataEndpoint              string
	WikidataUserAgent             string
	OpenFootballCatalogURL        string
	CatalogFile                   string
	CrestAllowedPrefix            string
	TeamEnrichWorkers             int
	MatchFieldMerge               bool
	UptraceEnabled                bool
	UptraceDSN                    string
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeBasicAuthUser        string
	PyroscopeBasicAuthPassword    string
	PyroscopeUploadRate           time.Duration
}

// UpstreamCircuitBreaker is the breaker every upstream transport is built with.
func (c Config) UpstreamCircuitBreaker() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.UpstreamCircuitEnabled,
		FailureThreshold: c.UpstreamCircuitFailureCount,
		OpenTimeout:      c.UpstreamCircuitOpenTimeout,
		HalfOpenMaxReq:   c.UpstreamCircuitHalfOpenMaxReq,
	}
}

// LoadEnvFiles loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	upstreamTimeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_TIMEOUT: %w", err)
	}
	if upstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be > 0")
	}
	upstreamMaxRetries, err := getEnvAsInt("UPSTREAM_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_MAX_RETRIES: %w", err)
	}
	if upstreamMaxRetries < 0 {
		return Config{}, fmt.Errorf("UPSTREAM_MAX_RETRIES must be >= 0")
	}
	upstreamCircuitEnabled, err := strconv.ParseBool(getEnv("UPSTREAM_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_ENABLED: %w", err)
	}
	upstreamCircuitFailureCount, err := getEnvAsInt("UPSTREAM_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if upstreamCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("UPSTREAM_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	upstreamCircuitOpenTimeout, err := time.ParseDuration(getEnv("UPSTREAM_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if upstreamCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	upstreamCircuitHalfOpenMaxReq, err := getEnvAsInt("UPSTREAM_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if upstreamCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("UPSTREAM_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	teamEnrichWorkers, err := getEnvAsInt("TEAM_ENRICH_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse TEAM_ENRICH_WORKERS: %w", err)
	}
	if teamEnrichWorkers < 1 {
		return Config{}, fmt.Errorf("TEAM_ENRICH_WORKERS must be >= 1")
	}
	matchFieldMerge, err := strconv.ParseBool(getEnv("MATCH_FIELD_MERGE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_FIELD_MERGE: %w", err)
	}

	crestAllowedPrefix := strings.TrimSpace(getEnv("CREST_ALLOWED_PREFIX", "https://crests.football-data.org/"))
	openFootballCatalogURL := strings.TrimSpace(getEnv("OPENFOOTBALL_CATALOG_URL", ""))
	if openFootballCatalogURL != "" && !strings.HasPrefix(openFootballCatalogURL, "http://") && !strings.HasPrefix(openFootballCatalogURL, "https://") {
		return Config{}, fmt.Errorf("OPENFOOTBALL_CATALOG_URL must be an http(s) url")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("APP_SERVICE_NAME", "grounder-api"),
		ServiceVersion:                getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                      getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                   readTimeout,
		WriteTimeout:                  writeTimeout,
		LogLevel:                      logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:            splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:                swaggerEnabled,
		PprofEnabled:                  pprofEnabled,
		PprofAddr:                     strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		CacheEnabled:                  cacheEnabled,
		CacheTTL:                      cacheTTL,
		UpstreamTimeout:               upstreamTimeout,
		UpstreamMaxRetries:            upstreamMaxRetries,
		UpstreamCircuitEnabled:        upstreamCircuitEnabled,
		UpstreamCircuitFailureCount:   upstreamCircuitFailureCount,
		UpstreamCircuitOpenTimeout:    upstreamCircuitOpenTimeout,
		UpstreamCircuitHalfOpenMaxReq: upstreamCircuitHalfOpenMaxReq,
		FootballDataAPIKey:            strings.TrimSpace(getEnv("FOOTBALL_DATA_API_KEY", "")),
		FootballDataBaseURL:           strings.TrimSpace(getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4")),
		TheSportsDBAPIKey:             strings.TrimSpace(getEnv("THESPORTSDB_API_KEY", "1")),
		TheSportsDBBaseURL:            strings.TrimSpace(getEnv("THESPORTSDB_BASE_URL", "https://www.thesportsdb.com/api/v1/json")),
		SportMonksToken:               strings.TrimSpace(getEnv("SPORTMONKS_TOKEN", "")),
		SportMonksBaseURL:             strings.TrimSpace(getEnv("SPORTMONKS_BASE_URL", "https://api.sportmonks.com/v3/football")),
		WikidataEndpoint:              strings.TrimSpace(getEnv("WIKIDATA_ENDPOINT", "https://query.wikidata.org/sparql")),
		WikidataUserAgent:             strings.TrimSpace(getEnv("WIKIDATA_USER_AGENT", "Grounder/1.0")),
		OpenFootballCatalogURL:        openFootballCatalogURL,
		CatalogFile:                   strings.TrimSpace(getEnv("CATALOG_FILE", "")),
		CrestAllowedPrefix:            crestAllowedPrefix,
		TeamEnrichWorkers:             teamEnrichWorkers,
		MatchFieldMerge:               matchFieldMerge,
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
		PyroscopeEnabled:              pyroscopeEnabled,
		PyroscopeServerAddress:        pyroscopeServerAddress,
		PyroscopeAuthToken:            strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:        strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:    strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:           pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
