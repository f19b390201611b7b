package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config stores runtime configuration for the sync engine.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	LogLevel                logging.Level
	StorageDriver           string
	DBURL                   string
	DBBinaryParameters      bool

	GolfGeniusBaseURL            string
	GolfGeniusAPIKey             string
	GolfGeniusTimeout            time.Duration
	GolfGeniusMaxRetries         int
	GolfGeniusBaseDelay          time.Duration
	GolfGeniusMaxDelay           time.Duration
	GolfGeniusRequestsPerSecond  float64
	GolfGeniusCategoryID         string
	GolfGeniusCircuitEnabled     bool
	GolfGeniusCircuitFailures    int
	GolfGeniusCircuitOpenTimeout time.Duration
	GolfGeniusCircuitHalfOpenMax int

	SeasonCacheTTL          time.Duration
	ReferenceCacheTTL       time.Duration
	ProgressStreamTTL       time.Duration
	ProgressResultTTL       time.Duration
	ProgressCloseDelay      time.Duration
	RosterExportConcurrency int
	MemberSyncSchedule      string

	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageDriver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageDriverPostgres)))
	switch storageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", storageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageDriver == StorageDriverPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StorageDriverPostgres)
	}
	dbBinaryParameters, err := strconv.ParseBool(getEnv("DB_BINARY_PARAMETERS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_BINARY_PARAMETERS: %w", err)
	}

	apiKey := strings.TrimSpace(getEnv("GOLF_GENIUS_API_KEY", ""))
	if apiKey == "" && storageDriver == StorageDriverPostgres {
		return Config{}, fmt.Errorf("GOLF_GENIUS_API_KEY is required when STORAGE_DRIVER=%s", StorageDriverPostgres)
	}
	ggTimeout, err := positiveDuration("GOLF_GENIUS_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	ggMaxRetries, err := getEnvAsInt("GOLF_GENIUS_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse GOLF_GENIUS_MAX_RETRIES: %w", err)
	}
	if ggMaxRetries < 0 {
		return Config{}, fmt.Errorf("GOLF_GENIUS_MAX_RETRIES must be >= 0")
	}
	ggBaseDelay, err := positiveDuration("GOLF_GENIUS_BASE_DELAY", "1s")
	if err != nil {
		return Config{}, err
	}
	ggMaxDelay, err := positiveDuration("GOLF_GENIUS_MAX_DELAY", "60s")
	if err != nil {
		return Config{}, err
	}
	if ggMaxDelay < ggBaseDelay {
		return Config{}, fmt.Errorf("GOLF_GENIUS_MAX_DELAY must be >= GOLF_GENIUS_BASE_DELAY")
	}
	ggRPS, err := strconv.ParseFloat(getEnv("GOLF_GENIUS_REQUESTS_PER_SECOND", "0"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse GOLF_GENIUS_REQUESTS_PER_SECOND: %w", err)
	}
	if ggRPS < 0 {
		return Config{}, fmt.Errorf("GOLF_GENIUS_REQUESTS_PER_SECOND must be >= 0")
	}
	ggCircuitEnabled, err := strconv.ParseBool(getEnv("GOLF_GENIUS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GOLF_GENIUS_CIRCUIT_ENABLED: %w", err)
	}
	ggCircuitFailures, err := getEnvAsInt("GOLF_GENIUS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GOLF_GENIUS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if ggCircuitFailures < 1 {
		return Config{}, fmt.Errorf("GOLF_GENIUS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	ggCircuitOpenTimeout, err := positiveDuration("GOLF_GENIUS_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	ggCircuitHalfOpenMax, err := getEnvAsInt("GOLF_GENIUS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GOLF_GENIUS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if ggCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("GOLF_GENIUS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	seasonCacheTTL, err := positiveDuration("SEASON_CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	referenceCacheTTL, err := positiveDuration("REFERENCE_CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	streamTTL, err := positiveDuration("PROGRESS_STREAM_TTL", "5m")
	if err != nil {
		return Config{}, err
	}
	resultTTL, err := positiveDuration("PROGRESS_RESULT_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	closeDelay, err := positiveDuration("PROGRESS_CLOSE_DELAY", "1s")
	if err != nil {
		return Config{}, err
	}
	exportConcurrency, err := getEnvAsInt("ROSTER_EXPORT_CONCURRENCY", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_EXPORT_CONCURRENCY: %w", err)
	}
	if exportConcurrency < 1 {
		return Config{}, fmt.Errorf("ROSTER_EXPORT_CONCURRENCY must be >= 1")
	}

	memberSyncSchedule := strings.TrimSpace(getEnv("MEMBER_SYNC_SCHEDULE", ""))
	if memberSyncSchedule != "" {
		if _, err := cron.ParseStandard(memberSyncSchedule); err != nil {
			return Config{}, fmt.Errorf("parse MEMBER_SYNC_SCHEDULE: %w", err)
		}
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
	pyroscopeUploadRate, err := positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	serviceName := strings.TrimSpace(getEnv("APP_SERVICE_NAME", "bhmc-golfgenius-sync"))

	return Config{
		AppEnv:                  appEnv,
		ServiceName:             serviceName,
		ServiceVersion:          strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		StorageDriver:           storageDriver,
		DBURL:                   dbURL,
		DBBinaryParameters:      dbBinaryParameters,

		GolfGeniusBaseURL:            strings.TrimSpace(getEnv("GOLF_GENIUS_BASE_URL", "https://www.golfgenius.com")),
		GolfGeniusAPIKey:             apiKey,
		GolfGeniusTimeout:            ggTimeout,
		GolfGeniusMaxRetries:         ggMaxRetries,
		GolfGeniusBaseDelay:          ggBaseDelay,
		GolfGeniusMaxDelay:           ggMaxDelay,
		GolfGeniusRequestsPerSecond:  ggRPS,
		GolfGeniusCategoryID:         strings.TrimSpace(getEnv("GOLF_GENIUS_CATEGORY_ID", "")),
		GolfGeniusCircuitEnabled:     ggCircuitEnabled,
		GolfGeniusCircuitFailures:    ggCircuitFailures,
		GolfGeniusCircuitOpenTimeout: ggCircuitOpenTimeout,
		GolfGeniusCircuitHalfOpenMax: ggCircuitHalfOpenMax,

		SeasonCacheTTL:          seasonCacheTTL,
		ReferenceCacheTTL:       referenceCacheTTL,
		ProgressStreamTTL:       streamTTL,
		ProgressResultTTL:       resultTTL,
		ProgressCloseDelay:      closeDelay,
		RosterExportConcurrency: exportConcurrency,
		MemberSyncSchedule:      memberSyncSchedule,

		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAppName:       strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", serviceName)),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}, nil
}

func positiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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
