package config

import (
	"testing"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
)

func setMemoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", StorageDriverMemory)
	t.Setenv("DB_URL", "")
	t.Setenv("GOLF_GENIUS_API_KEY", "")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
	t.Setenv("MEMBER_SYNC_SCHEDULE", "")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setMemoryEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "bhmc-golfgenius-sync" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.GolfGeniusBaseURL != "https://www.golfgenius.com" {
		t.Fatalf("unexpected base url: %q", cfg.GolfGeniusBaseURL)
	}
	if cfg.GolfGeniusTimeout != 30*time.Second || cfg.GolfGeniusMaxRetries != 3 {
		t.Fatalf("unexpected client defaults: timeout=%s retries=%d", cfg.GolfGeniusTimeout, cfg.GolfGeniusMaxRetries)
	}
	if cfg.GolfGeniusBaseDelay != time.Second || cfg.GolfGeniusMaxDelay != 60*time.Second {
		t.Fatalf("unexpected backoff defaults: base=%s max=%s", cfg.GolfGeniusBaseDelay, cfg.GolfGeniusMaxDelay)
	}
	if cfg.GolfGeniusRequestsPerSecond != 0 {
		t.Fatalf("expected unlimited pacing by default")
	}
	if !cfg.GolfGeniusCircuitEnabled || cfg.GolfGeniusCircuitFailures != 5 {
		t.Fatalf("unexpected circuit defaults: %+v", cfg)
	}
	if cfg.SeasonCacheTTL != 10*time.Minute || cfg.ReferenceCacheTTL != 10*time.Minute {
		t.Fatalf("unexpected cache ttls: season=%s reference=%s", cfg.SeasonCacheTTL, cfg.ReferenceCacheTTL)
	}
	if cfg.ProgressStreamTTL != 5*time.Minute || cfg.ProgressResultTTL != 10*time.Minute || cfg.ProgressCloseDelay != time.Second {
		t.Fatalf("unexpected progress defaults: %+v", cfg)
	}
	if cfg.RosterExportConcurrency != 10 {
		t.Fatalf("unexpected export concurrency: %d", cfg.RosterExportConcurrency)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if !cfg.DBBinaryParameters {
		t.Fatalf("expected DBBinaryParameters=true by default")
	}
}

func TestLoad_PostgresRequiresDBURLAndAPIKey(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("STORAGE_DRIVER", StorageDriverPostgres)

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DB_URL")
	}

	t.Setenv("DB_URL", "postgres://localhost:5432/bhmc?sslmode=disable")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without GOLF_GENIUS_API_KEY")
	}

	t.Setenv("GOLF_GENIUS_API_KEY", "key-123")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageDriverPostgres || cfg.GolfGeniusAPIKey != "key-123" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"STORAGE_DRIVER":                    "sqlite",
		"GOLF_GENIUS_TIMEOUT":               "0s",
		"GOLF_GENIUS_MAX_RETRIES":           "-1",
		"GOLF_GENIUS_BASE_DELAY":            "soon",
		"GOLF_GENIUS_REQUESTS_PER_SECOND":   "-2",
		"GOLF_GENIUS_CIRCUIT_FAILURE_COUNT": "0",
		"ROSTER_EXPORT_CONCURRENCY":         "0",
		"PROGRESS_CLOSE_DELAY":              "-1s",
		"MEMBER_SYNC_SCHEDULE":              "every tuesday",
		"DB_BINARY_PARAMETERS":              "not-bool",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setMemoryEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_MaxDelayBelowBaseDelay(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("GOLF_GENIUS_BASE_DELAY", "5s")
	t.Setenv("GOLF_GENIUS_MAX_DELAY", "2s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when max delay is below base delay")
	}
}

func TestLoad_MemberSyncSchedule(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("MEMBER_SYNC_SCHEDULE", "0 6 * * *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MemberSyncSchedule != "0 6 * * *" {
		t.Fatalf("unexpected schedule: %q", cfg.MemberSyncSchedule)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}

	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn='https://token@api.uptrace.dev/1'")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("APP_SERVICE_NAME", "bhmc-sync-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "bhmc-sync-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}
