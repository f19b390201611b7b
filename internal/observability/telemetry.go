package observability

import (
	"context"
	"errors"
	"strings"

	"github.com/finleysg/bhmc-admin-sub001/internal/config"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/grafana/pyroscope-go"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Telemetry holds the tracing exporter and profiler started for a sync process.
type Telemetry struct {
	tracing  bool
	profiler *pyroscope.Profiler
	logger   *logging.Logger
}

// Start configures the global OpenTelemetry providers through Uptrace and
// continuous profiling through Pyroscope. Either one may be disabled.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger.Named("telemetry")}

	switch {
	case !cfg.UptraceEnabled:
		t.logger.Info("tracing disabled", "reason", "UPTRACE_ENABLED=false")
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		t.logger.Info("tracing disabled", "reason", "no uptrace dsn")
	default:
		uptrace.ConfigureOpentelemetry(
			uptrace.WithDSN(cfg.UptraceDSN),
			uptrace.WithServiceName(cfg.ServiceName),
			uptrace.WithServiceVersion(cfg.ServiceVersion),
			uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		)
		t.tracing = true
		t.logger.Info("tracing enabled", "service", cfg.ServiceName, "env", cfg.AppEnv)
	}

	if !cfg.PyroscopeEnabled {
		t.logger.Info("profiling disabled", "reason", "PYROSCOPE_ENABLED=false")
		return t, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.PyroscopeAppName,
		ServerAddress:   cfg.PyroscopeServerAddress,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":      cfg.AppEnv,
			"service":  cfg.ServiceName,
			"provider": "golfgenius",
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	t.profiler = profiler
	t.logger.Info("profiling enabled", "server", cfg.PyroscopeServerAddress, "app", cfg.PyroscopeAppName)
	return t, nil
}

// Shutdown flushes pending spans and stops the profiler.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var errs []error
	if t.profiler != nil {
		errs = append(errs, t.profiler.Stop())
		t.profiler = nil
	}
	if t.tracing {
		errs = append(errs, uptrace.Shutdown(ctx))
		t.tracing = false
	}
	return errors.Join(errs...)
}
