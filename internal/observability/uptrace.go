package observability

import (
	"context"
	"strings"

	"github.com/Bennylang23/autobeluga/internal/config"
	"github.com/Bennylang23/autobeluga/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// InitUptrace installs the global OpenTelemetry providers. The returned func flushes and shuts them down.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	noop := func(context.Context) error { return nil }
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Debug("uptrace disabled", "enabled", cfg.UptraceEnabled)
		return noop, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)

	logger.Debug("uptrace enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)

	// Spans of a short CLI run are only exported if the batch processor is flushed on exit.
	return func(ctx context.Context) error {
		if err := uptrace.ForceFlush(ctx); err != nil {
			logger.Warn("uptrace flush failed", "error", err)
		}
		return uptrace.Shutdown(ctx)
	}, nil
}
