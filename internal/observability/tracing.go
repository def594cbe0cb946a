package observability

import (
	"strings"

	"github.com/riskibarqy/nba-player-search/internal/config"
	"github.com/uptrace/uptrace-go/uptrace"
)

// startTracing installs the global OpenTelemetry providers exporting to Uptrace.
func (t *Telemetry) startTracing(cfg config.Config) {
	if !cfg.UptraceEnabled {
		t.logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		t.logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	t.shutdownTracing = uptrace.Shutdown

	t.logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)
}
