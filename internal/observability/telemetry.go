package observability

import (
	"context"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-player-search/internal/config"
	"github.com/riskibarqy/nba-player-search/internal/platform/logging"
)

// Telemetry owns the optional tracing, profiling and pprof hooks of a process.
// Every hook is off unless its config flag enables it.
type Telemetry struct {
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
	stopProfiler    func() error
	pprof           *http.Server
	pprofAddr       string
}

func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{
		logger:          logger.Named("observability"),
		shutdownTracing: func(context.Context) error { return nil },
		stopProfiler:    func() error { return nil },
	}

	t.startTracing(cfg)
	if err := t.startProfiler(cfg); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	if err := t.startPprof(cfg); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	return t, nil
}

// PprofAddr is the bound pprof listener address, empty when pprof is off.
func (t *Telemetry) PprofAddr() string {
	return t.pprofAddr
}

// Shutdown flushes pending spans and profiles and stops the pprof server.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var errs error
	if t.pprof != nil {
		if err := t.pprof.Shutdown(ctx); err != nil {
			errs = crerr.CombineErrors(errs, crerr.Wrap(err, "shutdown pprof server"))
		} else {
			t.logger.Info("pprof server stopped")
		}
		t.pprof = nil
	}
	if err := t.stopProfiler(); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "stop pyroscope profiler"))
	}
	if err := t.shutdownTracing(ctx); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "shutdown uptrace"))
	}
	return errs
}
