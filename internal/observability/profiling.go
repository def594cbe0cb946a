package observability

import (
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/nba-player-search/internal/config"
)

// startProfiler pushes continuous profiles to Pyroscope. The image decoder
// pool makes allocation profiles the interesting ones here.
func (t *Telemetry) startProfiler(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		t.logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPass,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return crerr.Wrap(err, "start pyroscope profiler")
	}
	t.stopProfiler = profiler.Stop

	t.logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
	)
	return nil
}

// startPprof binds the listener up front so a busy port fails Start instead
// of a background goroutine.
func (t *Telemetry) startPprof(cfg config.Config) error {
	if !cfg.PprofEnabled {
		t.logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return crerr.Wrapf(err, "listen pprof on %s", cfg.PprofAddr)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	t.pprof = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	t.pprofAddr = ln.Addr().String()

	srv := t.pprof
	go func() {
		t.logger.Info("pprof server starting", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !crerr.Is(err, http.ErrServerClosed) {
			t.logger.Error("pprof server failed", "error", err)
		}
	}()
	return nil
}
