package app

import (
	"context"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/nba-player-search/external/nbaplayers"
	"github.com/riskibarqy/nba-player-search/internal/config"
	"github.com/riskibarqy/nba-player-search/internal/display"
	"github.com/riskibarqy/nba-player-search/internal/imagecodec"
	"github.com/riskibarqy/nba-player-search/internal/interfaces/httpapi"
	"github.com/riskibarqy/nba-player-search/internal/platform/logging"
	"github.com/riskibarqy/nba-player-search/internal/platform/resilience"
	"github.com/riskibarqy/nba-player-search/internal/render"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
)

// PlayerSearch bundles the search service with the resources it owns.
type PlayerSearch struct {
	Service *usecase.SearchService
	decoder *imagecodec.Decoder
}

func NewPlayerSearch(cfg config.Config, logger *logging.Logger) (*PlayerSearch, error) {
	if logger == nil {
		logger = logging.Default()
	}

	client := nbaplayers.NewClient(nbaplayers.ClientConfig{
		Timeout:      cfg.NBAAPITimeout,
		MaxBodyBytes: cfg.NBAAPIMaxBodyBytes,
		Logger:       logger.Named("nbaplayers"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NBAAPICircuitEnabled,
			FailureThreshold: cfg.NBAAPICircuitFailures,
			OpenTimeout:      cfg.NBAAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NBAAPICircuitHalfOpenMax,
		},
	})

	decoder, err := imagecodec.NewDecoder(imagecodec.Config{
		Workers: cfg.ImageDecoderWorkers,
		Logger:  logger.Named("imagecodec"),
	})
	if err != nil {
		return nil, err
	}

	service := usecase.NewSearchService(client, decoder, render.New(), usecase.SearchConfig{
		BaseURL:    cfg.NBAAPIBaseURL,
		LatestOnly: cfg.SearchLatestOnly,
		Logger:     logger,
	})

	return &PlayerSearch{Service: service, decoder: decoder}, nil
}

func (p *PlayerSearch) Close() {
	if p == nil || p.decoder == nil {
		return
	}
	p.decoder.Release()
}

// NewPanel builds the configured display surface. The returned close func
// releases backend connections.
func NewPanel(ctx context.Context, cfg config.Config, logger *logging.Logger) (display.Surface, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.DisplayBackend {
	case "", config.DisplayMemory:
		logger.Info("display backend ready", "backend", config.DisplayMemory)
		return display.NewMemoryPanel(), func() error { return nil }, nil
	case config.DisplayRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		panel, err := display.NewRedisPanel(ctx, display.RedisConfig{Client: client, Key: cfg.RedisKey})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		logger.Info("display backend ready", "backend", config.DisplayRedis, "addr", cfg.RedisAddr, "key", cfg.RedisKey)
		return panel, client.Close, nil
	default:
		return nil, nil, crerr.Mark(crerr.Newf("unknown display backend %q", cfg.DisplayBackend), usecase.ErrInvalidInput)
	}
}

// Server is the HTTP front end plus everything it has to drain on shutdown.
type Server struct {
	HTTP        *http.Server
	Panel       display.Surface
	submissions *usecase.SubmissionHandler
	search      *PlayerSearch
	closePanel  func() error
	logger      *logging.Logger
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, crerr.New("http server addr cannot be empty")
	}

	panel, closePanel, err := NewPanel(ctx, cfg, logger)
	if err != nil {
		return nil, crerr.Wrap(err, "build display panel")
	}

	search, err := NewPlayerSearch(cfg, logger)
	if err != nil {
		_ = closePanel()
		return nil, crerr.Wrap(err, "build player search")
	}

	submissions := usecase.NewSubmissionHandler(search.Service, panel, logger)
	handler := httpapi.NewHandler(submissions, search.Service, panel, logger.Named("httpapi"),
		httpapi.WithCardTimeout(cardTimeout(cfg.WriteTimeout)),
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &Server{
		HTTP: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Panel:       panel,
		submissions: submissions,
		search:      search,
		closePanel:  closePanel,
		logger:      logger,
	}, nil
}

// cardTimeout leaves part of the write deadline for rendering the envelope.
func cardTimeout(writeTimeout time.Duration) time.Duration {
	if writeTimeout <= 0 {
		return 0
	}
	return writeTimeout * 9 / 10
}

// Shutdown stops accepting requests, waits for in-flight searches and then
// releases the decoder pool and the display backend.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs error
	if err := s.HTTP.Shutdown(ctx); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "shutdown http server"))
	}

	drained := make(chan struct{})
	go func() {
		s.submissions.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		s.logger.Warn("in-flight searches still running at shutdown")
	}

	s.search.Close()
	if err := s.closePanel(); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "close display panel"))
	}
	return errs
}
