package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riskibarqy/nba-player-search/internal/domain/player"
	"github.com/riskibarqy/nba-player-search/internal/platform/logging"
	"github.com/riskibarqy/nba-player-search/internal/platform/querybuilder"
	"go.opentelemetry.io/otel/attribute"
)

type SearchConfig struct {
	BaseURL string
	// LatestOnly drops resolutions of searches that were superseded by a
	// newer one. Off means the last resolution wins.
	LatestOnly bool
	Logger     *logging.Logger
}

// SearchResult describes how one search resolved.
type SearchResult struct {
	ID       string
	Sequence uint64
	Query    player.SearchQuery
	State    player.SearchState
	Content  string
	Err      error
	// Stale is set when the guard dropped the resolution instead of writing it.
	Stale    bool
	WriteErr error
}

// SearchService runs the Idle -> Loading -> Resolved lookup: stats request,
// image request, image decode, render. Steps are strictly sequential and the
// first failure resolves the search.
type SearchService struct {
	api        PlayerAPI
	decoder    ImageDecoder
	renderer   Renderer
	baseURL    string
	latestOnly bool
	logger     *logging.Logger

	sequence atomic.Uint64
	writeMu  sync.Mutex
}

func NewSearchService(api PlayerAPI, decoder ImageDecoder, renderer Renderer, cfg SearchConfig) *SearchService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &SearchService{
		api:        api,
		decoder:    decoder,
		renderer:   renderer,
		baseURL:    cfg.BaseURL,
		latestOnly: cfg.LatestOnly,
		logger:     logger.Named("search"),
	}
}

// Search always resolves; failures are rendered, never returned.
func (s *SearchService) Search(ctx context.Context, query player.SearchQuery, out Output) SearchResult {
	ctx, span := startSearchSpan(ctx, query)
	defer span.End()

	result := SearchResult{
		ID:    uuid.NewString(),
		Query: query,
		State: player.StateIdle,
	}
	logger := s.logger.With("search_id", result.ID, "first_name", query.FirstName, "last_name", query.LastName)

	result.Sequence = s.begin(ctx, out, logger)
	logger = logger.With("sequence", result.Sequence)
	s.transition(ctx, logger, &result, player.StateLoading)
	span.SetAttributes(
		attribute.String("search.id", result.ID),
		attribute.Int64("search.sequence", int64(result.Sequence)),
	)

	card, err := s.lookup(ctx, query)
	if err != nil {
		result.Err = err
		result.Content = s.renderer.Failure(err)
		recordFailure(span, err)
		s.transition(ctx, logger, &result, player.StateFailure)
	} else {
		content, renderErr := s.renderer.Card(card)
		if renderErr != nil {
			result.Err = renderErr
			result.Content = s.renderer.Failure(renderErr)
			recordFailure(span, renderErr)
			s.transition(ctx, logger, &result, player.StateFailure)
		} else {
			result.Content = content
			s.transition(ctx, logger, &result, player.StateSuccess)
		}
	}

	s.resolve(ctx, out, logger, &result)
	return result
}

func (s *SearchService) begin(ctx context.Context, out Output, logger *logging.Logger) uint64 {
	if s.latestOnly {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
	}

	seq := s.sequence.Add(1)
	if err := out.WriteOutput(ctx, s.renderer.Loading()); err != nil {
		logger.WarnContext(ctx, "write loading indicator failed", "sequence", seq, "error", err)
	}
	return seq
}

func (s *SearchService) resolve(ctx context.Context, out Output, logger *logging.Logger, result *SearchResult) {
	if s.latestOnly {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()

		if latest := s.sequence.Load(); result.Sequence < latest {
			result.Stale = true
			logger.InfoContext(ctx, "stale search resolution dropped", "state", string(result.State), "latest_sequence", latest)
			return
		}
	}

	if err := out.WriteOutput(ctx, result.Content); err != nil {
		result.WriteErr = err
		logger.ErrorContext(ctx, "write search result failed", "state", string(result.State), "error", err)
	}
}

func (s *SearchService) lookup(ctx context.Context, query player.SearchQuery) (player.Card, error) {
	statsURL, err := querybuilder.PlayerURL(s.baseURL, string(player.EndpointStats), query.FirstName, query.LastName)
	if err != nil {
		return player.Card{}, crerr.Mark(crerr.Wrap(err, "build stats url"), ErrNetwork)
	}
	statsResp, err := s.api.Get(ctx, statsURL)
	if err != nil {
		return player.Card{}, classify(crerr.Wrap(err, "get player stats"), ErrNetwork)
	}
	stats, err := statsResp.Stats()
	if err != nil {
		return player.Card{}, classify(crerr.Wrap(err, "parse player stats"), ErrParse)
	}

	imageURL, err := querybuilder.PlayerURL(s.baseURL, string(player.EndpointImage), query.FirstName, query.LastName)
	if err != nil {
		return player.Card{}, crerr.Mark(crerr.Wrap(err, "build image url"), ErrNetwork)
	}
	imageResp, err := s.api.Get(ctx, imageURL)
	if err != nil {
		return player.Card{}, classify(crerr.Wrap(err, "get player image"), ErrNetwork)
	}
	image, err := imageResp.Image()
	if err != nil {
		return player.Card{}, classify(crerr.Wrap(err, "read player image"), ErrParse)
	}

	dataURI, err := awaitDecode(ctx, s.decoder, image)
	if err != nil {
		return player.Card{}, classify(crerr.Wrap(err, "decode player image"), ErrDecode)
	}

	return player.Card{Stats: stats, DataURI: dataURI}, nil
}

func (s *SearchService) transition(ctx context.Context, logger *logging.Logger, result *SearchResult, next player.SearchState) {
	from := result.State
	if !from.CanTransition(next) {
		logger.ErrorContext(ctx, "illegal search transition", "from", string(from), "to", string(next))
		return
	}
	result.State = next

	args := []any{"from", string(from), "to", string(next)}
	if next == player.StateFailure {
		args = append(args, "failure_kind", FailureKind(result.Err), "error", result.Err)
	}
	logger.InfoContext(ctx, "search transition", args...)
}

// awaitDecode blocks until the decoder reports back or ctx ends.
func awaitDecode(ctx context.Context, decoder ImageDecoder, image player.Image) (string, error) {
	type decoded struct {
		uri string
		err error
	}
	done := make(chan decoded, 1)
	if err := decoder.Decode(ctx, image, func(uri string, err error) {
		done <- decoded{uri: uri, err: err}
	}); err != nil {
		return "", err
	}

	select {
	case r := <-done:
		return r.uri, r.err
	case <-ctx.Done():
		return "", crerr.Mark(crerr.Wrap(ctx.Err(), "await image decode"), ErrDecode)
	}
}

// classify marks err with kind unless it already carries a failure kind.
func classify(err error, kind error) error {
	if crerr.Is(err, ErrNetwork) || crerr.Is(err, ErrParse) || crerr.Is(err, ErrDecode) {
		return err
	}
	return crerr.Mark(err, kind)
}
