package usecase

import (
	"context"

	"github.com/riskibarqy/nba-player-search/internal/domain/player"
	"github.com/riskibarqy/nba-player-search/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const (
	FieldFirstName = "first-name"
	FieldLastName  = "last-name"
)

// Searcher runs one search against an output surface.
type Searcher interface {
	Search(ctx context.Context, query player.SearchQuery, out Output) SearchResult
}

// SubmissionHandler turns a form submission into a search.
type SubmissionHandler struct {
	searcher Searcher
	output   Output
	logger   *logging.Logger
	inflight conc.WaitGroup
}

func NewSubmissionHandler(searcher Searcher, output Output, logger *logging.Logger) *SubmissionHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmissionHandler{
		searcher: searcher,
		output:   output,
		logger:   logger.Named("submit"),
	}
}

// Submit prevents the default action, reads both names and dispatches the
// search in the background. It returns before the search resolves.
func (h *SubmissionHandler) Submit(ctx context.Context, event SubmitEvent, form Form) player.SearchQuery {
	query := h.intercept(event, form)
	// The search outlives the request that submitted it.
	searchCtx := context.WithoutCancel(ctx)

	h.inflight.Go(func() {
		h.searcher.Search(searchCtx, query, h.output)
	})
	h.logger.DebugContext(ctx, "search dispatched", "first_name", query.FirstName, "last_name", query.LastName)
	return query
}

// SubmitSync is Submit without the background dispatch.
func (h *SubmissionHandler) SubmitSync(ctx context.Context, event SubmitEvent, form Form) SearchResult {
	query := h.intercept(event, form)
	return h.searcher.Search(ctx, query, h.output)
}

// Wait blocks until every dispatched search has resolved.
func (h *SubmissionHandler) Wait() {
	h.inflight.Wait()
}

func (h *SubmissionHandler) intercept(event SubmitEvent, form Form) player.SearchQuery {
	if event != nil {
		event.PreventDefault()
	}
	return player.NewSearchQuery(form.ReadField(FieldFirstName), form.ReadField(FieldLastName))
}
