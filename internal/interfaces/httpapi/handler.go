package httpapi

import (
	"context"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-player-search/internal/display"
	"github.com/riskibarqy/nba-player-search/internal/domain/player"
	"github.com/riskibarqy/nba-player-search/internal/platform/logging"
	"github.com/riskibarqy/nba-player-search/internal/render"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
)

const maxFormBytes = 1 << 20

type Handler struct {
	submissions *usecase.SubmissionHandler
	searcher    usecase.Searcher
	panel       display.Surface
	pages       *pages
	logger      *logging.Logger
	cardTimeout time.Duration
}

type HandlerOption func(*Handler)

// WithCardTimeout bounds the synchronous card search so it resolves, and
// writes the panel, before the server's write deadline closes the response.
func WithCardTimeout(timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		h.cardTimeout = timeout
	}
}

func NewHandler(
	submissions *usecase.SubmissionHandler,
	searcher usecase.Searcher,
	panel display.Surface,
	logger *logging.Logger,
	opts ...HandlerOption,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	h := &Handler{
		submissions: submissions,
		searcher:    searcher,
		panel:       panel,
		pages:       newPages(),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type panelDTO struct {
	Content   string     `json:"content"`
	Version   uint64     `json:"version"`
	Loading   bool       `json:"loading"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type playerCardDTO struct {
	SearchID  string `json:"search_id"`
	Sequence  uint64 `json:"sequence"`
	State     string `json:"state"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Content   string `json:"content"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Index")
	defer span.End()

	page, err := h.pages.Index()
	if err != nil {
		h.logger.ErrorContext(ctx, "render index page failed", "error", err)
		writeInternalError(ctx, w)
		return
	}
	writeHTML(ctx, w, http.StatusOK, page)
}

// Submit handles the search form. The search runs in the background and the
// response never navigates away from the form.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Submit")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		writeError(ctx, w, crerr.Mark(crerr.Wrap(err, "parse search form"), usecase.ErrInvalidInput))
		return
	}

	query := h.submissions.Submit(ctx, submitEvent{}, requestForm{values: r.PostForm})
	h.logger.InfoContext(ctx, "search submitted", "first_name", query.FirstName, "last_name", query.LastName)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Panel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Panel")
	defer span.End()

	panel, err := h.panel.Read(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "read panel failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	page, err := h.pages.Panel(panel.Content, isLoading(panel))
	if err != nil {
		h.logger.ErrorContext(ctx, "render panel page failed", "error", err)
		writeInternalError(ctx, w)
		return
	}
	writeHTML(ctx, w, http.StatusOK, page)
}

func (h *Handler) GetPanel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPanel")
	defer span.End()

	panel, err := h.panel.Read(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "read panel failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPanelDTO(panel))
}

// GetPlayerCard runs one search inline. Unlike form submissions it is bounded
// by the card timeout, since nobody reads a result written after the response.
func (h *Handler) GetPlayerCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerCard")
	defer span.End()

	if h.cardTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cardTimeout)
		defer cancel()
	}

	query := player.NewSearchQuery(r.PathValue("firstName"), r.PathValue("lastName"))
	result := h.searcher.Search(ctx, query, h.panel)
	if result.State == player.StateFailure {
		h.logger.WarnContext(ctx, "player card search failed",
			"search_id", result.ID,
			"failure_kind", usecase.FailureKind(result.Err),
			"error", result.Err,
		)
		writeError(ctx, w, result.Err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerCardDTO{
		SearchID:  result.ID,
		Sequence:  result.Sequence,
		State:     string(result.State),
		FirstName: query.FirstName,
		LastName:  query.LastName,
		Content:   result.Content,
	})
}

func toPanelDTO(panel display.Panel) panelDTO {
	out := panelDTO{
		Content: panel.Content,
		Version: panel.Version,
		Loading: isLoading(panel),
	}
	if !panel.UpdatedAt.IsZero() {
		updatedAt := panel.UpdatedAt
		out.UpdatedAt = &updatedAt
	}
	return out
}

func isLoading(panel display.Panel) bool {
	return panel.Content == render.LoadingFragment
}

func writeHTML(ctx context.Context, w http.ResponseWriter, status int, body string) {
	_, span := startSpan(ctx, "httpapi.writeHTML")
	defer span.End()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
