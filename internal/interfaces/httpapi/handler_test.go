package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-player-search/internal/display"
	"github.com/riskibarqy/nba-player-search/internal/domain/player"
	"github.com/riskibarqy/nba-player-search/internal/platform/logging"
	"github.com/riskibarqy/nba-player-search/internal/render"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	mu      sync.Mutex
	queries []player.SearchQuery
	content string
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, query player.SearchQuery, out usecase.Output) usecase.SearchResult {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	result := usecase.SearchResult{ID: "search-1", Sequence: 1, Query: query, State: player.StateSuccess, Content: s.content}
	if s.err != nil {
		result.State = player.StateFailure
		result.Err = s.err
		result.Content = render.New().Failure(s.err)
	}
	_ = out.WriteOutput(ctx, result.Content)
	return result
}

func (s *stubSearcher) seen() []player.SearchQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]player.SearchQuery(nil), s.queries...)
}

type testServer struct {
	router      http.Handler
	panel       *display.MemoryPanel
	searcher    *stubSearcher
	submissions *usecase.SubmissionHandler
}

func newTestServer(searcher *stubSearcher) testServer {
	panel := display.NewMemoryPanel()
	submissions := usecase.NewSubmissionHandler(searcher, panel, logging.NewNop())
	handler := NewHandler(submissions, searcher, panel, logging.NewNop())
	return testServer{
		router:      NewRouter(handler, logging.NewNop(), []string{"*"}),
		panel:       panel,
		searcher:    searcher,
		submissions: submissions,
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestHandler_IndexRendersForm(t *testing.T) {
	srv := newTestServer(&stubSearcher{})

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `name="first-name"`)
	require.Contains(t, body, `name="last-name"`)
	require.Contains(t, body, `src="/panel"`)
}

func TestHandler_SubmitPreventsNavigationAndDispatches(t *testing.T) {
	searcher := &stubSearcher{content: "card"}
	srv := newTestServer(searcher)

	form := url.Values{}
	form.Set("first-name", "LeBron")
	form.Set("last-name", "James")
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	srv.router.ServeHTTP(rec, req)
	srv.submissions.Wait()

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Header().Get("Location"))
	require.Equal(t, []player.SearchQuery{{FirstName: "lebron", LastName: "james"}}, searcher.seen())

	panel, err := srv.panel.Read(context.Background())
	require.NoError(t, err)
	require.Equal(t, "card", panel.Content)
}

func TestHandler_PanelRefreshesWhileLoading(t *testing.T) {
	srv := newTestServer(&stubSearcher{})
	require.NoError(t, srv.panel.WriteOutput(context.Background(), render.LoadingFragment))

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panel", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), render.LoadingFragment)
	require.Contains(t, rec.Body.String(), `content="1"`)
}

func TestHandler_GetPanelEnvelope(t *testing.T) {
	srv := newTestServer(&stubSearcher{})
	require.NoError(t, srv.panel.WriteOutput(context.Background(), "<p>done</p>"))

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/panel", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	require.Equal(t, "2.0", body["apiVersion"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data object, got %v", body["data"])
	require.Equal(t, "<p>done</p>", data["content"])
	require.Equal(t, false, data["loading"])
	require.EqualValues(t, 1, data["version"])
}

func TestHandler_GetPlayerCardSuccess(t *testing.T) {
	searcher := &stubSearcher{content: `<div class="player-card">LeBron James</div>`}
	srv := newTestServer(searcher)

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players/JAMES/LeBron/card", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	require.Equal(t, "success", data["state"])
	require.Equal(t, "james", data["last_name"])
	require.Equal(t, "lebron", data["first_name"])
	require.Contains(t, data["content"], "LeBron James")
}

func TestHandler_GetPlayerCardNotFound(t *testing.T) {
	notFound := crerr.Mark(crerr.Mark(crerr.New("players api status=404"), usecase.ErrNotFound), usecase.ErrNetwork)
	srv := newTestServer(&stubSearcher{err: notFound})

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players/nobody/nobody/card", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	errorObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	require.Equal(t, "NOT_FOUND", errorObj["status"])

	panel, err := srv.panel.Read(context.Background())
	require.NoError(t, err)
	require.Contains(t, panel.Content, "Player not found")
}

func TestHandler_Healthz(t *testing.T) {
	srv := newTestServer(&stubSearcher{})

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	errorObj := decodeEnvelope(t, rec)["error"].(map[string]any)
	require.Equal(t, "INTERNAL", errorObj["status"])
}

// upstreamHang blocks until the search context ends, like a players API that never answers.
type upstreamHang struct{}

func (upstreamHang) Search(ctx context.Context, query player.SearchQuery, out usecase.Output) usecase.SearchResult {
	<-ctx.Done()
	err := crerr.Mark(crerr.Wrap(ctx.Err(), "get stats"), usecase.ErrNetwork)
	content := render.New().Failure(err)
	_ = out.WriteOutput(ctx, content)
	return usecase.SearchResult{Query: query, State: player.StateFailure, Err: err, Content: content}
}

func TestHandler_GetPlayerCardBoundedByCardTimeout(t *testing.T) {
	panel := display.NewMemoryPanel()
	searcher := upstreamHang{}
	submissions := usecase.NewSubmissionHandler(searcher, panel, logging.NewNop())
	handler := NewHandler(submissions, searcher, panel, logging.NewNop(), WithCardTimeout(50*time.Millisecond))
	router := NewRouter(handler, logging.NewNop(), []string{"*"})

	started := time.Now()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players/james/lebron/card", nil))

	require.Less(t, time.Since(started), 2*time.Second)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	current, err := panel.Read(context.Background())
	require.NoError(t, err)
	require.Contains(t, current.Content, "Player not found")
}
