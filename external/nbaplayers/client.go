package nbaplayers

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-player-search/internal/platform/logging"
	"github.com/riskibarqy/nba-player-search/internal/platform/resilience"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	DefaultBaseURL      = "https://nba-players.herokuapp.com"
	defaultMaxBodyBytes = 8 << 20
	maxRedirects        = 5
)

var errPlayersTransient = crerr.New("players api transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	Timeout        time.Duration
	MaxBodyBytes   int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client issues plain GET requests against the NBA players API.
// A zero Timeout means requests are bounded only by the caller's context.
type Client struct {
	httpClient     *fasthttp.Client
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			NoDefaultUserAgentHeader: true,
			MaxResponseBodySize:      maxBody,
		}
	}

	return &Client{
		httpClient:     httpClient,
		timeout:        maxDuration(cfg.Timeout, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// Get fetches rawURL and returns the response handle. Non-2xx statuses,
// transport failures and an open circuit are all reported as usecase.ErrNetwork.
func (c *Client) Get(ctx context.Context, rawURL string) (usecase.PlayerResponse, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, crerr.Mark(crerr.New("request url is empty"), usecase.ErrNetwork)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var resp *Response
	call := func() error {
		var err error
		resp, err = c.execute(ctx, rawURL)
		return err
	}

	var err error
	if c.circuitEnabled {
		err = c.breaker.Execute(call, isTransient)
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "players api circuit breaker rejected request", "state", string(c.breaker.State()), "url", rawURL)
			err = crerr.Mark(crerr.Mark(crerr.Wrap(err, "players api is temporarily unavailable"), usecase.ErrDependencyUnavailable), usecase.ErrNetwork)
		}
	} else {
		err = call()
	}
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) execute(ctx context.Context, rawURL string) (*Response, error) {
	req := fasthttp.AcquireRequest()
	res := fasthttp.AcquireResponse()
	req.SetRequestURI(rawURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	done := make(chan error, 1)
	go func() {
		done <- c.httpClient.DoRedirects(req, res, maxRedirects)
	}()

	var doErr error
	select {
	case <-ctx.Done():
		// fasthttp has no cancellation; release once the in-flight call returns.
		go func() {
			<-done
			fasthttp.ReleaseRequest(req)
			fasthttp.ReleaseResponse(res)
		}()
		err := crerr.Mark(crerr.Wrapf(ctx.Err(), "get %s", rawURL), errPlayersTransient)
		c.logger.WarnContext(ctx, "players api request abandoned", "url", rawURL, "error", err)
		return nil, crerr.Mark(err, usecase.ErrNetwork)
	case doErr = <-done:
	}
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(res)

	if doErr != nil {
		err := crerr.Mark(crerr.Wrapf(doErr, "get %s", rawURL), errPlayersTransient)
		c.logger.WarnContext(ctx, "players api request failed", "url", rawURL, "error", err)
		return nil, crerr.Mark(err, usecase.ErrNetwork)
	}

	status := res.StatusCode()
	body := append([]byte(nil), res.Body()...)
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		err := crerr.Newf("players api status=%d body=%s", status, abbreviateBody(body))
		if isRetryableStatus(status) {
			err = crerr.Mark(err, errPlayersTransient)
		}
		if status == fasthttp.StatusNotFound {
			err = crerr.Mark(err, usecase.ErrNotFound)
		}
		c.logger.WarnContext(ctx, "players api non-2xx response", "url", rawURL, "status_code", status)
		return nil, crerr.Mark(err, usecase.ErrNetwork)
	}

	return &Response{
		URL:         rawURL,
		StatusCode:  status,
		ContentType: string(res.Header.ContentType()),
		Body:        body,
	}, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errPlayersTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxDuration(left, right time.Duration) time.Duration {
	if left > right {
		return left
	}
	return right
}
