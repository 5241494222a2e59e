// Package sheetstore talks to the spreadsheet-backed web app that stores
// scores, chat messages and snake scores.
package sheetstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/tournament-leaderboard/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errSheetTransient = crerr.New("sheet store transient failure")

const maxResponseBytes = 4 << 20

type Config struct {
	Endpoint       string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client performs the action-style calls of the sheet web app. Calls are
// never retried; a breaker short-circuits them while the endpoint keeps
// failing and identical concurrent reads share one request.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.Group[[]byte]
}

func NewClient(cfg Config, logger *logging.Logger) (*Client, error) {
	endpoint, err := ValidateEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid SCORE_STORE_ENDPOINT")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     logger.Named("sheetstore"),
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}, nil
}

// ValidateEndpoint accepts absolute http(s) URLs only.
func ValidateEndpoint(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}

// envelope is the common response shape of every action.
type envelope struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	Error       string          `json:"error"`
	Scores      []scoreRow      `json:"scores"`
	Messages    []messageRow    `json:"messages"`
	SnakeScores []snakeScoreRow `json:"snakeScores"`
}

func (e envelope) failure() error {
	msg := strings.TrimSpace(e.Error)
	if msg == "" {
		msg = strings.TrimSpace(e.Message)
	}
	if msg == "" {
		msg = "request rejected"
	}
	return fmt.Errorf("%w: sheet store: %s", usecase.ErrDependencyUnavailable, msg)
}

func (c *Client) get(ctx context.Context, action, tournamentID string) (envelope, error) {
	query := url.Values{}
	query.Set("action", action)
	query.Set("tournamentId", tournamentID)
	fullURL := withQuery(c.endpoint, query)

	raw, err, shared := c.flight.Do(action+":"+tournamentID, func() ([]byte, error) {
		var body []byte
		callErr := c.breaker.Call(func() error {
			var reqErr error
			body, reqErr = c.do(ctx, http.MethodGet, fullURL, nil)
			return reqErr
		}, isCircuitFailure)
		return body, callErr
	})
	annotateSpan(ctx, action, tournamentID, shared)
	if err != nil {
		return envelope{}, c.unavailable(ctx, action, tournamentID, err)
	}

	return decodeEnvelope(raw)
}

func (c *Client) post(ctx context.Context, action, tournamentID string, payload map[string]any) (envelope, error) {
	payload["action"] = action
	payload["tournamentId"] = tournamentID

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return envelope{}, crerr.Wrap(err, "marshal sheet store payload")
	}

	var raw []byte
	err := c.breaker.Call(func() error {
		var reqErr error
		raw, reqErr = c.do(ctx, http.MethodPost, c.endpoint, buf.B)
		return reqErr
	}, isCircuitFailure)
	annotateSpan(ctx, action, tournamentID, false)
	if err != nil {
		return envelope{}, c.unavailable(ctx, action, tournamentID, err)
	}

	return decodeEnvelope(raw)
}

// do sends one request. The web app answers POSTs with a redirect that the
// http.Client follows as a GET.
func (c *Client) do(ctx context.Context, method, target string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, crerr.Wrap(err, "create sheet store request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errSheetTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errSheetTransient, err)
	}
	if resp.StatusCode/100 != 2 {
		if isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%w: status=%d body=%s", errSheetTransient, resp.StatusCode, abbreviate(raw))
		}
		return nil, fmt.Errorf("sheet store status=%d body=%s", resp.StatusCode, abbreviate(raw))
	}
	return raw, nil
}

func (c *Client) unavailable(ctx context.Context, action, tournamentID string, err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "sheet store circuit breaker rejected request",
			"action", action,
			"tournament_id", tournamentID,
			"state", string(c.breaker.State()),
		)
	} else {
		c.logger.WarnContext(ctx, "sheet store request failed",
			"action", action,
			"tournament_id", tournamentID,
			"error", err,
		)
	}
	return fmt.Errorf("%w: sheet store %s: %w", usecase.ErrDependencyUnavailable, action, err)
}

func decodeEnvelope(raw []byte) (envelope, error) {
	var out envelope
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return envelope{}, fmt.Errorf("%w: decode sheet store payload: %v", usecase.ErrDependencyUnavailable, err)
	}
	if !out.Success {
		return envelope{}, out.failure()
	}
	return out, nil
}

func annotateSpan(ctx context.Context, action, tournamentID string, shared bool) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String("sheetstore.action", action),
		attribute.String("sheetstore.tournament_id", tournamentID),
		attribute.Bool("sheetstore.shared", shared),
	)
}

func isCircuitFailure(err error) bool {
	return errors.Is(err, errSheetTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func withQuery(endpoint string, query url.Values) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + query.Encode()
}

func abbreviate(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 256 {
		return text[:256] + "..."
	}
	return text
}
