package thesportsdb

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/riskibarqy/scoresync/internal/platform/resilience"
	"github.com/riskibarqy/scoresync/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL   = "https://www.thesportsdb.com/api/v1/json"
	defaultAPIKey    = "3"
	maxResponseBytes = 8 << 20
)

var errSportsDBTransient = crerr.New("thesportsdb transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = defaultAPIKey
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.Named("thesportsdb"),
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

// FetchSeasonEvents lists every event of a league season, e.g. season "2025-2026".
func (c *Client) FetchSeasonEvents(ctx context.Context, leagueID int64, season string) ([]usecase.ExternalSeasonEvent, error) {
	season = strings.TrimSpace(season)
	if leagueID <= 0 || season == "" {
		return nil, fmt.Errorf("%w: league id and season are required", usecase.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("id", strconv.FormatInt(leagueID, 10))
	query.Set("s", season)

	var payload eventsPayload
	if err := c.getJSON(ctx, "/eventsseason.php", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch season events league_id=%d season=%s: %w", leagueID, season, err)
	}

	out := make([]usecase.ExternalSeasonEvent, 0, len(payload.Events))
	for _, item := range payload.Events {
		if strings.TrimSpace(item.ID.String()) == "" {
			continue
		}
		out = append(out, item.toExternal())
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + "/" + url.PathEscape(c.apiKey) + path + "?" + query.Encode()
	key := path + "?" + query.Encode()
	body, err, _ := c.flight.Do(key, func() ([]byte, error) {
		var raw []byte
		err := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isTransient)
		return raw, err
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "thesportsdb circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: secondary score provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

// executeRequest makes exactly one HTTP request per logical fetch.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: send request: %v", errSportsDBTransient, redactKey(err.Error(), c.apiKey))
		c.logger.WarnContext(ctx, "thesportsdb request failed", "error", err)
		return nil, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()

	switch {
	case readErr != nil:
		err = fmt.Errorf("%w: read response body: %v", errSportsDBTransient, readErr)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		err = fmt.Errorf("%w: provider status=%d body=%s", errSportsDBTransient, resp.StatusCode, abbreviateBody(raw))
	default:
		err = fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
	c.logger.WarnContext(ctx, "thesportsdb request failed", "status", resp.StatusCode, "error", err)
	return nil, err
}

// redactKey hides the api key, which travels in the URL path.
func redactKey(text, key string) string {
	if key == "" {
		return text
	}
	return strings.ReplaceAll(text, "/"+key+"/", "/***/")
}

func abbreviateBody(body []byte) string {
	text := string(bytes.TrimSpace(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func isTransient(err error) bool {
	return stderrors.Is(err, errSportsDBTransient)
}
