package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/riskibarqy/scoresync/internal/platform/resilience"
	"github.com/riskibarqy/scoresync/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL        = "https://api.football-data.org/v4"
	defaultCallsPerMinute = 10
	maxResponseBytes      = 8 << 20

	headerAuthToken         = "X-Auth-Token"
	headerRequestsAvailable = "X-Requests-Available-Minute"
	headerCounterReset      = "X-RequestCounter-Reset"
)

var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	CallsPerMinute int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the football-data.org v4 API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[response]
}

type response struct {
	body   []byte
	header http.Header
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
	perMinute := cfg.CallsPerMinute
	if perMinute <= 0 {
		perMinute = defaultCallsPerMinute
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		logger:     logger.Named("footballdata"),
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

func (c *Client) FetchCompetition(ctx context.Context, competitionID int64) (usecase.ExternalCompetition, error) {
	if competitionID <= 0 {
		return usecase.ExternalCompetition{}, fmt.Errorf("%w: competition id must be greater than zero", usecase.ErrInvalidInput)
	}

	var payload competitionPayload
	if _, err := c.getJSON(ctx, "/competitions/"+strconv.FormatInt(competitionID, 10), &payload); err != nil {
		return usecase.ExternalCompetition{}, fmt.Errorf("fetch competition id=%d: %w", competitionID, err)
	}
	return payload.toExternal(), nil
}

func (c *Client) FetchCompetitionMatches(ctx context.Context, competitionID int64) ([]usecase.ExternalMatch, error) {
	if competitionID <= 0 {
		return nil, fmt.Errorf("%w: competition id must be greater than zero", usecase.ErrInvalidInput)
	}

	var payload matchesPayload
	if _, err := c.getJSON(ctx, "/competitions/"+strconv.FormatInt(competitionID, 10)+"/matches", &payload); err != nil {
		return nil, fmt.Errorf("fetch matches competition_id=%d: %w", competitionID, err)
	}

	out := make([]usecase.ExternalMatch, 0, len(payload.Matches))
	for _, item := range payload.Matches {
		if item.ID <= 0 {
			continue
		}
		mapped := item.toExternal()
		if mapped.CompetitionID <= 0 {
			mapped.CompetitionID = competitionID
		}
		out = append(out, mapped)
	}
	return out, nil
}

func (c *Client) FetchMatch(ctx context.Context, matchID int64) (usecase.ExternalMatch, error) {
	if matchID <= 0 {
		return usecase.ExternalMatch{}, fmt.Errorf("%w: match id must be greater than zero", usecase.ErrInvalidInput)
	}

	var payload matchPayload
	if _, err := c.getJSON(ctx, "/matches/"+strconv.FormatInt(matchID, 10), &payload); err != nil {
		return usecase.ExternalMatch{}, fmt.Errorf("fetch match id=%d: %w", matchID, err)
	}
	return payload.toExternal(), nil
}

// FetchAccountStatus reads the plan from the API root and the quota from its headers.
func (c *Client) FetchAccountStatus(ctx context.Context) (usecase.ExternalAccountStatus, error) {
	var payload accountPayload
	header, err := c.getJSON(ctx, "/", &payload)
	if err != nil {
		return usecase.ExternalAccountStatus{}, fmt.Errorf("fetch account status: %w", err)
	}

	out := usecase.ExternalAccountStatus{
		PlanName:            strings.TrimSpace(payload.Plan),
		RequestsAvailable:   headerInt(header, headerRequestsAvailable),
		RequestCounterReset: headerInt(header, headerCounterReset),
	}
	for _, item := range payload.Competitions {
		if code := strings.TrimSpace(item.Code); code != "" {
			out.CompetitionsAllowed = append(out.CompetitionsAllowed, code)
		}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) (http.Header, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: football-data token is empty", usecase.ErrNotConfigured)
	}
	resp, err, _ := c.flight.Do(path, func() (response, error) {
		var out response
		err := c.breaker.Execute(func() error {
			var reqErr error
			out, reqErr = c.executeRequest(ctx, c.baseURL+path)
			return reqErr
		}, isTransient)
		return out, err
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: primary score provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}

	if err := sonic.Unmarshal(resp.body, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	return resp.header, nil
}

// executeRequest makes exactly one HTTP request. Failed calls are retried by
// the next scheduled run, never inside this one.
func (c *Client) executeRequest(ctx context.Context, fullURL string) (response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return response{}, fmt.Errorf("wait for rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(headerAuthToken, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: send request: %v", errFootballDataTransient, err)
		c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", err)
		return response{}, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()

	switch {
	case readErr != nil:
		err = fmt.Errorf("%w: read response body: %v", errFootballDataTransient, readErr)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return response{body: raw, header: resp.Header}, nil
	case isTransientStatus(resp.StatusCode):
		err = fmt.Errorf("%w: provider status=%d body=%s", errFootballDataTransient, resp.StatusCode, abbreviateBody(raw))
	default:
		err = fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "status", resp.StatusCode, "error", err)
	return response{}, err
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func headerInt(header http.Header, key string) *int {
	raw := strings.TrimSpace(header.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func isTransient(err error) bool {
	return stderrors.Is(err, errFootballDataTransient)
}
