package fbref

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/Bennylang23/autobeluga/internal/platform/logging"
	"github.com/Bennylang23/autobeluga/internal/platform/resilience"
	"github.com/Bennylang23/autobeluga/internal/usecase"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL      = "https://fbref.com"
	defaultUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultMaxBodyBytes = 8 << 20
)

var errFBrefTransient = crerr.New("fbref transient failure")

// ErrDocumentTooLarge rejects a page above the body limit. A truncated page would still parse and
// record a match with tables and shots missing, so it is never handed on.
var ErrDocumentTooLarge = crerr.New("fbref document exceeds size limit")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	MaxBodyBytes   int64
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches raw match-report documents.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxRetries   int
	maxBodyBytes int64
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight[[]byte]
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
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	breakerCfg := cfg.CircuitBreaker
	if breakerCfg.Name == "" {
		breakerCfg.Name = "fbref"
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		userAgent:    userAgent,
		maxRetries:   max(cfg.MaxRetries, 0),
		maxBodyBytes: maxBody,
		logger:       logger,
		breaker:      resilience.NewCircuitBreaker(breakerCfg),
	}
}

// FetchDocument returns the raw bytes of one match report.
func (c *Client) FetchDocument(ctx context.Context, reportURL string) ([]byte, error) {
	fullURL := matchreport.NormalizeReportURL(c.baseURL, reportURL)
	if fullURL == "" {
		return nil, fmt.Errorf("%w: empty report url", usecase.ErrInvalidInput)
	}

	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		var body []byte
		err := c.breaker.Execute(func() error {
			var reqErr error
			body, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isCircuitFailure)
		return body, err
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "fbref circuit breaker rejected request", "url", fullURL, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: fbref is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "text/html")
		req.Header.Set("user-agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFBrefTransient, err)
		} else {
			raw, readErr := c.readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case crerr.Is(readErr, ErrDocumentTooLarge):
				c.logger.WarnContext(ctx, "fbref document rejected", "url", fullURL, "limit_bytes", c.maxBodyBytes)
				return nil, fmt.Errorf("read response body url=%s: %w", fullURL, readErr)
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFBrefTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: fbref status=%d", errFBrefTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("fbref status=%d url=%s", resp.StatusCode, fullURL)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("fbref request failed")
	}
	c.logger.WarnContext(ctx, "fbref request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, c.maxBodyBytes+1)); err != nil {
		return nil, err
	}
	if int64(buf.Len()) > c.maxBodyBytes {
		return nil, crerr.Wrapf(ErrDocumentTooLarge, "limit %d bytes", c.maxBodyBytes)
	}
	return append([]byte(nil), buf.B...), nil
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFBrefTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
