package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/metrics"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 10 * time.Second

const maxErrorBody = 4096

// Client is a small JSON-over-HTTP client shared by the transit and road routers
type Client struct {
	Service   string
	BaseURL   string
	UserAgent string

	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Metrics    *metrics.Collector
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.BaseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.HTTPClient.Timeout = timeout
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = httpClient
	}
}

// WithRateLimit caps requests per second. Zero or less disables limiting
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.Limiter = nil
			return
		}
		c.Limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) {
		c.Metrics = collector
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.UserAgent = userAgent
	}
}

func NewClient(service string, baseURL string, opts ...Option) *Client {
	c := &Client{
		Service: service,
		BaseURL: strings.TrimRight(baseURL, "/"),
		// TfL is behind Cloudflare which rejects the default Go user agent
		UserAgent:  "curl/7.54.1",
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Limiter:    rate.NewLimiter(5, 5),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetJSON performs a GET against BaseURL+path and decodes the body into target.
// path must already be escaped.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, target any) error {
	started := time.Now()

	err := c.getJSON(ctx, path, query, target)

	outcome := "ok"
	if err != nil {
		outcome = Kind(err)
	}
	c.Metrics.ObserveUpstream(c.Service, outcome, time.Since(started))

	return err
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return &TransportError{Service: c.Service, Cause: err}
		}
	}

	requestURL := c.BaseURL + path
	if len(query) > 0 {
		requestURL = fmt.Sprintf("%s?%s", requestURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &TransportError{Service: c.Service, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	log.Debug().Str("service", c.Service).Str("path", path).Msg("Upstream request")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{Service: c.Service, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return &TransportError{
			Service:    c.Service,
			StatusCode: resp.StatusCode,
			Body:       body,
			Cause:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Service: c.Service, StatusCode: resp.StatusCode, Cause: err}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &TransportError{
			Service:    c.Service,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("%w: %v", ErrMalformedUpstreamData, err),
		}
	}

	return nil
}
