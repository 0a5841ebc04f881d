// Package fetch performs single page retrievals from the source site.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/okian/fightcard/pkg/logger"
	"github.com/okian/fightcard/pkg/metrics"
)

// Defaults used when no option overrides them.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultTimeout   = 30 * time.Second
	outcomeOK        = "ok"
)

// Page is a successfully fetched document.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithUserAgent sets the identity header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client fetches pages with a fixed browser-like identity. It never retries,
// keeps no cookies and uses no proxy.
type Client struct {
	http      *resty.Client
	userAgent string
	timeout   time.Duration
	logger    logger.Logger
}

// New constructs a Client.
func New(opts ...Option) *Client {
	c := &Client{
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetHeader("User-Agent", c.userAgent).
		SetTimeout(c.timeout).
		SetRetryCount(0).
		SetCookieJar(nil).
		SetTransport(noProxyTransport())
	return c
}

// Fetch performs one GET of rawURL. kind labels the request in metrics
// (see metrics.Kind*). Any transport failure or non-2xx status yields *Error.
func (c *Client) Fetch(ctx context.Context, kind, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &Error{URL: rawURL, Class: ClassClient, Err: fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)}
	}

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(rawURL)
	latencyMs := float64(time.Since(start).Milliseconds())

	if err != nil {
		metrics.RecordPageFetched(kind, string(ClassNetwork), latencyMs)
		c.logger.Debug(ctx, "fetch failed", logger.String("url", rawURL), logger.Error(err))
		return nil, &Error{URL: rawURL, Class: ClassNetwork, Err: err}
	}
	if resp.IsError() {
		class := classifyStatus(resp.StatusCode())
		metrics.RecordPageFetched(kind, string(class), latencyMs)
		c.logger.Debug(ctx, "fetch returned error status",
			logger.String("url", rawURL),
			logger.Int("status", resp.StatusCode()),
		)
		return nil, &Error{
			URL:        rawURL,
			StatusCode: resp.StatusCode(),
			Class:      class,
			Err:        ErrStatus,
		}
	}

	metrics.RecordPageFetched(kind, outcomeOK, latencyMs)
	c.logger.Debug(ctx, "fetched page",
		logger.String("url", rawURL),
		logger.Int("status", resp.StatusCode()),
		logger.Int("bytes", len(resp.Body())),
		logger.Duration("took", resp.Time()),
	)
	return &Page{URL: rawURL, StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}
