// Package probe performs the single HTTP request of a check.
package probe

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/security-mcp/check-http-exec/internal/check"
)

// DefaultTimeout bounds the request when no timeout is configured
const DefaultTimeout = 15 * time.Second

// Client sends one GET to a check endpoint and interprets the answer
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a client whose connect, TLS handshake, response header
// and overall request time are all bounded by timeout.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := &net.Dialer{Timeout: timeout}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		DisableKeepAlives:     true,
		ForceAttemptHTTP2:     true,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		timeout:   timeout,
		userAgent: userAgent,
		logger:    slog.Default(),
	}
}

// SetLogger sets the logger used for request diagnostics
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Timeout returns the effective request timeout
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Get requests target once and classifies the outcome. It never retries.
func (c *Client) Get(ctx context.Context, target *url.URL) check.Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return check.Fail(check.NewError(check.StageTransport, err))
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("sending request",
		slog.String("url", target.String()),
		slog.Duration("timeout", c.timeout))

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", slog.String("error", err.Error()), slog.Duration("elapsed", time.Since(start)))
	} else {
		c.logger.Debug("response received", slog.String("status", res.Status), slog.Duration("elapsed", time.Since(start)))
	}

	return check.Interpret(res, err)
}
