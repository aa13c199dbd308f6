// Package remote is the JSON-over-HTTP plumbing shared by the marketplace
// and fleet clients.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	deliverycontext "listingmanager/internal/delivery/context"
	domainerrors "listingmanager/internal/domain/errors"

	"github.com/pkg/errors"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 512

// Client issues JSON requests against one base URL.
type Client struct {
	baseURL    string
	header     http.Header
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHeader sets a header on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		header:  make(http.Header),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// URL joins the base URL with path segments, escaping each segment.
func (c *Client) URL(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}

	return c.baseURL + "/" + strings.Join(escaped, "/")
}

// Get issues a GET and decodes the JSON response into out (when non-nil).
func (c *Client) Get(ctx context.Context, target string, out any) error {
	return c.Do(ctx, http.MethodGet, target, nil, out)
}

// Post issues a POST with a JSON body and decodes the JSON response into out (when non-nil).
func (c *Client) Post(ctx context.Context, target string, body, out any) error {
	return c.Do(ctx, http.MethodPost, target, body, out)
}

// Do performs one request. Non-2xx responses and transport failures come
// back as *domainerrors.RemoteError so callers can tell transient failures apart.
func (c *Client) Do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.WithStack(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.WithStack(err)
	}
	for key, values := range c.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := deliverycontext.GetCycleID(ctx); id != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerrors.NewTransportError(method, redact(target), err)
	}
	defer resp.Body.Close()

	c.log(ctx).Debug("Remote call",
		slog.String("method", method),
		slog.String("url", redact(target)),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return domainerrors.NewStatusError(method, redact(target), resp.StatusCode, string(snippet))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, redact(target))
	}

	return nil
}

func (c *Client) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, c.logger)
}

// redact strips userinfo and query strings before a URL reaches a log line.
func redact(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	u.User = nil
	u.RawQuery = ""

	return u.String()
}
