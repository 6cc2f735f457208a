// Package fetch retrieves target pages with identity headers, a hard deadline,
// and no retries: a failed fetch fails the whole tool call.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
)

// Identity selects which User-Agent the client presents.
type Identity string

const (
	// IdentityBrowser mimics an ordinary desktop browser.
	IdentityBrowser Identity = "browser"
	// IdentityDeclared announces the crawler by name.
	IdentityDeclared Identity = "declared"
)

const (
	browserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	declaredAgent  = "StayScoutBot/1.0 (+https://github.com/stayscout/stayscout)"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.9"

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 30 * time.Second
)

// Document is the raw body of a fetched page.
type Document struct {
	URL  string
	Body string
}

// NetworkError reports a non-2xx response or a connection failure.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError reports an elapsed fetch deadline.
type TimeoutError struct {
	URL   string
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.URL, e.Limit)
}

// Fetcher retrieves a page body for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Document, error)
}

// Client is the production Fetcher backed by resty.
type Client struct {
	resty   *resty.Client
	timeout time.Duration
}

// NewClient creates a client presenting the given identity.
func NewClient(identity Identity, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	r := resty.New().
		SetRetryCount(0).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("User-Agent", agentFor(identity)).
		SetHeader("Accept", acceptHeader).
		SetHeader("Accept-Language", acceptLanguage)

	return &Client{resty: r, timeout: timeout}
}

// Fetch retrieves the page at url, bounded by the client timeout.
func (c *Client) Fetch(ctx context.Context, url string) (*Document, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.resty.R().SetContext(ctx).Get(url)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{URL: url, Limit: c.timeout}
		}
		return nil, &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &NetworkError{URL: url, Status: resp.StatusCode()}
	}

	return &Document{URL: url, Body: resp.String()}, nil
}

func agentFor(identity Identity) string {
	if identity == IdentityDeclared {
		return declaredAgent
	}
	return browserAgent
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
