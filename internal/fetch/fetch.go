// Package fetch downloads business websites and their contact pages for
// on-page extraction. Bodies are capped so a runaway page cannot blow up
// memory during a bulk enrichment run.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/resilience"
)

// DefaultUserAgent mimics a desktop browser. Small-business sites routinely
// reject Go's default UA.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// MaxBodyBytes caps how much of a page body is read.
const MaxBodyBytes = 2 << 20

// Fetcher downloads a page and returns its body as text.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Options configures the HTTP fetcher.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Retry     resilience.RetryConfig
}

type httpFetcher struct {
	client *http.Client
	opts   Options
}

// NewHTTP returns a Fetcher backed by net/http with retries on transient
// failures.
func NewHTTP(opts Options) Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &httpFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		opts: opts,
	}
}

func (f *httpFetcher) Get(ctx context.Context, url string) (string, error) {
	body, err := resilience.DoVal(ctx, f.opts.Retry, func(ctx context.Context) (string, error) {
		return f.get(ctx, url)
	})
	if err != nil {
		return "", eris.Wrapf(err, "fetching %s", url)
	}
	return body, nil
}

func (f *httpFetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("http %d from %s", resp.StatusCode, url)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return "", resilience.NewTransientError(err, resp.StatusCode)
		}
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return "", eris.Wrap(err, "read body")
	}
	zap.L().Debug("fetched page", zap.String("url", url), zap.Int("bytes", len(data)))
	return string(data), nil
}

// Func adapts a plain function to the Fetcher interface, for tests.
type Func func(ctx context.Context, url string) (string, error)

func (f Func) Get(ctx context.Context, url string) (string, error) { return f(ctx, url) }
