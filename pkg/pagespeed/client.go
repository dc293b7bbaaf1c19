// Package pagespeed provides a client for the Google PageSpeed Insights API,
// used to score lead websites for performance and SEO pain.
package pagespeed

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://www.googleapis.com/pagespeedonline/v5"

// Client performs PageSpeed Insights operations.
type Client interface {
	Analyze(ctx context.Context, pageURL string) (*Result, error)
}

// Result holds the Lighthouse category scores on a 0-100 scale.
type Result struct {
	Performance int
	SEO         int
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a PageSpeed Insights client. Lighthouse runs are slow,
// so the default timeout is generous.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type apiResponse struct {
	LighthouseResult struct {
		Categories struct {
			Performance categoryScore `json:"performance"`
			SEO         categoryScore `json:"seo"`
		} `json:"categories"`
	} `json:"lighthouseResult"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type categoryScore struct {
	Score float64 `json:"score"` // 0.0 - 1.0
}

func (c *httpClient) Analyze(ctx context.Context, pageURL string) (*Result, error) {
	q := url.Values{}
	q.Set("url", pageURL)
	q.Set("strategy", "mobile")
	q.Add("category", "performance")
	q.Add("category", "seo")
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/runPagespeed?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "pagespeed: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "pagespeed: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "pagespeed: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("pagespeed: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, eris.Wrap(err, "pagespeed: unmarshal response")
	}
	if parsed.Error.Message != "" {
		return nil, eris.Errorf("pagespeed: %s", parsed.Error.Message)
	}

	return &Result{
		Performance: toPercent(parsed.LighthouseResult.Categories.Performance.Score),
		SEO:         toPercent(parsed.LighthouseResult.Categories.SEO.Score),
	}, nil
}

func toPercent(score float64) int {
	return int(math.Round(score * 100))
}
