// Package serpapi provides a client for the SerpAPI search results API,
// used to query Google search and business directories without scraping
// result pages directly.
package serpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://serpapi.com"

// Client performs SerpAPI search operations.
type Client interface {
	Search(ctx context.Context, params SearchParams) (*SearchResponse, error)
}

// SearchParams describes one search request.
type SearchParams struct {
	Engine   string // defaults to "google"
	Query    string
	Location string
	Num      int
	Start    int
}

// SearchResponse is the subset of a SerpAPI response the pipeline consumes.
type SearchResponse struct {
	OrganicResults []OrganicResult `json:"organic_results"`
	LocalResults   LocalResults    `json:"local_results"`
	Error          string          `json:"error"`
}

// OrganicResult is one entry from the organic results block.
type OrganicResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
}

// LocalResults is the map-pack block present on local intent queries.
type LocalResults struct {
	Places []LocalPlace `json:"places"`
}

// LocalPlace is one business from the map pack.
type LocalPlace struct {
	Title   string `json:"title"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Type    string `json:"type"`
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

// NewClient creates a SerpAPI client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	engine := params.Engine
	if engine == "" {
		engine = "google"
	}

	q := url.Values{}
	q.Set("engine", engine)
	q.Set("q", params.Query)
	q.Set("api_key", c.apiKey)
	if params.Location != "" {
		q.Set("location", params.Location)
	}
	if params.Num > 0 {
		q.Set("num", strconv.Itoa(params.Num))
	}
	if params.Start > 0 {
		q.Set("start", strconv.Itoa(params.Start))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("serpapi: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result SearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "serpapi: unmarshal response")
	}
	if result.Error != "" {
		return nil, eris.Errorf("serpapi: %s", result.Error)
	}

	return &result, nil
}
