// Package indiamart provides a client for the IndiaMART seller search API,
// used to pull B2B supplier listings by product keyword and city.
package indiamart

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://mapi.indiamart.com"

// Client performs IndiaMART search operations.
type Client interface {
	SearchSellers(ctx context.Context, query SellerQuery) (*SellerResponse, error)
}

// SellerQuery describes one seller search.
type SellerQuery struct {
	Keyword string
	City    string
}

// SellerResponse is the subset of a seller search response the pipeline uses.
type SellerResponse struct {
	Sellers []Seller `json:"sellers"`
	Status  string   `json:"status"`
	Message string   `json:"message"`
}

// Seller is one supplier listing.
type Seller struct {
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	City          string `json:"city"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email"`
	ProductLine   string `json:"product_line"`
	CatalogURL    string `json:"catalog_url"`
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

// NewClient creates an IndiaMART client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SearchSellers(ctx context.Context, query SellerQuery) (*SellerResponse, error) {
	q := url.Values{}
	q.Set("keyword", query.Keyword)
	q.Set("key", c.apiKey)
	if query.City != "" {
		q.Set("city", query.City)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/sellers/search?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "indiamart: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "indiamart: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "indiamart: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("indiamart: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result SellerResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "indiamart: unmarshal response")
	}
	if result.Status == "error" {
		return nil, eris.Errorf("indiamart: %s", result.Message)
	}

	return &result, nil
}
