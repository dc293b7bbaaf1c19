// Package twilio provides a minimal client for the Twilio Messages API,
// used to send WhatsApp outreach messages.
package twilio

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.twilio.com/2010-04-01"

// Client performs Twilio messaging operations.
type Client interface {
	SendWhatsApp(ctx context.Context, to, body string) (*MessageResponse, error)
}

// MessageResponse is the subset of a Twilio message resource the pipeline uses.
type MessageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
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
	accountSID string
	authToken  string
	from       string // WhatsApp-enabled sender, e.g. "+14155238886"
	baseURL    string
	http       *http.Client
}

// NewClient creates a Twilio client sending from the given WhatsApp number.
func NewClient(accountSID, authToken, from string, opts ...Option) Client {
	c := &httpClient{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SendWhatsApp(ctx context.Context, to, body string) (*MessageResponse, error) {
	form := url.Values{}
	form.Set("From", whatsAppAddr(c.from))
	form.Set("To", whatsAppAddr(to))
	form.Set("Body", body)

	endpoint := c.baseURL + "/Accounts/" + c.accountSID + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "twilio: create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "twilio: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "twilio: read response")
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, eris.Errorf("twilio: %s (code %d)", apiErr.Message, apiErr.Code)
		}
		return nil, eris.Errorf("twilio: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result MessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "twilio: unmarshal response")
	}

	return &result, nil
}

func whatsAppAddr(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
