package serpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "google", r.URL.Query().Get("engine"))
		assert.Equal(t, "boutiques in Surat site:justdial.com", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "20", r.URL.Query().Get("num"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResponse{
			OrganicResults: []OrganicResult{
				{Position: 1, Title: "Acme Fashions, Surat", Link: "https://justdial.com/acme", Snippet: "Call 9876543210"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Search(context.Background(), SearchParams{
		Query: "boutiques in Surat site:justdial.com",
		Num:   20,
	})

	require.NoError(t, err)
	require.Len(t, resp.OrganicResults, 1)
	assert.Equal(t, "Acme Fashions, Surat", resp.OrganicResults[0].Title)
	assert.Contains(t, resp.OrganicResults[0].Snippet, "9876543210")
}

func TestSearch_APIErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "Google hasn't returned any results for this query."}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), SearchParams{Query: "gibberish"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "hasn't returned any results")
}

func TestSearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Invalid API key"}`))
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), SearchParams{Query: "anything"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSearch_LocalResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResponse{
			LocalResults: LocalResults{Places: []LocalPlace{
				{Title: "Beta Textiles", Address: "Ring Road, Surat", Phone: "098765 43210"},
			}},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Search(context.Background(), SearchParams{Query: "textile shops near me"})

	require.NoError(t, err)
	require.Len(t, resp.LocalResults.Places, 1)
	assert.Equal(t, "Beta Textiles", resp.LocalResults.Places[0].Title)
}
