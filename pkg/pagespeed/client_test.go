package pagespeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runPagespeed", r.URL.Path)
		assert.Equal(t, "https://acmefashions.in", r.URL.Query().Get("url"))
		assert.Equal(t, "mobile", r.URL.Query().Get("strategy"))
		assert.ElementsMatch(t, []string{"performance", "seo"}, r.URL.Query()["category"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"lighthouseResult": {
				"categories": {
					"performance": {"score": 0.38},
					"seo": {"score": 0.72}
				}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	res, err := client.Analyze(context.Background(), "https://acmefashions.in")

	require.NoError(t, err)
	assert.Equal(t, 38, res.Performance)
	assert.Equal(t, 72, res.SEO)
}

func TestAnalyze_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": {"message": "Lighthouse returned error: FAILED_DOCUMENT_REQUEST"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Analyze(context.Background(), "https://unreachable.example")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FAILED_DOCUMENT_REQUEST")
}

func TestAnalyze_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Analyze(context.Background(), "https://acmefashions.in")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
