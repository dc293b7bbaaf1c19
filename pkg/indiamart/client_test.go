package indiamart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSellers_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sellers/search", r.URL.Path)
		assert.Equal(t, "sarees", r.URL.Query().Get("keyword"))
		assert.Equal(t, "Surat", r.URL.Query().Get("city"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SellerResponse{
			Status: "ok",
			Sellers: []Seller{
				{
					CompanyName:   "Acme Sarees",
					ContactPerson: "Ramesh Patel",
					City:          "Surat",
					Mobile:        "+91-9876543210",
					ProductLine:   "silk sarees",
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.SearchSellers(context.Background(), SellerQuery{Keyword: "sarees", City: "Surat"})

	require.NoError(t, err)
	require.Len(t, resp.Sellers, 1)
	assert.Equal(t, "Acme Sarees", resp.Sellers[0].CompanyName)
	assert.Equal(t, "Ramesh Patel", resp.Sellers[0].ContactPerson)
}

func TestSearchSellers_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SellerResponse{Status: "error", Message: "quota exceeded"})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.SearchSellers(context.Background(), SellerQuery{Keyword: "sarees"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSearchSellers_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.SearchSellers(context.Background(), SellerQuery{Keyword: "sarees"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
