package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWhatsApp_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Accounts/AC123/Messages.json", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "whatsapp:+14155238886", r.PostForm.Get("From"))
		assert.Equal(t, "whatsapp:+919876543210", r.PostForm.Get("To"))
		assert.Contains(t, r.PostForm.Get("Body"), "Hi Acme")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid": "SM1", "status": "queued"}`))
	}))
	defer srv.Close()

	client := NewClient("AC123", "secret", "+14155238886", WithBaseURL(srv.URL))
	resp, err := client.SendWhatsApp(context.Background(), "+919876543210", "Hi Acme, quick question")

	require.NoError(t, err)
	assert.Equal(t, "SM1", resp.SID)
	assert.Equal(t, "queued", resp.Status)
}

func TestSendWhatsApp_AlreadyPrefixed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "whatsapp:+919876543210", r.PostForm.Get("To"))
		_, _ = w.Write([]byte(`{"sid": "SM2", "status": "queued"}`))
	}))
	defer srv.Close()

	client := NewClient("AC123", "secret", "+14155238886", WithBaseURL(srv.URL))
	_, err := client.SendWhatsApp(context.Background(), "whatsapp:+919876543210", "hello")
	require.NoError(t, err)
}

func TestSendWhatsApp_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": 21211, "message": "The 'To' number is not a valid phone number."}`))
	}))
	defer srv.Close()

	client := NewClient("AC123", "secret", "+14155238886", WithBaseURL(srv.URL))
	_, err := client.SendWhatsApp(context.Background(), "bogus", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "21211")
}
