// internal/mail/brevo_test.go
//
// Run: go test ./internal/mail -v

package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		APIKey:       "test-key",
		SenderEmail:  "noreply@wow-sites.com",
		SenderName:   "WOW Sites",
		SupportEmail: "support@wow-sites.com",
		AppURL:       "https://app.saas.wow-sites.com",
		BaseDomain:   "saas.wow-sites.com",
	}
}

func TestSendWelcome_Payload(t *testing.T) {
	var got smtpEmail
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		require.Equal(t, sendPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b := NewBrevo(testConfig())
	b.client.SetBaseURL(srv.URL)

	err := b.SendWelcome(context.Background(), "joe@example.com", "joes-pizza", "Joe's Pizza")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "noreply@wow-sites.com", got.Sender.Email)
	assert.Equal(t, "WOW Sites", got.Sender.Name)
	require.Len(t, got.To, 1)
	assert.Equal(t, "joe@example.com", got.To[0].Email)
	assert.Equal(t, welcomeSubject, got.Subject)
	assert.Contains(t, got.HTMLContent, "https://joes-pizza.saas.wow-sites.com")
	assert.Contains(t, got.HTMLContent, "https://app.saas.wow-sites.com/dashboard")
	assert.Contains(t, got.TextContent, "Joe's Pizza")
}

func TestSendFailure_EscapesReason(t *testing.T) {
	var got smtpEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b := NewBrevo(testConfig())
	b.client.SetBaseURL(srv.URL)

	err := b.SendFailure(context.Background(), "joe@example.com", "Joe's Pizza", "<img src=x onerror=alert(1)>")
	require.NoError(t, err)

	assert.Equal(t, failureSubject, got.Subject)
	assert.NotContains(t, got.HTMLContent, "<img src=x")
	assert.Contains(t, got.HTMLContent, "support@wow-sites.com")
	assert.Contains(t, got.TextContent, "Error details: <img src=x onerror=alert(1)>")
}

func TestSend_APIErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized","message":"Key not found"}`))
	}))
	defer srv.Close()

	b := NewBrevo(testConfig())
	b.client.SetBaseURL(srv.URL)
	b.client.SetRetryCount(0)

	err := b.SendWelcome(context.Background(), "joe@example.com", "joes-pizza", "Joe's Pizza")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Key not found")
}

func TestSend_NotConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	b := NewBrevo(cfg)

	err := b.SendWelcome(context.Background(), "joe@example.com", "joes-pizza", "Joe's Pizza")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendContact_OmitsEmptyPhone(t *testing.T) {
	var got smtpEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b := NewBrevo(testConfig())
	b.client.SetBaseURL(srv.URL)

	err := b.SendContact(context.Background(), "joe@example.com", "Joe's Pizza", "Jane Visitor", "jane@example.com", "", "Do you cater?")
	require.NoError(t, err)

	assert.Equal(t, contactSubject, got.Subject)
	assert.Contains(t, got.HTMLContent, "Jane Visitor")
	assert.Contains(t, got.HTMLContent, "Do you cater?")
	assert.NotContains(t, got.HTMLContent, "Phone:")
}
