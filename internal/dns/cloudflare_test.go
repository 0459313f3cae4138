// internal/dns/cloudflare_test.go
//
// Run: go test ./internal/dns -v

package dns

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
		APIToken:   "cf-token",
		ZoneID:     "zone123",
		Target:     "wowsites.pages.dev",
		BaseDomain: "saas.wow-sites.com",
	}
}

func TestCreateRecord(t *testing.T) {
	var got dnsRecord
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.Equal(t, "/zones/zone123/dns_records", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"result":{"id":"rec42"}}`))
	}))
	defer srv.Close()

	m := New(testConfig())
	m.client.SetBaseURL(srv.URL)

	id, err := m.CreateRecord(context.Background(), "joes-pizza")
	require.NoError(t, err)
	assert.Equal(t, "rec42", id)

	assert.Equal(t, "Bearer cf-token", auth)
	assert.Equal(t, dnsRecord{
		Type:    "CNAME",
		Name:    "joes-pizza",
		Content: "wowsites.pages.dev",
		TTL:     1,
		Proxied: true,
	}, got)
}

func TestCreateRecord_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"errors":[{"code":81057,"message":"Record already exists."}]}`))
	}))
	defer srv.Close()

	m := New(testConfig())
	m.client.SetBaseURL(srv.URL)
	m.client.SetRetryCount(0)

	_, err := m.CreateRecord(context.Background(), "joes-pizza")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Record already exists.")
}

func TestCheckRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "joes-pizza.saas.wow-sites.com", r.URL.Query().Get("name"))
		assert.Equal(t, "CNAME", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`{"success":true,"result":[{"id":"rec42","name":"joes-pizza.saas.wow-sites.com"}]}`))
	}))
	defer srv.Close()

	m := New(testConfig())
	m.client.SetBaseURL(srv.URL)

	exists, id, err := m.CheckRecord(context.Background(), "joes-pizza")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "rec42", id)
}

func TestCheckRecord_Absent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"result":[]}`))
	}))
	defer srv.Close()

	m := New(testConfig())
	m.client.SetBaseURL(srv.URL)

	exists, id, err := m.CheckRecord(context.Background(), "nobody-home")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, id)
}

func TestDeleteRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/zones/zone123/dns_records/rec42", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"result":{"id":"rec42"}}`))
	}))
	defer srv.Close()

	m := New(testConfig())
	m.client.SetBaseURL(srv.URL)

	require.NoError(t, m.DeleteRecord(context.Background(), "rec42"))
}

func TestNotConfigured(t *testing.T) {
	m := New(Config{})

	_, err := m.CreateRecord(context.Background(), "joes-pizza")
	assert.ErrorIs(t, err, ErrNotConfigured)

	err = m.DeleteRecord(context.Background(), "rec42")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, _, err = m.CheckRecord(context.Background(), "joes-pizza")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
