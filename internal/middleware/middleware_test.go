// internal/middleware/middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurity_SetsHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/check-subdomain", nil)

	Security(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Contains(t, rr.Header().Get("Strict-Transport-Security"), "max-age=")
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))
}

func TestForceHTTPS_RedirectsPlainHTTP(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/client-status?clientId=abc", nil)
	req.Host = "app.saas.wow-sites.com"

	ForceHTTPS(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusPermanentRedirect, rr.Code)
	assert.Equal(t,
		"https://app.saas.wow-sites.com/api/client-status?clientId=abc",
		rr.Header().Get("Location"))
}

func TestForceHTTPS_LocalhostPassesThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/client-status", nil)
	req.Host = "localhost:8080"

	ForceHTTPS(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
