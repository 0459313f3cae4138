// internal/middleware/https.go
//
// Plain-HTTP redirect.
//
// The platform normally sits behind a TLS-terminating proxy, so this
// wrapper is off by default (http.force_https).  When enabled it sends
// a 308 Permanent Redirect to the HTTPS version of the same URL for any
// non-local plain-HTTP request.
package middleware

import (
	"net/http"
	"strings"
)

// ForceHTTPS redirects plain-HTTP requests to HTTPS.  Localhost is
// exempt so local development keeps working without certificates.
func ForceHTTPS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS != nil || stripPort(r.Host) == "localhost" {
			next.ServeHTTP(w, r)
			return
		}
		target := "https://" + r.Host + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	})
}

// stripPort removes the :port suffix from Host when present.
func stripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
