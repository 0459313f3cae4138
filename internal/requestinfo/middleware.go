// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *RequestInfo.
//
/*
Context
--------
This handler sits high in the chain, immediately after logging and
metrics but before the API routes.  For every request it:

  1. Extracts the caller identity: the first X-Forwarded-For hop, then
     X-Real-IP, then the peer address, then the literal "unknown".  The
     same string keys the availability rate limiter.
  2. Parses the User-Agent header.
  3. Performs a best-effort GeoLite2 lookup.
  4. Stores a `*RequestInfo` value in `request.Context` under an
     unexported key so handlers can read it without reparsing.

Notes
-----
  • All look-ups are read-only and pool-based, so the middleware is safe
    under heavy concurrency.
*/
package requestinfo

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

/*──────────────────────────── middleware ───────────────────────────────────*/

// Enrich wraps an http.Handler, attaches *RequestInfo, and forwards.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ipStr := clientIP(r)

		info := &RequestInfo{
			ClientIP:  ipStr,
			UA:        parseUA(r.UserAgent()),
			Geo:       lookupGeo(net.ParseIP(ipStr)),
			Timestamp: time.Now().UTC(),
		}

		zap.S().Debugw("request info",
			"ip", info.ClientIP,
			"country", info.Geo.CountryISO,
			"browser", info.UA.Browser,
			"device", info.UA.Device,
			"bot", info.UA.IsBot,
			"path", r.URL.Path,
		)

		ctx := context.WithValue(r.Context(), ctxKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

/*──────────────────────────── client IP helper ─────────────────────────────*/

// clientIP extracts the caller identity string.  Order matters: the
// first X-Forwarded-For hop is what the edge proxy recorded, X-Real-IP
// is the single-proxy variant, and RemoteAddr covers direct
// connections.  "unknown" is the shared last-resort bucket.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, _ := strings.Cut(xff, ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
	}
	if xrip := strings.TrimSpace(r.Header.Get("X-Real-Ip")); xrip != "" {
		return xrip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return "unknown"
}
