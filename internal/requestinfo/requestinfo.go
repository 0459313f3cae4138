//
//  internal/requestinfo/requestinfo.go
//
//  Lightweight types and helpers that collect per-request metadata
//  (caller network identity, user-agent fingerprint, best-effort
//  geolocation, and timestamp).  These structs are inert: no database
//  handles, no large buffers, safe to log or JSON-encode.
//
//  The ClientIP field doubles as the rate-limit bucket key for the
//  subdomain availability endpoint.
//
//  Dependencies
//  • github.com/avct/uasurfer          (UA parsing)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup)
//

package requestinfo

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// UA holds the parsed user-agent properties we record with signup
// telemetry.
type UA struct {
	Raw      string // entire User-Agent header
	Browser  string // "Chrome", "Firefox", "Safari", ...
	Version  string // "124.0.6367"
	OS       string // "macOS", "Windows", "Android", ...
	Device   string // "Desktop", "Phone", "Tablet", ...
	Platform string // "Mac", "Windows", "Linux", ...
	IsBot    bool
}

// Geo holds IP-based geolocation hints.  Best-effort; fields may be
// empty when the database has no match or is not configured.
type Geo struct {
	IP         net.IP
	CountryISO string // "US", "CA", "FR", ...
	City       string // "Chicago", "Paris", ...
}

// RequestInfo is stored in the request context by the Enrich
// middleware.
type RequestInfo struct {
	ClientIP  string // rate-limit key: first XFF hop, X-Real-IP, or peer
	UA        UA
	Geo       Geo
	Timestamp time.Time
}

//
//  -----------------------------
//  Package-level state
//  -----------------------------
//

// geoReader is a singleton MaxMind handle.  Safe for concurrent reads,
// which is all we ever perform.  Nil when geo lookup is disabled.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-City database at startup.  An empty path
// or open failure disables lookup; signup telemetry then carries no
// country, which is fine.
func InitGeo(dbPath string) {
	if dbPath == "" {
		return
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		zap.S().Warnw("geo database unavailable, lookups disabled", "path", dbPath, "err", err)
		return
	}
	geoReader = r
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich, or nil
// if the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(uaHeader string) UA {
	u := uasurfer.Parse(uaHeader)

	osName := strings.TrimPrefix(u.OS.Name.String(), "OS")
	if osName == "MacOSX" {
		osName = "macOS"
	}

	return UA{
		Raw:      uaHeader,
		Browser:  strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		Version:  versionString(u.Browser.Version),
		OS:       osName,
		Device:   deviceTypeToString(u.DeviceType),
		Platform: strings.TrimPrefix(u.OS.Platform.String(), "Platform"),
		IsBot:    u.IsBot(),
	}
}

// versionString builds "major.minor.patch" and trims trailing ".0"
// pairs.
func versionString(v uasurfer.Version) string {
	out := strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
	out = strings.TrimSuffix(strings.TrimSuffix(out, ".0"), ".0")
	if out == "" {
		return "0"
	}
	return out
}

// deviceTypeToString maps uasurfer.DeviceType to a friendly string.
func deviceTypeToString(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	case uasurfer.DeviceConsole:
		return "Console"
	case uasurfer.DeviceWearable:
		return "Wearable"
	case uasurfer.DeviceTV:
		return "TV"
	default:
		return "Unknown"
	}
}

// lookupGeo returns best-effort Geo data using the global reader.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}
