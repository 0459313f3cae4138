// internal/config/model.go
//
// Typed configuration model for the provisioning platform.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                       – dotenv values,
//   • `conf/global.yaml`                         – primary static file,
//   • `WOWSITES_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* unmarshalling, so the model never
// stores Vault URIs, only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`; Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not set it.
package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the control-plane DSN.  The secret portion may be a
// `vault:` reference resolved at load time.
type Database struct {
	DSN string `koanf:"dsn" validate:"required"`
}

//
// Redis section
//

// Redis is optional: when Addr is empty, the rate limiter and the
// wizard draft store fall back to their in-process implementations.
type Redis struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
}

//
// Site section
//

// Site names the shared base domain that tenant subdomains hang off,
// and the public URL of the signup application itself.
type Site struct {
	BaseDomain string `koanf:"base_domain" validate:"required,fqdn"`
	AppURL     string `koanf:"app_url"     validate:"required,url"`
}

//
// Deploy section
//

// Deploy configures the external workflow-automation service that
// turns a client record into a hosted site.  Secret is echoed back on
// the status callback for verification; an empty secret disables the
// callback check.
type Deploy struct {
	WebhookURL string `koanf:"webhook_url" validate:"omitempty,url"`
	Secret     string `koanf:"webhook_secret"`
}

//
// Email section
//

// Email configures the Brevo transactional-mail account.  A missing
// APIKey is tolerated: sends short-circuit to a reported, non-fatal
// failure.
type Email struct {
	APIKey       string `koanf:"api_key"`
	SenderEmail  string `koanf:"sender_email" validate:"required,email"`
	SenderName   string `koanf:"sender_name"  validate:"required"`
	SupportEmail string `koanf:"support_email" validate:"required,email"`
}

//
// DNS section
//

// DNS configures the Cloudflare zone that hosts tenant CNAME records.
// All fields may be empty; the DNS manager then reports "not
// configured" instead of calling out.
type DNS struct {
	APIToken  string `koanf:"api_token"`
	ZoneID    string `koanf:"zone_id"`
	AccountID string `koanf:"account_id"`
	Target    string `koanf:"target"` // CNAME content, e.g. "pages.dev"
}

//
// Geo section
//

// Geo points at an optional GeoLite2-City database used to annotate
// signup telemetry.  Empty path disables the lookup.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers Root so later code can build absolute file paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Redis    Redis    `koanf:"redis"`
	Site     Site     `koanf:"site"`
	Deploy   Deploy   `koanf:"deploy"`
	Email    Email    `koanf:"email"`
	DNS      DNS      `koanf:"dns"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
