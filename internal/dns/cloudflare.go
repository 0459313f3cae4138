// internal/dns/cloudflare.go
//
// Cloudflare DNS management for tenant subdomains.
//
// Context
// -------
// Each live site answers at <subdomain>.<base domain>.  The zone is
// normally covered by a wildcard record, so the main provisioning flow
// never touches DNS; this client exists for explicit per-subdomain
// records (custom setups, cleanup after teardown, support tooling) and
// is exercised by the admin side of the platform.
//
// Records are CNAMEs to the Pages deployment target, proxied, with
// automatic TTL.
package dns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const apiBaseURL = "https://api.cloudflare.com/client/v4"

// ErrNotConfigured is returned when the API token or zone ID is unset.
var ErrNotConfigured = errors.New("cloudflare credentials not configured")

// Config carries the `dns` config section.
type Config struct {
	APIToken   string
	ZoneID     string
	AccountID  string
	Target     string // CNAME content, e.g. "wowsites.pages.dev"
	BaseDomain string
}

// Manager talks to the Cloudflare v4 API.  Safe for concurrent use.
type Manager struct {
	client *resty.Client
	cfg    Config
}

// New builds the manager.
func New(cfg Config) *Manager {
	c := resty.New().
		SetBaseURL(apiBaseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetAuthToken(cfg.APIToken).
		SetHeader("Content-Type", "application/json")
	return &Manager{client: c, cfg: cfg}
}

func (m *Manager) configured() bool {
	return m.cfg.APIToken != "" && m.cfg.ZoneID != ""
}

/*──────────────────────────── wire types ───────────────────────────────────*/

type dnsRecord struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl,omitempty"`
	Proxied bool   `json:"proxied"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type listEnvelope struct {
	Success bool       `json:"success"`
	Errors  []apiError `json:"errors"`
	Result  []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"result"`
}

// createEnvelope differs from listEnvelope: result is a single object.
type createEnvelope struct {
	Success bool       `json:"success"`
	Errors  []apiError `json:"errors"`
	Result  struct {
		ID string `json:"id"`
	} `json:"result"`
}

func firstError(errs []apiError, fallback string) string {
	if len(errs) > 0 && errs[0].Message != "" {
		return errs[0].Message
	}
	return fallback
}

/*──────────────────────────── operations ───────────────────────────────────*/

// CreateRecord creates a proxied CNAME for the subdomain and returns
// the Cloudflare record ID.
func (m *Manager) CreateRecord(ctx context.Context, subdomain string) (string, error) {
	if !m.configured() {
		return "", ErrNotConfigured
	}

	var env createEnvelope
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(dnsRecord{
			Type:    "CNAME",
			Name:    subdomain,
			Content: m.cfg.Target,
			TTL:     1, // automatic
			Proxied: true,
		}).
		SetResult(&env).
		SetError(&env).
		Post(fmt.Sprintf("/zones/%s/dns_records", m.cfg.ZoneID))
	if err != nil {
		return "", fmt.Errorf("cloudflare create record: %w", err)
	}
	if resp.IsError() || !env.Success {
		return "", fmt.Errorf("cloudflare create record: %s", firstError(env.Errors, "failed to create DNS record"))
	}
	return env.Result.ID, nil
}

// DeleteRecord removes a record by Cloudflare record ID.
func (m *Manager) DeleteRecord(ctx context.Context, recordID string) error {
	if !m.configured() {
		return ErrNotConfigured
	}

	var env createEnvelope
	resp, err := m.client.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&env).
		Delete(fmt.Sprintf("/zones/%s/dns_records/%s", m.cfg.ZoneID, recordID))
	if err != nil {
		return fmt.Errorf("cloudflare delete record: %w", err)
	}
	if resp.IsError() || !env.Success {
		return fmt.Errorf("cloudflare delete record: %s", firstError(env.Errors, "failed to delete DNS record"))
	}
	return nil
}

// CheckRecord reports whether a CNAME exists for the subdomain, and its
// record ID when it does.  Lookup failures read as absent.
func (m *Manager) CheckRecord(ctx context.Context, subdomain string) (bool, string, error) {
	if !m.configured() {
		return false, "", ErrNotConfigured
	}

	var env listEnvelope
	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParam("name", subdomain+"."+m.cfg.BaseDomain).
		SetQueryParam("type", "CNAME").
		SetResult(&env).
		SetError(&env).
		Get(fmt.Sprintf("/zones/%s/dns_records", m.cfg.ZoneID))
	if err != nil {
		return false, "", fmt.Errorf("cloudflare check record: %w", err)
	}
	if resp.IsError() || !env.Success {
		return false, "", nil
	}
	if len(env.Result) == 0 {
		return false, "", nil
	}
	return true, env.Result[0].ID, nil
}
