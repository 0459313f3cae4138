// internal/client/model.go
//
// `client` table row model.
//
// Context
// -------
// Record mirrors one row in the persistent **client** table: the
// business profile captured at signup plus the provisioning state the
// deploy workflow reports back.  The structured columns (services,
// hours, social_links, site_data) are JSON blobs that round-trip
// through the custom Scanner/Valuer types below without reordering.
//
// Schema reference (2026-08)
//
//	CREATE TABLE client (
//	    id             CHAR(36)      PRIMARY KEY,
//	    business_name  VARCHAR(100)  NOT NULL,
//	    subdomain      VARCHAR(30)   NOT NULL,
//	    industry       VARCHAR(16)   NOT NULL,
//	    email          VARCHAR(256)  NOT NULL,
//	    phone          VARCHAR(32)   NOT NULL,
//	    address        VARCHAR(200)  NULL,
//	    about_us       VARCHAR(500)  NOT NULL,
//	    services       JSON          NOT NULL,
//	    hours          JSON          NULL,
//	    social_links   JSON          NULL,
//	    template_id    VARCHAR(16)   NOT NULL,
//	    status         VARCHAR(12)   NOT NULL DEFAULT 'pending',
//	    deployment_url VARCHAR(512)  NULL,
//	    site_data      JSON          NULL,
//	    created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
//	                       ON UPDATE CURRENT_TIMESTAMP,
//	    UNIQUE KEY uq_client_subdomain (subdomain)
//	);
//
// Notes
// -----
//   - `uq_client_subdomain` is the authoritative uniqueness guard; the
//     pre-insert availability check is an optimization only.
//   - Subdomains are stored lowercase, so the UNIQUE key is effectively
//     case-insensitive.
//   - Nullable columns map to pointer fields; callers must nil-check.
package client

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wowsites/platform/internal/schema"
)

// Record mirrors one row in the `client` table.
type Record struct {
	ID            string       `db:"id"`
	BusinessName  string       `db:"business_name"`
	Subdomain     string       `db:"subdomain"`
	Industry      string       `db:"industry"`
	Email         string       `db:"email"`
	Phone         string       `db:"phone"`
	Address       *string      `db:"address"`
	AboutUs       string       `db:"about_us"`
	Services      ServiceList  `db:"services"`
	Hours         *HoursBlob   `db:"hours"`
	SocialLinks   *SocialBlob  `db:"social_links"`
	TemplateID    string       `db:"template_id"`
	Status        string       `db:"status"`
	DeploymentURL *string      `db:"deployment_url"`
	SiteData      *SiteDataBlob `db:"site_data"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

// Data rebuilds the validated signup payload from a stored row, for
// template generation and API responses.
func (r *Record) Data() schema.ClientData {
	d := schema.ClientData{
		BusinessName: r.BusinessName,
		Subdomain:    r.Subdomain,
		Industry:     r.Industry,
		Email:        r.Email,
		Phone:        r.Phone,
		AboutUs:      r.AboutUs,
		Services:     []string(r.Services),
	}
	if r.Address != nil {
		d.Address = *r.Address
	}
	if r.Hours != nil {
		h := schema.BusinessHours(*r.Hours)
		d.Hours = &h
	}
	if r.SocialLinks != nil {
		s := schema.SocialLinks(*r.SocialLinks)
		d.SocialLinks = &s
	}
	return d
}

// SiteData is the cached generation result stored alongside a record.
type SiteData struct {
	HTML        string    `json:"html"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// -----------------------------------------------------------------------------
// JSON column adapters
// -----------------------------------------------------------------------------

// ServiceList stores the ordered services array as a JSON column.
// Order is preserved exactly as submitted.
type ServiceList []string

// Value implements driver.Valuer.
func (s ServiceList) Value() (driver.Value, error) { return json.Marshal([]string(s)) }

// Scan implements sql.Scanner.
func (s *ServiceList) Scan(src any) error { return scanJSON("services", src, s) }

// HoursBlob persists schema.BusinessHours as JSON; a NULL column maps
// to a nil pointer on the Record.
type HoursBlob schema.BusinessHours

func (h HoursBlob) Value() (driver.Value, error) { return json.Marshal(schema.BusinessHours(h)) }
func (h *HoursBlob) Scan(src any) error          { return scanJSON("hours", src, h) }

// SocialBlob persists schema.SocialLinks as JSON.
type SocialBlob schema.SocialLinks

func (s SocialBlob) Value() (driver.Value, error) { return json.Marshal(schema.SocialLinks(s)) }
func (s *SocialBlob) Scan(src any) error          { return scanJSON("social_links", src, s) }

// SiteDataBlob persists the cached generation result as JSON.
type SiteDataBlob SiteData

func (s SiteDataBlob) Value() (driver.Value, error) { return json.Marshal(SiteData(s)) }
func (s *SiteDataBlob) Scan(src any) error          { return scanJSON("site_data", src, s) }

// scanJSON unmarshals a JSON column delivered as []byte or string.
func scanJSON(col string, src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("client: cannot scan %T into %s", src, col)
	}
}
