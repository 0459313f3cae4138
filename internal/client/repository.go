// internal/client/repository.go
//
// Client-table persistence helpers.
//
// Context
// -------
// Repo wraps the platform database pool for every read and write the
// provisioning flow performs.  Two behaviors matter beyond plain CRUD:
//
//   - Insert treats the MySQL duplicate-key error on
//     `uq_client_subdomain` as the authoritative conflict signal and
//     maps it to ErrSubdomainTaken.  Two racing create-site calls can
//     both pass the availability pre-check; only one insert wins.
//   - SubdomainExists folds its argument before the lookup, and rows
//     are stored lowercase, so matching is case-insensitive end to end.
//
// Errors are returned verbatim apart from the two sentinel mappings so
// callers can wrap or log them with the project logger.
package client

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Sentinel errors for the two failures handlers branch on.
var (
	ErrNotFound       = errors.New("client: not found")
	ErrSubdomainTaken = errors.New("client: subdomain already taken")
)

// mysqlDupEntry is the server errno for a UNIQUE-key violation.
const mysqlDupEntry = 1062

// Repo provides access to the `client` table.
type Repo struct {
	db *sqlx.DB
}

// NewRepo wraps an open pool.
func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// Insert persists a new record.  The caller fills ID, profile fields,
// TemplateID, and Status; timestamps come from the database.  A
// duplicate subdomain returns ErrSubdomainTaken.
func (r *Repo) Insert(ctx context.Context, rec *Record) error {
	const q = `
        INSERT INTO client
               (id, business_name, subdomain, industry, email, phone, address,
                about_us, services, hours, social_links, template_id, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.BusinessName, rec.Subdomain, rec.Industry, rec.Email,
		rec.Phone, rec.Address, rec.AboutUs, rec.Services, rec.Hours,
		rec.SocialLinks, rec.TemplateID, rec.Status,
	)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDupEntry {
		return ErrSubdomainTaken
	}
	return err
}

// ByID fetches one record by its identifier.
func (r *Repo) ByID(ctx context.Context, id string) (*Record, error) {
	const q = `
        SELECT id, business_name, subdomain, industry, email, phone, address,
               about_us, services, hours, social_links, template_id, status,
               deployment_url, site_data, created_at, updated_at
        FROM   client
        WHERE  id = ?
        LIMIT  1`
	var rec Record
	if err := r.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// BySubdomain fetches one record by its (case-insensitively matched)
// subdomain.
func (r *Repo) BySubdomain(ctx context.Context, subdomain string) (*Record, error) {
	const q = `
        SELECT id, business_name, subdomain, industry, email, phone, address,
               about_us, services, hours, social_links, template_id, status,
               deployment_url, site_data, created_at, updated_at
        FROM   client
        WHERE  subdomain = ?
        LIMIT  1`
	var rec Record
	if err := r.db.GetContext(ctx, &rec, q, strings.ToLower(subdomain)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// SubdomainExists reports whether any record already claims subdomain.
// Matching is case-insensitive; rows are stored lowercase.
func (r *Repo) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	const q = `SELECT 1 FROM client WHERE subdomain = ? LIMIT 1`
	var one int
	err := r.db.GetContext(ctx, &one, q, strings.ToLower(subdomain))
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateDeployment overwrites status and deployment_url.  No state
// machine is enforced here; the callback handler guards access with
// the shared secret and payload validation, and it looks the record up
// before updating, so a missing row surfaces as ErrNotFound there.
// RowsAffected is not checked because MySQL reports zero for no-op
// updates, and the deploy workflow may legitimately resend a status.
func (r *Repo) UpdateDeployment(ctx context.Context, id, status string, deploymentURL *string) error {
	const q = `UPDATE client SET status = ?, deployment_url = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, status, deploymentURL, id)
	return err
}

// CacheSiteData stores the generated HTML alongside the record.
func (r *Repo) CacheSiteData(ctx context.Context, id string, html string, generatedAt time.Time) error {
	blob := SiteDataBlob{HTML: html, GeneratedAt: generatedAt}
	const q = `UPDATE client SET site_data = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, blob, id)
	return err
}
