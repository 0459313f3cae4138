// internal/provision/service.go
//
// Site provisioning: the write side of signup.
//
// Workflow
// --------
//   CreateSite
//     1. Run the full schema over the submitted payload.
//     2. Fold the subdomain to lowercase and pre-check availability for
//        a friendly early conflict.
//     3. Insert the client row (status pending).  The UNIQUE key on
//        subdomain is the authoritative conflict signal; a duplicate
//        insert surfaces as ErrSubdomainTaken no matter what the
//        pre-check said.
//     4. Enqueue the deploy notification in the outbox and return the
//        future site URL.  The background worker owns delivery.
//
//   HandleCallback
//     The deploy workflow reports status changes here.  The shared
//     secret is compared in constant time before anything else.  On
//     "active" with a deployment URL the owner gets a welcome email, on
//     "failed" a failure email; both are best-effort and never fail the
//     callback.
//
//   RelayContact
//     Resolves the tenant by subdomain and forwards a visitor's
//     contact-form submission to the owner's inbox.
package provision

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wowsites/platform/internal/cache"
	"github.com/wowsites/platform/internal/client"
	"github.com/wowsites/platform/internal/mail"
	"github.com/wowsites/platform/internal/metrics"
	"github.com/wowsites/platform/internal/schema"
	"github.com/wowsites/platform/internal/sitegen"
)

// ErrBadSecret is returned when a callback carries the wrong secret.
var ErrBadSecret = errors.New("invalid webhook secret")

/*──────────────────────────── capabilities ─────────────────────────────────*/

// Repo is the persistence slice the service needs.
type Repo interface {
	Insert(ctx context.Context, rec *client.Record) error
	ByID(ctx context.Context, id string) (*client.Record, error)
	BySubdomain(ctx context.Context, subdomain string) (*client.Record, error)
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)
	UpdateDeployment(ctx context.Context, id, status string, deploymentURL *string) error
	CacheSiteData(ctx context.Context, id string, html string, generatedAt time.Time) error
}

// Outbox enqueues deploy notifications.
type Outbox interface {
	Enqueue(ctx context.Context, clientID string, payload json.RawMessage) error
}

// Mailer sends the transactional messages provisioning triggers.
type Mailer interface {
	SendWelcome(ctx context.Context, to, subdomain, businessName string) error
	SendFailure(ctx context.Context, to, businessName, reason string) error
	SendContact(ctx context.Context, to, businessName, visitorName, visitorEmail, visitorPhone, message string) error
}

/*──────────────────────────── service ──────────────────────────────────────*/

// Config carries the provisioning knobs.
type Config struct {
	BaseDomain    string // site URLs: https://<subdomain>.<BaseDomain>
	WebhookSecret string // shared with the deploy workflow
}

// Service owns the signup write path.
type Service struct {
	repo   Repo
	outbox Outbox
	mailer Mailer
	gen    *sitegen.Generator
	pages  *cache.LRU // rendered HTML, keyed by clientID/templateID
	cfg    Config

	now   func() time.Time
	newID func() string
	log   *zap.SugaredLogger
}

// New wires the service.
func New(repo Repo, outbox Outbox, mailer Mailer, gen *sitegen.Generator, cfg Config) *Service {
	return &Service{
		repo:   repo,
		outbox: outbox,
		mailer: mailer,
		gen:    gen,
		pages:  cache.New(512),
		cfg:    cfg,
		now:    time.Now,
		newID:  uuid.NewString,
		log:    zap.S().Named("provision"),
	}
}

// CreateResult is returned to the wizard on success.
type CreateResult struct {
	ClientID   string `json:"clientId"`
	Subdomain  string `json:"subdomain"`
	WebsiteURL string `json:"websiteUrl"`
	Message    string `json:"message"`
}

// CreateSite validates and persists a signup, then queues the deploy
// notification.  Returns field errors for invalid payloads and
// client.ErrSubdomainTaken on conflict.
func (s *Service) CreateSite(ctx context.Context, data schema.ClientData) (*CreateResult, schema.FieldErrors, error) {
	if errs := schema.ValidateClientData(data); len(errs) > 0 {
		return nil, errs, nil
	}

	data.Subdomain = strings.ToLower(data.Subdomain)

	// Friendly pre-check; the UNIQUE key below still decides races.
	taken, err := s.repo.SubdomainExists(ctx, data.Subdomain)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		metrics.SignupConflictsTotal.Inc()
		return nil, nil, client.ErrSubdomainTaken
	}

	rec := recordFrom(data)
	rec.ID = s.newID()
	if err := s.repo.Insert(ctx, rec); err != nil {
		if errors.Is(err, client.ErrSubdomainTaken) {
			metrics.SignupConflictsTotal.Inc()
		}
		return nil, nil, err
	}

	payload, err := json.Marshal(deployNotification(rec.ID, data))
	if err != nil {
		return nil, nil, fmt.Errorf("encode deploy notification: %w", err)
	}
	if err := s.outbox.Enqueue(ctx, rec.ID, payload); err != nil {
		// The row exists but the workflow will never hear about it, so
		// fail the request; the visitor retries with a fresh subdomain
		// or support replays the signup.
		return nil, nil, err
	}

	metrics.SignupsTotal.Inc()
	s.log.Infow("site creation initiated", "client_id", rec.ID, "subdomain", data.Subdomain, "template", rec.TemplateID)

	return &CreateResult{
		ClientID:   rec.ID,
		Subdomain:  data.Subdomain,
		WebsiteURL: fmt.Sprintf("https://%s.%s", data.Subdomain, s.cfg.BaseDomain),
		Message:    "Site creation initiated successfully",
	}, nil, nil
}

// HandleCallback applies a deploy-workflow status report and returns
// the updated record.
func (s *Service) HandleCallback(ctx context.Context, p schema.WebhookPayload) (*client.Record, schema.FieldErrors, error) {
	// The secret check only applies when one is configured.
	if s.cfg.WebhookSecret != "" &&
		subtle.ConstantTimeCompare([]byte(p.Secret), []byte(s.cfg.WebhookSecret)) != 1 {
		return nil, nil, ErrBadSecret
	}
	if errs := schema.ValidateWebhookPayload(p); len(errs) > 0 {
		return nil, errs, nil
	}

	rec, err := s.repo.ByID(ctx, p.ClientID)
	if err != nil {
		return nil, nil, err
	}

	var depURL *string
	if p.DeploymentURL != "" {
		depURL = &p.DeploymentURL
	}
	if err := s.repo.UpdateDeployment(ctx, rec.ID, p.Status, depURL); err != nil {
		return nil, nil, err
	}
	rec.Status = p.Status
	rec.DeploymentURL = depURL

	metrics.DeployCallbacksTotal.WithLabelValues(p.Status).Inc()
	s.log.Infow("deployment status updated", "client_id", rec.ID, "status", p.Status)

	// Email is best-effort: the status change is already committed.
	// The welcome email links to the live site, so an "active" report
	// without a deployment URL stays silent.
	switch {
	case p.Status == schema.StatusActive && p.DeploymentURL != "":
		if err := s.mailer.SendWelcome(ctx, rec.Email, rec.Subdomain, rec.BusinessName); err != nil {
			s.log.Warnw("welcome email not sent", "client_id", rec.ID, "err", err)
		}
	case p.Status == schema.StatusFailed:
		reason := p.Error
		if reason == "" {
			reason = "Unknown error"
		}
		if err := s.mailer.SendFailure(ctx, rec.Email, rec.BusinessName, reason); err != nil {
			s.log.Warnw("failure email not sent", "client_id", rec.ID, "err", err)
		}
	}
	return rec, nil, nil
}

// GenerateSite renders the client's page and refreshes the cached copy.
// An empty templateID falls back to the template chosen at signup.
func (s *Service) GenerateSite(ctx context.Context, clientID, templateID string) (string, error) {
	rec, err := s.repo.ByID(ctx, clientID)
	if err != nil {
		return "", err
	}
	if templateID == "" {
		templateID = rec.TemplateID
	}

	// Client data is immutable after signup, so rendered pages can be
	// served from memory once generated.
	key := rec.ID + "/" + templateID
	if html, ok := s.pages.Get(key); ok {
		return html, nil
	}

	html, err := s.gen.Generate(templateID, rec.Data())
	if err != nil {
		return "", err
	}
	s.pages.Add(key, html)

	// Cache failures cost a regeneration later, nothing more.
	if err := s.repo.CacheSiteData(ctx, rec.ID, html, s.now().UTC()); err != nil {
		s.log.Warnw("site cache not updated", "client_id", rec.ID, "err", err)
	}
	return html, nil
}

// RelayContact forwards a generated site's contact-form submission to
// the tenant that owns the subdomain.
func (s *Service) RelayContact(ctx context.Context, m schema.ContactMessage) (schema.FieldErrors, error) {
	m.Subdomain = strings.ToLower(m.Subdomain)
	if errs := schema.ValidateContactMessage(m); len(errs) > 0 {
		return errs, nil
	}

	rec, err := s.repo.BySubdomain(ctx, m.Subdomain)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendContact(ctx, rec.Email, rec.BusinessName, m.Name, m.Email, m.Phone, m.Message); err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			s.log.Warnw("contact relay skipped, mailer not configured", "subdomain", rec.Subdomain)
			return nil, nil
		}
		return nil, err
	}
	return nil, nil
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

// recordFrom maps a validated payload onto a fresh pending row.  The
// industry doubles as the template ID.
func recordFrom(d schema.ClientData) *client.Record {
	rec := &client.Record{
		BusinessName: d.BusinessName,
		Subdomain:    d.Subdomain,
		Industry:     d.Industry,
		Email:        d.Email,
		Phone:        d.Phone,
		AboutUs:      d.AboutUs,
		Services:     client.ServiceList(d.Services),
		TemplateID:   d.Industry,
		Status:       schema.StatusPending,
	}
	if d.Address != "" {
		rec.Address = &d.Address
	}
	if d.Hours != nil && !d.Hours.Empty() {
		h := client.HoursBlob(*d.Hours)
		rec.Hours = &h
	}
	if d.SocialLinks != nil && !d.SocialLinks.Empty() {
		sl := client.SocialBlob(*d.SocialLinks)
		rec.SocialLinks = &sl
	}
	return rec
}

// deployNotification is the outbox payload; the worker injects the
// shared secret at delivery time.
func deployNotification(clientID string, d schema.ClientData) map[string]any {
	return map[string]any{
		"clientId":   clientID,
		"subdomain":  d.Subdomain,
		"templateId": d.Industry,
		"data": map[string]any{
			"businessName": d.BusinessName,
			"email":        d.Email,
			"phone":        d.Phone,
			"address":      d.Address,
			"aboutUs":      d.AboutUs,
			"services":     d.Services,
			"hours":        d.Hours,
			"socialLinks":  d.SocialLinks,
		},
	}
}
